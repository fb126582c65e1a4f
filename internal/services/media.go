package services

import (
	"blogtalks/internal/logger"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// MediaService сохраняет загруженные аватары: проверяет расширение,
// ужимает картинку до 125x125 (с сохранением пропорций) и пишет её
// под случайным именем.
type MediaService struct {
	dir string
}

const thumbnailSize = 125

var ErrBadImageFormat = errors.New("допустимые форматы изображения: jpeg, png, jpg")

func NewMediaService(dir string) (*MediaService, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &MediaService{dir: dir}, nil
}

func (s *MediaService) SavePicture(file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpeg", ".png", ".jpg":
	default:
		logger.Log.Warn("Недопустимое расширение аватара", zap.String("filename", filename))
		return "", ErrBadImageFormat
	}

	img, _, err := image.Decode(file)
	if err != nil {
		logger.Log.Warn("Не удалось декодировать изображение", zap.Error(err))
		return "", ErrBadImageFormat
	}

	img = thumbnail(img, thumbnailSize)

	// Имя случайное; коллизии не проверяем — вероятность пренебрежимо мала
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	out, err := os.Create(path)
	if err != nil {
		logger.Log.Error("Не удалось создать файл аватара", zap.Error(err), zap.String("path", path))
		return "", err
	}
	defer out.Close()

	switch ext {
	case ".png":
		err = png.Encode(out, img)
	default:
		err = jpeg.Encode(out, img, nil)
	}
	if err != nil {
		logger.Log.Error("Не удалось записать аватар", zap.Error(err), zap.String("path", path))
		return "", err
	}

	logger.Log.Info("Аватар сохранён", zap.String("image_file", name))
	return name, nil
}

// thumbnail вписывает изображение в квадрат max x max, не растягивая мелкие.
func thumbnail(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return img
	}

	nw, nh := max, max
	if w > h {
		nh = h * max / w
	} else {
		nw = w * max / h
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
