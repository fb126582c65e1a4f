package services

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodeTestJPEG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("не удалось закодировать тестовый jpeg: %v", err)
	}
	return &buf
}

func TestSavePicture_ResizesToThumbnail(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания MediaService: %v", err)
	}

	name, err := svc.SavePicture(encodeTestJPEG(t, 300, 200), "avatar.jpg")
	if err != nil {
		t.Fatalf("ошибка сохранения аватара: %v", err)
	}
	if filepath.Ext(name) != ".jpg" {
		t.Fatalf("расширение не сохранилось: %q", name)
	}

	f, err := os.Open(filepath.Join(svc.dir, name))
	if err != nil {
		t.Fatalf("файл аватара не создан: %v", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("сохранённый аватар не декодируется: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > thumbnailSize || b.Dy() > thumbnailSize {
		t.Fatalf("аватар не ужат: %dx%d", b.Dx(), b.Dy())
	}
	if b.Dx() != thumbnailSize {
		t.Fatalf("пропорции нарушены: %dx%d", b.Dx(), b.Dy())
	}
}

func TestSavePicture_SmallImageKeptAsIs(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания MediaService: %v", err)
	}

	name, err := svc.SavePicture(encodeTestJPEG(t, 50, 40), "small.jpeg")
	if err != nil {
		t.Fatalf("ошибка сохранения аватара: %v", err)
	}

	f, _ := os.Open(filepath.Join(svc.dir, name))
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("сохранённый аватар не декодируется: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 40 {
		t.Fatalf("маленькое изображение не должно растягиваться: %v", img.Bounds())
	}
}

func TestSavePicture_PNG(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания MediaService: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 200, 300))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("не удалось закодировать тестовый png: %v", err)
	}

	name, err := svc.SavePicture(&buf, "avatar.png")
	if err != nil {
		t.Fatalf("ошибка сохранения png: %v", err)
	}
	if filepath.Ext(name) != ".png" {
		t.Fatalf("расширение не сохранилось: %q", name)
	}
}

func TestSavePicture_RejectsBadExtension(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания MediaService: %v", err)
	}

	if _, err := svc.SavePicture(encodeTestJPEG(t, 10, 10), "avatar.gif"); !errors.Is(err, ErrBadImageFormat) {
		t.Fatalf("ожидалась ErrBadImageFormat для .gif, получено: %v", err)
	}
}

func TestSavePicture_UniqueNames(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания MediaService: %v", err)
	}

	first, err := svc.SavePicture(encodeTestJPEG(t, 10, 10), "a.jpg")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}
	second, err := svc.SavePicture(encodeTestJPEG(t, 10, 10), "a.jpg")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}
	if first == second {
		t.Fatal("имена файлов должны быть случайными")
	}
}
