package services

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/models"
	"blogtalks/internal/utils"
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	IsUsernameTaken(ctx context.Context, username string, excludeID int) (bool, error)
	IsEmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, input *models.UpdateProfileRequest) error
	UpdateImage(ctx context.Context, id int, imageFile string) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

const DefaultImageFile = "default.jpg"

// ErrLoginFailed — единственная ошибка логина: не раскрываем,
// существует ли аккаунт с таким email.
var ErrLoginFailed = errors.New("не удалось войти, проверьте email и пароль")

// RegisterUser проверяет поля и уникальность, хеширует пароль и создаёт аккаунт.
// Ошибки уникальности намеренно адресные — это форма регистрации.
func (s *AuthService) RegisterUser(ctx context.Context, username, email, plainPassword string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Регистрация пользователя (service)", zap.String("username", username), zap.String("email", email))

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(plainPassword); err != nil {
		return nil, err
	}

	if exists, err := s.repo.IsUsernameTaken(ctx, username, 0); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки username", zap.Error(err))
		}
		return nil, errors.New("имя пользователя уже занято")
	}
	if exists, err := s.repo.IsEmailTaken(ctx, email, 0); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email", zap.Error(err))
		}
		return nil, errors.New("адрес электронной почты уже зарегистрирован")
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		ImageFile:    DefaultImageFile,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("username", username))
	return user, nil
}

// Authenticate возвращает пользователя по email и паролю.
// Любая причина отказа выглядит одинаково (ErrLoginFailed).
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Попытка входа (service)", zap.String("email", email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("email", email), zap.Error(err))
		return nil, ErrLoginFailed
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("email", email))
		return nil, ErrLoginFailed
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("username", user.Username))
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Log.Warn("Пользователь не найден по ID (service)", zap.Int("user_id", id), zap.Error(err))
	}
	return user, err
}

func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Warn("Пользователь не найден по username (service)", zap.String("username", username), zap.Error(err))
	}
	return user, err
}

// UpdateProfile меняет username и email. Проверка уникальности
// исключает собственные текущие значения пользователя.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, username, email string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Обновление профиля (service)", zap.Int("user_id", userID), zap.String("username", username))

	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	if exists, err := s.repo.IsUsernameTaken(ctx, username, userID); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки username", zap.Error(err))
		}
		return errors.New("имя пользователя уже занято")
	}
	if exists, err := s.repo.IsEmailTaken(ctx, email, userID); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email", zap.Error(err))
		}
		return errors.New("адрес электронной почты уже зарегистрирован")
	}

	if err := s.repo.UpdateProfile(ctx, userID, &models.UpdateProfileRequest{Username: username, Email: email}); err != nil {
		logger.Log.Error("Ошибка обновления профиля (service)", zap.Error(err), zap.Int("user_id", userID))
		return err
	}
	logger.Log.Info("Профиль обновлён (service)", zap.Int("user_id", userID))
	return nil
}

func (s *AuthService) SetAvatar(ctx context.Context, userID int, imageFile string) error {
	logger.Log.Info("Смена аватара (service)", zap.Int("user_id", userID), zap.String("image_file", imageFile))
	return s.repo.UpdateImage(ctx, userID, imageFile)
}

func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 2 || n > 20 {
		return errors.New("имя пользователя должно быть от 2 до 20 символов")
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("некорректный адрес электронной почты")
	}
	return nil
}

func validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < 6 || n > 70 {
		return errors.New("пароль должен быть от 6 до 70 символов")
	}
	return nil
}
