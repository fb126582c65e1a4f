package services

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrEmailUnknown = errors.New("нет пользователя с таким email, сначала зарегистрируйтесь")
	ErrTokenInvalid = errors.New("неверный токен")
	ErrTokenExpired = errors.New("токен истёк")
)

type EmailSender interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

type PasswordService struct {
	users    UserRepo
	mail     EmailSender
	siteURL  string
	secret   string
	tokenTTL time.Duration
}

func NewPasswordService(users UserRepo, mail EmailSender, siteURL, secret string, tokenTTL time.Duration) *PasswordService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &PasswordService{
		users:    users,
		mail:     mail,
		siteURL:  strings.TrimRight(siteURL, "/"),
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// RequestReset выпускает подписанный токен и ставит письмо на отправку.
// Неизвестный email — ошибка формы (как и на регистрации, адресная).
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Запрос на сброс пароля", zap.String("email", email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("Не удалось найти пользователя по email при запросе сброса",
			zap.String("email", email),
			zap.Error(err),
		)
		return ErrEmailUnknown
	}

	token, err := utils.GenerateResetToken(s.secret, user.ID, s.tokenTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена сброса", zap.Error(err), zap.Int("user_id", user.ID))
		return err
	}

	resetLink := fmt.Sprintf("%s/reset_password/%s", s.siteURL, token)
	if err := s.mail.SendPasswordReset(ctx, user.Email, resetLink); err != nil {
		// Письмо не критично для ответа — логируем и не фейлим запрос
		logger.Log.Error("Ошибка отправки письма для сброса пароля",
			zap.Int("user_id", user.ID),
			zap.String("email", email),
			zap.Error(err),
		)
	}

	logger.Log.Info("Письмо со ссылкой на сброс пароля поставлено на отправку",
		zap.Int("user_id", user.ID),
		zap.Duration("ttl", s.tokenTTL),
	)
	return nil
}

// VerifyToken проверяет подпись и срок действия, возвращает id пользователя.
func (s *PasswordService) VerifyToken(token string) (int, error) {
	userID, err := utils.ParseResetToken(s.secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Log.Warn("Просроченный токен сброса пароля")
			return 0, ErrTokenExpired
		}
		logger.Log.Warn("Невалидный токен сброса пароля", zap.Error(err))
		return 0, ErrTokenInvalid
	}
	return userID, nil
}

// ResetPassword подтверждает токен и устанавливает новый пароль.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) error {
	logger.Log.Info("Попытка сброса пароля по токену")

	userID, err := s.VerifyToken(token)
	if err != nil {
		return err
	}

	if err := validatePassword(newPassword); err != nil {
		logger.Log.Warn("Невалидный новый пароль", zap.Int("user_id", userID))
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка генерации хеша пароля", zap.Error(err), zap.Int("user_id", userID))
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		logger.Log.Error("Ошибка обновления пароля пользователя",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Пароль успешно сброшен", zap.Int("user_id", userID))
	return nil
}
