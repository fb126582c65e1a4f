package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateResetToken создаёт подписанный токен сброса пароля.
// Токен самодостаточен: id пользователя и срок действия живут в claims,
// в базе ничего не хранится.
func GenerateResetToken(secret string, userID int, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(), // issued at — доп. уникальность
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseResetToken проверяет подпись и срок действия, возвращает id пользователя.
// Истёкший токен отдаёт jwt.ErrTokenExpired (через errors.Is).
func ParseResetToken(secret, tokenString string) (int, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("невалидный токен")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("неверный payload токена")
	}
	return int(userID), nil
}
