package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestResetTokenRoundTrip(t *testing.T) {
	token, err := GenerateResetToken("secret", 7, time.Minute)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	userID, err := ParseResetToken("secret", token)
	if err != nil {
		t.Fatalf("ошибка разбора токена: %v", err)
	}
	if userID != 7 {
		t.Fatalf("ожидался user_id=7, получен %d", userID)
	}
}

func TestParseResetToken_WrongSecret(t *testing.T) {
	token, _ := GenerateResetToken("secret", 7, time.Minute)

	if _, err := ParseResetToken("other", token); err == nil {
		t.Fatal("токен с чужой подписью не должен приниматься")
	}
}

func TestParseResetToken_Expired(t *testing.T) {
	token, _ := GenerateResetToken("secret", 7, -time.Minute)

	_, err := ParseResetToken("secret", token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("ожидалась jwt.ErrTokenExpired, получено: %v", err)
	}
}
