package services

import (
	"blogtalks/internal/models"
	"blogtalks/internal/utils"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type mockEmailSender struct {
	to   string
	link string
}

func (m *mockEmailSender) SendPasswordReset(_ context.Context, to, resetLink string) error {
	m.to = to
	m.link = resetLink
	return nil
}

const testSecret = "test-secret"

func newPasswordFixture(ttl time.Duration) (*PasswordService, *mockUserRepo, *mockEmailSender) {
	repo := newMockUserRepo()
	sender := &mockEmailSender{}
	svc := NewPasswordService(repo, sender, "http://localhost:8080", testSecret, ttl)
	return svc, repo, sender
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	svc, _, _ := newPasswordFixture(30 * time.Minute)

	if err := svc.RequestReset(context.Background(), "ghost@x.com"); !errors.Is(err, ErrEmailUnknown) {
		t.Fatalf("ожидалась ErrEmailUnknown, получено: %v", err)
	}
}

func TestRequestReset_SendsLink(t *testing.T) {
	svc, repo, sender := newPasswordFixture(30 * time.Minute)
	repo.users[1] = &models.User{ID: 1, Username: "alice", Email: "alice@x.com"}

	if err := svc.RequestReset(context.Background(), "alice@x.com"); err != nil {
		t.Fatalf("ошибка запроса сброса: %v", err)
	}
	if sender.to != "alice@x.com" {
		t.Fatalf("письмо ушло не туда: %q", sender.to)
	}

	const prefix = "http://localhost:8080/reset_password/"
	if !strings.HasPrefix(sender.link, prefix) {
		t.Fatalf("неверная ссылка сброса: %q", sender.link)
	}

	token := strings.TrimPrefix(sender.link, prefix)
	userID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("токен из письма не прошёл проверку: %v", err)
	}
	if userID != 1 {
		t.Fatalf("в токене не тот пользователь: %d", userID)
	}
}

func TestResetPassword(t *testing.T) {
	svc, repo, _ := newPasswordFixture(30 * time.Minute)
	oldHash, _ := utils.HashPassword("old-secret")
	repo.users[1] = &models.User{ID: 1, Username: "alice", Email: "alice@x.com", PasswordHash: oldHash}

	token, err := utils.GenerateResetToken(testSecret, 1, 30*time.Minute)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), token, "new-secret"); err != nil {
		t.Fatalf("ошибка сброса пароля: %v", err)
	}
	if !utils.CheckPasswordHash("new-secret", repo.users[1].PasswordHash) {
		t.Fatal("новый пароль не сохранён")
	}
}

func TestResetPassword_TamperedToken(t *testing.T) {
	svc, repo, _ := newPasswordFixture(30 * time.Minute)
	repo.users[1] = &models.User{ID: 1, Email: "alice@x.com"}

	token, _ := utils.GenerateResetToken(testSecret, 1, 30*time.Minute)
	tampered := token + "x"

	if err := svc.ResetPassword(context.Background(), tampered, "new-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ожидалась ErrTokenInvalid, получено: %v", err)
	}

	// Токен с чужой подписью тоже не принимается
	foreign, _ := utils.GenerateResetToken("other-secret", 1, 30*time.Minute)
	if err := svc.ResetPassword(context.Background(), foreign, "new-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("ожидалась ErrTokenInvalid для чужой подписи, получено: %v", err)
	}
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, repo, _ := newPasswordFixture(30 * time.Minute)
	repo.users[1] = &models.User{ID: 1, Email: "alice@x.com"}

	token, _ := utils.GenerateResetToken(testSecret, 1, -time.Minute)

	if err := svc.ResetPassword(context.Background(), token, "new-secret"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("ожидалась ErrTokenExpired, получено: %v", err)
	}
}

func TestResetPassword_ShortPassword(t *testing.T) {
	svc, repo, _ := newPasswordFixture(30 * time.Minute)
	repo.users[1] = &models.User{ID: 1, Email: "alice@x.com"}

	token, _ := utils.GenerateResetToken(testSecret, 1, 30*time.Minute)

	if err := svc.ResetPassword(context.Background(), token, "12345"); err == nil {
		t.Fatal("ожидалась ошибка о коротком пароле")
	}
}
