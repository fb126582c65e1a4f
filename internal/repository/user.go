package repository

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/models"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("username", user.Username), zap.String("email", user.Email))
	query := `
	INSERT INTO users (username, email, password_hash, image_file)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ImageFile,
	).Scan(&user.ID, &user.CreatedAt)
}

// IsUsernameTaken проверяет занятость username. excludeID > 0 исключает
// собственную запись пользователя (обновление профиля).
func (r *UserRepository) IsUsernameTaken(ctx context.Context, username string, excludeID int) (bool, error) {
	logger.Log.Debug("Проверка username на уникальность (repo)", zap.String("username", username))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, username, excludeID).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки username (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по username (repo)", zap.String("username", username))
	query := `SELECT id, username, email, password_hash, image_file, created_at
	FROM users
	WHERE username = $1`
	return r.scanUser(ctx, query, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по email (repo)", zap.String("email", email))
	query := `SELECT id, username, email, password_hash, image_file, created_at
	FROM users
	WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (repo)", zap.Int("user_id", id))
	query := `SELECT id, username, email, password_hash, image_file, created_at
	FROM users
	WHERE id = $1`
	return r.scanUser(ctx, query, id)
}

func (r *UserRepository) scanUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.ImageFile,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int, input *models.UpdateProfileRequest) error {
	logger.Log.Debug("Обновление профиля (repo)", zap.Int("user_id", id))
	query := `UPDATE users SET username = $1, email = $2 WHERE id = $3`
	_, err := r.db.Exec(ctx, query, input.Username, input.Email, id)
	if err != nil {
		logger.Log.Error("Ошибка обновления профиля (repo)", zap.Error(err))
	}
	return err
}

func (r *UserRepository) UpdateImage(ctx context.Context, id int, imageFile string) error {
	logger.Log.Debug("Обновление аватара (repo)", zap.Int("user_id", id), zap.String("image_file", imageFile))
	query := `UPDATE users SET image_file = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, imageFile, id)
	if err != nil {
		logger.Log.Error("Ошибка обновления аватара (repo)", zap.Error(err))
	}
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	logger.Log.Debug("Обновление пароля (repo)", zap.Int("user_id", id))
	query := `UPDATE users SET password_hash = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, passwordHash, id)
	if err != nil {
		logger.Log.Error("Ошибка обновления пароля (repo)", zap.Error(err))
	}
	return err
}
