package repository

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/models"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PostRepository struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `p.id, p.title, p.content, p.author_id, p.created_at, u.username, u.image_file`

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	logger.Log.Debug("Создание поста (repo)", zap.Int("author_id", post.AuthorID), zap.String("title", post.Title))
	query := `
	INSERT INTO posts (title, content, author_id)
	VALUES ($1, $2, $3)
	RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	logger.Log.Debug("Получение поста по ID (repo)", zap.Int("post_id", id))
	query := `
	SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.id = $1`

	var post models.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.CreatedAt,
		&post.AuthorName,
		&post.AuthorImage,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, id int, title, content string) error {
	logger.Log.Debug("Обновление поста (repo)", zap.Int("post_id", id))
	query := `UPDATE posts SET title = $1, content = $2 WHERE id = $3`
	_, err := r.db.Exec(ctx, query, title, content, id)
	if err != nil {
		logger.Log.Error("Ошибка обновления поста (repo)", zap.Error(err))
	}
	return err
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	logger.Log.Debug("Удаление поста (repo)", zap.Int("post_id", id))
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления поста (repo)", zap.Error(err))
	}
	return err
}

// ListPaginated — все посты, новые сверху. Возвращает страницу и общее число постов.
func (r *PostRepository) ListPaginated(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	logger.Log.Debug("Получение ленты постов (repo)", zap.Int("limit", limit), zap.Int("offset", offset))
	query := `
	SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	ORDER BY p.created_at DESC
	LIMIT $1 OFFSET $2`

	posts, err := r.list(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthorPaginated — посты одного автора, новые сверху.
func (r *PostRepository) ListByAuthorPaginated(ctx context.Context, authorID, limit, offset int) ([]*models.Post, int, error) {
	logger.Log.Debug("Получение постов автора (repo)", zap.Int("author_id", authorID), zap.Int("limit", limit), zap.Int("offset", offset))
	query := `
	SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.author_id = $1
	ORDER BY p.created_at DESC
	LIMIT $2 OFFSET $3`

	posts, err := r.list(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка выборки постов (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Content,
			&p.AuthorID,
			&p.CreatedAt,
			&p.AuthorName,
			&p.AuthorImage,
		); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}
