package services

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/models"
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	HomeFeedPageSize = 6
	UserFeedPageSize = 5
)

var (
	ErrNotFound  = errors.New("не найдено")
	ErrForbidden = errors.New("доступ запрещён")
)

type PostRepo interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	Update(ctx context.Context, id int, title, content string) error
	Delete(ctx context.Context, id int) error
	ListPaginated(ctx context.Context, limit, offset int) ([]*models.Post, int, error)
	ListByAuthorPaginated(ctx context.Context, authorID, limit, offset int) ([]*models.Post, int, error)
}

type PostService struct {
	repo  PostRepo
	users UserRepo
}

func NewPostService(repo PostRepo, users UserRepo) *PostService {
	return &PostService{repo: repo, users: users}
}

func (s *PostService) Create(ctx context.Context, authorID int, title, content string) (*models.Post, error) {
	logger.Log.Info("Создание поста (service)", zap.Int("author_id", authorID), zap.String("title", title))
	if err := validatePost(title, content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		logger.Log.Error("Ошибка создания поста (service)", zap.Error(err))
		return nil, err
	}
	logger.Log.Info("Пост создан (service)", zap.Int("post_id", post.ID))
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Warn("Пост не найден (service)", zap.Int("post_id", id), zap.Error(err))
		return nil, ErrNotFound
	}
	return post, nil
}

// Update перезаписывает заголовок и текст. Менять пост может только владелец.
func (s *PostService) Update(ctx context.Context, id, userID int, title, content string) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Warn("Пост не найден при обновлении (service)", zap.Int("post_id", id), zap.Error(err))
		return nil, ErrNotFound
	}
	if post.AuthorID != userID {
		logger.Log.Warn("Попытка изменить чужой пост (service)", zap.Int("post_id", id), zap.Int("user_id", userID), zap.Int("author_id", post.AuthorID))
		return nil, ErrForbidden
	}
	if err := validatePost(title, content); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, title, content); err != nil {
		logger.Log.Error("Ошибка обновления поста (service)", zap.Error(err), zap.Int("post_id", id))
		return nil, err
	}
	post.Title = title
	post.Content = content
	logger.Log.Info("Пост обновлён (service)", zap.Int("post_id", id))
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id, userID int) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Warn("Пост не найден при удалении (service)", zap.Int("post_id", id), zap.Error(err))
		return ErrNotFound
	}
	if post.AuthorID != userID {
		logger.Log.Warn("Попытка удалить чужой пост (service)", zap.Int("post_id", id), zap.Int("user_id", userID))
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Log.Error("Ошибка удаления поста (service)", zap.Error(err), zap.Int("post_id", id))
		return err
	}
	logger.Log.Info("Пост удалён (service)", zap.Int("post_id", id))
	return nil
}

// HomeFeed — общая лента, новые сверху, по 6 постов на страницу.
func (s *PostService) HomeFeed(ctx context.Context, page int) (*models.Feed, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * HomeFeedPageSize
	posts, total, err := s.repo.ListPaginated(ctx, HomeFeedPageSize, offset)
	if err != nil {
		logger.Log.Error("Ошибка получения ленты (service)", zap.Error(err))
		return nil, err
	}
	return buildFeed(posts, total, page, HomeFeedPageSize)
}

// UserFeed — посты одного автора, по 5 на страницу.
func (s *PostService) UserFeed(ctx context.Context, username string, page int) (*models.User, *models.Feed, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Warn("Автор ленты не найден (service)", zap.String("username", username), zap.Error(err))
		return nil, nil, ErrNotFound
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * UserFeedPageSize
	posts, total, err := s.repo.ListByAuthorPaginated(ctx, user.ID, UserFeedPageSize, offset)
	if err != nil {
		logger.Log.Error("Ошибка получения постов автора (service)", zap.Error(err), zap.String("username", username))
		return nil, nil, err
	}
	feed, err := buildFeed(posts, total, page, UserFeedPageSize)
	if err != nil {
		logger.Log.Warn("Страница ленты за пределами диапазона (service)", zap.String("username", username), zap.Int("page", page))
		return nil, nil, err
	}
	return user, feed, nil
}

func buildFeed(posts []*models.Post, total, page, pageSize int) (*models.Feed, error) {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	// Запрос страницы за последней — это несуществующая страница
	if page > pages {
		return nil, ErrNotFound
	}
	return &models.Feed{
		Posts: posts,
		Page:  page,
		Pages: pages,
		Total: total,
	}, nil
}

func validatePost(title, content string) error {
	if n := utf8.RuneCountInString(title); n < 5 || n > 50 {
		return errors.New("заголовок должен быть от 5 до 50 символов")
	}
	if n := utf8.RuneCountInString(content); n < 1 || n > 2000 {
		return errors.New("текст поста должен быть от 1 до 2000 символов")
	}
	return nil
}
