package services

import (
	"blogtalks/internal/models"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

type mockPostRepo struct {
	posts  map[int]*models.Post
	nextID int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[int]*models.Post), nextID: 1}
}

func (m *mockPostRepo) Create(_ context.Context, post *models.Post) error {
	post.ID = m.nextID
	m.nextID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id int) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (m *mockPostRepo) Update(_ context.Context, id int, title, content string) error {
	p, ok := m.posts[id]
	if !ok {
		return errors.New("not found")
	}
	p.Title = title
	p.Content = content
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id int) error {
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) sorted(filter func(*models.Post) bool) []*models.Post {
	var all []*models.Post
	for _, p := range m.posts {
		if filter == nil || filter(p) {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all
}

func paginate(all []*models.Post, limit, offset int) []*models.Post {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (m *mockPostRepo) ListPaginated(_ context.Context, limit, offset int) ([]*models.Post, int, error) {
	all := m.sorted(nil)
	return paginate(all, limit, offset), len(all), nil
}

func (m *mockPostRepo) ListByAuthorPaginated(_ context.Context, authorID, limit, offset int) ([]*models.Post, int, error) {
	all := m.sorted(func(p *models.Post) bool { return p.AuthorID == authorID })
	return paginate(all, limit, offset), len(all), nil
}

func newPostFixture(t *testing.T) (*PostService, *mockPostRepo, *mockUserRepo) {
	t.Helper()
	postRepo := newMockPostRepo()
	userRepo := newMockUserRepo()
	return NewPostService(postRepo, userRepo), postRepo, userRepo
}

func TestCreatePost(t *testing.T) {
	service, _, _ := newPostFixture(t)

	post, err := service.Create(context.Background(), 1, "Hello World!!", "body")
	if err != nil {
		t.Fatalf("ошибка создания поста: %v", err)
	}
	if post.ID == 0 || post.AuthorID != 1 {
		t.Fatalf("пост сохранён неверно: %+v", post)
	}
}

func TestCreatePost_Validation(t *testing.T) {
	service, _, _ := newPostFixture(t)

	cases := []struct {
		name    string
		title   string
		content string
	}{
		{"короткий заголовок", "Аб", "текст"},
		{"длинный заголовок", strings.Repeat("а", 51), "текст"},
		{"пустой текст", "Нормальный заголовок", ""},
		{"длинный текст", "Нормальный заголовок", strings.Repeat("а", 2001)},
	}

	for _, tc := range cases {
		if _, err := service.Create(context.Background(), 1, tc.title, tc.content); err == nil {
			t.Fatalf("%s: ожидалась ошибка валидации", tc.name)
		}
	}
}

func TestUpdatePost_Forbidden(t *testing.T) {
	service, _, _ := newPostFixture(t)

	post, err := service.Create(context.Background(), 1, "Пост Алисы", "текст")
	if err != nil {
		t.Fatalf("ошибка создания поста: %v", err)
	}

	// Боб (id=2) пытается изменить пост Алисы
	if _, err := service.Update(context.Background(), post.ID, 2, "Взломано", "текст"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ожидалась ErrForbidden, получено: %v", err)
	}

	if err := service.Delete(context.Background(), post.ID, 2); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ожидалась ErrForbidden при удалении, получено: %v", err)
	}
}

func TestUpdatePost_Owner(t *testing.T) {
	service, _, _ := newPostFixture(t)

	post, err := service.Create(context.Background(), 1, "Старый заголовок", "текст")
	if err != nil {
		t.Fatalf("ошибка создания поста: %v", err)
	}

	updated, err := service.Update(context.Background(), post.ID, 1, "Новый заголовок", "новый текст")
	if err != nil {
		t.Fatalf("владелец не смог обновить пост: %v", err)
	}
	if updated.Title != "Новый заголовок" {
		t.Fatalf("заголовок не обновился: %q", updated.Title)
	}
}

func TestPost_NotFound(t *testing.T) {
	service, _, _ := newPostFixture(t)

	if _, err := service.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound, получено: %v", err)
	}
	if err := service.Delete(context.Background(), 42, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound при удалении, получено: %v", err)
	}
}

func TestHomeFeed_PageSizeAndOrder(t *testing.T) {
	service, postRepo, _ := newPostFixture(t)

	base := time.Now().UTC()
	for i := 0; i < 8; i++ {
		_ = postRepo.Create(context.Background(), &models.Post{
			Title:     "Пост",
			Content:   "текст",
			AuthorID:  1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	feed, err := service.HomeFeed(context.Background(), 1)
	if err != nil {
		t.Fatalf("ошибка получения ленты: %v", err)
	}
	if len(feed.Posts) != HomeFeedPageSize {
		t.Fatalf("ожидалось %d постов на странице, получено %d", HomeFeedPageSize, len(feed.Posts))
	}
	for i := 1; i < len(feed.Posts); i++ {
		if feed.Posts[i].CreatedAt.After(feed.Posts[i-1].CreatedAt) {
			t.Fatal("лента не отсортирована по убыванию даты")
		}
	}
	if feed.Pages != 2 || feed.Total != 8 {
		t.Fatalf("неверная пагинация: pages=%d total=%d", feed.Pages, feed.Total)
	}

	second, err := service.HomeFeed(context.Background(), 2)
	if err != nil {
		t.Fatalf("ошибка получения второй страницы: %v", err)
	}
	if len(second.Posts) != 2 {
		t.Fatalf("на второй странице ожидалось 2 поста, получено %d", len(second.Posts))
	}
}

func TestHomeFeed_PageOutOfRange(t *testing.T) {
	service, postRepo, _ := newPostFixture(t)

	for i := 0; i < 8; i++ {
		_ = postRepo.Create(context.Background(), &models.Post{Title: "Пост", Content: "текст", AuthorID: 1})
	}

	// 8 постов — 2 страницы; 99-й не существует
	if _, err := service.HomeFeed(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound для страницы за пределами диапазона, получено: %v", err)
	}

	// Первая страница пустой ленты — не ошибка
	emptyService, _, _ := newPostFixture(t)
	feed, err := emptyService.HomeFeed(context.Background(), 1)
	if err != nil {
		t.Fatalf("первая страница пустой ленты должна открываться: %v", err)
	}
	if len(feed.Posts) != 0 || feed.Pages != 1 {
		t.Fatalf("неверная пустая лента: %+v", feed)
	}
	if _, err := emptyService.HomeFeed(context.Background(), 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound для второй страницы пустой ленты, получено: %v", err)
	}
}

func TestUserFeed(t *testing.T) {
	service, postRepo, userRepo := newPostFixture(t)

	userRepo.users[1] = &models.User{ID: 1, Username: "alice", Email: "alice@x.com"}
	for i := 0; i < 7; i++ {
		_ = postRepo.Create(context.Background(), &models.Post{Title: "Пост", Content: "текст", AuthorID: 1})
	}
	_ = postRepo.Create(context.Background(), &models.Post{Title: "Чужой", Content: "текст", AuthorID: 2})

	author, feed, err := service.UserFeed(context.Background(), "alice", 1)
	if err != nil {
		t.Fatalf("ошибка получения ленты автора: %v", err)
	}
	if author.ID != 1 {
		t.Fatalf("вернулся не тот автор: %+v", author)
	}
	if len(feed.Posts) != UserFeedPageSize || feed.Total != 7 {
		t.Fatalf("неверная пагинация ленты автора: len=%d total=%d", len(feed.Posts), feed.Total)
	}

	if _, _, err := service.UserFeed(context.Background(), "ghost", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound для неизвестного автора, получено: %v", err)
	}

	if _, _, err := service.UserFeed(context.Background(), "alice", 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound для страницы за пределами ленты автора, получено: %v", err)
	}
}
