package models

import "time"

type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	// Денормализованные поля автора для отображения в лентах
	AuthorName  string `json:"author_name"`
	AuthorImage string `json:"author_image"`
}

// Feed — одна страница ленты постов.
type Feed struct {
	Posts []*Post
	Page  int
	Pages int
	Total int
}

func (f *Feed) HasPrev() bool { return f.Page > 1 }
func (f *Feed) HasNext() bool { return f.Page < f.Pages }
func (f *Feed) PrevPage() int { return f.Page - 1 }
func (f *Feed) NextPage() int { return f.Page + 1 }
