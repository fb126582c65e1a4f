package handlers

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/middleware"
	"blogtalks/internal/services"
	"blogtalks/internal/web"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PostHandler struct {
	posts *services.PostService
	view  *View
}

func NewPostHandler(posts *services.PostService, view *View) *PostHandler {
	return &PostHandler{posts: posts, view: view}
}

type postForm struct {
	Legend  string
	Action  string
	Title   string
	Content string
	Errors  []string
}

func (h *PostHandler) New(w http.ResponseWriter, r *http.Request) {
	form := postForm{Legend: "Новый пост", Action: "/post/new"}

	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		form.Title = r.PostFormValue("title")
		form.Content = r.PostFormValue("content")

		userID := middleware.UserID(r.Context())
		if _, err := h.posts.Create(r.Context(), userID, form.Title, form.Content); err != nil {
			logger.WithCtx(r.Context()).Warn("Ошибка создания поста", zap.Error(err))
			form.Errors = append(form.Errors, err.Error())
		} else {
			h.view.Flash(w, r, web.FlashSuccess, "Ваш пост опубликован!")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	}

	h.view.Render(w, r, http.StatusOK, "create_post.html", form.Legend, form)
}

func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.view.NotFound(w, r)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.view.NotFound(w, r)
		return
	}

	h.view.Render(w, r, http.StatusOK, "post.html", post.Title, post)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.view.NotFound(w, r)
		return
	}
	userID := middleware.UserID(r.Context())

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.view.NotFound(w, r)
		return
	}
	if post.AuthorID != userID {
		h.view.Forbidden(w, r)
		return
	}

	form := postForm{
		Legend:  "Редактирование поста",
		Action:  fmt.Sprintf("/post/%d/update", id),
		Title:   post.Title,
		Content: post.Content,
	}

	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		form.Title = r.PostFormValue("title")
		form.Content = r.PostFormValue("content")

		if _, err := h.posts.Update(r.Context(), id, userID, form.Title, form.Content); err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				h.view.NotFound(w, r)
				return
			case errors.Is(err, services.ErrForbidden):
				h.view.Forbidden(w, r)
				return
			default:
				form.Errors = append(form.Errors, err.Error())
			}
		} else {
			h.view.Flash(w, r, web.FlashSuccess, "Ваш пост обновлён!")
			http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusFound)
			return
		}
	}

	h.view.Render(w, r, http.StatusOK, "create_post.html", form.Legend, form)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.view.NotFound(w, r)
		return
	}
	userID := middleware.UserID(r.Context())

	if err := h.posts.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			h.view.NotFound(w, r)
		case errors.Is(err, services.ErrForbidden):
			h.view.Forbidden(w, r)
		default:
			h.view.ServerError(w, r)
		}
		return
	}

	h.view.Flash(w, r, web.FlashSuccess, "Ваш пост удалён!")
	http.Redirect(w, r, "/", http.StatusFound)
}
