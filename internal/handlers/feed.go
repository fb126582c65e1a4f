package handlers

import (
	"blogtalks/internal/models"
	"blogtalks/internal/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type FeedHandler struct {
	posts *services.PostService
	view  *View
}

func NewFeedHandler(posts *services.PostService, view *View) *FeedHandler {
	return &FeedHandler{posts: posts, view: view}
}

func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	feed, err := h.posts.HomeFeed(r.Context(), pageParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.view.NotFound(w, r)
			return
		}
		h.view.ServerError(w, r)
		return
	}
	h.view.Render(w, r, http.StatusOK, "home.html", "", feed)
}

func (h *FeedHandler) About(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "about.html", "О сайте", nil)
}

type userFeedPage struct {
	Author *models.User
	Feed   *models.Feed
}

func (h *FeedHandler) UserPosts(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	author, feed, err := h.posts.UserFeed(r.Context(), username, pageParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.view.NotFound(w, r)
			return
		}
		h.view.ServerError(w, r)
		return
	}

	h.view.Render(w, r, http.StatusOK, "user_posts.html", author.Username,
		userFeedPage{Author: author, Feed: feed})
}
