package handlers

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/models"
	"blogtalks/internal/services"
	"blogtalks/internal/web"
	"net/http"

	"go.uber.org/zap"
)

// View собирает общие детали каждой страницы: текущего пользователя из
// сессии и накопленные flash-сообщения.
type View struct {
	render *web.Renderer
	sess   *web.Session
	users  *services.AuthService
}

func NewView(render *web.Renderer, sess *web.Session, users *services.AuthService) *View {
	return &View{render: render, sess: sess, users: users}
}

func (v *View) CurrentUserID(r *http.Request) int {
	return v.sess.CurrentUserID(r)
}

// CurrentUser возвращает авторизованного пользователя или nil.
func (v *View) CurrentUser(r *http.Request) *models.User {
	id := v.sess.CurrentUserID(r)
	if id == 0 {
		return nil
	}
	user, err := v.users.GetUserByID(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Пользователь из сессии не найден", zap.Int("user_id", id), zap.Error(err))
		return nil
	}
	return user
}

func (v *View) Flash(w http.ResponseWriter, r *http.Request, category, message string) {
	v.sess.AddFlash(w, r, category, message)
}

func (v *View) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, data interface{}) {
	v.render.HTML(w, status, page, &web.Page{
		Title:   title,
		User:    v.CurrentUser(r),
		Flashes: v.sess.Flashes(w, r),
		Data:    data,
	})
}

type errorPage struct {
	Code    int
	Message string
}

func (v *View) NotFound(w http.ResponseWriter, r *http.Request) {
	v.Render(w, r, http.StatusNotFound, "error.html", "Не найдено",
		errorPage{Code: http.StatusNotFound, Message: "Такой страницы не существует"})
}

func (v *View) Forbidden(w http.ResponseWriter, r *http.Request) {
	v.Render(w, r, http.StatusForbidden, "error.html", "Доступ запрещён",
		errorPage{Code: http.StatusForbidden, Message: "У вас нет доступа к этой странице"})
}

func (v *View) ServerError(w http.ResponseWriter, r *http.Request) {
	v.Render(w, r, http.StatusInternalServerError, "error.html", "Ошибка",
		errorPage{Code: http.StatusInternalServerError, Message: "Что-то пошло не так, попробуйте позже"})
}
