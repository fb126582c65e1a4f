package handlers

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/services"
	"blogtalks/internal/web"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PasswordHandler struct {
	pass *services.PasswordService
	sess *web.Session
	view *View
}

func NewPasswordHandler(pass *services.PasswordService, sess *web.Session, view *View) *PasswordHandler {
	return &PasswordHandler{pass: pass, sess: sess, view: view}
}

type resetRequestForm struct {
	Email  string
	Errors []string
}

// ResetRequest — запрос письма со ссылкой сброса.
func (h *PasswordHandler) ResetRequest(w http.ResponseWriter, r *http.Request) {
	if h.sess.CurrentUserID(r) != 0 {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	form := resetRequestForm{}
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		form.Email = strings.TrimSpace(r.PostFormValue("email"))

		err := h.pass.RequestReset(r.Context(), form.Email)
		switch {
		case err == nil:
			h.view.Flash(w, r, web.FlashInfo, "Письмо с инструкциями по сбросу пароля отправлено на вашу почту")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		case errors.Is(err, services.ErrEmailUnknown):
			form.Errors = append(form.Errors, err.Error())
		default:
			logger.WithCtx(r.Context()).Error("Сбой при запросе восстановления пароля", zap.Error(err))
			form.Errors = append(form.Errors, "не удалось отправить письмо, попробуйте позже")
		}
	}

	h.view.Render(w, r, http.StatusOK, "reset_request.html", "Сброс пароля", form)
}

type resetTokenForm struct {
	Token  string
	Errors []string
}

// ResetToken — установка нового пароля по ссылке из письма.
func (h *PasswordHandler) ResetToken(w http.ResponseWriter, r *http.Request) {
	if h.sess.CurrentUserID(r) != 0 {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	token := mux.Vars(r)["token"]
	if _, err := h.pass.VerifyToken(token); err != nil {
		h.view.Flash(w, r, web.FlashWarning, "Токен недействителен или истёк")
		http.Redirect(w, r, "/reset_password", http.StatusFound)
		return
	}

	form := resetTokenForm{Token: token}
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		password := r.PostFormValue("password")
		confirm := r.PostFormValue("confirm_password")

		if password != confirm {
			form.Errors = append(form.Errors, "пароли не совпадают")
		} else if err := h.pass.ResetPassword(r.Context(), token, password); err != nil {
			if errors.Is(err, services.ErrTokenInvalid) || errors.Is(err, services.ErrTokenExpired) {
				h.view.Flash(w, r, web.FlashWarning, "Токен недействителен или истёк")
				http.Redirect(w, r, "/reset_password", http.StatusFound)
				return
			}
			form.Errors = append(form.Errors, err.Error())
		}

		if len(form.Errors) == 0 {
			h.view.Flash(w, r, web.FlashSuccess, "Ваш пароль обновлён! Теперь вы можете войти")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
	}

	h.view.Render(w, r, http.StatusOK, "reset_token.html", "Новый пароль", form)
}
