package handlers

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/middleware"
	"blogtalks/internal/services"
	"blogtalks/internal/web"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth  *services.AuthService
	media *services.MediaService
	sess  *web.Session
	view  *View
}

func NewAuthHandler(auth *services.AuthService, media *services.MediaService, sess *web.Session, view *View) *AuthHandler {
	return &AuthHandler{auth: auth, media: media, sess: sess, view: view}
}

type registerForm struct {
	Username string
	Email    string
	Errors   []string
}

// Register — GET показывает форму, POST создаёт аккаунт.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.sess.CurrentUserID(r) != 0 {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	form := registerForm{}
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		form.Username = strings.TrimSpace(r.PostFormValue("username"))
		form.Email = strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		confirm := r.PostFormValue("confirm_password")

		if password != confirm {
			form.Errors = append(form.Errors, "пароли не совпадают")
		} else if _, err := h.auth.RegisterUser(r.Context(), form.Username, form.Email, password); err != nil {
			logger.WithCtx(r.Context()).Warn("Ошибка регистрации", zap.Error(err))
			form.Errors = append(form.Errors, err.Error())
		}

		if len(form.Errors) == 0 {
			h.view.Flash(w, r, web.FlashSuccess, fmt.Sprintf("Аккаунт создан для %s! Теперь вы можете войти", form.Username))
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
	}

	h.view.Render(w, r, http.StatusOK, "register.html", "Регистрация", form)
}

type loginForm struct {
	Email string
	Next  string
}

// Login — вход по email и паролю, с опциональным "запомнить меня".
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.sess.CurrentUserID(r) != 0 {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	next := r.URL.Query().Get("next")
	form := loginForm{Next: next}

	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		form.Email = strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		remember := r.PostFormValue("remember") != ""

		user, err := h.auth.Authenticate(r.Context(), form.Email, password)
		if err != nil {
			h.view.Flash(w, r, web.FlashDanger, "Не удалось войти. Проверьте email и пароль")
			h.view.Render(w, r, http.StatusOK, "login.html", "Вход", form)
			return
		}

		h.sess.SignIn(w, r, user.ID, remember)

		// Снаружи принимаем только локальные пути
		if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
			next = "/"
		}
		http.Redirect(w, r, next, http.StatusFound)
		return
	}

	h.view.Render(w, r, http.StatusOK, "login.html", "Вход", form)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sess.SignOut(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

type accountForm struct {
	Username string
	Email    string
	Errors   []string
}

// Account — просмотр и обновление профиля (включая загрузку аватара).
func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		h.view.ServerError(w, r)
		return
	}

	form := accountForm{Username: user.Username, Email: user.Email}

	if r.Method == http.MethodPost {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			logger.WithCtx(r.Context()).Warn("Невалидная multipart-форма", zap.Error(err))
			h.view.Flash(w, r, web.FlashDanger, "Невалидная форма")
			http.Redirect(w, r, "/account", http.StatusFound)
			return
		}
		form.Username = strings.TrimSpace(r.PostFormValue("username"))
		form.Email = strings.TrimSpace(r.PostFormValue("email"))

		// Аватар сохраняем только после успешной валидации профиля:
		// отклонённая форма не должна менять аккаунт
		if err := h.auth.UpdateProfile(r.Context(), userID, form.Username, form.Email); err != nil {
			form.Errors = append(form.Errors, err.Error())
		} else if file, header, err := r.FormFile("picture"); err == nil {
			defer file.Close()
			imageFile, err := h.media.SavePicture(file, header.Filename)
			if err != nil {
				form.Errors = append(form.Errors, err.Error())
			} else if err := h.auth.SetAvatar(r.Context(), userID, imageFile); err != nil {
				form.Errors = append(form.Errors, "не удалось сохранить аватар")
			}
		} else if !errors.Is(err, http.ErrMissingFile) {
			form.Errors = append(form.Errors, "не удалось прочитать файл аватара")
		}

		if len(form.Errors) == 0 {
			h.view.Flash(w, r, web.FlashSuccess, "Ваш аккаунт обновлён!")
			http.Redirect(w, r, "/account", http.StatusFound)
			return
		}
	}

	h.view.Render(w, r, http.StatusOK, "account.html", "Аккаунт", form)
}
