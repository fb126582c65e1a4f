package web

import (
	"blogtalks/internal/logger"
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	sessionName = "blogtalks_session"

	keyUserID = "user_id"

	// Категории flash-сообщений (совпадают с bootstrap-классами alert-*)
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
	FlashWarning = "warning"

	rememberMaxAge = 30 * 24 * 60 * 60 // 30 дней
)

type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Session — cookie-сессия: авторизованный пользователь + одноразовые
// flash-сообщения. Cookie подписана секретным ключом приложения.
type Session struct {
	store *sessions.CookieStore
}

func NewSession(secret string) *Session {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Session{store: store}
}

// SignIn сохраняет id пользователя в сессии. remember растягивает cookie
// на 30 дней, иначе она живёт до закрытия браузера.
func (s *Session) SignIn(w http.ResponseWriter, r *http.Request, userID int, remember bool) {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values[keyUserID] = userID
	if remember {
		sess.Options.MaxAge = rememberMaxAge
	} else {
		sess.Options.MaxAge = 0
	}
	if err := sess.Save(r, w); err != nil {
		logger.Log.Error("Не удалось сохранить сессию", zap.Error(err))
	}
}

func (s *Session) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.store.Get(r, sessionName)
	delete(sess.Values, keyUserID)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		logger.Log.Error("Не удалось очистить сессию", zap.Error(err))
	}
}

// CurrentUserID возвращает id пользователя из сессии, 0 — аноним.
func (s *Session) CurrentUserID(r *http.Request) int {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return 0
	}
	id, _ := sess.Values[keyUserID].(int)
	return id
}

// AddFlash откладывает сообщение до следующей отрисованной страницы.
func (s *Session) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	sess, _ := s.store.Get(r, sessionName)
	sess.AddFlash(Flash{Category: category, Message: message})
	if err := sess.Save(r, w); err != nil {
		logger.Log.Error("Не удалось сохранить flash", zap.Error(err))
	}
}

// Flashes забирает накопленные сообщения (и сразу стирает их из сессии).
func (s *Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	_ = sess.Save(r, w)
	return flashes
}
