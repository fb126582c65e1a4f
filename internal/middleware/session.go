package middleware

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/web"
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SessionAuth пускает дальше только авторизованных. Анонима отправляет на
// форму входа, запоминая исходный адрес в next=.
func SessionAuth(sess *web.Session) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sess.CurrentUserID(r)
			if userID == 0 {
				logger.WithCtx(r.Context()).Warn("SessionAuth: нет активной сессии",
					zap.String("path", r.URL.Path))
				sess.AddFlash(w, r, web.FlashInfo, "Войдите, чтобы открыть эту страницу")
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID достаёт id авторизованного пользователя, положенный SessionAuth.
func UserID(ctx context.Context) int {
	id, _ := ctx.Value(ContextUserID).(int)
	return id
}
