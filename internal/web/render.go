package web

import (
	"blogtalks/internal/logger"
	"blogtalks/internal/models"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"home.html",
	"about.html",
	"register.html",
	"login.html",
	"account.html",
	"post.html",
	"create_post.html",
	"user_posts.html",
	"reset_request.html",
	"reset_token.html",
	"error.html",
}

// Page — общая модель для layout: заголовок вкладки, текущий пользователь,
// flash-сообщения и данные конкретной страницы.
type Page struct {
	Title   string
	User    *models.User
	Flashes []Flash
	Data    interface{}
}

type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() *Renderer {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		r.templates[page] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+page))
	}
	return r
}

func (r *Renderer) HTML(w http.ResponseWriter, status int, page string, data *Page) {
	tmpl, ok := r.templates[page]
	if !ok {
		logger.Log.Error("Неизвестный шаблон", zap.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logger.Log.Error("Ошибка отрисовки шаблона", zap.String("page", page), zap.Error(err))
	}
}
