package routes

import (
	"blogtalks/internal/handlers"
	"blogtalks/internal/middleware"
	"blogtalks/internal/web"
	"net/http"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	sess *web.Session,
	authHandler *handlers.AuthHandler,
	postHandler *handlers.PostHandler,
	feedHandler *handlers.FeedHandler,
	passwordHandler *handlers.PasswordHandler,
	view *handlers.View,
) {
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)
	router.NotFoundHandler = http.HandlerFunc(view.NotFound)

	// --- Публичные маршруты ---
	router.HandleFunc("/", feedHandler.Home).Methods("GET")
	router.HandleFunc("/home", feedHandler.Home).Methods("GET")
	router.HandleFunc("/about", feedHandler.About).Methods("GET")

	router.HandleFunc("/register", authHandler.Register).Methods("GET", "POST")
	router.HandleFunc("/login", authHandler.Login).Methods("GET", "POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	router.HandleFunc("/reset_password", passwordHandler.ResetRequest).Methods("GET", "POST")
	router.HandleFunc("/reset_password/{token}", passwordHandler.ResetToken).Methods("GET", "POST")

	router.HandleFunc("/post/{id:[0-9]+}", postHandler.Show).Methods("GET")
	// Лента автора публична: контент постов и так открыт всем
	router.HandleFunc("/home/{username}", feedHandler.UserPosts).Methods("GET")

	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// --- Только для авторизованных ---
	protected := router.PathPrefix("").Subrouter()
	protected.Use(middleware.SessionAuth(sess))

	protected.HandleFunc("/account", authHandler.Account).Methods("GET", "POST")
	protected.HandleFunc("/post/new", postHandler.New).Methods("GET", "POST")
	protected.HandleFunc("/post/{id:[0-9]+}/update", postHandler.Update).Methods("GET", "POST")
	protected.HandleFunc("/post/{id:[0-9]+}/delete", postHandler.Delete).Methods("GET", "POST")
}
