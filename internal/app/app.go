package app

import (
	"blogtalks/internal/config"
	"blogtalks/internal/db"
	"blogtalks/internal/handlers"
	"blogtalks/internal/repository"
	"blogtalks/internal/routes"
	"blogtalks/internal/services"
	"blogtalks/internal/web"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	postRepo := repository.NewPostRepository(conn)

	// Сервисы
	emailService := services.NewEmailService(cfg)
	authService := services.NewAuthService(userRepo)
	postService := services.NewPostService(postRepo, userRepo)
	mediaService, err := services.NewMediaService(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	ttlMin, _ := strconv.Atoi(cfg.PasswordResetTTLMin)
	passwordService := services.NewPasswordService(
		userRepo,
		emailService,
		cfg.SiteURL,
		cfg.SecretKey,
		time.Duration(ttlMin)*time.Minute,
	)

	// Сессии и шаблоны
	sess := web.NewSession(cfg.SecretKey)
	view := handlers.NewView(web.NewRenderer(), sess, authService)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, mediaService, sess, view)
	postHandler := handlers.NewPostHandler(postService, view)
	feedHandler := handlers.NewFeedHandler(postService, view)
	passwordHandler := handlers.NewPasswordHandler(passwordService, sess, view)

	// Запуск воркеров email
	for i := 0; i < 3; i++ {
		services.StartEmailWorker(emailService)
	}

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, sess, authHandler, postHandler, feedHandler, passwordHandler, view)

	return router, nil
}
