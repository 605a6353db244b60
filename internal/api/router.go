package api

import (
	"myflix_api/internal/api/handler"
	"myflix_api/internal/api/middleware"
	"myflix_api/internal/app/service"
	"myflix_api/internal/common/security"
	"myflix_api/internal/domain/repository"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

// RequestTimeout bounds handler work. The server's WriteTimeout must exceed
// it so the 504 can still be written.
const RequestTimeout = 8 * time.Second

type RouterConfig struct {
	AllowedOrigins []string
	StaticDir      string
	// AccessLogger receives one line per request; nil disables request logs.
	AccessLogger *zap.Logger
}

func NewRouter(
	cfg RouterConfig,
	tokens *security.TokenManager,
	userRepo repository.UserRepository,
	authService *service.AuthService,
	userService *service.UserService,
	movieService *service.MovieService,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if cfg.AccessLogger != nil {
		r.Use(middleware.WithRequestLogging(cfg.AccessLogger))
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Verifier only records the token outcome in the context; the guard
	// below decides.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))
	guard := middleware.Authenticator(userRepo, logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to MyFlix!"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	handler.NewAuthHandler(authService, logger).RegisterRoutes(r)
	r.Route("/movies", handler.NewMovieHandler(movieService, guard, logger).RegisterRoutes)
	r.Route("/users", handler.NewUserHandler(userService, guard, logger).RegisterRoutes)

	mountStatic(r, cfg.StaticDir)

	return r
}

// mountStatic serves the files in dir from the site root, below the API
// routes, and its documentation.html at /documentation. Nothing is mounted
// when dir does not exist.
func mountStatic(r chi.Router, dir string) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}
	r.Get("/*", http.FileServer(http.Dir(dir)).ServeHTTP)
	r.Get("/documentation", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(dir, "documentation.html"))
	})
}
