package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/risinghub/hub/internal/core/ports"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/risinghub/hub/docs"
)

type Handlers struct {
	Auth *AuthHandler
	User *UserHandler
	News *NewsHandler
	Vote *VoteHandler
}

type RouterConfig struct {
	AuthService ports.AuthService
	CORSOrigins []string
	Logger      *slog.Logger
}

func NewHandler(h Handlers, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/oauth", func(r chi.Router) {
		r.Post("/callback", h.Auth.GoogleCallback)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Get("/news", h.News.ListNews)
		r.Get("/news/{id}", h.News.GetNews)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.AuthService))

			r.Get("/me", h.User.GetMe)
			r.Post("/news", h.News.CreateNews)
			r.Post("/news/{id}/vote", h.Vote.Vote)
			r.Get("/news/{id}/my-vote", h.Vote.MyVote)
		})
	})

	return r
}
