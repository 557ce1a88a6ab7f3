// Package server assembles the feature routers into the public HTTP surface.
package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reelist/reelist/internal/auth"
	"github.com/reelist/reelist/internal/config"
	"github.com/reelist/reelist/internal/httputil"
	"github.com/reelist/reelist/internal/movies"
	"github.com/reelist/reelist/internal/omdb"
	"github.com/reelist/reelist/internal/reviews"
	"github.com/reelist/reelist/internal/users"
	"github.com/reelist/reelist/internal/watchlist"
)

// Sessions exposes the session store so the caller can hand it to the
// background purge job.
type Server struct {
	Router   chi.Router
	Sessions auth.SessionStore
}

func New(cfg *config.Config, database *sql.DB) *Server {
	userRepo := users.NewRepository(database)
	sessionRepo := auth.NewSessionRepository(database)
	movieRepo := movies.NewRepository(database)
	watchlistRepo := watchlist.NewRepository(database)
	reviewRepo := reviews.NewRepository(database)

	catalog := omdb.NewClient(cfg.OMDbAPIKey)
	resolver := movies.NewResolver(movieRepo, catalog)
	watchlistMgr := watchlist.NewManager(watchlistRepo)
	reviewMgr := reviews.NewManager(reviewRepo)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authHandler := auth.NewHandler(userRepo, sessionRepo, sessionTTL)
	authMw := auth.NewMiddleware(sessionRepo)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Router())
		r.Mount("/movies", movies.NewHandler(resolver).Router())
		r.Mount("/reviews", reviews.NewHandler(reviewMgr, resolver, movieRepo).Router(authMw.RequireAuth))

		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireAuth)
			r.Mount("/users", users.NewHandler(userRepo).Router())
			r.Mount("/watchlist", watchlist.NewHandler(watchlistMgr, resolver).Router())
		})
	})

	return &Server{Router: r, Sessions: sessionRepo}
}
