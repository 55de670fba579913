// Package httpserver exposes the application over HTTP: routing, the session
// middleware that turns the token cookie into an authenticated identity, and
// the access-controlled resource handlers.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/logging"
	"github.com/dmitrijs2005/recipekeeper/internal/server/accounts"
	"github.com/dmitrijs2005/recipekeeper/internal/server/config"
	"github.com/dmitrijs2005/recipekeeper/internal/server/provider"
	"github.com/dmitrijs2005/recipekeeper/internal/server/recipes"
	"github.com/dmitrijs2005/recipekeeper/internal/server/view"
	"github.com/gorilla/mux"
)

type Server struct {
	address       string
	logger        logging.Logger
	accounts      *accounts.Service
	recipes       *recipes.Service
	provider      *provider.Client
	renderer      *view.PageRenderer
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewServer(cfg *config.Config, l logging.Logger, as *accounts.Service, rs *recipes.Service, pc *provider.Client) (*Server, error) {

	renderer, err := view.NewPageRenderer()
	if err != nil {
		return nil, err
	}

	return &Server{
		address:       cfg.EndpointAddr,
		logger:        l.With("module", "http_server"),
		accounts:      as,
		recipes:       rs,
		provider:      pc,
		renderer:      renderer,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}, nil
}

// routes builds the router. Page routes redirect unauthenticated callers to
// the login view; API routes answer 401 instead.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogging)

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/login", s.loginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/register", s.registerPage).Methods(http.MethodGet)
	r.HandleFunc("/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodGet)

	r.HandleFunc("/dashboard", s.requireSession(s.dashboard)).Methods(http.MethodGet)
	r.HandleFunc("/my-recipes", s.requireSession(s.myRecipes)).Methods(http.MethodGet)
	r.HandleFunc("/recipes", s.requireSession(s.createRecipe)).Methods(http.MethodPost)
	r.HandleFunc("/admin/users", s.requireSession(s.adminUsers)).Methods(http.MethodGet)
	r.HandleFunc("/recipe/{id}", s.requireSession(s.recipeDetail)).Methods(http.MethodGet)

	r.HandleFunc("/search-recipes", s.requireSessionAPI(s.searchRecipes)).Methods(http.MethodGet)
	r.HandleFunc("/recipes/{id:[0-9]+}", s.requireSessionAPI(s.deleteRecipe)).Methods(http.MethodDelete)

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
