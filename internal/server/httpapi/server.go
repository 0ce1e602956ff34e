// Package httpapi serves the read-only JSON explorer over the ledger.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/linkify/internal/logging"
	"github.com/dmitrijs2005/linkify/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	queries *services.QueryService
	origins []string
	logger  logging.Logger
}

func NewServer(address string, origins []string, queries *services.QueryService, l logging.Logger) *Server {
	return &Server{
		address: address,
		queries: queries,
		origins: origins,
		logger:  l.With("module", "http_server"),
	}
}

// Handler returns the explorer routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.healthz)
	r.Route("/v1", func(api chi.Router) {
		api.Get("/balances/{identity}", s.balance)
		api.Get("/users/{identity}", s.user)
		api.Get("/connections/{address}", s.connection)
		api.Get("/acceptors/{identity}/connections", s.connections)
		api.Get("/transactions/{signature}", s.transaction)
		api.Get("/signers/{identity}/transactions", s.transactions)
	})
	return r
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
