// Package server assembles the kittyd HTTP handler: Connect services behind
// the auth and logging interceptors, Prometheus metrics, a health check,
// CORS, and HTTP/2 without TLS.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/kitty/internal/auth"
	"github.com/mmynk/kitty/internal/ledger"
	"github.com/mmynk/kitty/internal/middleware"
	"github.com/mmynk/kitty/internal/service"
	"github.com/mmynk/kitty/pkg/api"
)

// Options holds what the handler needs from the rest of the process.
type Options struct {
	Ledger        *ledger.Ledger
	Authenticator auth.Authenticator
	JWTManager    *auth.JWTManager

	// Gatherer serves /metrics. Nil omits the endpoint.
	Gatherer prometheus.Gatherer

	// AllowedOrigins enables CORS for browser clients.
	AllowedOrigins []string
}

// publicProcedures can be called without a bearer token.
var publicProcedures = []string{
	api.AuthServiceRegisterProcedure,
	api.AuthServiceLoginProcedure,
}

// NewHandler builds the full HTTP handler.
func NewHandler(opts Options) http.Handler {
	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(opts.JWTManager, publicProcedures...),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(
		service.NewAuthService(opts.Authenticator, opts.JWTManager, opts.Ledger, slog.Default()),
		interceptors,
	))
	mux.Handle(api.NewGroupServiceHandler(service.NewGroupService(opts.Ledger), interceptors))
	mux.Handle(api.NewInventoryServiceHandler(service.NewInventoryService(opts.Ledger), interceptors))

	if opts.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", api.ReasonHeader},
	})

	// h2c serves HTTP/2 without TLS, which Connect's gRPC protocol needs.
	return h2c.NewHandler(requestLogger(c.Handler(mux)), &http2.Server{})
}

// requestLogger logs every HTTP request at Debug.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully within shutdownTimeout.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
