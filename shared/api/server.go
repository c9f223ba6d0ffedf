// shared/api/server.go
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// BaseServer bundles a mux router with an http.Server carrying the timeouts
// and middleware every service instance runs with.
type BaseServer struct {
	Router *mux.Router
	Server *http.Server
	Logger *log.Logger
}

// NewBaseServer creates a server listening on addr with request logging and
// CORS applied. Callers register routes on Router before Start.
func NewBaseServer(addr string, logger *log.Logger) *BaseServer {
	if logger == nil {
		logger = log.Default()
	}

	router := mux.NewRouter()
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &BaseServer{
		Router: router,
		Server: server,
		Logger: logger,
	}
}

// Start blocks serving requests until Shutdown is called or the listener
// fails. A graceful shutdown is not an error.
func (bs *BaseServer) Start() error {
	bs.Logger.Printf("Starting HTTP server on %s...", bs.Server.Addr)
	if err := bs.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (bs *BaseServer) Shutdown(ctx context.Context) error {
	bs.Logger.Println("Shutting down HTTP server...")
	return bs.Server.Shutdown(ctx)
}
