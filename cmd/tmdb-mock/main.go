package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmcdole/marquee/internal/logging"
	"github.com/mmcdole/marquee/internal/mockapi"
)

func main() {
	var (
		addr     = flag.String("addr", "127.0.0.1:8089", "address to listen on")
		apiKey   = flag.String("key", mockapi.DefaultAPIKey, "API key the server accepts")
		latency  = flag.Duration("latency", 0, "delay added to every response")
		failList = flag.String("fail", "", "list name that answers 500, e.g. top_rated")
		level    = flag.String("log-level", "INFO", "log level")
	)
	flag.Parse()

	logger := logging.NewLogger(os.Stderr, *level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mock := mockapi.New(*apiKey, logger)
	mock.SetLatency(*latency)
	if *failList != "" {
		mock.Fail("/movie/"+*failList, http.StatusInternalServerError, "Internal error: something went wrong, try again later.")
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           mock.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info("mock TMDB listening", "addr", *addr, "base_url", "http://"+*addr+"/3")
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("graceful shutdown error", "error", err)
	}
}
