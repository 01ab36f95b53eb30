package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/subtlepseudonym/suntimes/server"
)

const shutdownTimeout = 5 * time.Second

// ServeCommand serves the event API until interrupted
type ServeCommand struct {
	Listen string `short:"l" long:"listen" description:"Listen address, default from config"`
}

func (c *ServeCommand) Execute(args []string) error {
	cfg, observer, err := load()
	if err != nil {
		return err
	}

	addr := cfg.Listen
	if c.Listen != "" {
		addr = c.Listen
	}

	srv := http.Server{
		Addr:              addr,
		Handler:           server.New(observer, log.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
