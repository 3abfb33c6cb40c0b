package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/evan-idocoding/tweaks/admin"
)

const (
	defaultAddr     = ":7070"
	shutdownTimeout = 5 * time.Second
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		cfg.Serve.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: serve takes no arguments", cli.ErrUsage)
	}
	if cfg.Token == "" {
		return fmt.Errorf("%w: -t token is required", cli.ErrUsage)
	}
	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := cfg.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	guard := admin.Tokens([]string{cfg.Token})
	all := admin.TweaksAccessSpec{AllowFunc: func(string) bool { return true }}
	h := admin.New(
		admin.EnableTweaksSnapshot(admin.TweaksReadSpec{Guard: guard, S: s.store}),
		admin.EnableTweaksLookup(admin.TweaksReadSpec{Guard: guard, S: s.store}),
		admin.EnableTweaksSet(admin.TweaksWriteSpec{Guard: guard, S: s.store, Access: all}),
		admin.EnableTweaksReset(admin.TweaksWriteSpec{Guard: guard, S: s.store, Access: all}),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("Serving tweaks.", "addr", addr, "tweaks", len(s.store.Tweaks()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	slog.Info("Shutting down.")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
