package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"workboard/internal/auth"
	"workboard/internal/persist"
	"workboard/internal/store"
)

// runtime is everything a command needs, opened on first use and flushed after the command.
type runtime struct {
	backend persist.Backend
	store   *store.Store
	auth    *auth.Manager
}

func (app *App) open(ctx context.Context) (*runtime, error) {
	if app.rt != nil {
		return app.rt, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := app.cfg
	log := slog.Default()

	backend, err := persist.Open(ctx, persist.OpenOptions{
		Kind:        cfg.Storage,
		Dir:         cfg.DataDir,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, store.Options{
		Backend:  backend,
		Debounce: cfg.SaveDebounce,
		Logger:   log,
	})
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("load workspace data: %w", err)
	}
	am, err := auth.NewManager(ctx, auth.Options{
		Backend:    backend,
		Secret:     []byte(cfg.SessionSecret),
		TTL:        cfg.SessionTTL,
		BcryptCost: cfg.BcryptCost,
		Debounce:   cfg.SaveDebounce,
		Logger:     log,
	})
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("load users: %w", err)
	}

	if b, err := backend.Get(ctx, persist.KeySession); err == nil && len(b) > 0 {
		if _, err := am.Resume(ctx, string(b)); err != nil {
			log.Debug("stored session rejected", "err", err)
			_ = backend.Delete(ctx, persist.KeySession)
		}
	} else if err != nil && !errors.Is(err, persist.ErrNotFound) {
		log.Warn("read stored session", "err", err)
	}

	app.rt = &runtime{backend: backend, store: st, auth: am}
	return app.rt, nil
}

// close flushes pending saves and releases the backend. It is a no-op when nothing was opened.
func (app *App) close(ctx context.Context) error {
	rt := app.rt
	if rt == nil {
		return nil
	}
	app.rt = nil
	if ctx == nil {
		ctx = context.Background()
	}
	var errs []error
	if err := rt.store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("save workspace data: %w", err))
	}
	if err := rt.auth.Flush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("save users: %w", err))
	}
	if err := rt.backend.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// saveSession remembers the CLI's token between invocations.
func (rt *runtime) saveSession(ctx context.Context, token string) error {
	if token == "" {
		err := rt.backend.Delete(ctx, persist.KeySession)
		if errors.Is(err, persist.ErrNotFound) {
			return nil
		}
		return err
	}
	return rt.backend.Put(ctx, persist.KeySession, []byte(token))
}

// run opens the runtime, runs fn and always flushes afterwards. Errors are printed to stderr.
func (app *App) run(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := app.open(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	err = fn(ctx, rt)
	if cerr := app.close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
