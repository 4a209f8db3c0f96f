package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/sevenofnine/edupage-calendar-bridge/internal/api"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/config"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/edupage"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/provider"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/security"
)

type Application struct {
	cfg      config.Config
	provider provider.TimetableProvider
	logger   *slog.Logger
}

// BuildProvider assembles the Edupage provider from configuration, with the
// configured per-call timeout on the outbound client.
func BuildProvider(cfg config.Config) provider.TimetableProvider {
	client := edupage.NewClient(cfg.Subdomain, &http.Client{Timeout: cfg.RequestTimeout})
	return provider.NewEdupageProvider(client, cfg.ClassID, cfg.SchoolYear)
}

func New(cfg config.Config, p provider.TimetableProvider, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{cfg: cfg, provider: p, logger: logger}
}

func (a *Application) Run(ctx context.Context) error {
	server := api.New(api.Options{
		Provider: a.provider,
		Auth: security.FeedAuth{
			Enabled: a.cfg.RequireToken,
			Token:   a.cfg.FeedToken,
		},
		Logger: a.logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	wg := sync.WaitGroup{}

	if a.cfg.BindAddress != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ServeTCP(ctx, a.cfg.BindAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("tcp server: %w", err)
			}
		}()
	}
	if a.cfg.UnixSocketPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ServeUnix(ctx, a.cfg.UnixSocketPath); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("unix server: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		cancel()
		wg.Wait()
		return err
	case <-ctx.Done():
		wg.Wait()
		return nil
	}
}
