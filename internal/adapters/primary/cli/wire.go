package cli

import (
	"context"
	"fmt"

	"salary-bias-service/internal/app"
	"salary-bias-service/internal/config"
)

// runtime connects lazily so that help and flag errors never touch the
// database.
type runtime struct {
	load func() (*config.Config, error)
	cfg  *config.Config
	app  *app.App
}

func newRuntime() *runtime {
	return &runtime{load: config.Load}
}

func (r *runtime) config() (*config.Config, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}
	cfg, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	app.InitLogger(cfg.Logger)
	r.cfg = cfg
	return cfg, nil
}

func (r *runtime) open(ctx context.Context) (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}
	cfg, err := r.config()
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("wire application: %w", err)
	}
	r.app = a
	return a, nil
}

func (r *runtime) close() {
	if r.app != nil {
		r.app.Close()
		r.app = nil
	}
}
