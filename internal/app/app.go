package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"precis/internal/config"
	"precis/internal/costtracker"
	"precis/internal/inputprocessor"
	"precis/internal/services"
)

// App holds the process-wide components every command shares. There is exactly one
// ModelProvider per App, so the model is loaded at most once per process.
type App struct {
	Config *config.Config

	CostTracker    costtracker.CostTracker
	InputProcessor inputprocessor.Processor
	Models         *services.ModelProvider
	Formatter      *services.ToneFormatter
	SummaryService *services.SummaryService
}

// Option overrides a component before the services are built.
type Option func(*App)

// WithLoader replaces the configured model loader, e.g. with a fake in tests.
func WithLoader(load services.LoaderFunc) Option {
	return func(a *App) { a.Models = services.NewModelProvider(load) }
}

// WithFormatter replaces the tone formatter.
func WithFormatter(f *services.ToneFormatter) Option {
	return func(a *App) { a.Formatter = f }
}

// WithInputProcessor replaces the input processor.
func WithInputProcessor(p inputprocessor.Processor) Option {
	return func(a *App) { a.InputProcessor = p }
}

// NewApp wires the components. Nothing slow happens here: the model loads on first use.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		Config:      cfg,
		CostTracker: costtracker.New(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.initModelProvider(); err != nil {
		return nil, err
	}
	if a.InputProcessor == nil {
		a.InputProcessor = inputprocessor.New()
	}
	if a.Formatter == nil {
		a.Formatter = services.NewToneFormatter(nil)
	}
	a.SummaryService = services.NewSummaryService(a.Models, a.Formatter)

	log.Debugf("Application initialized (provider: %s, model: %s)", cfg.Model.Provider, cfg.Model.Name)
	return a, nil
}

func (a *App) initModelProvider() error {
	if a.Models != nil {
		return nil
	}
	loader, err := services.NewModelLoader(a.Config, a.CostTracker)
	if err != nil {
		return fmt.Errorf("init model provider: %w", err)
	}
	a.Models = services.NewModelProvider(loader)
	return nil
}

// Close releases the model.
func (a *App) Close() {
	if a.Models == nil {
		return
	}
	if err := a.Models.Close(); err != nil {
		log.Warnf("Error closing model: %v", err)
	}
}
