package services

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"precis/internal/models"
)

// ModelProvider loads the Model on first use and hands out the same instance afterwards.
// Concurrent first callers block until the single load finishes. A failed load is cached
// and returned to every caller; it is never retried.
type ModelProvider struct {
	load LoaderFunc

	once  sync.Once
	model Model
	err   error

	mu        sync.RWMutex
	status    ModelStatus
	loadTime  time.Duration
	observers []func(ModelStatus)
}

// NewModelProvider wraps a loader. Nothing is loaded until GetModel or Preload.
func NewModelProvider(load LoaderFunc) *ModelProvider {
	return &ModelProvider{load: load}
}

// OnStatusChange registers fn to be called on every status transition.
// Observers are called synchronously from the loading goroutine.
func (p *ModelProvider) OnStatusChange(fn func(ModelStatus)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// Status reports the current lifecycle phase.
func (p *ModelProvider) Status() ModelStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// LoadTime is how long the load took; zero until it finished.
func (p *ModelProvider) LoadTime() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadTime
}

// GetModel returns the cached model, loading it on the first call.
// The ctx of the first caller bounds the load.
func (p *ModelProvider) GetModel(ctx context.Context) (Model, error) {
	p.once.Do(func() {
		p.setStatus(ModelStatusLoading)
		start := time.Now()

		m, err := p.load(ctx)
		if err == nil && m == nil {
			err = errors.New("loader returned no model")
		}

		p.mu.Lock()
		p.loadTime = time.Since(start)
		p.mu.Unlock()

		if err != nil {
			var loadErr *models.ModelLoadError
			if !errors.As(err, &loadErr) {
				err = &models.ModelLoadError{Err: err}
			}
			p.err = err
			log.Errorf("Model load failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
			p.setStatus(ModelStatusFailed)
			return
		}

		p.model = m
		log.Infof("Model %s/%s loaded in %s", m.Name(), m.ModelName(), time.Since(start).Round(time.Millisecond))
		p.setStatus(ModelStatusReady)
	})
	return p.model, p.err
}

// Preload starts loading in the background so the first request does not pay for it.
func (p *ModelProvider) Preload(ctx context.Context) {
	go func() {
		_, _ = p.GetModel(ctx)
	}()
}

// Close releases the model if it holds resources.
func (p *ModelProvider) Close() error {
	p.mu.RLock()
	status := p.status
	p.mu.RUnlock()
	if status != ModelStatusReady {
		return nil
	}
	if c, ok := p.model.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (p *ModelProvider) setStatus(s ModelStatus) {
	p.mu.Lock()
	p.status = s
	observers := append([]func(ModelStatus){}, p.observers...)
	p.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}
