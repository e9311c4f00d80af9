// Package screen ties the row editor to the data source for the lifetime of one grid screen.
package screen

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/abgdnv/productgrid/internal/datasource"
	"github.com/abgdnv/productgrid/internal/grid"
	"github.com/abgdnv/productgrid/internal/product"
)

var ErrAlreadyOpen = errors.New("screen already opened")

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
	StateClosed  State = "closed"
)

// Status is the load state of the screen. Error is set only in StateFailed.
type Status struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

// Screen loads the editor once from the data source and stops listening on Close.
type Screen struct {
	editor  *grid.Editor
	fetcher datasource.Fetcher
	logger  *slog.Logger

	mu      sync.Mutex
	state   State
	loadErr error
	sub     *datasource.Subscription
}

// New creates a screen around editor. Nothing is fetched until Open.
func New(editor *grid.Editor, fetcher datasource.Fetcher, logger *slog.Logger) *Screen {
	return &Screen{
		editor:  editor,
		fetcher: fetcher,
		logger:  logger.With("component", "screen"),
		state:   StateIdle,
	}
}

// Editor returns the row editor owned by the screen.
func (s *Screen) Editor() *grid.Editor {
	return s.editor
}

// Open starts the single fetch of the product list.
func (s *Screen) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return ErrAlreadyOpen
	}
	s.state = StateLoading
	s.logger.InfoContext(ctx, "Loading product list")
	s.sub = datasource.Subscribe(ctx, s.fetcher,
		func(records []product.Record) { s.loaded(ctx, records) },
		func(err error) { s.failed(ctx, err) },
	)
	return nil
}

// Close stops the pending fetch. The editor is never loaded after Close returns.
func (s *Screen) Close() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.state = StateClosed
	s.mu.Unlock()

	if sub != nil {
		sub.Stop()
	}
}

// Status reports the load state.
func (s *Screen) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{State: s.state}
	if s.state == StateFailed && s.loadErr != nil {
		status.Error = s.loadErr.Error()
	}
	return status
}

// Wait blocks until the fetch has been handled or ctx is done.
func (s *Screen) Wait(ctx context.Context) error {
	s.mu.Lock()
	sub := s.sub
	s.mu.Unlock()
	if sub == nil {
		return nil
	}
	select {
	case <-sub.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Screen) loaded(ctx context.Context, records []product.Record) {
	// a reload reaches no client directly; a closed row shows up as 409 on its next save
	if err := s.editor.Load(ctx, grid.Discard, records); err != nil {
		s.failed(ctx, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		s.state = StateLoaded
	}
}

// failed keeps the collection empty and records why.
func (s *Screen) failed(ctx context.Context, err error) {
	s.logger.ErrorContext(ctx, "Failed to load product list", "error", err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		s.state = StateFailed
		s.loadErr = err
	}
}
