// Package grid implements the row editor behind the product grid: it owns the
// records and the single row that may be open for editing at a time.
package grid

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abgdnv/productgrid/internal/product"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Session is the row currently open for editing.
type Session struct {
	Row    int                  `json:"row"`
	Draft  product.Draft        `json:"draft"`
	Errors []product.FieldError `json:"errors,omitempty"`
}

// IsNew reports whether the session edits a row that has not been saved yet.
func (s Session) IsNew() bool {
	return s.Row == NewRow
}

func (s Session) form() Form {
	return Form{Draft: s.Draft, Errors: append([]product.FieldError(nil), s.Errors...)}
}

// Editor serializes every intent behind one lock, so callers may share it.
type Editor struct {
	mu        sync.Mutex
	rows      *Collection
	session   *Session
	validator *product.Validator
	logger    *slog.Logger

	savedCounter    metric.Int64Counter
	rejectedCounter metric.Int64Counter
	removedCounter  metric.Int64Counter
}

// NewEditor returns an editor with an empty collection.
// Its counters are registered with the global meter provider.
func NewEditor(logger *slog.Logger) *Editor {
	meter := otel.Meter("productgrid/grid")
	savedCounter, err := meter.Int64Counter("grid_rows_saved", metric.WithDescription("Total number of rows committed, by kind"))
	if err != nil {
		panic(fmt.Sprintf("failed to create grid_rows_saved counter: %v", err))
	}
	rejectedCounter, err := meter.Int64Counter("grid_rows_rejected", metric.WithDescription("Total number of saves that failed validation"))
	if err != nil {
		panic(fmt.Sprintf("failed to create grid_rows_rejected counter: %v", err))
	}
	removedCounter, err := meter.Int64Counter("grid_rows_removed", metric.WithDescription("Total number of removed records"))
	if err != nil {
		panic(fmt.Sprintf("failed to create grid_rows_removed counter: %v", err))
	}
	return &Editor{
		rows:            NewCollection(),
		validator:       product.NewValidator(),
		logger:          logger.With("component", "grid"),
		savedCounter:    savedCounter,
		rejectedCounter: rejectedCounter,
		removedCounter:  removedCounter,
	}
}

// Load replaces the whole collection. An open new row survives, as does an open row whose
// record is still at the same position; any other open row is closed on surface.
func (e *Editor) Load(ctx context.Context, surface Surface, records []product.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.rows.Reset(records); err != nil {
		e.logger.ErrorContext(ctx, "Rejected product list", "error", err)
		return fmt.Errorf("failed to load records: %w", err)
	}
	if e.session != nil && !e.sessionValidLocked() {
		e.logger.WarnContext(ctx, "Open row no longer matches the product list, closing it", "row", e.session.Row)
		e.closeLocked(surface)
	}
	e.logger.InfoContext(ctx, "Loaded product list", "count", len(records))
	return nil
}

// BeginAdd closes any open row and opens an empty one.
func (e *Editor) BeginAdd(ctx context.Context, surface Surface) Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closeLocked(surface)
	e.session = &Session{Row: NewRow, Draft: product.NewDraft()}
	e.logger.DebugContext(ctx, "Opened new row")
	surface.PresentNewRow(e.session.form())
	return *e.session
}

// BeginEdit closes any open row and opens the one at position row.
// An out of range position returns ErrRowOutOfRange and leaves the open row alone.
func (e *Editor) BeginEdit(ctx context.Context, surface Surface, row int) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	record, ok := e.rows.At(row)
	if !ok {
		e.logger.WarnContext(ctx, "Edit requested for missing row", "row", row, "rows", e.rows.Len())
		return Session{}, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	e.closeLocked(surface)
	e.session = &Session{Row: row, Draft: product.DraftOf(record)}
	e.logger.DebugContext(ctx, "Opened row for editing", "row", row, "ID", record.ID)
	surface.PresentEditRow(row, e.session.form())
	return *e.session, nil
}

// SetDraft overwrites the fields of the open row. The id of the row being edited is kept.
func (e *Editor) SetDraft(ctx context.Context, draft product.Draft) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.setDraftLocked(ctx, draft); err != nil {
		return Session{}, err
	}
	return *e.session, nil
}

// Cancel closes the open row and discards its draft. No-op when nothing is open.
func (e *Editor) Cancel(ctx context.Context, surface Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		e.logger.DebugContext(ctx, "Edit cancelled", "row", e.session.Row)
	}
	e.closeLocked(surface)
}

// Save validates the open row and commits it. A new row gets the next free id and is
// appended; an existing row replaces the record with the same id wherever it now sits.
// On *ValidationError or ErrRecordNotFound the collection is untouched and the row stays open.
func (e *Editor) Save(ctx context.Context, surface Surface) (product.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.saveLocked(ctx, surface)
}

// SaveDraft is SetDraft followed by Save, with no other intent in between.
func (e *Editor) SaveDraft(ctx context.Context, surface Surface, draft product.Draft) (product.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.setDraftLocked(ctx, draft); err != nil {
		return product.Record{}, err
	}
	return e.saveLocked(ctx, surface)
}

// Remove drops the record with the id and reports whether it existed.
func (e *Editor) Remove(ctx context.Context, id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rows.Remove(id) {
		e.logger.DebugContext(ctx, "Remove ignored, no such record", "ID", id)
		return false
	}
	e.removedCounter.Add(ctx, 1)
	e.logger.InfoContext(ctx, "Record removed", "ID", id)
	return true
}

// Records returns a copy of the collection in display order.
func (e *Editor) Records() []product.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rows.Records()
}

// Len returns the number of records.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rows.Len()
}

// Session returns a copy of the open row, if any.
func (e *Editor) Session() (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return Session{}, false
	}
	s := *e.session
	s.Errors = append([]product.FieldError(nil), e.session.Errors...)
	return s, true
}

func (e *Editor) setDraftLocked(ctx context.Context, draft product.Draft) error {
	if e.session == nil {
		return ErrNoSession
	}
	draft.ID = e.session.Draft.ID
	e.session.Draft = draft
	e.logger.DebugContext(ctx, "Draft updated", "row", e.session.Row)
	return nil
}

func (e *Editor) saveLocked(ctx context.Context, surface Surface) (product.Record, error) {
	if e.session == nil {
		return product.Record{}, ErrNoSession
	}
	session := e.session

	if violations := e.validator.Check(session.Draft); len(violations) > 0 {
		session.Errors = violations
		e.rejectedCounter.Add(ctx, 1)
		e.logger.WarnContext(ctx, "Validation errors occurred", "row", session.Row, "errors", violations)
		return product.Record{}, &ValidationError{Fields: violations}
	}
	session.Errors = nil

	var record product.Record
	if session.IsNew() {
		record = session.Draft.Record(e.rows.NextID())
		if err := e.rows.Append(record); err != nil {
			return product.Record{}, fmt.Errorf("failed to add record: %w", err)
		}
		e.savedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "add")))
		e.logger.InfoContext(ctx, "Record added", "ID", record.ID, "Name", record.Name)
	} else {
		record = session.Draft.Record(session.Draft.ID)
		if !e.rows.Replace(record) {
			e.logger.WarnContext(ctx, "Record removed while being edited", "ID", record.ID)
			return product.Record{}, fmt.Errorf("failed to update record: %w", &RecordGoneError{ID: record.ID})
		}
		e.savedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "update")))
		e.logger.InfoContext(ctx, "Record updated", "ID", record.ID, "Name", record.Name)
	}

	e.closeLocked(surface)
	return record, nil
}

func (e *Editor) sessionValidLocked() bool {
	if e.session.IsNew() {
		return true
	}
	record, ok := e.rows.At(e.session.Row)
	return ok && record.ID == e.session.Draft.ID
}

func (e *Editor) closeLocked(surface Surface) {
	if e.session == nil {
		return
	}
	surface.CloseRow(e.session.Row)
	e.session = nil
}
