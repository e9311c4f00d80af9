package grid

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/abgdnv/productgrid/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chai = product.Record{ID: 1, Name: "Chai", UnitPrice: 18, UnitsInStock: "39", Discontinued: false}

func newTestEditor(t *testing.T, records ...product.Record) *Editor {
	t.Helper()
	e := NewEditor(slog.New(slog.DiscardHandler))
	require.NoError(t, e.Load(context.Background(), Discard, records))
	return e
}

func Test_Editor_AddScenario(t *testing.T) {
	// given
	ctx := context.Background()
	e := newTestEditor(t, chai)
	rec := &Recorder{}
	// when
	e.BeginAdd(ctx, rec)
	_, err := e.SetDraft(ctx, product.Draft{Name: "Tea", UnitPrice: 10, UnitsInStock: "5", Discontinued: false})
	require.NoError(t, err)
	saved, err := e.Save(ctx, rec)
	// then
	require.NoError(t, err)
	tea := product.Record{ID: 2, Name: "Tea", UnitPrice: 10, UnitsInStock: "5", Discontinued: false}
	assert.Equal(t, tea, saved)
	assert.Equal(t, []product.Record{chai, tea}, e.Records())
	_, open := e.Session()
	assert.False(t, open)
	assert.Equal(t, []Command{
		{Kind: KindPresentNewRow, Row: NewRow, Form: &Form{Draft: product.NewDraft()}},
		{Kind: KindCloseRow, Row: NewRow},
	}, rec.Commands())
}

func Test_Editor_AddToEmptyCollectionGetsIDOne(t *testing.T) {
	ctx := context.Background()
	e := newTestEditor(t)

	e.BeginAdd(ctx, Discard)
	_, err := e.SetDraft(ctx, product.Draft{Name: "Tea", UnitsInStock: "5"})
	require.NoError(t, err)
	saved, err := e.Save(ctx, Discard)

	require.NoError(t, err)
	assert.Equal(t, 1, saved.ID)
	assert.Equal(t, 1, e.Len())
}

func Test_Editor_RemoveScenario(t *testing.T) {
	e := newTestEditor(t, chai)

	removed := e.Remove(context.Background(), 1)

	assert.True(t, removed)
	assert.Empty(t, e.Records())
}

func Test_Editor_RemoveAbsentIsNoop(t *testing.T) {
	e := newTestEditor(t, chai)

	removed := e.Remove(context.Background(), 42)

	assert.False(t, removed)
	assert.Equal(t, []product.Record{chai}, e.Records())
}

func Test_Editor_EditReplacesByID(t *testing.T) {
	// given
	ctx := context.Background()
	chang := product.Record{ID: 2, Name: "Chang", UnitPrice: 19, UnitsInStock: "17"}
	e := newTestEditor(t, chai, chang)
	rec := &Recorder{}
	// when
	session, err := e.BeginEdit(ctx, rec, 1)
	require.NoError(t, err)
	draft := session.Draft
	draft.UnitPrice = 21
	draft.ID = 99 // the id of an existing row cannot be changed
	_, err = e.SetDraft(ctx, draft)
	require.NoError(t, err)
	saved, err := e.Save(ctx, rec)
	// then
	require.NoError(t, err)
	assert.Equal(t, 2, saved.ID)
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, []product.Record{chai, {ID: 2, Name: "Chang", UnitPrice: 21, UnitsInStock: "17"}}, e.Records())
	assert.Equal(t, []Command{
		{Kind: KindPresentEditRow, Row: 1, Form: &Form{Draft: product.DraftOf(chang)}},
		{Kind: KindCloseRow, Row: 1},
	}, rec.Commands())
}

func Test_Editor_EditFollowsIDAfterReorder(t *testing.T) {
	// given
	ctx := context.Background()
	chang := product.Record{ID: 2, Name: "Chang", UnitsInStock: "17"}
	syrup := product.Record{ID: 3, Name: "Aniseed Syrup", UnitsInStock: "13"}
	e := newTestEditor(t, chai, chang, syrup)
	session, err := e.BeginEdit(ctx, Discard, 2)
	require.NoError(t, err)
	// when the row above goes away the edited record moves up one position
	require.True(t, e.Remove(ctx, 2))
	session.Draft.Name = "Syrup"
	_, err = e.SetDraft(ctx, session.Draft)
	require.NoError(t, err)
	_, err = e.Save(ctx, Discard)
	// then
	require.NoError(t, err)
	assert.Equal(t, []product.Record{chai, {ID: 3, Name: "Syrup", UnitsInStock: "13"}}, e.Records())
}

func Test_Editor_CancelLeavesCollectionUnchanged(t *testing.T) {
	// given
	ctx := context.Background()
	e := newTestEditor(t, chai)
	before := e.Records()
	rec := &Recorder{}
	session, err := e.BeginEdit(ctx, rec, 0)
	require.NoError(t, err)
	session.Draft.Name = "Green Tea"
	_, err = e.SetDraft(ctx, session.Draft)
	require.NoError(t, err)
	// when
	e.Cancel(ctx, rec)
	// then
	assert.Equal(t, before, e.Records())
	_, open := e.Session()
	assert.False(t, open)
	assert.Equal(t, KindCloseRow, rec.Commands()[1].Kind)
	assert.Equal(t, 0, rec.Commands()[1].Row)
}

func Test_Editor_CancelWithoutSessionIsNoop(t *testing.T) {
	e := newTestEditor(t, chai)
	rec := &Recorder{}

	e.Cancel(context.Background(), rec)

	assert.Empty(t, rec.Commands())
}

func Test_Editor_SaveValidation(t *testing.T) {
	testCases := []struct {
		name     string
		draft    product.Draft
		expected []product.FieldError
	}{
		{
			name:     "Letters in units in stock",
			draft:    product.Draft{Name: "Tea", UnitsInStock: "abcd"},
			expected: []product.FieldError{{Field: "unitsInStock", Rule: "number"}},
		},
		{
			name:     "Missing name",
			draft:    product.Draft{UnitsInStock: "1"},
			expected: []product.FieldError{{Field: "name", Rule: "required"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			e := newTestEditor(t, chai)
			e.BeginAdd(ctx, Discard)
			_, err := e.SetDraft(ctx, tc.draft)
			require.NoError(t, err)
			// when
			_, err = e.Save(ctx, Discard)
			// then
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.expected, validationErr.Fields)
			assert.Equal(t, []product.Record{chai}, e.Records())
			session, open := e.Session()
			require.True(t, open)
			assert.Equal(t, tc.expected, session.Errors)
		})
	}
}

func Test_Editor_SaveAfterFixingValidationErrors(t *testing.T) {
	ctx := context.Background()
	e := newTestEditor(t, chai)
	e.BeginAdd(ctx, Discard)
	_, err := e.SetDraft(ctx, product.Draft{Name: "Tea", UnitsInStock: "abcd"})
	require.NoError(t, err)
	_, err = e.Save(ctx, Discard)
	require.Error(t, err)

	_, err = e.SetDraft(ctx, product.Draft{Name: "Tea", UnitsInStock: "12"})
	require.NoError(t, err)
	saved, err := e.Save(ctx, Discard)

	require.NoError(t, err)
	assert.Equal(t, 2, saved.ID)
}

func Test_Editor_SaveRemovedRecord(t *testing.T) {
	// given
	ctx := context.Background()
	e := newTestEditor(t, chai)
	_, err := e.BeginEdit(ctx, Discard, 0)
	require.NoError(t, err)
	require.True(t, e.Remove(ctx, 1))
	// when
	_, err = e.Save(ctx, Discard)
	// then
	assert.ErrorIs(t, err, ErrRecordNotFound)
	var gone *RecordGoneError
	require.ErrorAs(t, err, &gone)
	assert.Equal(t, 1, gone.ID)
	assert.Empty(t, e.Records())
	_, open := e.Session()
	assert.True(t, open)
}

func Test_Editor_SaveWithoutSession(t *testing.T) {
	e := newTestEditor(t, chai)

	_, err := e.Save(context.Background(), Discard)

	assert.ErrorIs(t, err, ErrNoSession)
}

func Test_Editor_SetDraftWithoutSession(t *testing.T) {
	e := newTestEditor(t)

	_, err := e.SetDraft(context.Background(), product.Draft{Name: "x"})

	assert.ErrorIs(t, err, ErrNoSession)
}

func Test_Editor_BeginEditOutOfRange(t *testing.T) {
	testCases := []int{-1, 1, 100}

	for _, row := range testCases {
		t.Run(fmt.Sprintf("row %d", row), func(t *testing.T) {
			// given
			ctx := context.Background()
			e := newTestEditor(t, chai)
			e.BeginAdd(ctx, Discard)
			rec := &Recorder{}
			// when
			_, err := e.BeginEdit(ctx, rec, row)
			// then
			assert.ErrorIs(t, err, ErrRowOutOfRange)
			assert.Empty(t, rec.Commands())
			session, open := e.Session()
			require.True(t, open)
			assert.True(t, session.IsNew())
		})
	}
}

func Test_Editor_SecondBeginReplacesSession(t *testing.T) {
	// given
	ctx := context.Background()
	e := newTestEditor(t, chai, product.Record{ID: 2, Name: "Chang", UnitsInStock: "17"})
	rec := &Recorder{}
	_, err := e.BeginEdit(ctx, rec, 0)
	require.NoError(t, err)
	_, err = e.SetDraft(ctx, product.Draft{Name: "changed", UnitsInStock: "1"})
	require.NoError(t, err)
	// when
	_, err = e.BeginEdit(ctx, rec, 1)
	require.NoError(t, err)
	e.BeginAdd(ctx, rec)
	// then
	kinds := make([]CommandKind, 0)
	for _, c := range rec.Commands() {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []CommandKind{
		KindPresentEditRow, KindCloseRow, KindPresentEditRow, KindCloseRow, KindPresentNewRow,
	}, kinds)
	assert.Equal(t, "Chai", e.Records()[0].Name)
	session, open := e.Session()
	require.True(t, open)
	assert.True(t, session.IsNew())
}

func Test_Editor_LoadRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	e := newTestEditor(t, chai)
	e.BeginAdd(ctx, Discard)

	err := e.Load(ctx, Discard, []product.Record{{ID: 5}, {ID: 5}})

	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, []product.Record{chai}, e.Records())
	_, open := e.Session()
	assert.True(t, open)
}

func Test_Editor_LoadWithOpenRow(t *testing.T) {
	ikura := product.Record{ID: 10, Name: "Ikura", UnitsInStock: "31"}
	testCases := []struct {
		name             string
		open             func(e *Editor, rec *Recorder)
		reload           []product.Record
		expectedOpen     bool
		expectedCommands []Command
	}{
		{
			name:         "New row survives",
			open:         func(e *Editor, rec *Recorder) { e.BeginAdd(context.Background(), rec) },
			reload:       []product.Record{ikura},
			expectedOpen: true,
			expectedCommands: []Command{
				{Kind: KindPresentNewRow, Row: NewRow, Form: &Form{Draft: product.NewDraft()}},
			},
		},
		{
			name: "Edited record still in place survives",
			open: func(e *Editor, rec *Recorder) {
				_, err := e.BeginEdit(context.Background(), rec, 0)
				require.NoError(t, err)
			},
			reload:       []product.Record{chai, ikura},
			expectedOpen: true,
			expectedCommands: []Command{
				{Kind: KindPresentEditRow, Row: 0, Form: &Form{Draft: product.DraftOf(chai)}},
			},
		},
		{
			name: "Edited record gone is closed on the surface",
			open: func(e *Editor, rec *Recorder) {
				_, err := e.BeginEdit(context.Background(), rec, 0)
				require.NoError(t, err)
			},
			reload:       []product.Record{ikura},
			expectedOpen: false,
			expectedCommands: []Command{
				{Kind: KindPresentEditRow, Row: 0, Form: &Form{Draft: product.DraftOf(chai)}},
				{Kind: KindCloseRow, Row: 0},
			},
		},
		{
			name: "Edited record moved is closed on the surface",
			open: func(e *Editor, rec *Recorder) {
				_, err := e.BeginEdit(context.Background(), rec, 0)
				require.NoError(t, err)
			},
			reload:       []product.Record{ikura, chai},
			expectedOpen: false,
			expectedCommands: []Command{
				{Kind: KindPresentEditRow, Row: 0, Form: &Form{Draft: product.DraftOf(chai)}},
				{Kind: KindCloseRow, Row: 0},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			e := newTestEditor(t, chai)
			rec := &Recorder{}
			tc.open(e, rec)
			// when
			err := e.Load(context.Background(), rec, tc.reload)
			// then
			require.NoError(t, err)
			_, open := e.Session()
			assert.Equal(t, tc.expectedOpen, open)
			assert.Equal(t, tc.expectedCommands, rec.Commands())
			assert.Equal(t, tc.reload, e.Records())
		})
	}
}

func Test_Editor_IDsStayUnique(t *testing.T) {
	// given
	ctx := context.Background()
	e := newTestEditor(t, chai, product.Record{ID: 10, Name: "Ikura", UnitsInStock: "31"})
	// when a mix of adds, edits and removes runs
	for i := 0; i < 30; i++ {
		switch i % 3 {
		case 0, 1:
			e.BeginAdd(ctx, Discard)
			_, err := e.SetDraft(ctx, product.Draft{Name: fmt.Sprintf("p%d", i), UnitsInStock: "1"})
			require.NoError(t, err)
		case 2:
			_, err := e.BeginEdit(ctx, Discard, i%e.Len())
			require.NoError(t, err)
			e.Remove(ctx, e.Records()[0].ID)
		}
		_, _ = e.Save(ctx, Discard)
		e.Cancel(ctx, Discard)
	}
	// then
	seen := make(map[int]bool)
	for _, r := range e.Records() {
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
	}
}

func Test_Editor_SaveDraft(t *testing.T) {
	ctx := context.Background()
	e := newTestEditor(t, chai)

	_, err := e.SaveDraft(ctx, Discard, product.Draft{Name: "Tea", UnitsInStock: "5"})
	assert.ErrorIs(t, err, ErrNoSession)

	e.BeginAdd(ctx, Discard)
	saved, err := e.SaveDraft(ctx, Discard, product.Draft{Name: "Tea", UnitsInStock: "5"})
	require.NoError(t, err)
	assert.Equal(t, product.Record{ID: 2, Name: "Tea", UnitsInStock: "5"}, saved)
}
