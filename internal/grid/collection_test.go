package grid

import (
	"testing"

	"github.com/abgdnv/productgrid/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Collection_Reset(t *testing.T) {
	testCases := []struct {
		name        string
		records     []product.Record
		expectedLen int
		expectError error
	}{
		{
			name:        "Distinct ids",
			records:     []product.Record{{ID: 1}, {ID: 3}},
			expectedLen: 2,
		},
		{
			name:        "Empty list",
			records:     nil,
			expectedLen: 0,
		},
		{
			name:        "Duplicate ids are rejected",
			records:     []product.Record{{ID: 1}, {ID: 1}},
			expectedLen: 1,
			expectError: ErrDuplicateID,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			c := NewCollection()
			require.NoError(t, c.Reset([]product.Record{{ID: 9}}))
			// when
			err := c.Reset(tc.records)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Equal(t, []product.Record{{ID: 9}}, c.Records())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedLen, c.Len())
			assert.False(t, c.Has(9))
		})
	}
}

func Test_Collection_NextID(t *testing.T) {
	c := NewCollection()
	assert.Equal(t, 1, c.NextID())

	require.NoError(t, c.Reset([]product.Record{{ID: 4}, {ID: 2}, {ID: 7}}))
	assert.Equal(t, 8, c.NextID())

	assert.True(t, c.Remove(7))
	assert.Equal(t, 5, c.NextID())
}

func Test_Collection_ReplaceKeepsPosition(t *testing.T) {
	// given
	c := NewCollection()
	require.NoError(t, c.Reset([]product.Record{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}))
	// when
	replaced := c.Replace(product.Record{ID: 2, Name: "B"})
	missing := c.Replace(product.Record{ID: 5, Name: "E"})
	// then
	assert.True(t, replaced)
	assert.False(t, missing)
	got, ok := c.At(1)
	require.True(t, ok)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, 3, c.Len())
}

func Test_Collection_AppendRejectsTakenID(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Append(product.Record{ID: 1}))
	assert.ErrorIs(t, c.Append(product.Record{ID: 1}), ErrDuplicateID)
	assert.Equal(t, 1, c.Len())
}

func Test_Collection_At(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Reset([]product.Record{{ID: 1}}))

	_, ok := c.At(-1)
	assert.False(t, ok)
	_, ok = c.At(1)
	assert.False(t, ok)
	r, ok := c.At(0)
	assert.True(t, ok)
	assert.Equal(t, 1, r.ID)
}

func Test_Collection_RecordsIsACopy(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Reset([]product.Record{{ID: 1, Name: "a"}}))

	records := c.Records()
	records[0].Name = "changed"

	got, _ := c.At(0)
	assert.Equal(t, "a", got.Name)
}
