package grid

import (
	"fmt"

	"github.com/abgdnv/productgrid/internal/product"
	"github.com/google/btree"
)

const idIndexDegree = 32

// Collection is the ordered list of grid rows with an index over their ids.
// It is not safe for concurrent use; the Editor serializes access.
type Collection struct {
	rows []product.Record
	ids  *btree.BTreeG[int]
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{ids: btree.NewOrderedG[int](idIndexDegree)}
}

// Reset replaces every row. Records with repeated ids are rejected and leave the
// collection as it was.
func (c *Collection) Reset(records []product.Record) error {
	ids := btree.NewOrderedG[int](idIndexDegree)
	for _, r := range records {
		if _, found := ids.ReplaceOrInsert(r.ID); found {
			return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
	}
	c.rows = append(make([]product.Record, 0, len(records)), records...)
	c.ids = ids
	return nil
}

func (c *Collection) Len() int {
	return len(c.rows)
}

// At returns the record shown at row position i.
func (c *Collection) At(i int) (product.Record, bool) {
	if i < 0 || i >= len(c.rows) {
		return product.Record{}, false
	}
	return c.rows[i], true
}

// Has reports whether a record with the id exists.
func (c *Collection) Has(id int) bool {
	return c.ids.Has(id)
}

// NextID is the largest id plus one, or 1 for an empty collection.
func (c *Collection) NextID() int {
	maxID, ok := c.ids.Max()
	if !ok {
		return 1
	}
	return maxID + 1
}

// Append adds r at the end.
func (c *Collection) Append(r product.Record) error {
	if _, found := c.ids.ReplaceOrInsert(r.ID); found {
		return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
	}
	c.rows = append(c.rows, r)
	return nil
}

// Replace overwrites, in place, the record whose id equals r.ID.
func (c *Collection) Replace(r product.Record) bool {
	i := c.indexOf(r.ID)
	if i < 0 {
		return false
	}
	c.rows[i] = r
	return true
}

// Remove drops the record with the id.
func (c *Collection) Remove(id int) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.rows = append(c.rows[:i], c.rows[i+1:]...)
	c.ids.Delete(id)
	return true
}

// Records returns a copy of the rows in display order.
func (c *Collection) Records() []product.Record {
	return append(make([]product.Record, 0, len(c.rows)), c.rows...)
}

func (c *Collection) indexOf(id int) int {
	if !c.ids.Has(id) {
		return -1
	}
	for i, r := range c.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
