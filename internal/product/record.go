// Package product defines the product record edited in the grid, the draft a row
// editor works on, and the mapping from the data source wire format.
package product

// Record is one product row.
type Record struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unitPrice"`
	UnitsInStock string  `json:"unitsInStock"`
	Discontinued bool    `json:"discontinued"`
}

// Draft is the editable copy of a Record held while a row is open.
// ID stays zero for a row that has not been saved yet.
type Draft struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"         validate:"required"`
	UnitPrice    float64 `json:"unitPrice"`
	UnitsInStock string  `json:"unitsInStock" validate:"required,number,max=3"`
	Discontinued bool    `json:"discontinued"`
}

// NewDraft returns the defaults presented for a new row.
func NewDraft() Draft {
	return Draft{UnitPrice: 0, Discontinued: false}
}

// DraftOf copies r into a draft.
func DraftOf(r Record) Draft {
	return Draft{
		ID:           r.ID,
		Name:         r.Name,
		UnitPrice:    r.UnitPrice,
		UnitsInStock: r.UnitsInStock,
		Discontinued: r.Discontinued,
	}
}

// Record converts the draft into a record carrying the given id.
func (d Draft) Record(id int) Record {
	return Record{
		ID:           id,
		Name:         d.Name,
		UnitPrice:    d.UnitPrice,
		UnitsInStock: d.UnitsInStock,
		Discontinued: d.Discontinued,
	}
}
