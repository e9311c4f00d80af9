package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WireRecord is a record as the data source transmits it.
type WireRecord struct {
	ProductID    int        `json:"ProductID"`
	ProductName  string     `json:"ProductName"`
	UnitPrice    float64    `json:"UnitPrice"`
	UnitsInStock StockCount `json:"UnitsInStock"`
	Discontinued bool       `json:"Discontinued"`
}

// StockCount is the units-in-stock value, sent either as a JSON string or a JSON number.
type StockCount string

// UnmarshalJSON accepts "39", 39 and null.
func (s *StockCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = StockCount(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("units in stock must be a string or a number: %w", err)
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("units in stock must be an integer: %s", n)
	}
	*s = StockCount(strconv.FormatInt(i, 10))
	return nil
}

// Record maps the wire record into the in-memory model.
func (w WireRecord) Record() Record {
	return Record{
		ID:           w.ProductID,
		Name:         w.ProductName,
		UnitPrice:    w.UnitPrice,
		UnitsInStock: string(w.UnitsInStock),
		Discontinued: w.Discontinued,
	}
}

// ToWire maps a record into the wire format.
func ToWire(r Record) WireRecord {
	return WireRecord{
		ProductID:    r.ID,
		ProductName:  r.Name,
		UnitPrice:    r.UnitPrice,
		UnitsInStock: StockCount(r.UnitsInStock),
		Discontinued: r.Discontinued,
	}
}

// DecodeRecords reads a JSON array of wire records.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var wire []WireRecord
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, err
	}
	records := make([]Record, len(wire))
	for i, w := range wire {
		records[i] = w.Record()
	}
	return records, nil
}
