package document

import (
	"encoding/json"
	"fmt"
	"math"
)

// number is the JSON form of amounts. Finite values are plain JSON numbers;
// NaN and the infinities, which calculations may produce from user input,
// are written as the strings "NaN", "Infinity" and "-Infinity".
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(f)
}

func (n *number) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*n = number(math.NaN())
		case "Infinity", "+Infinity":
			*n = number(math.Inf(1))
		case "-Infinity":
			*n = number(math.Inf(-1))
		default:
			return fmt.Errorf("invalid number %q", s)
		}
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = number(f)
	return nil
}

func numberPtr(f *float64) *number {
	if f == nil {
		return nil
	}
	n := number(*f)
	return &n
}

func floatPtr(n *number) *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

// MarshalJSON writes the item with non-finite amounts as strings.
func (it InvoiceItem) MarshalJSON() ([]byte, error) {
	type plain InvoiceItem
	return json.Marshal(struct {
		plain
		Quantity  number `json:"quantity"`
		UnitPrice number `json:"unitPrice"`
		Total     number `json:"total"`
	}{plain(it), number(it.Quantity), number(it.UnitPrice), number(it.Total)})
}

// UnmarshalJSON reads amounts written by MarshalJSON.
func (it *InvoiceItem) UnmarshalJSON(b []byte) error {
	type plain InvoiceItem
	aux := struct {
		*plain
		Quantity  number `json:"quantity"`
		UnitPrice number `json:"unitPrice"`
		Total     number `json:"total"`
	}{plain: (*plain)(it)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	it.Quantity, it.UnitPrice, it.Total = float64(aux.Quantity), float64(aux.UnitPrice), float64(aux.Total)
	return nil
}

// MarshalJSON writes the sub-item with non-finite amounts as strings.
func (s SubItem) MarshalJSON() ([]byte, error) {
	type plain SubItem
	return json.Marshal(struct {
		plain
		Quantity  *number `json:"quantity,omitempty"`
		UnitPrice number  `json:"unitPrice"`
		Total     number  `json:"total"`
	}{plain(s), numberPtr(s.Quantity), number(s.UnitPrice), number(s.Total)})
}

// UnmarshalJSON reads amounts written by MarshalJSON.
func (s *SubItem) UnmarshalJSON(b []byte) error {
	type plain SubItem
	aux := struct {
		*plain
		Quantity  *number `json:"quantity,omitempty"`
		UnitPrice number  `json:"unitPrice"`
		Total     number  `json:"total"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.Quantity, s.UnitPrice, s.Total = floatPtr(aux.Quantity), float64(aux.UnitPrice), float64(aux.Total)
	return nil
}

// MarshalJSON writes the invoice with a non-finite tax rate as a string.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	type plain Invoice
	return json.Marshal(struct {
		plain
		TaxRate number `json:"taxRate"`
	}{plain(inv), number(inv.TaxRate)})
}

// UnmarshalJSON reads a tax rate written by MarshalJSON.
func (inv *Invoice) UnmarshalJSON(b []byte) error {
	type plain Invoice
	aux := struct {
		*plain
		TaxRate number `json:"taxRate"`
	}{plain: (*plain)(inv)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	inv.TaxRate = float64(aux.TaxRate)
	return nil
}
