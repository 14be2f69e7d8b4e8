package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"restaurant-billing/internal/menu"
)

const indent = "    "

// Entry describes one menu item inside a catalog. Entries read from a
// document keep their original bytes and are written back unchanged unless
// replaced.
type Entry struct {
	Price decimal.Decimal
	Type  menu.Kind
	Extra *string

	raw json.RawMessage
}

// Catalog maps item names to their entries.
type Catalog map[string]Entry

// entryJSON is the on-disk shape of an Entry; price is a plain JSON number.
type entryJSON struct {
	Price json.Number `json:"price"`
	Type  menu.Kind   `json:"type"`
	Extra *string     `json:"extra"`
}

// EntryFor derives the catalog entry of item from its variant.
func EntryFor(item menu.Item) Entry {
	extra := item.Extra()
	return Entry{
		Price: item.Price(),
		Type:  item.Kind(),
		Extra: &extra,
	}
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	return json.Marshal(entryJSON{
		Price: json.Number(e.Price.String()),
		Type:  e.Type,
		Extra: e.Extra,
	})
}

// UnmarshalJSON accepts any JSON value. Fields that are missing or of the
// wrong type are left zero; the value itself is kept for re-encoding.
func (e *Entry) UnmarshalJSON(data []byte) error {
	*e = Entry{raw: append(json.RawMessage(nil), data...)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	var price json.Number
	if isSet(fields["price"]) && json.Unmarshal(fields["price"], &price) == nil {
		if d, err := decimal.NewFromString(price.String()); err == nil {
			e.Price = d
		}
	}
	var kind string
	if isSet(fields["type"]) && json.Unmarshal(fields["type"], &kind) == nil {
		e.Type = menu.Kind(kind)
	}
	var extra string
	if isSet(fields["extra"]) && json.Unmarshal(fields["extra"], &extra) == nil {
		e.Extra = &extra
	}
	return nil
}

func isSet(v json.RawMessage) bool {
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}

// Encode renders c as an indented JSON object with sorted keys.
func Encode(c Catalog) ([]byte, error) {
	if c == nil {
		c = Catalog{}
	}
	data, err := json.MarshalIndent(c, "", indent)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses a catalog document. Only text that is not a JSON object is
// rejected; the entries themselves are not validated.
func Decode(data []byte) (Catalog, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return nil, fmt.Errorf("catalog document is not a JSON object")
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c == nil {
		c = Catalog{}
	}
	return c, nil
}
