package market

import (
	"github.com/stxfarm/farm-market/internal/clarity"
)

// DecodeItem converts a raw get-item response into an Item. ok is false
// when the response is the optional none, i.e. no item was ever created
// under this id.
//
// Field decoding is deliberately permissive for parity with the contract
// frontend: a malformed field yields its zero value, and active defaults
// to true, rather than failing the item.
func DecodeItem(raw clarity.Raw, id uint64) (Item, bool) {
	inner, ok := clarity.Unwrap(raw)
	if !ok {
		return Item{}, false
	}

	return Item{
		ID:          id,
		Name:        clarity.AsString(clarity.Field(inner, "name")),
		Description: clarity.AsString(clarity.Field(inner, "description")),
		Price:       clarity.AsUint(clarity.Field(inner, "price")),
		Quantity:    clarity.AsUint(clarity.Field(inner, "quantity")),
		Seller:      clarity.AsString(clarity.Field(inner, "seller")),
		Active:      clarity.AsBool(clarity.Field(inner, "active"), true),
	}, true
}
