package market

// Bounds enforced by the contract. Inputs are truncated client-side as a
// second line of defense; the contract remains the authority.
const (
	MaxNameLen        = 100
	MaxDescriptionLen = 200
)

// Item is a listed marketplace item.
type Item struct {
	ID          uint64 // ledger-assigned, sequential from 1
	Name        string
	Description string
	Price       uint64 // µSTX per unit
	Quantity    uint64 // units available
	Seller      string // seller principal
	Active      bool
}

// Purchasable reports whether the item can currently be bought.
func (i Item) Purchasable() bool {
	return i.Active && i.Quantity > 0
}
