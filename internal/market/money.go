package market

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// MicroPerSTX is the unit scale: 1 STX = 1,000,000 µSTX.
const MicroPerSTX = 1_000_000

var microScale = decimal.NewFromInt(MicroPerSTX)

// ParseSTX converts a human-entered STX amount to µSTX, exactly.
// Fractional digits beyond the unit scale are truncated toward zero,
// never rounded up. Negative amounts are rejected.
func ParseSTX(s string) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, validationErrorf("price", "not a valid amount: %q", s)
	}
	if d.IsNegative() {
		return 0, validationErrorf("price", "must not be negative")
	}

	micro := d.Mul(microScale).Truncate(0)
	bi := micro.BigInt()
	if !bi.IsUint64() {
		return 0, validationErrorf("price", "amount out of range: %q", s)
	}
	return bi.Uint64(), nil
}

// FormatMicroSTX renders a µSTX amount as STX with six decimals. Display
// only: the result must be re-parsed with ParseSTX before it is ever fed
// back into a transaction.
func FormatMicroSTX(micro uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(micro), -6).StringFixed(6)
}
