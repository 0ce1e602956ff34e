// Package amount converts between display units ("0.2") and lamports.
package amount

import (
	"fmt"
	"math"
	"math/big"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits of one unit.
const Decimals = 9

var (
	perUnit    = decimal.NewFromInt(common.LamportsPerUnit)
	maxLamport = fromUint64(math.MaxUint64)
)

// Parse converts a unit amount such as "1.5" to lamports. Negative values,
// more than Decimals fractional digits and values above the lamport range
// are rejected with common.ErrInvalidInput.
func Parse(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", common.ErrInvalidInput, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative amount %q", common.ErrInvalidInput, s)
	}
	lamports := d.Mul(perUnit)
	if !lamports.Equal(lamports.Truncate(0)) {
		return 0, fmt.Errorf("%w: amount %q has more than %d decimals", common.ErrInvalidInput, s, Decimals)
	}
	if lamports.GreaterThan(maxLamport) {
		return 0, fmt.Errorf("%w: amount %q out of range", common.ErrInvalidInput, s)
	}
	return lamports.BigInt().Uint64(), nil
}

// Format renders lamports in units without trailing zeros.
func Format(lamports uint64) string {
	return fromUint64(lamports).Div(perUnit).String()
}

// FormatFixed renders lamports in units with all Decimals digits.
func FormatFixed(lamports uint64) string {
	return fromUint64(lamports).Div(perUnit).StringFixed(Decimals)
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
