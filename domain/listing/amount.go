package listing

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/collectibles/domain"
)

// Decimals of the ledger currency
const Decimals = 18

// ParseAmount reads a decimal amount in whole currency units ("1.5") and
// returns it in wei. Amounts finer than one wei are rejected.
func ParseAmount(units string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(units))
	if err != nil {
		return nil, xerrors.Errorf("%q: %w", units, domain.ErrInvalidNumberFormat)
	}
	wei := d.Shift(Decimals)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, xerrors.Errorf("%q has more than %d decimals: %w", units, Decimals, domain.ErrInvalidNumberFormat)
	}
	return wei.BigInt(), nil
}

// ParseWei reads an integer amount already in wei
func ParseWei(wei string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(wei), 10)
	if !ok {
		return nil, xerrors.Errorf("%q: %w", wei, domain.ErrInvalidNumberFormat)
	}
	return n, nil
}

// FormatAmount renders wei in whole currency units
func FormatAmount(wei *big.Int) string {
	return decimal.NewFromBigInt(domain.BigIntOrZero(wei), -Decimals).String()
}
