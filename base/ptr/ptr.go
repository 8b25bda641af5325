package ptr

import (
	"math/big"
	"time"
)

// Time return a pointer to the input value
func Time(value time.Time) *time.Time {
	return &value
}

// BigInt returns a new big.Int holding value
func BigInt(value int64) *big.Int {
	return big.NewInt(value)
}

// Copy returns a copy of v, or nil when v is nil
func Copy(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
