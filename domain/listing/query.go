package listing

import (
	"math/big"
	"sort"

	"github.com/x-xyz/collectibles/domain"
)

type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

func (s SortOrder) IsValid() bool {
	return s == SortNone || s == SortPriceAsc || s == SortPriceDesc
}

// Query selects and orders the marketplace view
type Query struct {
	Category string         `query:"category"`
	SaleKind SaleKind       `query:"saleKind"`
	Seller   domain.Address `query:"seller"`
	Sort     SortOrder      `query:"sort"`
}

func (q Query) Validate() error {
	verr := &domain.ValidationError{}
	if q.SaleKind != "" && !q.SaleKind.IsValid() {
		verr.Addf("saleKind", "unknown sale kind %q", q.SaleKind)
	}
	if !q.Sort.IsValid() {
		verr.Addf("sort", "unknown sort order %q", q.Sort)
	}
	return verr.OrNil()
}

func (q Query) Match(l *Listing) bool {
	if q.Category != "" && q.Category != l.Metadata.Category {
		return false
	}
	if q.SaleKind != "" && q.SaleKind != l.SaleKind {
		return false
	}
	if !q.Seller.IsEmpty() && !q.Seller.Equals(l.Seller) {
		return false
	}
	return true
}

// Apply filters ls and sorts the survivors. The input order is kept for
// equal prices and when no sort is requested.
func (q Query) Apply(ls []*Listing) []*Listing {
	res := make([]*Listing, 0, len(ls))
	for _, l := range ls {
		if q.Match(l) {
			res = append(res, l)
		}
	}
	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(res, func(i, j int) bool {
			return comparePrice(res[i], res[j]) < 0
		})
	case SortPriceDesc:
		sort.SliceStable(res, func(i, j int) bool {
			return comparePrice(res[i], res[j]) > 0
		})
	}
	return res
}

func comparePrice(a, b *Listing) int {
	return priceOf(a).Cmp(priceOf(b))
}

func priceOf(l *Listing) *big.Int {
	return domain.BigIntOrZero(l.TotalPrice)
}
