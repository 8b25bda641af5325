package usecase

import (
	"math/big"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	goValidator "github.com/go-playground/validator/v10"

	"github.com/x-xyz/collectibles/base/validator"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
)

var validate = goValidator.New()

// validateCreate collects every violation of req. For timed sales it also
// returns the duration the ledger is asked for, whole seconds from now.
func validateCreate(req *listing.CreateRequest, now time.Time) (time.Duration, error) {
	verr := validator.Collect(validate.Struct(req), nil)
	if strings.TrimSpace(req.Name) == "" && !verr.Has("name") {
		verr.Add("name", "is required")
	}

	validateAsset(req, verr)

	var duration time.Duration
	switch req.SaleKind {
	case listing.SaleKindFixedPrice:
		requirePositive(verr, "price", req.Price)
	case listing.SaleKindAuction:
		requirePositive(verr, "minBid", req.MinBid)
		duration = validateWindow(req, now, verr)
	case listing.SaleKindOpenBid:
		requirePositive(verr, "price", req.Price)
		requirePositive(verr, "minBid", req.MinBid)
		duration = validateWindow(req, now, verr)
	}

	if err := verr.OrNil(); err != nil {
		return 0, err
	}
	return duration, nil
}

func validateAsset(req *listing.CreateRequest, verr *domain.ValidationError) {
	if len(req.Asset.Data) == 0 {
		verr.Add("asset", "is required")
		return
	}
	mt := mimetype.Detect(req.Asset.Data)
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") || strings.HasPrefix(m.String(), "video/") {
			return
		}
	}
	verr.Addf("asset", "unsupported content type %s", mt.String())
}

func validateWindow(req *listing.CreateRequest, now time.Time, verr *domain.ValidationError) time.Duration {
	if req.Start == nil {
		verr.Add("start", "is required")
	}
	if req.End == nil {
		verr.Add("end", "is required")
	}
	if req.Start == nil || req.End == nil {
		return 0
	}
	if !req.End.After(*req.Start) {
		verr.Add("end", "must be after start")
		return 0
	}
	duration := req.End.Sub(now).Truncate(time.Second)
	if duration <= 0 {
		verr.Add("end", "must be at least one second from now")
		return 0
	}
	return duration
}

func requirePositive(verr *domain.ValidationError, field string, v *big.Int) {
	switch {
	case v == nil:
		verr.Add(field, "is required")
	case v.Sign() <= 0:
		verr.Add(field, "must be greater than 0")
	}
}
