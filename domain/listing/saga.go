package listing

import (
	"math/big"
	"time"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
)

// CreateRequest is everything needed to turn an upload into a listing.
// Amounts are in wei.
type CreateRequest struct {
	Name        string         `validate:"required"`
	Description string         `validate:"max=2000"`
	Category    string         `validate:"max=64"`
	Seller      domain.Address `validate:"required,eth_addr"`
	SaleKind    SaleKind       `validate:"required,oneof=fixedPrice auction openBid"`
	Asset       domain.Asset
	Price       *big.Int
	MinBid      *big.Int
	Start       *time.Time
	End         *time.Time
}

type SagaStep string

const (
	SagaStepPutAsset    SagaStep = "putAsset"
	SagaStepPutMetadata SagaStep = "putMetadata"
	SagaStepMint        SagaStep = "mint"
	SagaStepApprove     SagaStep = "approve"
	SagaStepList        SagaStep = "list"
)

// SagaSteps is the only order steps may run in
var SagaSteps = []SagaStep{
	SagaStepPutAsset,
	SagaStepPutMetadata,
	SagaStepMint,
	SagaStepApprove,
	SagaStepList,
}

// TouchesLedger reports whether a failure of the step may have left ledger
// state behind.
func (s SagaStep) TouchesLedger() bool {
	return s == SagaStepMint || s == SagaStepApprove || s == SagaStepList
}

// StepResult is the outcome of one step. Exactly one of the value fields is
// set when Err is nil.
type StepResult struct {
	Step    SagaStep
	Locator string
	AssetId *big.Int
	Key     *Key
	Err     error
}

func (r StepResult) Ok() bool {
	return r.Err == nil
}

// SagaState is a snapshot of a saga's progress
type SagaState struct {
	Id              string     `json:"id"`
	Completed       []SagaStep `json:"completed"`
	AssetLocator    string     `json:"assetLocator,omitempty"`
	MetadataLocator string     `json:"metadataLocator,omitempty"`
	AssetId         *big.Int   `json:"assetId,omitempty"`
	Key             *Key       `json:"key,omitempty"`
}

// SagaError tells which step stopped a saga and whether the ledger was
// touched before it did.
type SagaError struct {
	Step            SagaStep
	Err             error
	OrphanedAssetId *big.Int
	// Cancelled is set when the saga stopped before Step started
	Cancelled bool
}

func (e *SagaError) Error() string {
	return "saga step " + string(e.Step) + ": " + e.Err.Error()
}

func (e *SagaError) Unwrap() error {
	return e.Err
}

// Partial is true when the failed step was a ledger write, so the saga may
// have changed ledger state.
func (e *SagaError) Partial() bool {
	if e.Orphaned() {
		return true
	}
	return e.Step.TouchesLedger() && !e.Cancelled
}

// Retryable is true when nothing happened and the saga can be run again
// from the first step.
func (e *SagaError) Retryable() bool {
	return !e.Partial()
}

// Orphaned is true when an asset was minted but never listed
func (e *SagaError) Orphaned() bool {
	return e.OrphanedAssetId != nil
}

// MintUnconfirmed is true when a submitted mint failed or timed out. The
// token may still land on the ledger, with an id the saga never learned.
func (e *SagaError) MintUnconfirmed() bool {
	return e.Step == SagaStepMint && !e.Cancelled
}

// NeedsOperator is true when the ledger may hold an asset that no listing
// points to.
func (e *SagaError) NeedsOperator() bool {
	return e.Orphaned() || e.MintUnconfirmed()
}

// AssetIdString is the orphaned asset id, or "unknown" for an unconfirmed
// mint.
func (e *SagaError) AssetIdString() string {
	if e.OrphanedAssetId == nil {
		return "unknown"
	}
	return e.OrphanedAssetId.String()
}

// OrphanNotifier tells an operator about an asset that was minted but never
// listed, or may have been, so it can be listed or burned by hand.
type OrphanNotifier interface {
	NotifyOrphan(c ctx.Ctx, seller domain.Address, serr *SagaError) error
}
