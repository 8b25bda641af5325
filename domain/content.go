package domain

import (
	"github.com/x-xyz/collectibles/base/ctx"
)

// Asset is the binary a listing is minted for
type Asset struct {
	Name        string
	Data        []byte
	ContentType string
}

// Metadata is the JSON document a token uri points to
type Metadata struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Creator     Address `json:"creator,omitempty"`
	Category    string  `json:"category,omitempty"`
}

type ContentReaderRepository interface {
	Get(ctx.Ctx, string) ([]byte, error)
}

type ContentWriterRepository interface {
	// Store writes data and returns its content-addressed locator
	Store(c ctx.Ctx, name string, data []byte, contentType string) (string, error)
}

// ContentStore fails with ErrUpload on writes and ErrResolve on reads.
type ContentStore interface {
	PutAsset(c ctx.Ctx, asset Asset) (string, error)
	PutMetadata(c ctx.Ctx, md Metadata) (string, error)
	Resolve(c ctx.Ctx, locator string) (*Metadata, error)
}
