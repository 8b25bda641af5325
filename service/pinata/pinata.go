package pinata

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/x-xyz/collectibles/base/ctx"
)

var (
	ErrRequestFailed = errors.New("request failed")
)

type PinataMetadata struct {
	Name string `json:"name,omitempty"`
	// can only store string, bool, int
	KeyValues map[string]interface{} `json:"keyvalues,omitempty"`
}

type PinataOptions struct {
	CidVersion CidVersion `json:"cidVersion"`
}

type CidVersion uint8

const (
	CidVersion_0 CidVersion = 0
	CidVersion_1 CidVersion = 1
)

type PinOptions struct {
	Metadata      *PinataMetadata `json:"pinataMetadata,omitempty"`
	Options       *PinataOptions  `json:"pinataOptions,omitempty"`
	PinataContent interface{}     `json:"pinataContent"`
}

type Options func(*PinOptions) error

func GetPinOptions(opts ...Options) (*PinOptions, error) {
	res := &PinOptions{}

	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func WithMetadata(metadata PinataMetadata) Options {
	return func(options *PinOptions) error {
		options.Metadata = &metadata
		return nil
	}
}

func WithOptions(pinataOptions PinataOptions) Options {
	return func(options *PinOptions) error {
		options.Options = &pinataOptions
		return nil
	}
}

// Pin is one row of the pin list
type Pin struct {
	IpfsHash   string    `json:"ipfs_pin_hash"`
	DatePinned time.Time `json:"date_pinned"`
	Metadata   struct {
		Name      string            `json:"name"`
		KeyValues map[string]string `json:"keyvalues"`
	} `json:"metadata"`
}

type Config struct {
	ApiKey    string
	ApiSecret string
	// Endpoint defaults to the public pinata api
	Endpoint string
	Client   HttpDoer
}

// HttpDoer is satisfied by *http.Client
type HttpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type Service interface {
	Pin(c ctx.Ctx, file io.Reader, filename string, opts ...Options) (string, error)
	PinJson(c ctx.Ctx, value interface{}, opts ...Options) (string, error)
	// PinList returns pinned objects whose metadata key values equal every
	// entry of keyvalues, newest first.
	PinList(c ctx.Ctx, keyvalues map[string]string) ([]Pin, error)
}
