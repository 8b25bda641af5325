package repository

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/service/pinata"
)

type pinataWriterRepo struct {
	pinata  pinata.Service
	gateway string
}

// NewPinataWriterRepo pins content on pinata. Locators are gateway urls, e.g.
// https://gateway.pinata.cloud/ipfs/<cid>, so any http client can resolve them.
func NewPinataWriterRepo(p pinata.Service, gateway string) domain.ContentWriterRepository {
	return &pinataWriterRepo{pinata: p, gateway: strings.TrimSuffix(gateway, "/")}
}

func (r *pinataWriterRepo) Store(c ctx.Ctx, name string, data []byte, contentType string) (string, error) {
	meta := pinata.WithMetadata(pinata.PinataMetadata{Name: name})

	var (
		cid string
		err error
	)
	if contentType == "application/json" && json.Valid(data) {
		cid, err = r.pinata.PinJson(c, json.RawMessage(data), meta)
	} else {
		cid, err = r.pinata.Pin(c, bytes.NewReader(data), name, meta)
	}
	if err != nil {
		c.WithField("err", err).WithField("name", name).Error("pinata.Pin failed")
		return "", err
	}
	return r.gateway + "/" + cid, nil
}
