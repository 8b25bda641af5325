package repository

import (
	"net/http"
	"strings"
	"time"

	bCtx "github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
)

type ipfsGatewayReaderRepo struct {
	client     *http.Client
	gateway    string
	ctxTimeout time.Duration
}

// NewIpfsGatewayReaderRepo reads cids through an http gateway, e.g.
// https://gateway.pinata.cloud/ipfs
func NewIpfsGatewayReaderRepo(c *http.Client, gateway string, timeout time.Duration) domain.ContentReaderRepository {
	return &ipfsGatewayReaderRepo{client: c, gateway: strings.TrimSuffix(gateway, "/"), ctxTimeout: timeout}
}

func (r *ipfsGatewayReaderRepo) Get(c bCtx.Ctx, cid string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.gateway+"/"+cid, nil)
	if err != nil {
		return nil, err
	}
	return readBody(ctx, r.client, req, log.Fields{"cid": cid})
}
