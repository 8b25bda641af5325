package repository

import (
	"io"
	"net/http"
	"time"

	bCtx "github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
	"golang.org/x/xerrors"
)

type httpReaderRepo struct {
	client     *http.Client
	ctxTimeout time.Duration
	headers    map[string]string
}

func NewHttpReaderRepo(client *http.Client, timeout time.Duration, headers map[string]string) domain.ContentReaderRepository {
	return &httpReaderRepo{client: client, ctxTimeout: timeout, headers: headers}
}

func (r *httpReaderRepo) Get(c bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	return readBody(ctx, r.client, req, log.Fields{"url": url})
}

func readBody(ctx bCtx.Ctx, client *http.Client, req *http.Request, fields log.Fields) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		ctx.WithFields(fields).WithField("err", err).Warn("failed with request")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(fields).WithField("statusCode", resp.StatusCode).Error("resp.StatusCode != 200")
		return nil, xerrors.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(fields).WithField("err", err).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
