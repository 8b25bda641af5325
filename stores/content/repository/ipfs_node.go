package repository

import (
	"bytes"
	"io"
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/domain"
)

const ipfsScheme = "ipfs://"

type ipfsNodeApiReaderRepo struct {
	shell      *ipfsapi.Shell
	ctxTimeout time.Duration
}

func NewIpfsNodeApiReaderRepo(s *ipfsapi.Shell, timeout time.Duration) domain.ContentReaderRepository {
	return &ipfsNodeApiReaderRepo{shell: s, ctxTimeout: timeout}
}

func (r *ipfsNodeApiReaderRepo) Get(c ctx.Ctx, cid string) ([]byte, error) {
	tc, cancel := ctx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	resp, err := r.shell.Request("cat", cid).Send(tc)
	if err != nil {
		c.WithField("err", err).Error("shell.Request failed")
		return nil, err
	}
	defer resp.Close()
	if resp.Error != nil {
		c.WithField("resp.Error", resp.Error).Error("shell.Request failed")
		return nil, resp.Error
	}
	return io.ReadAll(resp.Output)
}

type ipfsNodeApiWriterRepo struct {
	shell *ipfsapi.Shell
}

// NewIpfsNodeApiWriterRepo adds and pins content on an ipfs node. Locators
// are ipfs://<cid>.
func NewIpfsNodeApiWriterRepo(s *ipfsapi.Shell) domain.ContentWriterRepository {
	return &ipfsNodeApiWriterRepo{shell: s}
}

func (r *ipfsNodeApiWriterRepo) Store(c ctx.Ctx, name string, data []byte, _ string) (string, error) {
	cid, err := r.shell.Add(bytes.NewReader(data), ipfsapi.Pin(true))
	if err != nil {
		c.WithField("err", err).WithField("name", name).Error("shell.Add failed")
		return "", err
	}
	return ipfsScheme + cid, nil
}
