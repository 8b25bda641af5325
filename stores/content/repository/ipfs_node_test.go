package repository

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/collectibles/base/ctx"
)

func newIpfsNode(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/add":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"Name":"QmAdded","Hash":"QmAdded","Size":"7"}`))
		case "/api/v0/cat":
			if r.URL.Query().Get("arg") != "QmAdded" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"Message":"not found","Code":0,"Type":"error"}`))
				return
			}
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("content"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func Test_ipfsNodeApi(t *testing.T) {
	req := require.New(t)
	srv := newIpfsNode(t)
	defer srv.Close()

	shell := ipfsapi.NewShellWithClient(srv.URL, srv.Client())

	w := NewIpfsNodeApiWriterRepo(shell)
	locator, err := w.Store(bCtx.Background(), "asset.png", []byte("content"), "image/png")
	req.NoError(err)
	req.Equal("ipfs://QmAdded", locator)

	r := NewIpfsNodeApiReaderRepo(shell, 10*time.Second)
	b, err := r.Get(bCtx.Background(), "QmAdded")
	req.NoError(err)
	req.Equal([]byte("content"), b)

	_, err = r.Get(bCtx.Background(), "QmMissing")
	req.Error(err)
}
