package repository

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/service/pinata"
)

func Test_pinataWriterRepo_Store(t *testing.T) {
	req := require.New(t)
	var paths []string
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, string(b))
		if r.URL.Path == "/pinning/pinJSONToIPFS" {
			w.Write([]byte(`{"IpfsHash":"QmMetadata"}`))
			return
		}
		w.Write([]byte(`{"IpfsHash":"QmAsset"}`))
	}))
	defer srv.Close()

	p := pinata.New(pinata.Config{Endpoint: srv.URL, Client: srv.Client()})
	r := NewPinataWriterRepo(p, "https://gateway.pinata.cloud/ipfs/")

	locator, err := r.Store(bCtx.Background(), "asset.png", []byte("png"), "image/png")
	req.NoError(err)
	req.Equal("https://gateway.pinata.cloud/ipfs/QmAsset", locator)

	locator, err = r.Store(bCtx.Background(), "metadata.json", []byte(`{"name":"Sunrise"}`), "application/json")
	req.NoError(err)
	req.Equal("https://gateway.pinata.cloud/ipfs/QmMetadata", locator)

	req.Equal([]string{"/pinning/pinFileToIPFS", "/pinning/pinJSONToIPFS"}, paths)
	req.Contains(bodies[1], `"pinataContent":{"name":"Sunrise"}`)
}

func Test_pinataWriterRepo_StoreFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := pinata.New(pinata.Config{Endpoint: srv.URL, Client: srv.Client()})
	r := NewPinataWriterRepo(p, "https://gateway.pinata.cloud/ipfs")
	_, err := r.Store(bCtx.Background(), "asset.png", []byte("png"), "image/png")
	require.ErrorIs(t, err, pinata.ErrRequestFailed)
}
