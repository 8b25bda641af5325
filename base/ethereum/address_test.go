package ethereum

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/collectibles/domain"
)

func TestParsePrivateKey(t *testing.T) {
	req := require.New(t)
	key, _, err := GenerateKey()
	req.NoError(err)

	hexKey := "0x" + hex.EncodeToString(crypto.FromECDSA(key))
	parsed, addr, err := ParsePrivateKey(hexKey)
	req.NoError(err)
	req.Equal(key.D, parsed.D)
	req.Equal(AddressOf(key), addr)
	req.Equal(addr.ToLower(), addr)

	_, _, err = ParsePrivateKey("not a key")
	req.Error(err)
}

func TestAddressRoundTrip(t *testing.T) {
	addr := domain.Address("0x939ae6a4c8dfdbb1f7085189574f0a938013952a")
	require.Equal(t, addr, ToDomain(ToCommon(addr)))
}
