package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/collectibles/base/abi"
	"github.com/x-xyz/collectibles/base/ctx"
)

type fakeCaller struct {
	out []byte
	err error
	msg ethereum.CallMsg
}

func (f *fakeCaller) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{1}, nil
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.msg = msg
	return f.out, f.err
}

func TestCall(t *testing.T) {
	req := require.New(t)
	out, err := abi.MarketplaceABI.Methods["itemCount"].Outputs.Pack(big.NewInt(5))
	req.NoError(err)

	caller := &fakeCaller{out: out}
	cl := NewClient(&ClientCfg{Caller: caller})
	addr := common.HexToAddress("0x939ae6a4c8dfdbb1f7085189574f0a938013952a")

	res, err := cl.Call(ctx.Background(), addr, abi.MarketplaceABI, "itemCount")
	req.NoError(err)
	req.Len(res, 1)
	req.Equal(big.NewInt(5), res[0].(*big.Int))
	req.Equal(addr, *caller.msg.To)
	req.Equal(abi.MarketplaceABI.Methods["itemCount"].ID, caller.msg.Data[:4])
}

func TestCallFailed(t *testing.T) {
	errRpc := errors.New("rpc down")
	cl := NewClient(&ClientCfg{Caller: &fakeCaller{err: errRpc}})
	_, err := cl.Call(ctx.Background(), common.Address{}, abi.MarketplaceABI, "itemCount")
	require.Equal(t, errRpc, err)

	_, err = cl.Call(ctx.Background(), common.Address{}, abi.MarketplaceABI, "items", "not a number")
	require.Error(t, err)
}
