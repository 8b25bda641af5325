package chain

import (
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
)

type ClientCfg struct {
	Caller bind.ContractCaller
}

// Client calls view methods of a contract at the latest block
type Client interface {
	Call(c ctx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
}

type clientImpl struct {
	caller bind.ContractCaller
}

func NewClient(cfg *ClientCfg) Client {
	return &clientImpl{caller: cfg.Caller}
}

func (cl *clientImpl) Call(c ctx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	data, err := _abi.Pack(method, params...)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := cl.caller.CallContract(c, msg, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "method": method}).Error("CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "method": method}).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}
