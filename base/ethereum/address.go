package ethereum

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/collectibles/domain"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	if privateKey, err := crypto.GenerateKey(); err != nil {
		return nil, nil, err
	} else {
		publicKey := privateKey.Public().(*ecdsa.PublicKey)
		return privateKey, publicKey, nil
	}
}

// ParsePrivateKey accepts a hex key with or without 0x prefix
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, domain.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, "", err
	}
	return key, AddressOf(key), nil
}

// AddressOf returns the lower cased account of key
func AddressOf(key *ecdsa.PrivateKey) domain.Address {
	return ToDomain(crypto.PubkeyToAddress(key.PublicKey))
}

func ToDomain(addr common.Address) domain.Address {
	return domain.Address(addr.Hex()).ToLower()
}

func ToCommon(addr domain.Address) common.Address {
	return common.HexToAddress(string(addr))
}
