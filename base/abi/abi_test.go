package abi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestABIs(t *testing.T) {
	req := require.New(t)
	for _, m := range []string{"makeItem", "createAuction", "createOpenBid", "purchaseItem", "placeBid", "removeItem", "endAuction", "itemCount", "auctionCount", "items", "auctions", "getTotalPrice"} {
		_, ok := MarketplaceABI.Methods[m]
		req.True(ok, m)
	}
	req.Len(MarketplaceABI.Methods["items"].Outputs, 7)
	req.Len(MarketplaceABI.Methods["auctions"].Outputs, 12)
	req.True(MarketplaceABI.Methods["placeBid"].IsPayable())
	for _, e := range []string{"Offered", "AuctionCreated", "Bought"} {
		_, ok := MarketplaceABI.Events[e]
		req.True(ok, e)
	}

	for _, m := range []string{"mint", "setApprovalForAll", "isApprovedForAll", "tokenURI"} {
		_, ok := NftABI.Methods[m]
		req.True(ok, m)
	}
	// keccak256("Transfer(address,address,uint256)")
	req.Equal("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", NftABI.Events["Transfer"].ID.Hex())
}
