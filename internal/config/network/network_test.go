package network

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	n := New()

	assert.Equal(t, "Tea Sepolia", n.Name)
	assert.Equal(t, DefaultRPCURL, n.RPCURL)
	assert.EqualValues(t, 10218, n.ChainID.Int64())
	assert.Equal(t, "TEA", n.Symbol)
	assert.Equal(t, common.HexToAddress("0x04290DACdb061C6C9A0B9735556744be49A64012"), n.StakingContract)
}

func TestWithRPCURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8545", New(WithRPCURL(" http://localhost:8545 ")).RPCURL)
	assert.Equal(t, DefaultRPCURL, New(WithRPCURL("  ")).RPCURL)
}

func TestTxURL(t *testing.T) {
	hash := common.HexToHash("0x01")
	n := New()
	n.ExplorerURL = "https://sepolia.tea.xyz/"

	assert.Equal(t, "https://sepolia.tea.xyz/tx/"+hash.Hex(), n.TxURL(hash))
}

func TestClaimSelector(t *testing.T) {
	assert.Equal(t, []byte{0x3d, 0x18, 0xb9, 0x12}, ClaimRewardsSelector)
}
