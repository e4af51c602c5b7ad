package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/teabot/internal/chain/testutil"
)

var stakingAddr = common.HexToAddress("0x04290DACdb061C6C9A0B9735556744be49A64012")

func TestStakingPack(t *testing.T) {
	c, err := NewStakingContract(stakingAddr)
	require.NoError(t, err)
	assert.Equal(t, stakingAddr, c.Address())

	stake, err := c.PackStake()
	require.NoError(t, err)
	// keccak256("stake()")[:4]
	assert.Equal(t, common.FromHex("0x3a4b66f1"), stake)

	withdraw, err := c.PackWithdraw(big.NewInt(1))
	require.NoError(t, err)
	// keccak256("withdraw(uint256)")[:4]
	assert.Equal(t, common.FromHex("0x2e1a7d4d"), withdraw[:4])
	assert.Len(t, withdraw, 36)
	assert.Equal(t, byte(1), withdraw[35])
}

func TestBalanceOf(t *testing.T) {
	c, err := NewStakingContract(stakingAddr)
	require.NoError(t, err)
	account := common.HexToAddress(testutil.TestAddressHex)

	client := new(testutil.MockClient)
	encoded := math.U256Bytes(big.NewInt(1234))
	client.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		// keccak256("balanceOf(address)")[:4]
		return *msg.To == stakingAddr && common.Bytes2Hex(msg.Data[:4]) == "70a08231"
	}), (*big.Int)(nil)).Return(encoded, nil)

	balance, err := c.BalanceOf(context.Background(), client, account)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1234), balance)
}

func TestBalanceOfEmptyResult(t *testing.T) {
	c, err := NewStakingContract(stakingAddr)
	require.NoError(t, err)

	client := new(testutil.MockClient)
	client.On("CallContract", mock.Anything, mock.Anything, mock.Anything).Return([]byte{}, nil)

	_, err = c.BalanceOf(context.Background(), client, common.Address{})
	assert.Error(t, err)
}
