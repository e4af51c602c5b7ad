package testutil

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
)

// 固定测试私钥（公开的开发网账户，切勿用于真实资金）
const (
	TestKeyHex     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	TestAddressHex = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

	TestKeyHex2     = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	TestAddressHex2 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

// GasPriceWei 测试用 gas 价格 1 gwei
var GasPriceWei = big.NewInt(1_000_000_000)

// MinedReceipt 构造成功回执
func MinedReceipt(block int64) *types.Receipt {
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(block),
	}
}

// RevertedReceipt 构造失败回执
func RevertedReceipt(block int64) *types.Receipt {
	return &types.Receipt{
		Status:      types.ReceiptStatusFailed,
		BlockNumber: big.NewInt(block),
	}
}

// ExpectSubmitAndMine 为一次完整的发送流程设置期望：nonce、gas 价格、广播、回执
func ExpectSubmitAndMine(m *MockClient, block int64) {
	m.On("PendingNonceAt", mock.Anything, mock.Anything).Return(uint64(0), nil).Once()
	m.On("SuggestGasPrice", mock.Anything).Return(GasPriceWei, nil).Once()
	m.On("SendTransaction", mock.Anything, mock.Anything).Return(nil).Once()
	m.On("TransactionReceipt", mock.Anything, mock.Anything).Return(MinedReceipt(block), nil).Once()
}
