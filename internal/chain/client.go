// Package chain 封装与 EVM 兼容链交互所需的最小能力
//
// 🔗 **链交互 (Chain Interaction)**
//
// 本包提供：
// - Client：单个 RPC 连接需要具备的查询与广播方法（*ethclient.Client 直接满足）
// - Transactor：私钥签名、按实时 gas 价格构造并发送交易、等待回执
// - StakingContract：stTEA 合约的 ABI 编解码
// - Amount：十进制金额与 wei 的互转
package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client 单个钱包独占的链连接
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

var _ Client = (*ethclient.Client)(nil)

// EstimateFee 返回 gasPrice × gasUnits，仅用于预览展示
func EstimateFee(ctx context.Context, c Client, gasUnits uint64) (*Amount, error) {
	gasPrice, err := c.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	return NewAmountFromWei(new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasUnits))), nil
}
