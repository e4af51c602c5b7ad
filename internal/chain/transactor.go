package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// DefaultReceiptPollInterval 回执轮询间隔
const DefaultReceiptPollInterval = time.Second

// ErrTxReverted 交易已上链但执行失败
var ErrTxReverted = errors.New("transaction reverted")

// Transactor 使用单个私钥签名并发送交易
type Transactor struct {
	key          *ecdsa.PrivateKey
	address      common.Address
	chainID      *big.Int
	pollInterval time.Duration
}

// NewTransactor 创建交易发送器
func NewTransactor(key *ecdsa.PrivateKey, chainID *big.Int) *Transactor {
	return &Transactor{
		key:          key,
		address:      crypto.PubkeyToAddress(key.PublicKey),
		chainID:      new(big.Int).Set(chainID),
		pollInterval: DefaultReceiptPollInterval,
	}
}

// WithPollInterval 设置回执轮询间隔
func (t *Transactor) WithPollInterval(d time.Duration) *Transactor {
	if d > 0 {
		t.pollInterval = d
	}
	return t
}

// Address 返回签名地址
func (t *Transactor) Address() common.Address {
	return t.address
}

// CallRequest 待发送交易的参数
type CallRequest struct {
	To       common.Address
	Value    *big.Int
	Data     []byte
	GasLimit uint64
}

// Send 以固定 gas 上限和提交时的实时 gas 价格构造、签名并广播交易
func (t *Transactor) Send(ctx context.Context, c Client, req CallRequest) (*types.Transaction, error) {
	nonce, err := c.PendingNonceAt(ctx, t.address)
	if err != nil {
		return nil, fmt.Errorf("获取 nonce 失败: %w", err)
	}

	gasPrice, err := c.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取 gas 价格失败: %w", err)
	}

	value := req.Value
	if value == nil {
		value = big.NewInt(0)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      req.GasLimit,
		To:       &req.To,
		Value:    value,
		Data:     req.Data,
	})

	signed, err := types.SignTx(tx, types.NewEIP155Signer(t.chainID), t.key)
	if err != nil {
		return nil, fmt.Errorf("签名交易失败: %w", err)
	}

	if err := c.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("广播交易失败: %w", err)
	}
	return signed, nil
}

// WaitMined 轮询直到交易被打包，没有超时，只随 ctx 取消
// 回执状态为失败时返回回执和 ErrTxReverted
func (t *Transactor) WaitMined(ctx context.Context, c Client, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("%w: %s", ErrTxReverted, hash.Hex())
			}
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			return nil, fmt.Errorf("查询回执失败: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ParsePrivateKey 解析十六进制私钥，允许 0x 前缀
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	if len(hexKey) >= 2 && (hexKey[:2] == "0x" || hexKey[:2] == "0X") {
		hexKey = hexKey[2:]
	}
	return crypto.HexToECDSA(hexKey)
}

// RandomAddress 生成一个全新的随机地址，私钥随即丢弃
func RandomAddress() (common.Address, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}
