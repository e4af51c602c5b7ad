// Package network 定义 Tea Sepolia 测试网的静态描述
//
// 🌐 **网络描述 (Network Descriptor)**
//
// 进程内只存在一份网络描述，启动时创建后不再修改。
// 质押、赎回和领取奖励都发往同一个 stTEA 合约。
package network

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Tea Sepolia 固定参数
const (
	DefaultName        = "Tea Sepolia"
	DefaultRPCURL      = "https://tea-sepolia.g.alchemy.com/public"
	DefaultChainID     = 10218
	DefaultSymbol      = "TEA"
	DefaultExplorerURL = "https://sepolia.tea.xyz"

	// StakingContractAddress stTEA 合约地址
	StakingContractAddress = "0x04290DACdb061C6C9A0B9735556744be49A64012"

	// StakedSymbol 质押凭证代币符号
	StakedSymbol = "stTEA"
)

// 每类操作固定的 gas 上限，同时用于费用预估
const (
	GasLimitStake    uint64 = 200000
	GasLimitWithdraw uint64 = 100000
	GasLimitClaim    uint64 = 100000
	GasLimitTransfer uint64 = 21000
)

// ClaimRewardsSelector 领取奖励入口的函数选择器，不带参数
var ClaimRewardsSelector = common.FromHex("0x3d18b912")

// Network 网络描述
type Network struct {
	Name            string
	RPCURL          string
	ChainID         *big.Int
	Symbol          string
	ExplorerURL     string
	StakingContract common.Address
}

// Option 网络描述的可选覆盖项
type Option func(*Network)

// WithRPCURL 覆盖 RPC 地址，空字符串保持默认
func WithRPCURL(url string) Option {
	return func(n *Network) {
		if url = strings.TrimSpace(url); url != "" {
			n.RPCURL = url
		}
	}
}

// New 创建 Tea Sepolia 网络描述
func New(opts ...Option) *Network {
	n := &Network{
		Name:            DefaultName,
		RPCURL:          DefaultRPCURL,
		ChainID:         big.NewInt(DefaultChainID),
		Symbol:          DefaultSymbol,
		ExplorerURL:     DefaultExplorerURL,
		StakingContract: common.HexToAddress(StakingContractAddress),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// TxURL 返回交易在区块浏览器中的地址
func (n *Network) TxURL(hash common.Hash) string {
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(n.ExplorerURL, "/"), hash.Hex())
}
