// Package wallet 管理进程内的全部签名钱包
//
// 📋 **钱包注册表 (Wallet Registry)**
//
// 启动时按 PRIVATE_KEY 编号顺序构建一次，之后只读：
// - 第 i 个私钥与代理列表第 i 项按位置配对，超出代理列表长度的钱包不走代理
// - 无法解析的私钥被跳过并记录，不中断构建
// - 每个钱包独占一条 RPC 连接
// - 没有任何有效钱包时返回 ErrNoValidWallets，调用方以退出码 1 结束
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/teabot/internal/chain"
	"github.com/weisyn/teabot/internal/config/network"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
)

var (
	// ErrNoValidWallets 没有可用的钱包
	ErrNoValidWallets = errors.New("no valid wallets found")

	// ErrInvalidPrivateKey 私钥无法解析
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// Entry 单个钱包
type Entry struct {
	Index      int    // 对应 PRIVATE_KEY 的编号，从 1 开始
	Proxy      string // 原始代理字符串，未配置时为空
	Address    common.Address
	Client     chain.Client
	Transactor *chain.Transactor
}

// ProxyLabel 返回代理展示文本
func (e *Entry) ProxyLabel() string {
	if e.Proxy == "" {
		return "None"
	}
	return e.Proxy
}

// Skipped 构建时被跳过的私钥
type Skipped struct {
	Index  int
	Reason error
}

// Registry 钱包注册表
type Registry struct {
	entries []*Entry
	skipped []Skipped
}

// DialFunc 为单个钱包建立链连接，proxy 为空表示直连
type DialFunc func(ctx context.Context, rpcURL, proxy string) (chain.Client, error)

// Build 构建钱包注册表
func Build(ctx context.Context, keys, proxies []string, net *network.Network, dial DialFunc, logger log.Logger) (*Registry, error) {
	if dial == nil {
		dial = DialRPC
	}

	r := &Registry{}
	for i, raw := range keys {
		index := i + 1

		key, err := chain.ParsePrivateKey(raw)
		if err != nil {
			r.skip(logger, index, fmt.Errorf("%w for PRIVATE_KEY%d: %v", ErrInvalidPrivateKey, index, err))
			continue
		}

		var proxy string
		if i < len(proxies) {
			proxy = proxies[i]
		}

		client, err := dial(ctx, net.RPCURL, proxy)
		if err != nil {
			r.skip(logger, index, fmt.Errorf("connect PRIVATE_KEY%d: %w", index, err))
			continue
		}

		transactor := chain.NewTransactor(key, net.ChainID)
		r.entries = append(r.entries, &Entry{
			Index:      index,
			Proxy:      proxy,
			Address:    transactor.Address(),
			Client:     client,
			Transactor: transactor,
		})
		if logger != nil {
			logger.Infof("钱包 #%d 已加载: %s (proxy=%t)", index, transactor.Address().Hex(), proxy != "")
		}
	}

	if len(r.entries) == 0 {
		return r, ErrNoValidWallets
	}
	return r, nil
}

func (r *Registry) skip(logger log.Logger, index int, reason error) {
	r.skipped = append(r.skipped, Skipped{Index: index, Reason: reason})
	if logger != nil {
		logger.Warnf("跳过钱包 #%d: %v", index, reason)
	}
}

// Entries 按配置顺序返回全部钱包
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Skipped 返回被跳过的私钥
func (r *Registry) Skipped() []Skipped {
	return r.skipped
}

// Len 钱包数量
func (r *Registry) Len() int {
	return len(r.entries)
}

// Close 关闭所有连接
func (r *Registry) Close() {
	for _, e := range r.entries {
		e.Client.Close()
	}
}
