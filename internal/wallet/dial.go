package wallet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/weisyn/teabot/internal/chain"
)

// browserUserAgent 走代理时附带的 User-Agent
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// NormalizeProxy 缺少 scheme 的代理默认使用 http://
func NormalizeProxy(proxy string) string {
	proxy = strings.TrimSpace(proxy)
	if proxy == "" {
		return ""
	}
	if strings.HasPrefix(proxy, "http://") || strings.HasPrefix(proxy, "https://") {
		return proxy
	}
	return "http://" + proxy
}

// DialRPC 建立独占的 HTTP JSON-RPC 连接，可选经由代理
func DialRPC(ctx context.Context, rpcURL, proxy string) (chain.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	opts := []rpc.ClientOption{}

	if proxy != "" {
		proxyURL, err := url.Parse(NormalizeProxy(proxy))
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		opts = append(opts, rpc.WithHeader("User-Agent", browserUserAgent))
	} else {
		transport.Proxy = nil
	}
	opts = append(opts, rpc.WithHTTPClient(&http.Client{Transport: transport}))

	client, err := rpc.DialOptions(ctx, rpcURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return ethclient.NewClient(client), nil
}
