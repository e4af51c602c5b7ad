// Package env 负责从进程环境与本地文件加载运行配置
//
// 📋 **配置来源**
// - .env 文件（存在时加载，不覆盖已设置的环境变量）
// - PRIVATE_KEY1..N 私钥，编号连续，遇到第一个缺口停止
// - TEABOT_* 运行参数（envconfig）
// - 代理列表文件，每行一个代理
package env

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// PrivateKeyPrefix 私钥环境变量前缀
const PrivateKeyPrefix = "PRIVATE_KEY"

// envPrefix 运行参数环境变量前缀
const envPrefix = "TEABOT"

var (
	// ErrNoPrivateKeys 未配置任何私钥
	ErrNoPrivateKeys = errors.New("no private keys found in environment")
)

// Settings 运行参数
type Settings struct {
	EnvFile   string `envconfig:"ENV_FILE" default:".env"`
	ProxyFile string `envconfig:"PROXY_FILE" default:"proxies.txt"`
	RPCURL    string `envconfig:"RPC_URL"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile   string `envconfig:"LOG_FILE" default:"./logs/teabot.log"`
}

// LookupFunc 环境变量查询函数，签名与 os.LookupEnv 一致
type LookupFunc func(key string) (string, bool)

// LoadDotEnv 加载 .env 文件，文件不存在时忽略
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("加载 %s 失败: %w", path, err)
	}
	return nil
}

// LoadSettings 解析 TEABOT_* 运行参数
// 先按 EnvFile 加载 .env，再解析一次，使 .env 中的 TEABOT_* 生效
func LoadSettings() (*Settings, error) {
	s := &Settings{}
	if err := envconfig.Process(envPrefix, s); err != nil {
		return nil, fmt.Errorf("解析运行参数失败: %w", err)
	}
	if err := LoadDotEnv(s.EnvFile); err != nil {
		return nil, err
	}
	if err := envconfig.Process(envPrefix, s); err != nil {
		return nil, fmt.Errorf("解析运行参数失败: %w", err)
	}
	return s, nil
}

// LoadPrivateKeys 按编号读取 PRIVATE_KEY1、PRIVATE_KEY2…，遇到缺失或空值即停止
func LoadPrivateKeys(lookup LookupFunc) ([]string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var keys []string
	for i := 1; ; i++ {
		value, ok := lookup(PrivateKeyPrefix + strconv.Itoa(i))
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			break
		}
		keys = append(keys, value)
	}

	if len(keys) == 0 {
		return nil, ErrNoPrivateKeys
	}
	return keys, nil
}

// LoadProxies 读取代理文件，去掉首尾空白并丢弃空行
// 文件不存在时返回 os.ErrNotExist 包装后的错误，调用方按无代理处理
func LoadProxies(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开代理文件 %s: %w", path, err)
	}
	defer f.Close()

	var proxies []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		proxies = append(proxies, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取代理文件 %s: %w", path, err)
	}
	return proxies, nil
}
