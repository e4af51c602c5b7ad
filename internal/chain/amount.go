package chain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Amount 表示原生代币金额（使用最小单位 wei）
//
// 金额系统：
//   - 1 TEA = 10^18 wei
//   - 使用 *big.Int 保存，解析时按十进制字符串逐位处理，不经过浮点数
type Amount struct {
	value *big.Int
}

// Decimals 原生代币与 stTEA 的小数位数
const Decimals = 18

// GweiDecimals gwei 相对 wei 的小数位数
const GweiDecimals = 9

var (
	// ErrInvalidAmount 无效的金额
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooManyDecimals 小数位超过 18 位
	ErrTooManyDecimals = errors.New("too many decimal places")
)

// ParseAmount 从十进制字符串解析金额
//
// 示例：
//
//	"1"      → 1000000000000000000 wei
//	"0.0001" → 100000000000000 wei
//	".5"     → 500000000000000000 wei
func ParseAmount(s string) (*Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(fracPart) > Decimals {
		return nil, fmt.Errorf("%w: %q", ErrTooManyDecimals, s)
	}

	digits := strings.TrimLeft(intPart+fracPart+strings.Repeat("0", Decimals-len(fracPart)), "0")
	if digits == "" {
		digits = "0"
	}
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return &Amount{value: value}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewAmountFromWei 从 wei 创建金额，nil 视为零
func NewAmountFromWei(wei *big.Int) *Amount {
	if wei == nil {
		return &Amount{value: big.NewInt(0)}
	}
	return &Amount{value: new(big.Int).Set(wei)}
}

// Wei 返回 wei 数值副本
func (a *Amount) Wei() *big.Int {
	if a == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(a.value)
}

// Mul 乘法：a * n
func (a *Amount) Mul(n int64) *Amount {
	return &Amount{value: new(big.Int).Mul(a.Wei(), big.NewInt(n))}
}

// IsPositive 判断金额是否为正
func (a *Amount) IsPositive() bool {
	return a != nil && a.value.Sign() > 0
}

// String 返回去掉末尾 0 的十进制表示
//
//	1500000000000000000 → "1.5"
//	1000000000000000000 → "1"
func (a *Amount) String() string {
	s := FormatUnits(a.Wei(), Decimals)
	return strings.TrimSuffix(s, ".0")
}

// Ether 返回至少保留一位小数的表示，与区块浏览器显示一致
//
//	1000000000000000000 → "1.0"
func (a *Amount) Ether() string {
	return FormatUnits(a.Wei(), Decimals)
}

// Fixed 返回保留 places 位小数（四舍五入）的表示
func (a *Amount) Fixed(places int) string {
	return FormatFixed(a.Wei(), Decimals, places)
}

// splitUnits 把整数按 decimals 位拆成整数部分和定长小数部分
func splitUnits(v *big.Int, decimals int) (neg bool, intPart, fracPart string) {
	s := new(big.Int).Abs(v).String()
	neg = v.Sign() < 0
	if decimals <= 0 {
		return neg, s, ""
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}
	return neg, s[:len(s)-decimals], s[len(s)-decimals:]
}

// FormatUnits 精确格式化，去掉小数末尾的 0 但至少保留一位
//
//	FormatUnits(1500000000, 9) → "1.5"
//	FormatUnits(0, 18)         → "0.0"
func FormatUnits(v *big.Int, decimals int) string {
	if v == nil {
		v = big.NewInt(0)
	}
	neg, intPart, fracPart := splitUnits(v, decimals)
	fracPart = strings.TrimRight(fracPart, "0")
	if fracPart == "" {
		fracPart = "0"
	}
	if neg {
		intPart = "-" + intPart
	}
	return intPart + "." + fracPart
}

// FormatFixed 保留 places 位小数，按绝对值四舍五入
//
//	FormatFixed(10000000000000000, 18, 4) → "0.0100"
//	FormatFixed(1234567890, 9, 2)         → "1.23"
func FormatFixed(v *big.Int, decimals, places int) string {
	if v == nil {
		v = big.NewInt(0)
	}
	if places < 0 {
		places = 0
	}

	abs := new(big.Int).Abs(v)
	if places < decimals {
		divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals-places)), nil)
		q, r := new(big.Int).QuoRem(abs, divisor, new(big.Int))
		if r.Lsh(r, 1).Cmp(divisor) >= 0 {
			q.Add(q, big.NewInt(1))
		}
		abs = q
	} else if places > decimals {
		abs.Mul(abs, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places-decimals)), nil))
	}

	_, intPart, fracPart := splitUnits(abs, places)
	out := intPart
	if places > 0 {
		out += "." + fracPart
	}
	if v.Sign() < 0 && abs.Sign() != 0 {
		out = "-" + out
	}
	return out
}
