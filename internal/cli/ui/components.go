// Package ui 提供终端交互组件
//
// 📋 **终端界面 (Terminal UI)**
//
// - Components：基于 pterm 的展示组件（标题、面板、提示、加载动画）
// - Session：进程级的逐行输入会话，输入流关闭时返回 ErrInputClosed
// - Gate：交易预览与 y/n 确认
package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

// Components UI组件接口
type Components interface {
	// 面板和布局组件
	ShowHeader(text string)
	ShowBanner(text string)
	ShowPanel(title, content string)
	ShowPreview(title string, fields []Field)
	ShowMenu(title string, options []string)

	// 状态显示组件
	ShowText(message string)
	ShowMuted(message string)
	ShowSuccess(message string)
	ShowError(message string)
	ShowWarning(message string)
	ShowInfo(message string)

	// 进度反馈组件
	ShowSpinner(message string) Spinner

	// Clear 清屏
	Clear()
}

// Spinner 加载动画接口
type Spinner interface {
	Start() error
	Success(message string) error
	Stop() error
}

// Field 预览中的一行
type Field struct {
	Key   string
	Value string
}

// ThemeConfig 主题配置
type ThemeConfig struct {
	PrimaryColor   pterm.Color
	SecondaryColor pterm.Color
	SuccessColor   pterm.Color
	WarningColor   pterm.Color
	ErrorColor     pterm.Color
	InfoColor      pterm.Color
	MutedColor     pterm.Color
}

// getDefaultTheme 默认主题
func getDefaultTheme() *ThemeConfig {
	return &ThemeConfig{
		PrimaryColor:   pterm.FgCyan,
		SecondaryColor: pterm.FgLightCyan,
		SuccessColor:   pterm.FgGreen,
		WarningColor:   pterm.FgYellow,
		ErrorColor:     pterm.FgRed,
		InfoColor:      pterm.FgLightBlue,
		MutedColor:     pterm.FgGray,
	}
}

// TruncateAddress 地址缩写为前 6 位 + "..." + 后 4 位
func TruncateAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// FormatPreviewLine 预览行格式：键名左对齐补齐到 10 列
func FormatPreviewLine(f Field) string {
	key := f.Key
	if pad := 10 - len(key); pad > 0 {
		key += strings.Repeat(" ", pad)
	}
	return key + " : " + f.Value
}
