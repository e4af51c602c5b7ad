package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// clearSequence 终端复位序列
const clearSequence = "\x1Bc"

// components UI组件集合的具体实现
type components struct {
	out         io.Writer
	interactive bool
	theme       *ThemeConfig
}

// NewComponents 创建UI组件实例
// interactive 为 false 时（输出不是终端）不清屏，加载动画退化为普通文本
func NewComponents(out io.Writer, interactive bool) Components {
	return &components{
		out:         out,
		interactive: interactive,
		theme:       getDefaultTheme(),
	}
}

func (c *components) println(s string) {
	fmt.Fprintln(c.out, s)
}

// ShowHeader 显示页面头部
func (c *components) ShowHeader(text string) {
	c.println(pterm.DefaultHeader.
		WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack, pterm.Bold)).
		Sprint(text))
}

// ShowBanner 显示形如 "===== TEXT =====" 的阶段横幅
func (c *components) ShowBanner(text string) {
	c.println(pterm.NewStyle(pterm.FgWhite, pterm.Bold).Sprint("===== " + text + " ====="))
}

// ShowPanel 显示带标题的面板
func (c *components) ShowPanel(title, content string) {
	c.println(pterm.DefaultBox.
		WithTitle(title).
		WithTitleTopCenter().
		WithBoxStyle(pterm.NewStyle(c.theme.PrimaryColor)).
		Sprint(content))
}

// ShowPreview 显示交易预览框，字段按传入顺序排列
func (c *components) ShowPreview(title string, fields []Field) {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, FormatPreviewLine(f))
	}
	c.println(pterm.DefaultBox.
		WithTitle(title).
		WithTitleTopLeft().
		WithBoxStyle(pterm.NewStyle(c.theme.WarningColor)).
		Sprint(strings.Join(lines, "\n")))
}

// ShowMenu 显示编号菜单
func (c *components) ShowMenu(title string, options []string) {
	c.println(pterm.NewStyle(c.theme.PrimaryColor, pterm.Bold).Sprint(title))
	for i, opt := range options {
		c.println(fmt.Sprintf("  %s %s", pterm.NewStyle(c.theme.SecondaryColor).Sprintf("%d.", i+1), opt))
	}
	c.println("")
}

// ShowText 显示普通文本
func (c *components) ShowText(message string) {
	c.println(message)
}

// ShowMuted 显示次要信息
func (c *components) ShowMuted(message string) {
	c.println(pterm.NewStyle(c.theme.MutedColor).Sprint(message))
}

// ShowSuccess 显示成功消息
func (c *components) ShowSuccess(message string) {
	c.println(strings.TrimRight(pterm.Success.WithPrefix(pterm.Prefix{
		Text:  "SUCCESS",
		Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	}).WithMessageStyle(pterm.NewStyle(c.theme.SuccessColor)).Sprint(message), "\n"))
}

// ShowError 显示错误消息
func (c *components) ShowError(message string) {
	c.println(strings.TrimRight(pterm.Error.WithPrefix(pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}).WithMessageStyle(pterm.NewStyle(c.theme.ErrorColor)).Sprint(message), "\n"))
}

// ShowWarning 显示警告消息
func (c *components) ShowWarning(message string) {
	c.println(strings.TrimRight(pterm.Warning.WithPrefix(pterm.Prefix{
		Text:  "WARNING",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}).WithMessageStyle(pterm.NewStyle(c.theme.WarningColor)).Sprint(message), "\n"))
}

// ShowInfo 显示信息消息
func (c *components) ShowInfo(message string) {
	c.println(strings.TrimRight(pterm.Info.WithPrefix(pterm.Prefix{
		Text:  "INFO",
		Style: pterm.NewStyle(pterm.BgLightBlue, pterm.FgBlack),
	}).WithMessageStyle(pterm.NewStyle(c.theme.InfoColor)).Sprint(message), "\n"))
}

// ShowSpinner 创建加载动画
func (c *components) ShowSpinner(message string) Spinner {
	return &spinnerImpl{
		message: message,
		parent:  c,
	}
}

// Clear 清屏
func (c *components) Clear() {
	if c.interactive {
		fmt.Fprint(c.out, clearSequence)
	}
}

// spinnerImpl 加载动画实现
type spinnerImpl struct {
	message string
	parent  *components
	spinner *pterm.SpinnerPrinter
}

func (s *spinnerImpl) Start() error {
	if !s.parent.interactive {
		s.parent.ShowMuted(s.message)
		return nil
	}
	var err error
	s.spinner, err = pterm.DefaultSpinner.
		WithWriter(s.parent.out).
		WithText(s.message).
		WithStyle(pterm.NewStyle(s.parent.theme.PrimaryColor)).
		WithRemoveWhenDone(true).
		Start()
	return err
}

func (s *spinnerImpl) Success(message string) error {
	if err := s.Stop(); err != nil {
		return err
	}
	if message != "" {
		s.parent.ShowSuccess(message)
	}
	return nil
}

func (s *spinnerImpl) Stop() error {
	if s.spinner == nil {
		return nil
	}
	err := s.spinner.Stop()
	s.spinner = nil
	return err
}
