package ui

import "strings"

// PreviewTitle 交易预览标题
const PreviewTitle = "Transaction Preview"

// ConfirmPrompt 确认提示
const ConfirmPrompt = "Confirm transaction? (y/n): "

// Gate 交易确认闸门：显示预览后阻塞等待一行输入，不访问网络，没有超时
type Gate struct {
	ui      Components
	session *Session
}

// NewGate 创建确认闸门
func NewGate(ui Components, session *Session) *Gate {
	return &Gate{ui: ui, session: session}
}

// Confirm 显示预览并读取确认
// 仅当输入去空白、忽略大小写后为 "y" 或 "yes" 时返回 true；输入流关闭时返回 ErrInputClosed
func (g *Gate) Confirm(fields []Field) (bool, error) {
	g.ui.ShowPreview(PreviewTitle, fields)
	line, err := g.session.ReadLine(ConfirmPrompt)
	if err != nil {
		return false, err
	}
	return IsAffirmative(line), nil
}

// IsAffirmative 判断是否为肯定回答
func IsAffirmative(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
