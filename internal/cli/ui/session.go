package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxAttempts 单个问题允许的最大输入次数
const DefaultMaxAttempts = 5

var (
	// ErrInputClosed 输入流已关闭
	ErrInputClosed = errors.New("input stream closed")

	// ErrTooManyAttempts 连续无效输入超过上限
	ErrTooManyAttempts = errors.New("too many invalid attempts")
)

// Session 进程级输入会话，启动时创建一次并注入各处理器
type Session struct {
	reader      *bufio.Reader
	out         io.Writer
	maxAttempts int
	closed      bool
}

// NewSession 创建输入会话
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{
		reader:      bufio.NewReader(in),
		out:         out,
		maxAttempts: DefaultMaxAttempts,
	}
}

// WithMaxAttempts 设置单个问题的最大输入次数
func (s *Session) WithMaxAttempts(n int) *Session {
	if n > 0 {
		s.maxAttempts = n
	}
	return s
}

// ReadLine 打印提示并读取一行，去掉行尾换行符
// 输入流关闭且没有剩余内容时返回 ErrInputClosed
func (s *Session) ReadLine(prompt string) (string, error) {
	if s.closed {
		return "", ErrInputClosed
	}
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		s.closed = true
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WaitEnter 等待回车
func (s *Session) WaitEnter(prompt string) error {
	_, err := s.ReadLine(prompt)
	return err
}

// Prompt 反复提问直到 parse 成功，最多 maxAttempts 次
// 每次失败通过 ui 显示 invalidMsg 后重问同一个问题
func Prompt[T any](s *Session, ui Components, prompt, invalidMsg string, parse func(string) (T, error)) (T, error) {
	var zero T
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		line, err := s.ReadLine(prompt)
		if err != nil {
			return zero, err
		}
		value, err := parse(strings.TrimSpace(line))
		if err == nil {
			return value, nil
		}
		ui.ShowError(invalidMsg)
	}
	return zero, fmt.Errorf("%w: %s", ErrTooManyAttempts, strings.TrimSpace(prompt))
}
