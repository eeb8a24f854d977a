package game

import (
	"errors"
	"unicode/utf8"

	"github.com/gonewx/diary/pkg/config"
)

// 表单校验错误，Error() 即显示在输入框下方的提示
var (
	ErrRequired = errors.New("required")
	ErrTooLong  = errors.New("max 300 characters")
)

// ValidateEntryText 校验日记正文
// 空文本返回 ErrRequired，超过 300 个字符返回 ErrTooLong
func ValidateEntryText(text string) error {
	if text == "" {
		return ErrRequired
	}
	if utf8.RuneCountInString(text) > config.MaxEntryLength {
		return ErrTooLong
	}
	return nil
}

// Draft 正在"书写"的草稿
//
// 创建请求成功后 Begin 写入，书写动画结束时 Clear 清空。
type Draft struct {
	text string
}

// Begin 开始书写
func (d *Draft) Begin(text string) {
	d.text = text
}

// Clear 清空草稿
func (d *Draft) Clear() {
	d.text = ""
}

// Text 返回草稿文本
func (d *Draft) Text() string {
	return d.text
}

// Active 报告是否有草稿正在书写
func (d *Draft) Active() bool {
	return d.text != ""
}
