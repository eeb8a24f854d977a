package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rivo/uniseg"
)

// WidthFunc 返回一段文本渲染后的宽度（像素）
type WidthFunc func(s string) float64

// FaceWidth 返回使用指定字体测量宽度的 WidthFunc
// font 为 nil 时返回 nil
func FaceWidth(font *text.GoTextFace) WidthFunc {
	if font == nil {
		return nil
	}
	return func(s string) float64 {
		if s == "" {
			return 0
		}
		width, _ := text.Measure(s, font, 0)
		return width
	}
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - width: 宽度测量函数
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）；空文本返回空数组
//
// 换行规则（与网页 break-words 一致）:
//   - 换行符强制断行，空段落占一行
//   - 连续空白折叠为一个空格，行首行尾空白去掉
//   - 优先在空格处断行
//   - 单词本身超过最大宽度时按字素簇强制断开
//
// width 为 nil 或 maxWidth <= 0 时不做宽度换行，只按换行符拆分
func WrapText(textStr string, width WidthFunc, maxWidth float64) []string {
	if textStr == "" {
		return []string{}
	}

	paragraphs := strings.Split(strings.ReplaceAll(textStr, "\r\n", "\n"), "\n")

	if width == nil || maxWidth <= 0 {
		lines := make([]string, 0, len(paragraphs))
		for _, p := range paragraphs {
			lines = append(lines, strings.Join(strings.Fields(p), " "))
		}
		return lines
	}

	var lines []string
	for _, p := range paragraphs {
		lines = append(lines, wrapParagraph(p, width, maxWidth)...)
	}
	return lines
}

// wrapParagraph 对不含换行符的单个段落贪心换行
func wrapParagraph(paragraph string, width WidthFunc, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	currentLine := ""

	for _, word := range words {
		if currentLine != "" {
			candidate := currentLine + " " + word
			if width(candidate) <= maxWidth {
				currentLine = candidate
				continue
			}
			lines = append(lines, currentLine)
			currentLine = ""
		}

		if width(word) <= maxWidth {
			currentLine = word
			continue
		}

		// 单词过长：按字素簇切成若干段，最后一段留在当前行继续排
		chunks := breakWord(word, width, maxWidth)
		lines = append(lines, chunks[:len(chunks)-1]...)
		currentLine = chunks[len(chunks)-1]
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// breakWord 将超宽单词切成不超过 maxWidth 的片段
// 单个字素簇就超宽时独占一段
func breakWord(word string, width WidthFunc, maxWidth float64) []string {
	var chunks []string
	current := ""
	for _, g := range SplitGraphemes(word) {
		candidate := current + g
		if current != "" && width(candidate) > maxWidth {
			chunks = append(chunks, current)
			current = g
			continue
		}
		current = candidate
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// SplitGraphemes 按用户可见字符（字素簇）拆分文本
// 组合字符、emoji 序列不会被拆开
func SplitGraphemes(s string) []string {
	graphemes := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		graphemes = append(graphemes, cluster)
	}
	return graphemes
}

// MaxLineWidth 返回多行文本中最宽一行的宽度
func MaxLineWidth(lines []string, width WidthFunc) float64 {
	if width == nil {
		return 0
	}
	maxW := 0.0
	for _, line := range lines {
		if w := width(line); w > maxW {
			maxW = w
		}
	}
	return maxW
}
