package game

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinFont 内置字体的资源名（Go Regular，随程序编译进二进制）
const BuiltinFont = "builtin:goregular"

// ResourceManager 字体资源管理器
//
// 字体数据源按路径缓存，字号不同的 face 共享同一个数据源。
// 路径为 BuiltinFont 时使用内置字体，其他路径从文件系统读取。
type ResourceManager struct {
	mu            sync.Mutex
	sourceCache   map[string]*text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace

	// readFile 读取字体文件，测试中可替换
	readFile func(string) ([]byte, error)
}

// NewResourceManager 创建资源管理器
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sourceCache:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
		readFile:      os.ReadFile,
	}
}

// LoadFont loads a TrueType/OpenType font and creates a text face with the given size.
// Faces are cached per path and size.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.loadSource(path)
	if err != nil {
		return nil, err
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace

	return goTextFace, nil
}

// LoadBuiltinFont 加载内置字体
func (rm *ResourceManager) LoadBuiltinFont(size float64) (*text.GoTextFace, error) {
	return rm.LoadFont(BuiltinFont, size)
}

// GetFont retrieves a previously loaded font face from the cache.
// If the font has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetFont(path string, size float64) *text.GoTextFace {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.fontFaceCache[fmt.Sprintf("%s:%.1f", path, size)]
}

func (rm *ResourceManager) loadSource(path string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.sourceCache[path]; ok {
		return source, nil
	}

	var fontData []byte
	if path == BuiltinFont {
		fontData = goregular.TTF
	} else {
		data, err := rm.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		fontData = data
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	rm.sourceCache[path] = source
	return source, nil
}

// Fonts 界面使用的三种字号
type Fonts struct {
	Body    *text.GoTextFace
	Heading *text.GoTextFace
	Small   *text.GoTextFace
}

// LoadFonts 加载界面字体，path 为空时使用内置字体
func (rm *ResourceManager) LoadFonts(path string, body, heading, small float64) (*Fonts, error) {
	if path == "" {
		path = BuiltinFont
	}

	var fonts Fonts
	var err error
	if fonts.Body, err = rm.LoadFont(path, body); err != nil {
		return nil, err
	}
	if fonts.Heading, err = rm.LoadFont(path, heading); err != nil {
		return nil, err
	}
	if fonts.Small, err = rm.LoadFont(path, small); err != nil {
		return nil, err
	}
	return &fonts, nil
}
