package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 默认配置文件路径
const DefaultConfigPath = "data/diary.yaml"

// APIURLEnv 覆盖 API 地址的环境变量
const APIURLEnv = "DIARY_API_URL"

// DiaryConfig 应用配置
// 对应 data/diary.yaml
type DiaryConfig struct {
	// API 日记后端配置
	API APIConfig `yaml:"api"`

	// Window 窗口配置
	Window WindowConfig `yaml:"window"`
}

// APIConfig 日记后端 HTTP 配置
type APIConfig struct {
	// BaseURL 后端地址，如 "http://localhost:8080"
	// 请求路径 /api/entry 与 /api/entries 拼接在其后
	BaseURL string `yaml:"baseUrl"`

	// RequestTimeout 单个请求超时时间，如 "10s"
	RequestTimeout Duration `yaml:"requestTimeout"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// Duration 支持 "10s"、"500ms" 形式的 YAML 时长
type Duration time.Duration

// UnmarshalYAML 解析时长字符串
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML 输出时长字符串
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std 转换为 time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultConfig 返回默认配置
func DefaultConfig() *DiaryConfig {
	return &DiaryConfig{
		API: APIConfig{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: Duration(10 * time.Second),
		},
		Window: WindowConfig{
			Title:  "Dear Diary",
			Width:  WindowWidth,
			Height: WindowHeight,
		},
	}
}

// LoadDiaryConfig 从 YAML 文件加载配置
//
// 文件中未出现的字段保留默认值。
// 环境变量 DIARY_API_URL 优先于文件中的 baseUrl。
//
// 参数：
//   - path: 配置文件路径；文件不存在时返回默认配置
//
// 返回：
//   - *DiaryConfig: 合并后的配置
//   - error: 读取、解析或校验失败
func LoadDiaryConfig(path string) (*DiaryConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 使用默认配置
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if env := os.Getenv(APIURLEnv); env != "" {
		cfg.API.BaseURL = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *DiaryConfig) Validate() error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseUrl is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.baseUrl %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("api.requestTimeout must be positive")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
