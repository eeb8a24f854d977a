// Package app 提供日记应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：读取配置、创建 API 客户端、
// 加载字体和本地设置，并把 DiaryScene 交给场景管理器。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/diary/internal/api"
	"github.com/gonewx/diary/pkg/config"
	"github.com/gonewx/diary/pkg/game"
	"github.com/gonewx/diary/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "diary"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath YAML 配置文件路径，为空时使用 config.DefaultConfigPath
	ConfigPath string
	// APIURL 覆盖配置文件和环境变量中的后端地址
	APIURL string
	// Width 覆盖窗口逻辑宽度（像素），0 表示使用配置
	Width int
	// FontPath 自定义字体文件，为空时使用内置字体
	FontPath string
}

// App 是日记应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	client       *api.Client
	diaryConfig  *config.DiaryConfig
	apiOverride  bool
	verbose      bool

	configUpdates <-chan *config.DiaryConfig
	stopWatch     context.CancelFunc

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化日记应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	diaryConfig, err := LoadConfig(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] API: %s (timeout %s)", diaryConfig.API.BaseURL, diaryConfig.API.RequestTimeout.Std())

	client := api.NewClient(diaryConfig.API.BaseURL, diaryConfig.API.RequestTimeout.Std(), nil)

	settings := game.NewSettingsManager(game.OpenStorage(AppName))
	if diaryConfig.Window.Fullscreen {
		settings.SetFullscreen(true)
	}

	resourceManager := game.NewResourceManager()
	fonts, err := resourceManager.LoadFonts(cfg.FontPath, config.FontSize, config.HeadingFontSize, config.SmallFontSize)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewDiaryScene(scenes.DiarySceneOptions{
		Client:   client,
		Cache:    game.NewQueryCache(),
		Fonts:    fonts,
		Settings: settings,
		Width:    diaryConfig.Window.Width,
		Height:   diaryConfig.Window.Height,
	}))

	a := &App{
		sceneManager: sceneManager,
		settings:     settings,
		client:       client,
		diaryConfig:  diaryConfig,
		apiOverride:  cfg.APIURL != "",
		verbose:      cfg.Verbose,
	}

	// 配置文件热加载失败不影响启动
	ctx, cancel := context.WithCancel(context.Background())
	updates, err := config.Watch(ctx, configPath(cfg))
	if err != nil {
		log.Printf("[App] Warning: 配置热加载不可用: %v", err)
		cancel()
	} else {
		a.configUpdates = updates
		a.stopWatch = cancel
	}

	return a, nil
}

func configPath(cfg Config) string {
	if cfg.ConfigPath == "" {
		return config.DefaultConfigPath
	}
	return cfg.ConfigPath
}

// LoadConfig 读取配置文件并应用命令行覆盖
func LoadConfig(cfg Config) (*config.DiaryConfig, error) {
	diaryConfig, err := config.LoadDiaryConfig(configPath(cfg))
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	if cfg.APIURL != "" {
		diaryConfig.API.BaseURL = cfg.APIURL
	}
	if cfg.Width > 0 {
		diaryConfig.Window.Width = cfg.Width
	}
	if err := diaryConfig.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return diaryConfig, nil
}

// WindowConfig 返回窗口配置
func (a *App) WindowConfig() config.WindowConfig {
	return a.diaryConfig.Window
}

// Fullscreen 返回保存的全屏偏好
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	a.applyConfigUpdates()

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.diaryConfig.Window.Width, a.diaryConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并保存偏好
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen {
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		}
		a.settings.SetFullscreen(fullscreen)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: 保存全屏设置失败: %v", err)
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// applyConfigUpdates 应用热加载的配置
// 只更新 API 地址与超时，窗口配置下次启动生效
func (a *App) applyConfigUpdates() {
	if a.configUpdates == nil {
		return
	}
	select {
	case updated, ok := <-a.configUpdates:
		if !ok {
			a.configUpdates = nil
			return
		}
		a.ApplyAPIConfig(updated.API)
	default:
	}
}

// ApplyAPIConfig 把新的 API 配置写入客户端
// 命令行指定了 --api 时保留命令行地址，只更新超时
func (a *App) ApplyAPIConfig(apiConfig config.APIConfig) {
	if a.apiOverride {
		apiConfig.BaseURL = a.diaryConfig.API.BaseURL
	}
	a.diaryConfig.API = apiConfig
	a.client.SetEndpoint(apiConfig.BaseURL, apiConfig.RequestTimeout.Std())
	log.Printf("[App] API 配置已更新: %s (timeout %s)", apiConfig.BaseURL, apiConfig.RequestTimeout.Std())
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.diaryConfig.Window.Width, a.diaryConfig.Window.Height
}

// Close 保存状态、取消请求并停止配置热加载
// 可重复调用
func (a *App) Close() {
	a.sceneManager.Shutdown()
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
