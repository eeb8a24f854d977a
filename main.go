package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gonewx/diary/pkg/app"
	"github.com/gonewx/diary/pkg/config"
)

var (
	configPath string
	apiURL     string
	verbose    bool
	width      int
	fontPath   string
)

// rootCmd 启动日记窗口
var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "A tiny diary that writes your entries with a pencil",
	Long: `Dear Diary: type an entry, watch a pencil write it out,
and browse the pages saved on the diary server.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env 中的变量不覆盖已有环境变量
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to the YAML config file")
	rootCmd.Flags().StringVar(&apiURL, "api", "", "Diary API base URL (overrides config and "+config.APIURLEnv+")")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().IntVar(&width, "width", 0, "Logical window width in pixels")
	rootCmd.Flags().StringVar(&fontPath, "font", "", "TrueType/OpenType font file (default: built-in Go Regular)")
}

func run() error {
	diaryApp, err := app.NewApp(app.Config{
		Verbose:    verbose,
		ConfigPath: configPath,
		APIURL:     apiURL,
		Width:      width,
		FontPath:   fontPath,
	})
	if err != nil {
		return err
	}
	defer diaryApp.Close()

	window := diaryApp.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(diaryApp.Fullscreen())

	if err := ebiten.RunGame(diaryApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.Printf("[Main] 窗口已关闭")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
