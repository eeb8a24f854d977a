// Package main 打印书写动画的关键帧路径
//
// 用法:
//
//	go run ./cmd/pathdump "dear diary, today was fine"
//	echo "long entry..." | go run ./cmd/pathdump --width 400 --seed 1
//
// 不打开窗口：用内置字体测量文本，生成路径并以 YAML 输出，
// 用于检查换行、时长和关键帧是否符合预期。
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/diary/pkg/config"
	"github.com/gonewx/diary/pkg/game"
	"github.com/gonewx/diary/pkg/layout"
	"github.com/gonewx/diary/pkg/writing"
)

var (
	containerWidth float64
	fontPath       string
	fontSize       float64
	seed           int64
)

// dump 输出结构
type dump struct {
	Lines     []string  `yaml:"lines"`
	LineCount int       `yaml:"lineCount"`
	Width     float64   `yaml:"width"`
	Height    float64   `yaml:"height"`
	Delay     float64   `yaml:"delay"`
	Duration  float64   `yaml:"duration"`
	Total     float64   `yaml:"total"`
	Top       []float64 `yaml:"top,flow"`
	Left      []string  `yaml:"left,flow"`
	Times     []float64 `yaml:"times,flow"`
	Rotate    []float64 `yaml:"rotate,flow"`
}

var rootCmd = &cobra.Command{
	Use:   "pathdump [text]",
	Short: "Print the pencil animation path generated for a diary entry",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := readEntry(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		face, err := game.NewResourceManager().LoadFont(fontOrBuiltin(), fontSize)
		if err != nil {
			return err
		}

		m, err := layout.NewFaceMeasurer(face, containerWidth).Measure(entry)
		if err != nil {
			return fmt.Errorf("measure: %w", err)
		}

		var rnd *rand.Rand
		if cmd.Flags().Changed("seed") {
			rnd = rand.New(rand.NewSource(seed))
		}
		path, err := writing.Generate(m, rnd)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		out := yaml.NewEncoder(cmd.OutOrStdout())
		out.SetIndent(2)
		defer out.Close()
		return out.Encode(dump{
			Lines:     m.Lines,
			LineCount: path.LineCount,
			Width:     m.Width,
			Height:    m.Height,
			Delay:     path.Delay,
			Duration:  path.Duration,
			Total:     path.Total(),
			Top:       path.Top,
			Left:      path.LeftLabels(),
			Times:     path.Times,
			Rotate:    path.Rotate,
		})
	},
}

func init() {
	rootCmd.Flags().Float64VarP(&containerWidth, "width", "w", config.MeasureWidth(config.ContentWidth), "Container width in pixels")
	rootCmd.Flags().StringVar(&fontPath, "font", "", "Font file (default: built-in Go Regular)")
	rootCmd.Flags().Float64Var(&fontSize, "size", config.FontSize, "Font size")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the rotation jitter (default: random)")
}

func fontOrBuiltin() string {
	if fontPath == "" {
		return game.BuiltinFont
	}
	return fontPath
}

// readEntry 优先使用参数，否则读取标准输入
func readEntry(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	entry := strings.TrimRight(string(data), "\n")
	if entry == "" {
		return "", fmt.Errorf("no text given")
	}
	return entry, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
