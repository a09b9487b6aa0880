// cmd/validate_config/main.go
// 校验展示配置和引擎参数文件
//
// 用法：
//
//	go run ./cmd/validate_config --showcase=data/showcase.yaml
//	go run ./cmd/validate_config --engine=data/engine.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/decker502/cardfx/pkg/config"
)

var (
	showcasePath = flag.String("showcase", "data/showcase.yaml", "展示配置文件路径（为空则跳过）")
	enginePath   = flag.String("engine", "", "引擎参数文件路径（为空则跳过）")
)

func main() {
	flag.Parse()

	failed := false
	if *showcasePath != "" {
		if err := validateShowcase(*showcasePath); err != nil {
			fmt.Printf("❌ %s: %v\n", *showcasePath, err)
			failed = true
		}
	}
	if *enginePath != "" {
		if err := validateEngine(*enginePath); err != nil {
			fmt.Printf("❌ %s: %v\n", *enginePath, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func validateShowcase(path string) error {
	cfg, err := config.LoadShowcaseConfig(path)
	if err != nil {
		return describe(err)
	}

	fmt.Printf("✅ YAML 格式正确\n")
	fmt.Printf("✅ 窗口 %dx%d, 缩放 %.2f\n", cfg.Window.Width, cfg.Window.Height, cfg.Scale)
	fmt.Printf("✅ 卡片数量: %d\n", len(cfg.Cards))

	vw, vh := cfg.ViewportSize()
	for _, entry := range cfg.Cards {
		c := entry.Card
		features := ""
		if c.IsDraggable {
			features += " drag"
		}
		if c.IsHanging {
			features += " hang"
		}
		if entry.Idle {
			features += " idle"
		}
		if entry.Blink {
			features += " blink"
		}
		fmt.Printf("   - %-12s %.0fx%.0f @ (%.0f, %.0f)%s\n", entry.ID, c.Width, c.Height, c.StartPosition.X, c.StartPosition.Y, features)

		// 初始位置超出视口只警告，拖拽时会被夹紧
		if c.StartPosition.X < 0 || c.StartPosition.X > vw || c.StartPosition.Y < 0 || c.StartPosition.Y > vh {
			fmt.Printf("⚠️  卡片 %s 的初始位置在视口 %.0fx%.0f 之外\n", entry.ID, vw, vh)
		}
	}
	return nil
}

func validateEngine(path string) error {
	cfg, err := config.LoadEngineConfig(path)
	if err != nil {
		return describe(err)
	}
	fmt.Printf("✅ 引擎参数有效: 拖拽阈值 %.0f, 点击 < %.0fms, 悬挂步长 %.0fms\n",
		cfg.DragThreshold, cfg.ClickMaxMs, cfg.HangStepMs)
	return nil
}

// describe 区分格式错误和取值错误
func describe(err error) error {
	if errors.Is(err, config.ErrInvalidConfig) {
		return fmt.Errorf("取值无效: %w", err)
	}
	return fmt.Errorf("无法读取或解析: %w", err)
}
