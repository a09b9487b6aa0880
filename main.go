package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/cardfx/pkg/app"
	"github.com/decker502/cardfx/pkg/embedded"
)

var (
	configPath = flag.String("config", "", "展示配置文件路径（默认使用内嵌的 data/showcase.yaml）")
	verbose    = flag.Bool("verbose", false, "详细日志")
	noSave     = flag.Bool("no-save", false, "不持久化展示设置")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	cfg := app.DefaultConfig()
	cfg.Verbose = *verbose
	cfg.ConfigPath = *configPath
	if *noSave {
		cfg.SettingsAppName = ""
	}
	// 环境变量覆盖命令行参数
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("环境变量解析失败: %v", err)
	}

	showcase, err := app.NewApp(cfg)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("展示程序初始化失败: %v", err)
	}

	window := showcase.Showcase().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if window.TPS > 0 {
		ebiten.SetTPS(window.TPS)
	}

	runErr := ebiten.RunGame(showcase)
	if err := showcase.Close(); err != nil {
		log.Printf("[Main] %v", err)
	}
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
