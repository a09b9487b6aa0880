// Package app 提供卡片展示程序的核心包装器
//
// 该包把展示程序的初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// 展示程序是动画引擎的宿主：它提供全局指针事件源、渲染表面和缩放转换，
// 并用 ecs.EntityManager 登记场景中的卡片。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/cardfx/pkg/card"
	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/ecs"
	"github.com/decker502/cardfx/pkg/embedded"
	"github.com/decker502/cardfx/pkg/systems"
	"github.com/decker502/cardfx/pkg/tween"
	"github.com/decker502/cardfx/pkg/utils"
)

// DefaultShowcasePath 内嵌的默认展示配置
const DefaultShowcasePath = "data/showcase.yaml"

const helpText = `[Tab] 切换选中  [F] 翻转  [I] 闲置  [B] 闪烁
[H] 悬挂  [P] 重新摆动  [V] 显示/隐藏  [D] 击败
[L] 高亮  [R] 复位  [F1] 帮助  [F11] 全屏
拖拽卡片移动，松开后回弹；单击翻转`

var backgroundColor = color.RGBA{R: 28, G: 96, B: 60, A: 255}

// App 是展示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	showcase *config.ShowcaseConfig
	scaler   utils.Scaler

	entityManager *ecs.EntityManager
	driver        *tween.Driver
	hub           *systems.PointerHub
	settings      *SettingsManager
	controller    *CardController
	input         *InputSystem
	render        *RenderSystem

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化展示程序
//
// 使用内嵌配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	showcase, err := loadShowcase(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] 加载展示配置: %d 张卡片, 窗口 %dx%d, 缩放 %.2f",
		len(showcase.Cards), showcase.Window.Width, showcase.Window.Height, showcase.Scale)

	a := &App{
		showcase:      showcase,
		scaler:        utils.NewScaler(showcase.Scale),
		entityManager: ecs.NewEntityManager(),
		driver:        tween.NewDriver(),
		hub:           systems.NewPointerHub(),
		settings:      OpenSettingsManager(cfg.SettingsAppName),
		verbose:       cfg.Verbose,
	}
	a.controller = NewCardController(a.entityManager, a.settings, showcase.Engine)
	a.input = NewInputSystem(a.entityManager, a.hub, a.scaler, a.controller)
	a.render = NewRenderSystem(a.entityManager, a.scaler)

	// 实体删除时销毁卡片，停止所有补间和手势订阅
	a.entityManager.OnDestroy(func(id ecs.EntityID) {
		if c, ok := ecs.Get[*CardComponent](a.entityManager, id); ok {
			c.Animator.Dispose()
		}
	})

	for _, entry := range showcase.Cards {
		if _, err := a.spawnCard(entry); err != nil {
			return nil, fmt.Errorf("卡片 %s 创建失败: %w", entry.ID, err)
		}
	}

	if a.settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

func loadShowcase(path string) (*config.ShowcaseConfig, error) {
	if path != "" {
		showcase, err := config.LoadShowcaseConfig(path)
		if err != nil {
			return nil, fmt.Errorf("展示配置加载失败: %w", err)
		}
		return showcase, nil
	}

	data, err := embedded.ReadFile(DefaultShowcasePath)
	if err != nil {
		return nil, fmt.Errorf("内嵌展示配置读取失败: %w", err)
	}
	showcase, err := config.ParseShowcaseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("内嵌展示配置解析失败: %w", err)
	}
	return showcase, nil
}

// spawnCard 创建卡片实体：动画器 + 精灵 + 恢复的开关状态
func (a *App) spawnCard(entry config.CardEntry) (ecs.EntityID, error) {
	id := a.entityManager.CreateEntity()
	comp := &CardComponent{ID: entry.ID}

	animator, err := card.New(entry.Card, card.Options{
		Engine:   &a.showcase.Engine,
		Driver:   a.driver,
		Pointer:  a.hub,
		Scaler:   a.scaler,
		Viewport: a.showcase.ViewportSize,
		OnHover: func(hovered bool) {
			log.Printf("[App] 卡片 %s hover=%v", entry.ID, hovered)
		},
		OnClick: func(components.PointerEvent) {
			a.controller.Apply(id, ActionFlip)
		},
		Debug: a.verbose,
	})
	if err != nil {
		a.entityManager.DestroyEntity(id)
		a.entityManager.RemoveMarkedEntities()
		return 0, err
	}
	comp.Animator = animator

	a.entityManager.AddComponent(id, comp)
	a.entityManager.AddComponent(id, newSprite(entry.ID, entry.Card))

	animator.Attach(card.SurfaceFunc(func(tr components.CardTransform) {
		comp.Transform = tr
	}))

	if a.controller.Seed(entry.ID, entry) {
		// 首次运行：按配置开启循环动画
		if entry.Idle {
			animator.ToggleIdle(true)
		}
		if entry.Blink {
			animator.ToggleBlink(true, 0)
		}
	} else {
		a.controller.Restore(id)
	}
	return id, nil
}

// Update 更新展示程序逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.showcase.Window.Width, a.showcase.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.settings.SetShowHelp(!a.settings.GetSettings().ShowHelp)
	}

	a.input.Update()
	a.driver.Tick(1000.0 / float64(ebiten.TPS()))
	a.entityManager.RemoveMarkedEntities()
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.render.Draw(screen)

	if a.settings.GetSettings().ShowHelp {
		ebitenutil.DebugPrintAt(screen, helpText, 8, 8)
		if c, ok := ecs.Get[*CardComponent](a.entityManager, a.input.Selected()); ok {
			ebitenutil.DebugPrintAt(screen, "selected: "+c.ID, 8, a.showcase.Window.Height-20)
		}
	}
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

// Layout 返回逻辑屏幕尺寸（渲染坐标）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.showcase.Window.Width, a.showcase.Window.Height
}

// Showcase 返回展示配置
func (a *App) Showcase() *config.ShowcaseConfig {
	return a.showcase
}

// Close 保存设置并销毁所有卡片
func (a *App) Close() error {
	for _, id := range ecs.Query[*CardComponent](a.entityManager) {
		a.entityManager.DestroyEntity(id)
	}
	a.entityManager.RemoveMarkedEntities()

	if err := a.settings.Save(); err != nil {
		return fmt.Errorf("保存设置失败: %w", err)
	}
	return nil
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
