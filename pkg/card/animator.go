package card

import (
	"fmt"
	"log"

	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/systems"
	"github.com/decker502/cardfx/pkg/tween"
	"github.com/decker502/cardfx/pkg/utils"
)

// Options 卡片的外部依赖和回调
type Options struct {
	// Engine 引擎参数，零值时使用 config.DefaultEngineConfig()
	Engine *config.EngineConfig

	// Driver 全局逐帧驱动器；为 nil 时宿主需要自行调用 Update
	Driver *tween.Driver

	// Pointer 全局指针事件源（拖拽期间订阅）
	Pointer systems.PointerSource

	// Scaler 设计坐标到渲染坐标的转换
	Scaler utils.Scaler

	// Viewport 视口尺寸（设计坐标），用于拖拽夹紧
	Viewport func() (float64, float64)

	// Clock 手势计时时钟，nil 使用单调时钟
	Clock systems.Clock

	// Random 随机源，nil 使用 math/rand
	Random systems.RandomSource

	// OnHover 悬停状态变化
	OnHover func(hovered bool)

	// OnClick 点击
	OnClick func(ev components.PointerEvent)

	// Debug 记录被忽略的操作（挂载前或销毁后）
	Debug bool
}

// Animator 一张卡片的动画器
//
// 持有卡片的全部轨道（位置、旋转、翻转、缩放、高亮、可见度、悬挂、闲置偏移），
// 以及驱动其中部分轨道的状态机（拖拽、悬挂、闲置、闪烁）。
// 轨道争用遵循"后写者胜"：位置（拖拽 vs SetPosition）和高亮（闪烁 vs ToggleHighlight）
// 的调用者需要先检查 IsDragging / IsBlinking。
type Animator struct {
	cfg    config.CardConfig
	engine config.EngineConfig
	opts   Options

	transform components.CardTransform
	dirty     bool
	surface   Surface
	disposed  bool

	posX       *tween.Property
	posY       *tween.Property
	rotation   *tween.Property
	flip       *tween.Property
	scale      *tween.Property
	highlight  *tween.Property
	visibility *tween.Property
	hang       *tween.Property
	idleX      *tween.Property
	idleY      *tween.Property
	tracks     []*tween.Property

	drag    *systems.DragController
	hanging *systems.HangingSwingSimulator
	idle    *systems.IdleMotionLoop
	blink   *systems.BlinkLoop

	hovered     bool
	highlighted bool // 显式高亮状态（悬停和闪烁结束后恢复到这里）
}

// 编译期检查
var (
	_ Handle        = (*Animator)(nil)
	_ tween.Updater = (*Animator)(nil)
)

// New 根据实例配置创建卡片动画器
//
// 所有初始值立即应用（时长 0）；instantFlip/instantVisible 为 false 时
// 翻转和淡入从 0 开始播放。传入 Driver 时自动注册。
func New(cfg config.CardConfig, opts Options) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	engine := config.DefaultEngineConfig()
	if opts.Engine != nil {
		engine = *opts.Engine
	}
	if opts.Clock == nil {
		opts.Clock = systems.NewMonotonicClock()
	}
	if opts.Random == nil {
		opts.Random = systems.DefaultRandom()
	}

	a := &Animator{
		cfg:         cfg,
		engine:      engine,
		opts:        opts,
		highlighted: cfg.IsSelected,
	}
	a.transform.Disabled = cfg.IsDisabled
	a.transform.HighlightColor = cfg.DefaultHighlightColor

	flipTarget := 0.0
	if cfg.IsFlipped {
		flipTarget = a.flipAngle(cfg.IsLeft, engine.FlipDegrees)
	}
	visibleTarget := boolToOpacity(cfg.IsVisible)

	initialFlip := flipTarget
	if !cfg.InstantFlip {
		initialFlip = 0
	}
	initialVisibility := visibleTarget
	if !cfg.InstantVisible {
		initialVisibility = 0
	}

	a.posX = a.track(cfg.StartPosition.X, func(v float64) { a.transform.TranslateX = v })
	a.posY = a.track(cfg.StartPosition.Y, func(v float64) { a.transform.TranslateY = v })
	a.rotation = a.track(cfg.StartRotation, func(v float64) { a.transform.RotationDeg = v })
	a.flip = a.track(initialFlip, func(v float64) { a.transform.FlipRotationDeg = v })
	a.scale = a.track(cfg.StartScale, func(v float64) { a.transform.Scale = v })
	a.highlight = a.track(boolToOpacity(cfg.IsSelected), func(v float64) { a.transform.HighlightOpacity = v })
	a.visibility = a.track(initialVisibility, func(v float64) { a.transform.VisibilityOpacity = v })
	a.hang = a.track(0, func(v float64) { a.transform.HangRotationDeg = v })
	a.idleX = a.track(0, func(v float64) { a.transform.IdleOffsetX = v })
	a.idleY = a.track(0, func(v float64) { a.transform.IdleOffsetY = v })

	a.drag = systems.NewDragController(systems.DragTracks{
		X:        a.posX,
		Y:        a.posY,
		Rotation: a.rotation,
		Scale:    a.scale,
	}, systems.DragOptions{
		Engine:        engine,
		Width:         cfg.Width,
		Height:        cfg.Height,
		TopLeftOrigin: !cfg.HasCenteredOrigin,
		Draggable:     cfg.IsDraggable,
		Scaler:        opts.Scaler,
		Viewport:      opts.Viewport,
		Clock:         opts.Clock,
		Pointer:       opts.Pointer,
		OnClick:       a.handleClick,
		OnDragEnd:     a.hoverLeave,
	})

	hangState := systems.NewHangState(cfg.Width, cfg.IsHangingLeft, opts.Random, engine.HangMaxDeg)
	a.hanging = systems.NewHangingSwingSimulator(a.hang, hangState, engine, cfg.ShouldSwing, opts.Random, opts.Clock)
	a.idle = systems.NewIdleMotionLoop(a.idleX, a.idleY, engine, opts.Random)
	a.blink = systems.NewBlinkLoop(a.highlight, engine.BlinkDurationMs, opts.Random)

	// 非即时的初始动画
	if initialFlip != flipTarget {
		a.flip.Animate(tween.To(flipTarget), tween.Over(engine.FlipDurationMs, engine.FlipEasingFunc()), nil)
	}
	if initialVisibility != visibleTarget {
		a.visibility.Animate(tween.To(visibleTarget), tween.Over(engine.VisibilityDurationMs, utils.EaseOutQuad), nil)
	}
	if cfg.IsHanging {
		a.hanging.Enable()
	}

	if opts.Driver != nil {
		opts.Driver.Add(a)
	}
	return a, nil
}

// track 创建轨道并写入初始值
func (a *Animator) track(initial float64, write func(float64)) *tween.Property {
	write(initial)
	p := tween.NewProperty(initial, func(v float64) {
		write(v)
		a.dirty = true
	})
	a.tracks = append(a.tracks, p)
	return p
}

// Attach 挂载渲染表面并立即推送当前变换
func (a *Animator) Attach(surface Surface) {
	if a.disposed || surface == nil {
		return
	}
	a.surface = surface
	a.dirty = false
	a.surface.ApplyTransform(a.transform)
}

// Update 推进所有轨道 dtMs 毫秒，然后推进循环状态机，最后推送变换
func (a *Animator) Update(dtMs float64) {
	if a.disposed {
		return
	}

	for _, p := range a.tracks {
		p.Update(dtMs)
	}

	a.hanging.Update(dtMs)
	a.idle.Update(dtMs)
	a.blink.Update(dtMs)

	if a.surface != nil && a.dirty {
		a.dirty = false
		a.surface.ApplyTransform(a.transform)
	}
}

// Dispose 销毁卡片
// 取消所有补间和手势订阅并从驱动器注销；之后不会再有任何回调
func (a *Animator) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true

	a.drag.Cancel()
	for _, p := range a.tracks {
		p.Cancel()
	}
	if a.opts.Driver != nil {
		a.opts.Driver.Remove(a)
	}
	a.surface = nil
	log.Printf("[CardAnimator] 卡片已销毁 (%s)", a.cfg.FrontImagePath)
}

// ready 操作是否可以执行：渲染表面已挂载且未销毁
// 不满足时静默忽略
func (a *Animator) ready(op string) bool {
	if a.disposed || a.surface == nil {
		if a.opts.Debug {
			log.Printf("[CardAnimator] 忽略 %s: 渲染表面未挂载或卡片已销毁", op)
		}
		return false
	}
	return true
}

// centerX 卡片中心的横坐标（设计坐标）
// 非居中原点时位置是左上角
func (a *Animator) centerX() float64 {
	x := a.transform.EffectiveX()
	if !a.cfg.HasCenteredOrigin {
		x += a.cfg.Width / 2
	}
	return x
}

// interactive 卡片当前是否响应指针
func (a *Animator) interactive() bool {
	return !a.disposed && a.surface != nil && !a.cfg.MouseDisabled && !a.cfg.IsDisabled
}

// PointerDown 指针在卡片上按下（渲染坐标）
// 后续的移动和抬起通过 Options.Pointer 接收
func (a *Animator) PointerDown(x, y float64) bool {
	if !a.interactive() {
		return false
	}
	return a.drag.PointerDown(x, y)
}

// PointerEnter 指针进入卡片（渲染坐标）
func (a *Animator) PointerEnter(x, y float64) {
	if !a.interactive() || a.hovered {
		return
	}
	a.hovered = true

	wasBlinking := a.blink.Running()
	a.blink.SetHovered(true)

	if a.hanging.Enabled() {
		a.hanging.Push(a.opts.Scaler.ToDesign(x), a.centerX())
	}

	if a.cfg.IsHighlightable {
		a.animateHighlight(true)
	} else if wasBlinking {
		// 闪烁被打断，落回显式状态
		a.animateHighlight(a.highlighted)
	}

	if a.opts.OnHover != nil {
		a.opts.OnHover(true)
	}
}

// PointerLeave 指针离开卡片；拖拽期间忽略，拖拽结束时补发
func (a *Animator) PointerLeave() {
	if a.disposed || !a.hovered || a.drag.IsDragging() {
		return
	}
	a.hoverLeave()
}

func (a *Animator) hoverLeave() {
	if a.disposed || !a.hovered {
		return
	}
	a.hovered = false

	a.blink.SetHovered(false)
	if !a.blink.Enabled() {
		a.animateHighlight(a.highlighted)
	}

	if a.opts.OnHover != nil {
		a.opts.OnHover(false)
	}
}

func (a *Animator) handleClick(ev components.PointerEvent) {
	if a.disposed {
		return
	}
	log.Printf("[CardAnimator] 点击 (%.0f, %.0f)", ev.X, ev.Y)
	if a.opts.OnClick != nil {
		a.opts.OnClick(ev)
	}
}

// Flip 翻转卡片
func (a *Animator) Flip(flipped, isLeft bool, durationMs, degrees float64) {
	if !a.ready("Flip") {
		return
	}
	target := 0.0
	if flipped {
		target = a.flipAngle(isLeft, degrees)
	}
	// 翻转只用单调缓动和线性插值，轨道在整个时长内单调
	a.flip.Animate(tween.To(target), tween.Over(durationMs, a.engine.FlipEasingFunc()), nil)
}

func (a *Animator) flipAngle(isLeft bool, degrees float64) float64 {
	if degrees <= 0 {
		degrees = a.engine.FlipDegrees
	}
	if isLeft {
		return -degrees
	}
	return degrees
}

// SetPosition 设置位置
func (a *Animator) SetPosition(x, y tween.Target, spec tween.Spec) {
	if !a.ready("SetPosition") {
		return
	}
	a.posX.Animate(x, spec, nil)
	a.posY.Animate(y, spec, nil)
}

// SetScale 设置缩放
func (a *Animator) SetScale(target tween.Target, spec tween.Spec) {
	if !a.ready("SetScale") {
		return
	}
	a.scale.Animate(target, spec, nil)
}

// SetRotation 设置旋转
func (a *Animator) SetRotation(target tween.Target, spec tween.Spec) {
	if !a.ready("SetRotation") {
		return
	}
	a.rotation.Animate(target, spec, nil)
}

// SetZIndex 设置层级
func (a *Animator) SetZIndex(index int, backgroundIndex ...int) {
	if !a.ready("SetZIndex") {
		return
	}
	a.transform.ZIndex = index
	if len(backgroundIndex) > 0 {
		a.transform.BackgroundZIndex = backgroundIndex[0]
	}
	a.dirty = true
}

// ToggleVisibility 显示/隐藏
func (a *Animator) ToggleVisibility(visible, instant bool) {
	if !a.ready("ToggleVisibility") {
		return
	}
	spec := tween.Instant
	if !instant {
		spec = tween.Over(a.engine.VisibilityDurationMs, utils.EaseOutQuad)
	}
	a.visibility.Animate(tween.To(boolToOpacity(visible)), spec, nil)
}

// ToggleHighlight 切换显式高亮
func (a *Animator) ToggleHighlight(highlighted bool, opts HighlightOptions) {
	if !a.ready("ToggleHighlight") {
		return
	}
	// 完全不可见时不允许高亮
	if a.visibility.Value() == 0 {
		return
	}

	a.highlighted = highlighted
	a.transform.HighlightWhite = opts.ShouldBeWhite
	if opts.Color != "" {
		a.transform.HighlightColor = opts.Color
	}
	a.dirty = true
	a.animateHighlight(highlighted)
}

// ToggleDefeated 设置被击败标志
func (a *Animator) ToggleDefeated(defeated bool) {
	if !a.ready("ToggleDefeated") {
		return
	}
	a.transform.Defeated = defeated
	a.dirty = true
}

// SetHanging 开启/关闭悬挂模式
func (a *Animator) SetHanging(enabled bool) {
	if !a.ready("SetHanging") {
		return
	}
	if enabled {
		a.hanging.Enable()
		return
	}
	a.hanging.Disable()
}

// PlayHanging 重新开始摆动
func (a *Animator) PlayHanging() {
	if !a.ready("PlayHanging") {
		return
	}
	a.hanging.Restart()
}

// ToggleIdle 开启/关闭闲置漂移
func (a *Animator) ToggleIdle(enabled bool) {
	if !a.ready("ToggleIdle") {
		return
	}
	if enabled {
		a.idle.Start()
		return
	}
	a.idle.Stop()
}

// ToggleBlink 开启/关闭闪烁
func (a *Animator) ToggleBlink(enabled bool, durationMs float64) {
	if !a.ready("ToggleBlink") {
		return
	}
	if enabled {
		a.blink.Start(durationMs)
		return
	}
	if a.blink.Stop() && !a.hovered {
		a.animateHighlight(a.highlighted)
	}
}

// GetStyle 返回位置、旋转、缩放的当前值
func (a *Animator) GetStyle() Style {
	return Style{
		TranslateX:  a.posX.Value(),
		TranslateY:  a.posY.Value(),
		RotationDeg: a.rotation.Value(),
		Scale:       a.scale.Value(),
	}
}

// animateHighlight 高亮透明度过渡到开/关
func (a *Animator) animateHighlight(on bool) {
	a.highlight.Animate(tween.To(boolToOpacity(on)), tween.Over(a.engine.HighlightDurationMs, utils.EaseOutQuad), nil)
}

// Transform 当前变换
func (a *Animator) Transform() components.CardTransform {
	return a.transform
}

// Config 实例配置
func (a *Animator) Config() config.CardConfig {
	return a.cfg
}

// IsDragging 是否正在拖拽（位置轨道被拖拽占用）
func (a *Animator) IsDragging() bool {
	return a.drag.IsDragging()
}

// IsBlinking 是否请求了闪烁（高亮轨道被闪烁占用）
func (a *Animator) IsBlinking() bool {
	return a.blink.Enabled()
}

// IsIdle 是否开启了闲置漂移
func (a *Animator) IsIdle() bool {
	return a.idle.Enabled()
}

// IsHanging 悬挂模式是否开启
func (a *Animator) IsHanging() bool {
	return a.hanging.Enabled()
}

// IsHovered 是否被悬停
func (a *Animator) IsHovered() bool {
	return a.hovered
}

// IsDisposed 是否已销毁
func (a *Animator) IsDisposed() bool {
	return a.disposed
}

// HangState 悬挂状态快照
func (a *Animator) HangState() components.HangState {
	return a.hanging.State()
}

func boolToOpacity(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
