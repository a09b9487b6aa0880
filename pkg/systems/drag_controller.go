package systems

import (
	"log"
	"math"

	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/tween"
	"github.com/decker502/cardfx/pkg/utils"
)

// DragState 拖拽状态机的状态
type DragState int

const (
	// DragIdle 没有进行中的手势
	DragIdle DragState = iota
	// DragPendingClick 已按下，尚未超过拖拽阈值
	DragPendingClick
	// DragDragging 拖拽中，位置轨道跟随指针
	DragDragging
)

// String 返回状态名称（用于日志）
func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragPendingClick:
		return "pending-click"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragTracks 拖拽期间会写入的轨道
type DragTracks struct {
	X        *tween.Property
	Y        *tween.Property
	Rotation *tween.Property
	Scale    *tween.Property
}

// DragOptions 拖拽控制器的依赖和回调
type DragOptions struct {
	Engine config.EngineConfig

	// Width, Height 卡片尺寸（设计坐标），用于视口夹紧
	Width  float64
	Height float64

	// TopLeftOrigin 位置轨道表示卡片左上角而不是中心
	TopLeftOrigin bool

	// Draggable 是否允许进入拖拽；false 时只识别点击
	Draggable bool

	// Scaler 指针位移（渲染坐标）到位置轨道（设计坐标）的转换
	Scaler utils.Scaler

	// Viewport 返回视口尺寸（设计坐标）
	Viewport func() (float64, float64)

	Clock   Clock
	Pointer PointerSource

	// OnClick 手势被判定为点击时调用
	OnClick func(components.PointerEvent)
	// OnDragStart 进入拖拽状态时调用
	OnDragStart func()
	// OnDragEnd 拖拽结束、回弹补间发出后调用（卡片用它执行悬停离开逻辑）
	OnDragEnd func()
}

// DragController 把原始指针事件转换为"点击"或一次有界的"拖拽"
//
// 状态转换：
//
//	Idle --按下--> PendingClick --移动超过阈值且可拖拽--> Dragging --抬起--> Idle
//	PendingClick --抬起--> Idle（满足条件时触发点击）
//
// 每次手势拥有独立的事件订阅，在抬起时释放，重叠的手势不会互相触发回调。
type DragController struct {
	tracks  DragTracks
	opts    DragOptions
	state   DragState
	episode *components.DragEpisode
	release func()
}

// NewDragController 创建拖拽控制器
func NewDragController(tracks DragTracks, opts DragOptions) *DragController {
	if opts.Clock == nil {
		opts.Clock = NewMonotonicClock()
	}
	return &DragController{
		tracks: tracks,
		opts:   opts,
		state:  DragIdle,
	}
}

// PointerDown 在卡片上按下指针，开始一次手势
// 已有手势进行中时忽略，返回 false
func (dc *DragController) PointerDown(x, y float64) bool {
	if dc.state != DragIdle || dc.opts.Pointer == nil {
		return false
	}

	ep := &components.DragEpisode{
		OriginScreenX:  x,
		OriginScreenY:  y,
		OriginValueX:   dc.tracks.X.Target(),
		OriginValueY:   dc.tracks.Y.Target(),
		OriginRotation: dc.tracks.Rotation.Target(),
		OriginScale:    dc.tracks.Scale.Target(),
		StartTimeMs:    dc.opts.Clock.NowMs(),
	}
	dc.episode = ep
	dc.state = DragPendingClick

	// 监听函数只处理属于自己的手势
	dc.release = dc.opts.Pointer.Subscribe(func(ev components.PointerEvent) {
		if dc.episode != ep {
			return
		}
		switch ev.Kind {
		case components.PointerMove:
			dc.handleMove(ep, ev)
		case components.PointerUp:
			dc.handleUp(ep, ev)
		}
	})
	return true
}

func (dc *DragController) handleMove(ep *components.DragEpisode, ev components.PointerEvent) {
	dx := ev.X - ep.OriginScreenX
	dy := ev.Y - ep.OriginScreenY

	threshold := dc.opts.Engine.DragThreshold
	if !ep.Moved && (math.Abs(dx) > threshold || math.Abs(dy) > threshold) {
		ep.Moved = true
		if dc.opts.Draggable {
			dc.beginDrag(ep)
		}
	}

	if dc.state != DragDragging {
		return
	}

	x := ep.OriginValueX + dc.opts.Scaler.ToDesign(dx)
	y := ep.OriginValueY + dc.opts.Scaler.ToDesign(dy)
	if dc.opts.Viewport != nil {
		vw, vh := dc.opts.Viewport()
		x = dc.clamp(x, dc.opts.Width, vw)
		y = dc.clamp(y, dc.opts.Height, vh)
	}

	// 1:1 跟随，不使用缓动
	dc.tracks.X.Set(x)
	dc.tracks.Y.Set(y)
}

// clamp 把位置限制在视口内，包围盒不超出视口
// 左上角原点的合法范围是 [0, viewport - size]
func (dc *DragController) clamp(v, size, viewport float64) float64 {
	if !dc.opts.TopLeftOrigin {
		return utils.ClampToViewport(v, size, viewport)
	}
	return utils.ClampToViewport(v+size/2, size, viewport) - size/2
}

func (dc *DragController) beginDrag(ep *components.DragEpisode) {
	dc.state = DragDragging

	// "拿起"提示：摆正并放大
	dc.tracks.Rotation.Set(0)
	dc.tracks.Scale.Set(ep.OriginScale * dc.opts.Engine.LiftScale)

	log.Printf("[DragController] 开始拖拽, 原点 (%.1f, %.1f)", ep.OriginValueX, ep.OriginValueY)
	if dc.opts.OnDragStart != nil {
		dc.opts.OnDragStart()
	}
}

func (dc *DragController) handleUp(ep *components.DragEpisode, ev components.PointerEvent) {
	wasDragging := dc.state == DragDragging
	elapsed := dc.opts.Clock.NowMs() - ep.StartTimeMs

	dc.end()

	if !ep.Moved && elapsed < dc.opts.Engine.ClickMaxMs {
		if dc.opts.OnClick != nil {
			dc.opts.OnClick(ev)
		}
		return
	}

	if !wasDragging {
		return
	}

	// 回弹到拖拽前的位置，并恢复旋转和缩放
	spec := tween.Over(dc.opts.Engine.ResetDurationMs, dc.opts.Engine.ResetEasingFunc())
	dc.tracks.X.Animate(tween.To(ep.OriginValueX), spec, nil)
	dc.tracks.Y.Animate(tween.To(ep.OriginValueY), spec, nil)
	dc.tracks.Rotation.Animate(tween.To(ep.OriginRotation), spec, nil)
	dc.tracks.Scale.Animate(tween.To(ep.OriginScale), spec, nil)

	log.Printf("[DragController] 拖拽结束, 用时 %.0fms, 回弹到 (%.1f, %.1f)", elapsed, ep.OriginValueX, ep.OriginValueY)
	if dc.opts.OnDragEnd != nil {
		dc.opts.OnDragEnd()
	}
}

// end 释放订阅并回到 Idle
func (dc *DragController) end() {
	if dc.release != nil {
		dc.release()
		dc.release = nil
	}
	dc.episode = nil
	dc.state = DragIdle
}

// Cancel 放弃当前手势，不触发点击也不回弹
func (dc *DragController) Cancel() {
	dc.end()
}

// State 当前状态
func (dc *DragController) State() DragState {
	return dc.state
}

// IsDragging 是否处于拖拽状态
func (dc *DragController) IsDragging() bool {
	return dc.state == DragDragging
}

// Episode 当前手势的副本；没有手势时返回 false
func (dc *DragController) Episode() (components.DragEpisode, bool) {
	if dc.episode == nil {
		return components.DragEpisode{}, false
	}
	return *dc.episode, true
}
