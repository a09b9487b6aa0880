// Package card 组合所有动画轨道和状态机，实现卡片的命令式接口
//
// 宿主持有 Handle（通常是 *Animator）并调用翻转、定位、高亮等操作；
// 每帧由 tween.Driver 推进，结果通过 Surface 推送给渲染层。
// 引擎本身不关心渲染方式，也不做任何阻塞调用。
package card

import (
	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/tween"
)

// Surface 渲染表面
// 每帧在变换发生变化时收到完整的 CardTransform
type Surface interface {
	ApplyTransform(t components.CardTransform)
}

// SurfaceFunc 函数适配器
type SurfaceFunc func(t components.CardTransform)

// ApplyTransform 调用 f(t)
func (f SurfaceFunc) ApplyTransform(t components.CardTransform) {
	f(t)
}

// Style 供外部组合使用的只读快照
// 例如外层容器把这张卡片作为整体做动画时读取
type Style struct {
	TranslateX  float64
	TranslateY  float64
	RotationDeg float64
	Scale       float64
}

// HighlightOptions ToggleHighlight 的可选参数
type HighlightOptions struct {
	// ShouldBeWhite 使用白色高亮
	ShouldBeWhite bool
	// Color 高亮颜色，空字符串表示保持当前颜色
	Color string
}

// Handle 宿主 UI 调用的卡片命令式接口
//
// 所有操作立即返回：它们只是注册或替换补间。
// 渲染表面挂载之前或卡片销毁之后的调用会被静默丢弃。
type Handle interface {
	// Flip 翻转到 ±degrees（方向由 isLeft 决定）或翻回 0
	// degrees <= 0 使用默认角度
	Flip(flipped, isLeft bool, durationMs, degrees float64)

	// SetPosition 定位到单个目标或沿关键帧路径移动；空 Target 表示该轴不变
	SetPosition(x, y tween.Target, spec tween.Spec)
	SetScale(target tween.Target, spec tween.Spec)
	SetRotation(target tween.Target, spec tween.Spec)

	// SetZIndex 立即设置前景层级，可选同时设置背景层级
	SetZIndex(index int, backgroundIndex ...int)

	// ToggleVisibility 显示/隐藏；instant 时立即跳变
	ToggleVisibility(visible, instant bool)

	// ToggleHighlight 切换显式高亮状态；卡片完全不可见时无效
	ToggleHighlight(highlighted bool, opts HighlightOptions)

	// ToggleDefeated 设置"被击败"标志，无动画
	ToggleDefeated(defeated bool)

	// SetHanging 开启/关闭悬挂模式
	SetHanging(enabled bool)
	// PlayHanging 重新开始摆动（仅悬挂模式开启时有效）
	PlayHanging()

	ToggleIdle(enabled bool)
	// ToggleBlink 开启/关闭闪烁；durationMs <= 0 使用默认时长
	ToggleBlink(enabled bool, durationMs float64)

	GetStyle() Style
}
