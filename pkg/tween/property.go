// Package tween 提供卡片动画轨道（AnimatedProperty）和逐帧驱动器
//
// 每个 Property 是一条可独立动画的轨道（位置X、旋转、透明度等）。
// 同一时刻每条轨道最多只有一个活动补间：新的 Animate 调用会取消正在进行的补间，
// 并从当前值（可能处于补间中途）开始，因此不会出现跳变。
package tween

import "github.com/decker502/cardfx/pkg/utils"

// Target 补间目标
// 单个元素表示标量目标，多个元素表示按顺序经过的关键帧路径
type Target []float64

// To 返回标量目标
func To(v float64) Target {
	return Target{v}
}

// Path 返回关键帧路径目标
func Path(values ...float64) Target {
	return Target(values)
}

// Final 返回目标的最后一个关键帧
func (t Target) Final() (float64, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[len(t)-1], true
}

// Spec 描述一次补间的时间曲线
type Spec struct {
	// DurationMs 持续时间（毫秒），<= 0 表示立即应用
	DurationMs float64
	// Easing 缓动函数，nil 表示线性
	Easing utils.EasingFunc
	// Interpolation 多关键帧插值函数，nil 表示分段线性
	Interpolation utils.InterpolationFunc
}

// Instant 立即应用的补间规格
var Instant = Spec{}

// Over 以给定时长和缓动创建 Spec
func Over(durationMs float64, easing utils.EasingFunc) Spec {
	return Spec{DurationMs: durationMs, Easing: easing}
}

// activeTween 一次正在进行的补间
type activeTween struct {
	values        []float64 // [起点, 关键帧...]
	durationMs    float64
	elapsedMs     float64
	easing        utils.EasingFunc
	interpolation utils.InterpolationFunc
	onComplete    func()
}

// Property 一条补间驱动的动画轨道
type Property struct {
	value    float64
	target   float64
	onUpdate func(float64)
	tween    *activeTween
	version  uint64
}

// NewProperty 创建轨道
// onUpdate 在每次值变化时被调用（可为 nil）
func NewProperty(initial float64, onUpdate func(float64)) *Property {
	return &Property{
		value:    initial,
		target:   initial,
		onUpdate: onUpdate,
	}
}

// Animate 替换当前补间
//
// 从当前值出发，按 spec 经过 target 中的关键帧。
// spec.DurationMs <= 0 时立即应用最终值并同步触发 onComplete，不产生任何动画帧。
// 空 target 被忽略。
func (p *Property) Animate(target Target, spec Spec, onComplete func()) {
	final, ok := target.Final()
	if !ok {
		return
	}

	p.version++
	p.tween = nil
	p.target = final

	if spec.DurationMs <= 0 {
		p.setValue(final)
		if onComplete != nil {
			onComplete()
		}
		return
	}

	values := make([]float64, 0, len(target)+1)
	values = append(values, p.value)
	values = append(values, target...)

	easing := spec.Easing
	if easing == nil {
		easing = utils.EaseLinear
	}
	interpolation := spec.Interpolation
	if interpolation == nil {
		interpolation = utils.LinearInterpolation
	}

	p.tween = &activeTween{
		values:        values,
		durationMs:    spec.DurationMs,
		easing:        easing,
		interpolation: interpolation,
		onComplete:    onComplete,
	}
}

// Set 立即把轨道设为 v
func (p *Property) Set(v float64) {
	p.Animate(To(v), Instant, nil)
}

// Cancel 丢弃当前补间，不触发任何回调，值停留在当前位置
func (p *Property) Cancel() {
	if p.tween == nil {
		return
	}
	p.tween = nil
	p.target = p.value
}

// Update 推进当前补间 dtMs 毫秒
func (p *Property) Update(dtMs float64) {
	tw := p.tween
	if tw == nil {
		return
	}

	tw.elapsedMs += dtMs
	progress := tw.elapsedMs / tw.durationMs
	if progress > 1 {
		progress = 1
	}

	p.setValue(tw.interpolation(tw.values, tw.easing(progress)))

	// 回调里可能已经替换了补间
	if p.tween != tw || progress < 1 {
		return
	}

	p.tween = nil
	// 收尾时精确落在终点，避免缓动的浮点误差
	p.setValue(p.target)
	if tw.onComplete != nil {
		tw.onComplete()
	}
}

// Value 当前值
func (p *Property) Value() float64 {
	return p.value
}

// Target 当前（或最近一次）补间的最终目标；没有补间时等于当前值
func (p *Property) Target() float64 {
	return p.target
}

// Active 是否有正在进行的补间
func (p *Property) Active() bool {
	return p.tween != nil
}

// Version 每次 Animate/Set 递增
// 持有者可以据此判断轨道是否已被其他写入者接管
func (p *Property) Version() uint64 {
	return p.version
}

func (p *Property) setValue(v float64) {
	if v == p.value {
		return
	}
	p.value = v
	if p.onUpdate != nil {
		p.onUpdate(v)
	}
}
