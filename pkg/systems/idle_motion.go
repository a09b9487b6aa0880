package systems

import (
	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/tween"
	"github.com/decker502/cardfx/pkg/utils"
)

// IdleMotionLoop 闲置漂移循环
//
// 开启后每轮随机生成一条多关键帧路径，用 Catmull-Rom 插值和正弦缓动走完，
// 结束后重新生成，没有自然终止。偏移叠加在位置轨道之上，与拖拽互不争用。
type IdleMotionLoop struct {
	x, y    *tween.Property
	engine  config.EngineConfig
	rnd     RandomSource
	enabled bool
	state   components.IdleState
}

// NewIdleMotionLoop 创建闲置漂移循环，x/y 为闲置偏移轨道
func NewIdleMotionLoop(x, y *tween.Property, engine config.EngineConfig, rnd RandomSource) *IdleMotionLoop {
	if rnd == nil {
		rnd = DefaultRandom()
	}
	return &IdleMotionLoop{
		x:      x,
		y:      y,
		engine: engine,
		rnd:    rnd,
	}
}

// Start 开启循环并立即生成第一条路径
func (l *IdleMotionLoop) Start() {
	if l.enabled {
		return
	}
	l.enabled = true
	l.next()
}

// Stop 停止循环，偏移立即归零
func (l *IdleMotionLoop) Stop() {
	if !l.enabled {
		return
	}
	l.enabled = false
	l.x.Set(0)
	l.y.Set(0)
	l.state = components.IdleState{}
}

// Enabled 循环是否开启
func (l *IdleMotionLoop) Enabled() bool {
	return l.enabled
}

// Update 在轨道推进之后调用：当前路径走完时生成下一条
func (l *IdleMotionLoop) Update(dtMs float64) {
	if !l.enabled {
		return
	}
	if l.x.Active() || l.y.Active() {
		return
	}
	l.next()
}

// State 当前路径副本
func (l *IdleMotionLoop) State() components.IdleState {
	return components.IdleState{
		PathX:      append([]float64(nil), l.state.PathX...),
		PathY:      append([]float64(nil), l.state.PathY...),
		DurationMs: l.state.DurationMs,
	}
}

func (l *IdleMotionLoop) next() {
	duration := (1 + l.rnd.Float64()) * l.engine.IdleBaseDurationMs

	l.state = components.IdleState{
		PathX:      l.randomPath(),
		PathY:      l.randomPath(),
		DurationMs: duration,
	}

	spec := tween.Spec{
		DurationMs:    duration,
		Easing:        utils.EaseInOutSine,
		Interpolation: utils.CatmullRomInterpolation,
	}
	l.x.Animate(tween.Path(l.state.PathX...), spec, nil)
	l.y.Animate(tween.Path(l.state.PathY...), spec, nil)
}

// randomPath 生成 idleKeyframes 个在 ±idleRange/2 内的关键帧
func (l *IdleMotionLoop) randomPath() []float64 {
	half := l.engine.IdleRange / 2
	path := make([]float64, l.engine.IdleKeyframes)
	for i := range path {
		path[i] = randomIn(l.rnd, -half, half)
	}
	return path
}
