package systems

import (
	"log"
	"math"

	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/tween"
	"github.com/decker502/cardfx/pkg/utils"
)

const (
	// hangForcedSpan 强制方向时悬挂点偏移的范围（占卡片宽度的比例）
	hangForcedSpan = 0.35
	// hangRandomSpan 随机方向时悬挂点偏移的范围（±，占卡片宽度的比例）
	hangRandomSpan = 0.2
	// hangApproachRatio 距离较远时每一步靠近静止角度的比例
	hangApproachRatio = 0.7
	// hangOvershootBase 微幅振荡时额外越过静止角度的基础量（度）
	hangOvershootBase = 0.2
)

// HangMode 悬挂模拟器的模式
type HangMode int

const (
	HangOff HangMode = iota
	HangSwinging
	HangPushing
)

// NewHangState 在卡片创建时采样一次悬挂点偏移
//
//   - forcedLeft == nil：偏移均匀分布在 [-0.2, 0.2) × width
//   - *forcedLeft == true：偏移在 [-0.35, 0) × width
//   - *forcedLeft == false：偏移在 (0, 0.35] × width
func NewHangState(width float64, forcedLeft *bool, rnd RandomSource, maxDeg float64) components.HangState {
	var offset float64
	switch {
	case forcedLeft == nil:
		offset = randomIn(rnd, -hangRandomSpan, hangRandomSpan) * width
	case *forcedLeft:
		offset = -(1 - rnd.Float64()) * hangForcedSpan * width
	default:
		offset = (1 - rnd.Float64()) * hangForcedSpan * width
	}

	return components.HangState{
		RandomOffset: offset,
		RestAngleDeg: RestAngle(offset, width, maxDeg),
	}
}

// RestAngle 由悬挂点偏移推导静止角度
//
//	rest = sign(-offset) × min(|offset| / (0.35 × width), 1) × maxDeg
//
// 偏移为 0 时静止角度为 0；偏移达到 0.35 × width 时角度达到上限。
func RestAngle(offset, width, maxDeg float64) float64 {
	if offset == 0 || width <= 0 {
		return 0
	}
	ratio := math.Min(math.Abs(offset)/(hangForcedSpan*width), 1)
	sign := 1.0
	if -offset < 0 {
		sign = -1
	}
	return sign * ratio * maxDeg
}

// HangingSwingSimulator 悬挂摆动模拟器
//
// 模拟固定在一点上的卡片：不断地向静止角度修正而不是停下来，让卡片显得有"重量"。
// 每一步是一次 hangStepMs 的补间；补间结束后由 Update 发起下一步，循环不会自然终止。
// 指针"推动"会抢占当前摆动，结束后恢复正常振荡。
type HangingSwingSimulator struct {
	track       *tween.Property
	state       components.HangState
	engine      config.EngineConfig
	rnd         RandomSource
	clock       Clock
	shouldSwing bool

	mode      HangMode
	activated bool
}

// NewHangingSwingSimulator 创建悬挂模拟器
// track 是悬挂角度轨道，state 来自 NewHangState
func NewHangingSwingSimulator(track *tween.Property, state components.HangState, engine config.EngineConfig, shouldSwing bool, rnd RandomSource, clock Clock) *HangingSwingSimulator {
	if rnd == nil {
		rnd = DefaultRandom()
	}
	if clock == nil {
		clock = NewMonotonicClock()
	}
	state.CurrentAngleDeg = track.Value()
	return &HangingSwingSimulator{
		track:       track,
		state:       state,
		engine:      engine,
		rnd:         rnd,
		clock:       clock,
		shouldSwing: shouldSwing,
		mode:        HangOff,
	}
}

// Enable 开启悬挂模式并立即开始摆动
func (h *HangingSwingSimulator) Enable() {
	if h.mode != HangOff {
		return
	}
	h.mode = HangSwinging
	h.step()
}

// Disable 关闭悬挂模式，角度立即归零（无补间）
func (h *HangingSwingSimulator) Disable() {
	if h.mode == HangOff {
		return
	}
	h.mode = HangOff
	h.track.Set(0)
	h.state.CurrentAngleDeg = 0
}

// Enabled 悬挂模式是否开启
func (h *HangingSwingSimulator) Enabled() bool {
	return h.mode != HangOff
}

// Restart 从当前角度重新开始摆动（仅在开启时有效）
func (h *HangingSwingSimulator) Restart() {
	if h.mode == HangOff {
		return
	}
	h.mode = HangSwinging
	h.step()
}

// Push 指针进入卡片时推动卡片
//
// entryX 是指针进入位置，centerX 是卡片中心（同一坐标系）。
// 左侧进入角度减少、右侧进入角度增加 pushMinDeg~pushMaxDeg。
// 距离上次推动不足 pushCooldownMs 时忽略，返回 false。
func (h *HangingSwingSimulator) Push(entryX, centerX float64) bool {
	if h.mode == HangOff {
		return false
	}

	now := h.clock.NowMs()
	if h.state.HasPushed && now-h.state.LastPushTimeMs < h.engine.PushCooldownMs {
		return false
	}
	h.state.HasPushed = true
	h.state.LastPushTimeMs = now

	delta := randomIn(h.rnd, h.engine.PushMinDeg, h.engine.PushMaxDeg)
	if entryX < centerX {
		delta = -delta
	}

	target := h.track.Value() + delta
	h.track.Animate(tween.To(target), tween.Over(h.engine.PushDurationMs, utils.EaseOutQuad), nil)
	h.mode = HangPushing

	log.Printf("[HangingSwing] 推动 %.1f°, 当前 %.1f° -> %.1f°", delta, h.track.Value(), target)
	return true
}

// Update 在轨道推进之后调用：上一步结束时发起下一步
func (h *HangingSwingSimulator) Update(dtMs float64) {
	if h.mode == HangOff {
		return
	}
	h.state.CurrentAngleDeg = h.track.Value()
	if h.track.Active() {
		return
	}
	h.mode = HangSwinging
	h.step()
}

// step 从当前角度发起下一次摆动
func (h *HangingSwingSimulator) step() {
	rest := h.state.RestAngleDeg

	if !h.activated {
		h.activated = true
		if !h.shouldSwing {
			// 跳过初始摆动：直接落在静止角度，之后照常振荡
			h.track.Set(rest)
		}
	}

	from := h.track.Value()
	distance := math.Abs(rest - from)

	var target float64
	if distance < h.engine.HangSettleDeg {
		// 已接近静止角度：略微越过，保持微小振荡
		dir := 1.0
		if rest < from {
			dir = -1
		}
		target = from + dir*(h.rnd.Float64()+hangOvershootBase+distance)
	} else {
		target = from + hangApproachRatio*(rest-from)
	}

	h.track.Animate(tween.To(target), tween.Over(h.engine.HangStepMs, utils.EaseInOutQuad), nil)
	h.state.CurrentAngleDeg = from
}

// Mode 当前模式
func (h *HangingSwingSimulator) Mode() HangMode {
	return h.mode
}

// State 悬挂状态副本
func (h *HangingSwingSimulator) State() components.HangState {
	return h.state
}

// RestAngleDeg 静止角度
func (h *HangingSwingSimulator) RestAngleDeg() float64 {
	return h.state.RestAngleDeg
}
