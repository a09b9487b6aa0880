package systems

import (
	"github.com/decker502/cardfx/pkg/tween"
	"github.com/decker502/cardfx/pkg/utils"
)

// 闪烁的两个亮度区间
const (
	blinkLowMin  = 0.2
	blinkLowMax  = 0.5
	blinkHighMin = 0.5
	blinkHighMax = 1.0
)

// BlinkLoop 高亮透明度的闪烁循环
//
// 开启且未被悬停时，在低亮度区间 [0.2, 0.5) 和高亮度区间 [0.5, 1.0] 之间交替补间。
// 悬停会干净地打断当前补间；悬停结束后如果仍开启则在下一轮恢复。
// 悬停期间高亮轨道交给卡片自身（悬停高亮或显式高亮状态）。
type BlinkLoop struct {
	track             *tween.Property
	rnd               RandomSource
	defaultDurationMs float64
	durationMs        float64
	enabled           bool
	hovered           bool
	ownVersion        uint64
	owning            bool
}

// NewBlinkLoop 创建闪烁循环，track 为高亮透明度轨道
func NewBlinkLoop(track *tween.Property, defaultDurationMs float64, rnd RandomSource) *BlinkLoop {
	if rnd == nil {
		rnd = DefaultRandom()
	}
	return &BlinkLoop{
		track:             track,
		rnd:               rnd,
		defaultDurationMs: defaultDurationMs,
		durationMs:        defaultDurationMs,
	}
}

// Start 开启闪烁；durationMs <= 0 时使用默认时长
func (b *BlinkLoop) Start(durationMs float64) {
	if durationMs <= 0 {
		durationMs = b.defaultDurationMs
	}
	b.durationMs = durationMs
	if b.enabled {
		return
	}
	b.enabled = true
	if !b.hovered {
		b.next()
	}
}

// Stop 停止闪烁，取消自己发起的补间
// 返回 true 表示闪烁之前处于开启状态（调用者应恢复显式高亮状态）
func (b *BlinkLoop) Stop() bool {
	if !b.enabled {
		return false
	}
	b.enabled = false
	b.release()
	return true
}

// SetHovered 更新悬停状态
func (b *BlinkLoop) SetHovered(hovered bool) {
	if b.hovered == hovered {
		return
	}
	b.hovered = hovered
	if hovered {
		b.release()
		return
	}
	if b.enabled {
		b.next()
	}
}

// Enabled 是否请求了闪烁
func (b *BlinkLoop) Enabled() bool {
	return b.enabled
}

// Running 是否正在闪烁（开启且未被悬停）
func (b *BlinkLoop) Running() bool {
	return b.enabled && !b.hovered
}

// Update 在轨道推进之后调用：上一轮结束后发起下一轮
func (b *BlinkLoop) Update(dtMs float64) {
	if !b.Running() {
		return
	}
	if b.track.Active() {
		return
	}
	b.next()
}

func (b *BlinkLoop) next() {
	var target float64
	if b.track.Value() < blinkHighMin {
		target = randomIn(b.rnd, blinkHighMin, blinkHighMax)
	} else {
		target = randomIn(b.rnd, blinkLowMin, blinkLowMax)
	}

	b.track.Animate(tween.To(target), tween.Over(b.durationMs, utils.EaseInOutSine), nil)
	b.ownVersion = b.track.Version()
	b.owning = true
}

// release 取消自己仍然持有的补间；轨道已被其他写入者接管时不做任何事
func (b *BlinkLoop) release() {
	if b.owning && b.track.Version() == b.ownVersion {
		b.track.Cancel()
	}
	b.owning = false
}
