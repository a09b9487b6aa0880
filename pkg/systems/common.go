package systems

import (
	"math/rand"
	"time"
)

// Clock 手势计时使用的单调时钟（毫秒）
// 与补间时钟（Driver 累计的 dt）相互独立
type Clock interface {
	NowMs() float64
}

// MonotonicClock 基于 time.Since 的单调时钟
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 创建从当前时刻开始计时的时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// NowMs 自创建以来经过的毫秒数
func (c *MonotonicClock) NowMs() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// RandomSource 随机数来源，返回 [0, 1) 的浮点数
// 测试中可注入确定性的实现
type RandomSource interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 {
	return rand.Float64()
}

// DefaultRandom 使用 math/rand 全局随机源
func DefaultRandom() RandomSource {
	return globalRandom{}
}

// randomIn 返回 [lo, hi) 内的随机数
func randomIn(rnd RandomSource, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
