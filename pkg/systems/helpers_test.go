package systems

import (
	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/tween"
)

// manualClock 测试用的手动时钟
type manualClock struct {
	now float64
}

func (c *manualClock) NowMs() float64 {
	return c.now
}

func (c *manualClock) Advance(ms float64) {
	c.now += ms
}

// fixedRandom 总是返回同一个值
type fixedRandom struct {
	v float64
}

func (r fixedRandom) Float64() float64 {
	return r.v
}

// sequenceRandom 依次返回预设的值，用完后循环
type sequenceRandom struct {
	values []float64
	i      int
}

func (r *sequenceRandom) Float64() float64 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

// advance 以 16ms 为一帧推进轨道 totalMs 毫秒，每帧之后调用 after
func advance(totalMs float64, props []*tween.Property, after func(dt float64)) {
	const frame = 16.0
	for elapsed := 0.0; elapsed < totalMs; elapsed += frame {
		for _, p := range props {
			p.Update(frame)
		}
		if after != nil {
			after(frame)
		}
	}
}

func testEngine() config.EngineConfig {
	return config.DefaultEngineConfig()
}
