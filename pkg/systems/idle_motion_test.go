package systems

import (
	"math"
	"testing"

	"github.com/decker502/cardfx/pkg/tween"
)

func TestIdleMotionLoop(t *testing.T) {
	engine := testEngine()
	x := tween.NewProperty(0, nil)
	y := tween.NewProperty(0, nil)
	rnd := &sequenceRandom{values: []float64{0.1, 0.9, 0.4, 0.6, 0.3, 0.7, 0.2, 0.8, 0.5, 0.35}}
	loop := NewIdleMotionLoop(x, y, engine, rnd)

	loop.Start()
	if !x.Active() || !y.Active() {
		t.Fatal("开启后两个轴都应有补间")
	}

	first := loop.State()
	if len(first.PathX) != engine.IdleKeyframes || len(first.PathY) != engine.IdleKeyframes {
		t.Fatalf("关键帧数量 = (%d, %d), 期望 %d", len(first.PathX), len(first.PathY), engine.IdleKeyframes)
	}
	half := engine.IdleRange / 2
	for _, v := range append(first.PathX, first.PathY...) {
		if v < -half || v > half {
			t.Errorf("关键帧 %v 超出 ±%v", v, half)
		}
	}
	if first.DurationMs < engine.IdleBaseDurationMs || first.DurationMs >= 2*engine.IdleBaseDurationMs {
		t.Errorf("时长 %v 超出 [base, 2×base)", first.DurationMs)
	}

	// 走完第一条路径后自动生成下一条
	advance(first.DurationMs, []*tween.Property{x, y}, loop.Update)
	if !x.Active() {
		t.Fatal("一轮结束后应生成新路径")
	}
	second := loop.State()
	if math.Abs(second.DurationMs-first.DurationMs) < 1e-9 && second.PathX[0] == first.PathX[0] {
		t.Error("新一轮路径应重新随机生成")
	}

	loop.Stop()
	if x.Value() != 0 || y.Value() != 0 {
		t.Errorf("停止后偏移 = (%v, %v), 期望 (0, 0)", x.Value(), y.Value())
	}
	if x.Active() || y.Active() {
		t.Error("停止后不应有补间")
	}

	advance(1000, []*tween.Property{x, y}, loop.Update)
	if x.Active() || loop.Enabled() {
		t.Error("停止后 Update 不应重新开始")
	}
}

// TestIdleMotionIsSmooth 路径开始时不应跳变
func TestIdleMotionIsSmooth(t *testing.T) {
	x := tween.NewProperty(3, nil)
	y := tween.NewProperty(-2, nil)
	loop := NewIdleMotionLoop(x, y, testEngine(), fixedRandom{v: 0.9})

	loop.Start()
	if x.Value() != 3 || y.Value() != -2 {
		t.Error("开启时偏移不应跳变")
	}

	prev := x.Value()
	advance(500, []*tween.Property{x, y}, loop.Update)
	if math.Abs(x.Value()-prev) > testEngine().IdleRange {
		t.Errorf("偏移变化过大: %v -> %v", prev, x.Value())
	}
}
