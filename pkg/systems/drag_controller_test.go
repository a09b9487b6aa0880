package systems

import (
	"math"
	"testing"

	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/tween"
	"github.com/decker502/cardfx/pkg/utils"
)

type dragFixture struct {
	hub    *PointerHub
	clock  *manualClock
	tracks DragTracks
	dc     *DragController
	clicks int
	starts int
	ends   int
	props  []*tween.Property
}

func newDragFixture(draggable bool) *dragFixture {
	f := &dragFixture{
		hub:   NewPointerHub(),
		clock: &manualClock{now: 1000},
		tracks: DragTracks{
			X:        tween.NewProperty(200, nil),
			Y:        tween.NewProperty(150, nil),
			Rotation: tween.NewProperty(12, nil),
			Scale:    tween.NewProperty(1, nil),
		},
	}
	f.props = []*tween.Property{f.tracks.X, f.tracks.Y, f.tracks.Rotation, f.tracks.Scale}
	f.dc = NewDragController(f.tracks, DragOptions{
		Engine:      testEngine(),
		Width:       100,
		Height:      140,
		Draggable:   draggable,
		Scaler:      utils.NewScaler(2),
		Viewport:    func() (float64, float64) { return 400, 300 },
		Clock:       f.clock,
		Pointer:     f.hub,
		OnClick:     func(components.PointerEvent) { f.clicks++ },
		OnDragStart: func() { f.starts++ },
		OnDragEnd:   func() { f.ends++ },
	})
	return f
}

func (f *dragFixture) move(x, y float64) {
	f.hub.Dispatch(components.PointerEvent{Kind: components.PointerMove, X: x, Y: y})
}

func (f *dragFixture) up(x, y float64) {
	f.hub.Dispatch(components.PointerEvent{Kind: components.PointerUp, X: x, Y: y})
}

// TestDragClickUnderThreshold 阈值内的短按触发一次点击，不发出回弹补间
func TestDragClickUnderThreshold(t *testing.T) {
	f := newDragFixture(true)
	versionX := f.tracks.X.Version()

	f.dc.PointerDown(400, 300)
	f.move(405, 306)
	f.clock.Advance(100)
	f.up(405, 306)

	if f.clicks != 1 {
		t.Errorf("点击次数 = %d, 期望 1", f.clicks)
	}
	if f.tracks.X.Version() != versionX {
		t.Error("点击不应写入位置轨道")
	}
	if f.tracks.X.Active() || f.tracks.Y.Active() {
		t.Error("点击不应产生回弹补间")
	}
	if f.dc.State() != DragIdle {
		t.Errorf("State() = %v, 期望 idle", f.dc.State())
	}
	if f.hub.Len() != 0 {
		t.Errorf("手势结束后仍有 %d 个订阅", f.hub.Len())
	}
}

// TestDragLongPressIsNotClick 超过点击时长的按下不触发点击
func TestDragLongPressIsNotClick(t *testing.T) {
	f := newDragFixture(true)

	f.dc.PointerDown(400, 300)
	f.clock.Advance(150)
	f.up(400, 300)

	if f.clicks != 0 {
		t.Errorf("点击次数 = %d, 期望 0", f.clicks)
	}
}

// TestDragEpisode 超过阈值的拖拽：不触发点击，恰好一次回弹补间
func TestDragEpisode(t *testing.T) {
	f := newDragFixture(true)

	f.dc.PointerDown(400, 300)
	f.move(430, 300)

	if !f.dc.IsDragging() {
		t.Fatalf("State() = %v, 期望 dragging", f.dc.State())
	}
	if f.starts != 1 {
		t.Errorf("OnDragStart 调用次数 = %d, 期望 1", f.starts)
	}
	if f.tracks.Rotation.Value() != 0 {
		t.Errorf("拖拽时旋转应归零, 实际 %v", f.tracks.Rotation.Value())
	}
	if math.Abs(f.tracks.Scale.Value()-1.1) > 1e-9 {
		t.Errorf("拖拽时缩放 = %v, 期望 1.1", f.tracks.Scale.Value())
	}
	// 渲染坐标位移 30 / 缩放 2 = 设计坐标位移 15
	if f.tracks.X.Value() != 215 || f.tracks.X.Active() {
		t.Errorf("位置应立即跟随到 215, 实际 %v (active=%v)", f.tracks.X.Value(), f.tracks.X.Active())
	}

	f.move(460, 320)
	f.clock.Advance(400)
	versionX := f.tracks.X.Version()
	versionY := f.tracks.Y.Version()
	f.up(460, 320)

	if f.clicks != 0 {
		t.Errorf("拖拽不应触发点击, clicks = %d", f.clicks)
	}
	if f.tracks.X.Version() != versionX+1 || f.tracks.Y.Version() != versionY+1 {
		t.Errorf("回弹补间数量不为 1: X %d->%d, Y %d->%d",
			versionX, f.tracks.X.Version(), versionY, f.tracks.Y.Version())
	}
	if !f.tracks.X.Active() {
		t.Error("抬起后应有回弹补间")
	}
	if f.ends != 1 {
		t.Errorf("OnDragEnd 调用次数 = %d, 期望 1", f.ends)
	}

	advance(testEngine().ResetDurationMs, f.props, nil)

	if f.tracks.X.Value() != 200 || f.tracks.Y.Value() != 150 {
		t.Errorf("回弹后位置 = (%v, %v), 期望 (200, 150)", f.tracks.X.Value(), f.tracks.Y.Value())
	}
	if f.tracks.Rotation.Value() != 12 || f.tracks.Scale.Value() != 1 {
		t.Errorf("回弹后旋转/缩放 = (%v, %v), 期望 (12, 1)", f.tracks.Rotation.Value(), f.tracks.Scale.Value())
	}
}

// TestDragClampsToViewport 拖拽位置被限制在视口内
func TestDragClampsToViewport(t *testing.T) {
	f := newDragFixture(true)

	f.dc.PointerDown(400, 300)
	f.move(-2000, 5000)

	// 视口 400x300，卡片 100x140
	if f.tracks.X.Value() != 50 {
		t.Errorf("X = %v, 期望夹紧到 50", f.tracks.X.Value())
	}
	if f.tracks.Y.Value() != 230 {
		t.Errorf("Y = %v, 期望夹紧到 230", f.tracks.Y.Value())
	}
}

// TestDragClampsTopLeftOrigin 左上角原点时包围盒同样不超出视口
func TestDragClampsTopLeftOrigin(t *testing.T) {
	tests := []struct {
		name         string
		toX, toY     float64
		wantX, wantY float64
	}{
		{"拖向左上", -2000, -2000, 0, 0},
		{"拖向右下", 5000, 5000, 300, 160},
		{"视口内不夹紧", 440, 320, 220, 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDragFixture(true)
			f.dc.opts.TopLeftOrigin = true

			f.dc.PointerDown(400, 300)
			f.move(tt.toX, tt.toY)

			// 视口 400x300，卡片 100x140，缩放 2
			if got := f.tracks.X.Value(); math.Abs(got-tt.wantX) > 1e-9 {
				t.Errorf("X = %v, 期望 %v", got, tt.wantX)
			}
			if got := f.tracks.Y.Value(); math.Abs(got-tt.wantY) > 1e-9 {
				t.Errorf("Y = %v, 期望 %v", got, tt.wantY)
			}
		})
	}
}

// TestDragNotDraggable 不可拖拽的卡片移动超过阈值后既不拖拽也不点击
func TestDragNotDraggable(t *testing.T) {
	f := newDragFixture(false)
	versionX := f.tracks.X.Version()

	f.dc.PointerDown(400, 300)
	f.move(450, 300)
	if f.dc.IsDragging() {
		t.Fatal("不可拖拽的卡片不应进入拖拽状态")
	}
	f.clock.Advance(50)
	f.up(450, 300)

	if f.clicks != 0 {
		t.Errorf("clicks = %d, 期望 0", f.clicks)
	}
	if f.tracks.X.Version() != versionX {
		t.Error("不可拖拽的卡片不应写入位置轨道")
	}
}

// TestDragGesturesDoNotCrossTrigger 每次手势拥有独立订阅
func TestDragGesturesDoNotCrossTrigger(t *testing.T) {
	f := newDragFixture(true)

	if !f.dc.PointerDown(400, 300) {
		t.Fatal("第一次按下应开始手势")
	}
	if f.dc.PointerDown(400, 300) {
		t.Error("手势进行中再次按下应被忽略")
	}
	if f.hub.Len() != 1 {
		t.Errorf("订阅数量 = %d, 期望 1", f.hub.Len())
	}

	f.up(400, 300)
	f.up(400, 300) // 旧手势的订阅已释放

	f.dc.PointerDown(400, 300)
	f.up(400, 300)

	if f.clicks != 2 {
		t.Errorf("clicks = %d, 期望 2", f.clicks)
	}
	if f.hub.Len() != 0 {
		t.Errorf("订阅数量 = %d, 期望 0", f.hub.Len())
	}
}

func TestDragCancel(t *testing.T) {
	f := newDragFixture(true)

	f.dc.PointerDown(400, 300)
	f.move(450, 300)
	f.dc.Cancel()
	f.up(450, 300)

	if f.ends != 0 || f.clicks != 0 {
		t.Errorf("取消后不应再有回调: ends=%d clicks=%d", f.ends, f.clicks)
	}
	if _, ok := f.dc.Episode(); ok {
		t.Error("取消后不应存在手势")
	}
	if f.hub.Len() != 0 {
		t.Error("取消后应释放订阅")
	}
}
