package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 统一处理鼠标和触摸输入，触摸优先
type PointerState struct {
	// Pressed 指针是否处于按下状态
	Pressed bool
	// JustPressed 本帧刚刚按下
	JustPressed bool
	// JustReleased 本帧刚刚抬起
	JustReleased bool
	// X, Y 指针位置（渲染坐标）
	X, Y int
	// IsTouch 是否来自触摸
	IsTouch bool
}

// pointerPoller 每帧读取一次 ebiten 的指针输入
// 触摸抬起依赖上一帧记录的触摸ID
type pointerPoller struct {
	lastTouchID ebiten.TouchID
}

func newPointerPoller() *pointerPoller {
	return &pointerPoller{lastTouchID: -1}
}

// Poll 读取当前帧的指针状态，每帧只应调用一次
func (p *pointerPoller) Poll() PointerState {
	state := PointerState{}

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		id := touchIDs[0]
		state.X, state.Y = ebiten.TouchPosition(id)
		state.Pressed = true
		state.IsTouch = true
		state.JustPressed = p.lastTouchID != id
		p.lastTouchID = id
		return state
	}

	if p.lastTouchID >= 0 {
		// 触摸刚刚抬起，沿用抬起前的位置
		state.X, state.Y = inpututil.TouchPositionInPreviousTick(p.lastTouchID)
		state.JustReleased = true
		state.IsTouch = true
		p.lastTouchID = -1
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}
