package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/ecs"
	"github.com/decker502/cardfx/pkg/systems"
	"github.com/decker502/cardfx/pkg/utils"
)

// keyActions 按键到卡片操作的映射
var keyActions = map[ebiten.Key]Action{
	ebiten.KeyF: ActionFlip,
	ebiten.KeyI: ActionIdle,
	ebiten.KeyB: ActionBlink,
	ebiten.KeyH: ActionHang,
	ebiten.KeyP: ActionPlayHang,
	ebiten.KeyV: ActionVisibility,
	ebiten.KeyD: ActionDefeated,
	ebiten.KeyL: ActionHighlight,
	ebiten.KeyR: ActionReset,
}

// InputSystem 处理指针和键盘输入
//
// 指针事件每帧轮询一次：移动和抬起分发给 PointerHub（拖拽手势订阅它），
// 按下、进入、离开经命中测试后直接调用对应卡片。
type InputSystem struct {
	entityManager *ecs.EntityManager
	hub           *systems.PointerHub
	scaler        utils.Scaler
	controller    *CardController
	pointer       *pointerPoller
	touchOnly     bool // 移动端（或模拟移动端）鼠标也按触摸处理

	lastX, lastY int
	hovered      ecs.EntityID // 0 表示没有悬停
	selected     ecs.EntityID // 键盘操作的目标
}

// NewInputSystem 创建输入系统
func NewInputSystem(em *ecs.EntityManager, hub *systems.PointerHub, scaler utils.Scaler, controller *CardController) *InputSystem {
	return &InputSystem{
		entityManager: em,
		hub:           hub,
		scaler:        scaler,
		controller:    controller,
		pointer:       newPointerPoller(),
		touchOnly:     utils.IsMobile(),
		lastX:         -1,
		lastY:         -1,
	}
}

// Update 处理本帧输入
func (s *InputSystem) Update() {
	ps := s.pointer.Poll()
	s.handlePointer(ps)
	s.handleKeys()
}

func (s *InputSystem) handlePointer(ps PointerState) {
	x, y := float64(ps.X), float64(ps.Y)

	if ps.X != s.lastX || ps.Y != s.lastY {
		s.lastX, s.lastY = ps.X, ps.Y
		s.hub.Dispatch(components.PointerEvent{Kind: components.PointerMove, X: x, Y: y})
	}
	if ps.JustReleased {
		s.hub.Dispatch(components.PointerEvent{Kind: components.PointerUp, X: x, Y: y})
	}

	entries := sortedCards(s.entityManager)
	hit, ok := hitTest(entries, s.scaler.ToDesign(x), s.scaler.ToDesign(y))

	// 触摸没有悬停，只在按住期间视为悬停
	if (ps.IsTouch || s.touchOnly) && !ps.Pressed {
		ok = false
	}

	target := ecs.EntityID(0)
	if ok {
		target = hit.id
	}
	if target != s.hovered {
		if prev, found := ecs.Get[*CardComponent](s.entityManager, s.hovered); found {
			prev.Animator.PointerLeave()
		}
		if ok {
			hit.card.Animator.PointerEnter(x, y)
		}
		s.hovered = target
	}

	if ps.JustPressed && ok {
		s.selected = hit.id
		hit.card.Animator.PointerDown(x, y)
	}
}

func (s *InputSystem) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.cycleSelection()
	}

	target := s.target()
	if target == 0 {
		return
	}
	for key, action := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			s.controller.Apply(target, action)
		}
	}
}

// target 键盘操作的目标：悬停的卡片优先，其次是选中的卡片
func (s *InputSystem) target() ecs.EntityID {
	if s.hovered != 0 && s.entityManager.Exists(s.hovered) {
		return s.hovered
	}
	if s.selected != 0 && s.entityManager.Exists(s.selected) {
		return s.selected
	}
	return 0
}

func (s *InputSystem) cycleSelection() {
	entries := sortedCards(s.entityManager)
	if len(entries) == 0 {
		return
	}
	next := 0
	for i, e := range entries {
		if e.id == s.selected {
			next = (i + 1) % len(entries)
			break
		}
	}
	s.selected = entries[next].id
	log.Printf("[InputSystem] 选中卡片 %s", entries[next].card.ID)
}

// Selected 当前选中的卡片
func (s *InputSystem) Selected() ecs.EntityID {
	return s.selected
}
