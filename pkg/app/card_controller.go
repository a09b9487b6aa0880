package app

import (
	"log"

	"github.com/decker502/cardfx/pkg/card"
	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/ecs"
	"github.com/decker502/cardfx/pkg/tween"
)

// Action 展示程序对单张卡片的操作
type Action int

const (
	ActionFlip Action = iota
	ActionIdle
	ActionBlink
	ActionHang
	ActionPlayHang
	ActionVisibility
	ActionDefeated
	ActionHighlight
	ActionReset
)

var actionNames = map[Action]string{
	ActionFlip:       "flip",
	ActionIdle:       "idle",
	ActionBlink:      "blink",
	ActionHang:       "hang",
	ActionPlayHang:   "playHang",
	ActionVisibility: "visibility",
	ActionDefeated:   "defeated",
	ActionHighlight:  "highlight",
	ActionReset:      "reset",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// CardController 把展示程序的操作翻译成卡片句柄调用，并记录到设置中
type CardController struct {
	entityManager *ecs.EntityManager
	settings      *SettingsManager
	engine        config.EngineConfig
}

// NewCardController 创建控制器
func NewCardController(em *ecs.EntityManager, settings *SettingsManager, engine config.EngineConfig) *CardController {
	return &CardController{
		entityManager: em,
		settings:      settings,
		engine:        engine,
	}
}

// Apply 对实体执行操作
func (c *CardController) Apply(id ecs.EntityID, action Action) {
	comp, ok := ecs.Get[*CardComponent](c.entityManager, id)
	if !ok {
		return
	}
	a := comp.Animator
	cfg := a.Config()
	log.Printf("[CardController] %s -> %s", comp.ID, action)

	switch action {
	case ActionReset:
		// 拖拽占用位置轨道时不抢占
		if a.IsDragging() {
			return
		}
		a.SetPosition(tween.To(cfg.StartPosition.X), tween.To(cfg.StartPosition.Y),
			tween.Over(c.engine.ResetDurationMs, c.engine.ResetEasingFunc()))
		a.SetRotation(tween.To(cfg.StartRotation), tween.Over(c.engine.ResetDurationMs, nil))
		a.SetScale(tween.To(cfg.StartScale), tween.Over(c.engine.ResetDurationMs, nil))
		return
	case ActionPlayHang:
		a.PlayHanging()
		return
	}

	c.settings.UpdateCard(comp.ID, func(t *CardToggles) {
		switch action {
		case ActionFlip:
			t.Flipped = !t.Flipped
		case ActionIdle:
			t.Idle = !t.Idle
		case ActionBlink:
			t.Blink = !t.Blink
		case ActionHang:
			t.Hanging = !t.Hanging
		case ActionVisibility:
			t.Hidden = !t.Hidden
		case ActionDefeated:
			t.Defeated = !t.Defeated
		case ActionHighlight:
			t.Highlighted = !t.Highlighted
		}
	})
	toggles, _ := c.settings.CardToggles(comp.ID)

	switch action {
	case ActionFlip:
		a.Flip(toggles.Flipped, cfg.IsLeft, c.engine.FlipDurationMs, c.engine.FlipDegrees)
	case ActionIdle:
		a.ToggleIdle(toggles.Idle)
	case ActionBlink:
		a.ToggleBlink(toggles.Blink, 0)
	case ActionHang:
		a.SetHanging(toggles.Hanging)
	case ActionVisibility:
		a.ToggleVisibility(!toggles.Hidden, false)
	case ActionDefeated:
		a.ToggleDefeated(toggles.Defeated)
	case ActionHighlight:
		a.ToggleHighlight(toggles.Highlighted, card.HighlightOptions{})
	}
}

// Restore 把设置中记录的开关状态立即应用到卡片
// 在卡片挂载之后、第一帧之前调用
func (c *CardController) Restore(id ecs.EntityID) {
	comp, ok := ecs.Get[*CardComponent](c.entityManager, id)
	if !ok {
		return
	}
	toggles, ok := c.settings.CardToggles(comp.ID)
	if !ok {
		return
	}
	a := comp.Animator
	cfg := a.Config()

	a.Flip(toggles.Flipped, cfg.IsLeft, 0, c.engine.FlipDegrees)
	a.ToggleVisibility(!toggles.Hidden, true)
	a.ToggleDefeated(toggles.Defeated)
	a.SetHanging(toggles.Hanging)
	a.ToggleIdle(toggles.Idle)
	a.ToggleBlink(toggles.Blink, 0)
	if toggles.Highlighted {
		a.ToggleHighlight(true, card.HighlightOptions{})
	}
	log.Printf("[CardController] 恢复卡片 %s 的状态: %+v", comp.ID, toggles)
}

// Seed 用配置中的初始状态填充没有记录的卡片
// 返回 false 表示已有记录（调用者应 Restore）
func (c *CardController) Seed(id string, entry config.CardEntry) bool {
	if _, ok := c.settings.CardToggles(id); ok {
		return false
	}
	c.settings.UpdateCard(id, func(t *CardToggles) {
		t.Flipped = entry.Card.IsFlipped
		t.Idle = entry.Idle
		t.Blink = entry.Blink
		t.Hanging = entry.Card.IsHanging
		t.Hidden = !entry.Card.IsVisible
		t.Highlighted = entry.Card.IsSelected
	})
	return true
}
