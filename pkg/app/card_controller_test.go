package app

import (
	"testing"

	"github.com/decker502/cardfx/pkg/card"
	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/ecs"
	"github.com/decker502/cardfx/pkg/tween"
)

type controllerFixture struct {
	em         *ecs.EntityManager
	driver     *tween.Driver
	settings   *SettingsManager
	controller *CardController
}

func newControllerFixture() *controllerFixture {
	em := ecs.NewEntityManager()
	settings := NewSettingsManager(nil)
	f := &controllerFixture{
		em:         em,
		driver:     tween.NewDriver(),
		settings:   settings,
		controller: NewCardController(em, settings, config.DefaultEngineConfig()),
	}
	em.OnDestroy(func(id ecs.EntityID) {
		if c, ok := ecs.Get[*CardComponent](em, id); ok {
			c.Animator.Dispose()
		}
	})
	return f
}

// spawn 创建一张挂载好的卡片，位置 (x, y)，层级 z
func (f *controllerFixture) spawn(t *testing.T, name string, x, y float64, z int) ecs.EntityID {
	t.Helper()
	cfg := config.DefaultCardConfig()
	cfg.StartPosition = config.Vec2{X: x, Y: y}

	a, err := card.New(cfg, card.Options{Driver: f.driver})
	if err != nil {
		t.Fatalf("card.New() error: %v", err)
	}
	id := f.em.CreateEntity()
	comp := &CardComponent{ID: name, Animator: a}
	f.em.AddComponent(id, comp)
	a.Attach(card.SurfaceFunc(func(tr components.CardTransform) { comp.Transform = tr }))
	a.SetZIndex(z)
	f.driver.Tick(16)
	return id
}

func (f *controllerFixture) run(ms float64) {
	for elapsed := 0.0; elapsed < ms; elapsed += 16 {
		f.driver.Tick(16)
	}
}

func (f *controllerFixture) animator(t *testing.T, id ecs.EntityID) *card.Animator {
	t.Helper()
	c, ok := ecs.Get[*CardComponent](f.em, id)
	if !ok {
		t.Fatalf("entity %d has no card", id)
	}
	return c.Animator
}

// TestHitTestTopmost 重叠时命中层级最高的卡片
func TestHitTestTopmost(t *testing.T) {
	f := newControllerFixture()
	low := f.spawn(t, "low", 200, 200, 1)
	high := f.spawn(t, "high", 240, 200, 5)

	entries := sortedCards(f.em)
	if len(entries) != 2 || entries[0].id != low || entries[1].id != high {
		t.Fatalf("sortedCards 顺序错误: %+v", entries)
	}

	tests := []struct {
		name   string
		x, y   float64
		want   ecs.EntityID
		wantOK bool
	}{
		{"重叠区域", 230, 200, high, true},
		{"只在下层", 150, 200, low, true},
		{"只在上层", 295, 200, high, true},
		{"空白处", 600, 600, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := hitTest(entries, tt.x, tt.y)
			if ok != tt.wantOK || (ok && hit.id != tt.want) {
				t.Errorf("hitTest(%v, %v) = %d, %v; 期望 %d, %v", tt.x, tt.y, hit.id, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// TestDrawLayersUseBackgroundZIndex 光晕按背景层级排序，正面按前景层级排序
func TestDrawLayersUseBackgroundZIndex(t *testing.T) {
	f := newControllerFixture()
	top := f.spawn(t, "top", 200, 200, 5)
	mid := f.spawn(t, "mid", 240, 200, 3)

	f.animator(t, top).SetZIndex(5, 1)
	f.driver.Tick(16)

	type layer struct {
		id         ecs.EntityID
		background bool
	}
	// mid 的背景层级保持默认 0
	want := []layer{
		{mid, true},
		{top, true},
		{mid, false},
		{top, false},
	}

	got := drawLayers(sortedCards(f.em))
	if len(got) != len(want) {
		t.Fatalf("len(drawLayers) = %d, 期望 %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].entry.id != w.id || got[i].background != w.background {
			t.Errorf("layers[%d] = (%d, %v), 期望 (%d, %v)", i, got[i].entry.id, got[i].background, w.id, w.background)
		}
	}
}

func TestHitTestSkipsInvisible(t *testing.T) {
	f := newControllerFixture()
	id := f.spawn(t, "ghost", 200, 200, 0)

	f.controller.Apply(id, ActionVisibility)
	f.run(400)

	if _, ok := hitTest(sortedCards(f.em), 200, 200); ok {
		t.Error("不可见的卡片不应被命中")
	}
}

// TestControllerTogglesPersist 操作同时作用于卡片并记录到设置中
func TestControllerTogglesPersist(t *testing.T) {
	f := newControllerFixture()
	id := f.spawn(t, "ace", 200, 200, 0)
	a := f.animator(t, id)

	f.controller.Apply(id, ActionBlink)
	f.controller.Apply(id, ActionIdle)
	f.controller.Apply(id, ActionHang)
	f.controller.Apply(id, ActionFlip)
	f.run(600)

	if !a.IsBlinking() || !a.IsIdle() || !a.IsHanging() {
		t.Errorf("blink/idle/hang = %v/%v/%v, 期望全部开启", a.IsBlinking(), a.IsIdle(), a.IsHanging())
	}
	if !a.Transform().ShowsBack() {
		t.Error("翻转后应显示背面")
	}

	toggles, ok := f.settings.CardToggles("ace")
	if !ok || !toggles.Blink || !toggles.Idle || !toggles.Hanging || !toggles.Flipped {
		t.Errorf("toggles = %+v", toggles)
	}

	f.controller.Apply(id, ActionBlink)
	if a.IsBlinking() {
		t.Error("再次操作应关闭闪烁")
	}
}

// TestControllerReset 复位到配置中的初始位置
func TestControllerReset(t *testing.T) {
	f := newControllerFixture()
	id := f.spawn(t, "ace", 200, 200, 0)
	a := f.animator(t, id)

	a.SetPosition(tween.To(500), tween.To(400), tween.Instant)
	f.controller.Apply(id, ActionReset)
	f.run(400)

	if style := a.GetStyle(); style.TranslateX != 200 || style.TranslateY != 200 {
		t.Errorf("复位后位置 = (%v, %v), 期望 (200, 200)", style.TranslateX, style.TranslateY)
	}
}

func TestControllerRestore(t *testing.T) {
	f := newControllerFixture()
	f.settings.UpdateCard("ace", func(c *CardToggles) {
		c.Flipped = true
		c.Hidden = true
		c.Defeated = true
	})
	id := f.spawn(t, "ace", 200, 200, 0)

	f.controller.Restore(id)

	tr := f.animator(t, id).Transform()
	if !tr.ShowsBack() || tr.VisibilityOpacity != 0 || !tr.Defeated {
		t.Errorf("恢复后 transform = %+v", tr)
	}
}

func TestControllerSeed(t *testing.T) {
	f := newControllerFixture()
	entry := config.CardEntry{ID: "ace", Card: config.DefaultCardConfig(), Idle: true}

	if !f.controller.Seed("ace", entry) {
		t.Error("首次 Seed 应返回 true")
	}
	if f.controller.Seed("ace", entry) {
		t.Error("已有记录时 Seed 应返回 false")
	}
	if toggles, _ := f.settings.CardToggles("ace"); !toggles.Idle || toggles.Hidden {
		t.Errorf("toggles = %+v", toggles)
	}
}

// TestDestroyEntityDisposesCard 删除实体时卡片被销毁
func TestDestroyEntityDisposesCard(t *testing.T) {
	f := newControllerFixture()
	id := f.spawn(t, "ace", 200, 200, 0)
	a := f.animator(t, id)

	f.em.DestroyEntity(id)
	f.em.RemoveMarkedEntities()

	if !a.IsDisposed() {
		t.Error("卡片应被销毁")
	}
	if f.driver.Len() != 0 {
		t.Errorf("driver.Len() = %d, 期望 0", f.driver.Len())
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		r, g, b uint8
		wantErr bool
	}{
		{"#ffd700", 255, 215, 0, false},
		{"00ff80", 0, 255, 128, false},
		{"#fff", 255, 255, 255, false},
		{"#12345", 0, 0, 0, true},
		{"#gggggg", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			clr, err := parseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (clr.R != tt.r || clr.G != tt.g || clr.B != tt.b) {
				t.Errorf("color = %v, 期望 (%d, %d, %d)", clr, tt.r, tt.g, tt.b)
			}
		})
	}
}
