package app

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/cardfx/pkg/card"
	"github.com/decker502/cardfx/pkg/components"
	"github.com/decker502/cardfx/pkg/ecs"
	"github.com/decker502/cardfx/pkg/utils"
)

// CardComponent 展示场景中的一张卡片
type CardComponent struct {
	ID       string
	Animator *card.Animator

	// Transform 渲染表面最近收到的变换（由 Animator 推送）
	Transform components.CardTransform
}

// SpriteComponent 卡片的图像
type SpriteComponent struct {
	Front *ebiten.Image
	Back  *ebiten.Image
	// Glow 高亮描边，比卡片四周各大 glowPadding
	Glow *ebiten.Image
}

// cardEntry 渲染和命中测试共用的排序条目
type cardEntry struct {
	id   ecs.EntityID
	card *CardComponent
}

// sortedCards 按层级从低到高返回所有卡片，层级相同按创建顺序
func sortedCards(em *ecs.EntityManager) []cardEntry {
	ids := ecs.Query[*CardComponent](em)
	entries := make([]cardEntry, 0, len(ids))
	for _, id := range ids {
		c, ok := ecs.Get[*CardComponent](em, id)
		if !ok {
			continue
		}
		entries = append(entries, cardEntry{id: id, card: c})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].card.Transform.ZIndex < entries[j].card.Transform.ZIndex
	})
	return entries
}

// cardCenter 卡片中心（设计坐标）
// 非居中原点的卡片以位置为左上角
func cardCenter(c *CardComponent) (float64, float64) {
	tr := c.Transform
	x, y := tr.EffectiveX(), tr.EffectiveY()
	if !c.Animator.Config().HasCenteredOrigin {
		cfg := c.Animator.Config()
		x += cfg.Width / 2
		y += cfg.Height / 2
	}
	return x, y
}

// hitTest 返回设计坐标 (x, y) 处最上层的可见卡片
// 命中区域是缩放后的轴对齐矩形，忽略旋转
func hitTest(entries []cardEntry, x, y float64) (cardEntry, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		tr := e.card.Transform
		if tr.VisibilityOpacity <= 0 || e.card.Animator.IsDisposed() {
			continue
		}
		cfg := e.card.Animator.Config()
		cx, cy := cardCenter(e.card)
		if utils.PointInRect(x, y, cx, cy, cfg.Width*tr.Scale, cfg.Height*tr.Scale) {
			return e, true
		}
	}
	return cardEntry{}, false
}
