package app

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/cardfx/pkg/ecs"
	"github.com/decker502/cardfx/pkg/utils"
)

// RenderSystem 按卡片变换绘制所有卡片
type RenderSystem struct {
	entityManager *ecs.EntityManager
	scaler        utils.Scaler
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, scaler utils.Scaler) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		scaler:        scaler,
	}
}

// drawLayer 一次绘制：卡片背景（高亮光晕）或卡片正面
type drawLayer struct {
	entry      cardEntry
	background bool
	z          int
}

// drawLayers 按层级排序的绘制列表
// 光晕位于 BackgroundZIndex，正面位于 ZIndex；层级相同时背景先画
func drawLayers(entries []cardEntry) []drawLayer {
	layers := make([]drawLayer, 0, len(entries)*2)
	for _, e := range entries {
		layers = append(layers,
			drawLayer{entry: e, background: true, z: e.card.Transform.BackgroundZIndex},
			drawLayer{entry: e, z: e.card.Transform.ZIndex},
		)
	}
	sort.SliceStable(layers, func(i, j int) bool {
		if layers[i].z != layers[j].z {
			return layers[i].z < layers[j].z
		}
		return layers[i].background && !layers[j].background
	})
	return layers
}

// Draw 按层级从低到高绘制卡片
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, l := range drawLayers(sortedCards(s.entityManager)) {
		sprite, ok := ecs.Get[*SpriteComponent](s.entityManager, l.entry.id)
		if !ok || l.entry.card.Transform.VisibilityOpacity <= 0 {
			continue
		}
		if l.background {
			s.drawGlow(screen, l.entry.card, sprite)
		} else {
			s.drawFace(screen, l.entry.card, sprite)
		}
	}
}

// geoM 把 w×h 的图片变换到卡片位置
// 翻转按 cos 水平压缩，悬挂摆动绕卡片顶部中心
func (s *RenderSystem) geoM(c *CardComponent, w, h float64) ebiten.GeoM {
	tr := c.Transform
	cfg := c.Animator.Config()
	flip := math.Abs(math.Cos(tr.FlipRotationDeg * math.Pi / 180))
	cx, cy := cardCenter(c)

	var m ebiten.GeoM
	m.Translate(-w/2, -h/2)
	m.Scale(flip*tr.Scale, tr.Scale)
	m.Rotate(tr.RotationDeg * math.Pi / 180)

	top := cfg.Height * tr.Scale / 2
	m.Translate(0, top)
	m.Rotate(tr.HangRotationDeg * math.Pi / 180)
	m.Translate(0, -top)

	m.Translate(cx, cy)
	m.Scale(s.scaler.Factor, s.scaler.Factor)
	return m
}

func (s *RenderSystem) drawGlow(screen *ebiten.Image, c *CardComponent, sprite *SpriteComponent) {
	tr := c.Transform
	if tr.HighlightOpacity <= 0 || sprite.Glow == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	gw, gh := sprite.Glow.Bounds().Dx(), sprite.Glow.Bounds().Dy()
	op.GeoM = s.geoM(c, float64(gw), float64(gh))
	op.ColorScale.ScaleWithColor(highlightColor(tr.HighlightWhite, tr.HighlightColor))
	op.ColorScale.ScaleAlpha(float32(tr.HighlightOpacity * tr.VisibilityOpacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite.Glow, op)
}

func (s *RenderSystem) drawFace(screen *ebiten.Image, c *CardComponent, sprite *SpriteComponent) {
	tr := c.Transform
	cfg := c.Animator.Config()

	// 超过 90° 换成背面
	face := sprite.Front
	if tr.ShowsBack() {
		face = sprite.Back
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = s.geoM(c, cfg.Width, cfg.Height)
	// 图片尺寸与卡片尺寸不同时拉伸
	if b := face.Bounds(); b.Dx() > 0 && b.Dy() > 0 {
		var fit ebiten.GeoM
		fit.Scale(cfg.Width/float64(b.Dx()), cfg.Height/float64(b.Dy()))
		fit.Concat(op.GeoM)
		op.GeoM = fit
	}
	switch {
	case tr.Defeated:
		op.ColorScale.Scale(1, 0.35, 0.35, 1)
	case tr.Disabled:
		op.ColorScale.Scale(0.5, 0.5, 0.5, 1)
	}
	op.ColorScale.ScaleAlpha(float32(tr.VisibilityOpacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(face, op)
}

// highlightColor 高亮颜色，解析失败时使用金色
func highlightColor(white bool, hex string) color.Color {
	if white {
		return color.White
	}
	clr, err := parseHexColor(hex)
	if err != nil {
		return color.RGBA{R: 255, G: 215, A: 255}
	}
	return clr
}
