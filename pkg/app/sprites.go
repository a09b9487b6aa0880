package app

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // 支持 PNG 格式图片
	"log"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/cardfx/pkg/config"
	"github.com/decker502/cardfx/pkg/embedded"
)

const (
	// glowPadding 高亮描边超出卡片边缘的距离（设计坐标）
	glowPadding = 6
	glowStroke  = 4
)

var (
	defaultFrontColor = color.RGBA{R: 236, G: 228, B: 206, A: 255}
	defaultBackColor  = color.RGBA{R: 54, G: 74, B: 120, A: 255}
	borderColor       = color.RGBA{R: 40, G: 30, B: 20, A: 255}
)

// newSprite 为卡片创建图像
//
// frontImagePath / backgroundImagePath 指向内嵌资源时直接加载，
// 否则生成带标签的纯色卡面。
func newSprite(id string, cfg config.CardConfig) *SpriteComponent {
	w, h := int(cfg.Width), int(cfg.Height)

	front, err := loadImage(cfg.FrontImagePath)
	if err != nil {
		log.Printf("[Sprite] 卡片 %s 正面图片加载失败: %v (使用生成的卡面)", id, err)
	}
	if front == nil {
		front = plainFace(w, h, defaultFrontColor, cfg.HasBorder, id)
	}

	back, err := loadImage(cfg.BackgroundImagePath)
	if err != nil {
		log.Printf("[Sprite] 卡片 %s 背面图片加载失败: %v (使用生成的卡面)", id, err)
	}
	if back == nil {
		back = plainFace(w, h, defaultBackColor, true, "")
	}

	return &SpriteComponent{
		Front: front,
		Back:  back,
		Glow:  glowFrame(w, h),
	}
}

// loadImage 从内嵌资源加载图片；路径为空时返回 nil, nil
func loadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, nil
	}
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func plainFace(w, h int, fill color.Color, border bool, label string) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(fill)
	if border {
		vector.StrokeRect(img, 1, 1, float32(w-2), float32(h-2), 2, borderColor, true)
	}
	if label != "" {
		ebitenutil.DebugPrintAt(img, label, 8, 8)
	}
	return img
}

// glowFrame 白色描边，绘制时用 ColorScale 着色
func glowFrame(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w+2*glowPadding, h+2*glowPadding)
	half := float32(glowStroke) / 2
	vector.StrokeRect(img, half, half,
		float32(w+2*glowPadding)-glowStroke, float32(h+2*glowPadding)-glowStroke,
		glowStroke, color.White, true)
	return img
}

// parseHexColor 解析 "#rrggbb" 或 "#rgb"
func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
