package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 配置校验失败
// 所有 Validate 返回的错误都包装此错误，调用者可用 errors.Is 判断
var ErrInvalidConfig = errors.New("invalid config")

// Vec2 二维坐标（设计坐标）
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CardConfig 卡片实例配置
//
// 由宿主在创建卡片时提供，描述卡片尺寸、初始状态和交互能力。
// 回调（悬停、点击）不在此结构中，见 card.Options。
type CardConfig struct {
	// Width, Height 卡片尺寸（设计坐标）
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// IsLeft 卡片在左侧（决定翻转方向）
	IsLeft bool `yaml:"isLeft"`
	// IsFlipped 初始显示背面
	IsFlipped bool `yaml:"isFlipped"`
	// IsVisible 初始可见
	IsVisible bool `yaml:"isVisible"`
	// IsSelected 初始高亮
	IsSelected bool `yaml:"isSelected"`
	// IsDisabled 禁用交互（渲染器通常显示为灰色）
	IsDisabled bool `yaml:"isDisabled"`
	// IsDraggable 允许拖拽
	IsDraggable bool `yaml:"isDraggable"`
	// IsHighlightable 悬停时高亮
	IsHighlightable bool `yaml:"isHighlightable"`

	// IsHanging 悬挂摆动模式
	IsHanging bool `yaml:"isHanging"`
	// IsHangingLeft 强制悬挂方向：nil = 随机，true = 偏左，false = 偏右
	IsHangingLeft *bool `yaml:"isHangingLeft,omitempty"`
	// ShouldSwing 首次激活时从 0° 摆向静止角度；false 则直接落在静止角度
	ShouldSwing bool `yaml:"shouldSwing"`

	// InstantFlip 创建时不播放翻转动画
	InstantFlip bool `yaml:"instantFlip"`
	// InstantVisible 创建时不播放淡入动画
	InstantVisible bool `yaml:"instantVisible"`

	// 渲染相关标志
	HasBorder         bool `yaml:"hasBorder"`
	HasCenteredOrigin bool `yaml:"hasCenteredOrigin"`
	// MouseDisabled 忽略所有指针事件（包括悬停）
	MouseDisabled bool `yaml:"mouseDisabled"`

	FrontImagePath        string `yaml:"frontImagePath"`
	BackgroundImagePath   string `yaml:"backgroundImagePath"`
	DefaultHighlightColor string `yaml:"defaultHighlightColor"`

	// 初始变换
	StartPosition Vec2    `yaml:"startPosition"`
	StartRotation float64 `yaml:"startRotation"`
	StartScale    float64 `yaml:"startScale"`
}

// DefaultCardConfig 返回默认卡片配置
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Width:                 120,
		Height:                168,
		IsVisible:             true,
		IsHighlightable:       true,
		ShouldSwing:           true,
		InstantFlip:           true,
		InstantVisible:        true,
		HasCenteredOrigin:     true,
		DefaultHighlightColor: "#ffd700",
		StartScale:            1.0,
	}
}

// Validate 验证卡片配置
func (c *CardConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: card size must be positive, got %.1fx%.1f", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.StartScale <= 0 {
		return fmt.Errorf("%w: startScale must be positive, got %.2f", ErrInvalidConfig, c.StartScale)
	}
	return nil
}
