package config

import (
	"fmt"
	"os"

	"github.com/decker502/cardfx/pkg/utils"
	"gopkg.in/yaml.v3"
)

// EngineConfig 动画引擎的调校参数
//
// 所有时长单位为毫秒，角度单位为度，距离单位为设计坐标（拖拽阈值除外，使用渲染坐标）。
//
// 配置文件位置: data/engine.yaml（可选，缺省使用 DefaultEngineConfig）
type EngineConfig struct {
	// 拖拽
	DragThreshold   float64 `yaml:"dragThreshold"`   // 判定为拖拽的移动阈值（任一轴）
	ClickMaxMs      float64 `yaml:"clickMaxMs"`      // 点击的最长按下时间
	ResetDurationMs float64 `yaml:"resetDurationMs"` // 拖拽结束后回弹时长
	LiftScale       float64 `yaml:"liftScale"`       // 拖拽时的放大倍数
	ResetEasing     string  `yaml:"resetEasing"`     // 回弹缓动名称

	// 悬挂摆动
	HangStepMs     float64 `yaml:"hangStepMs"`     // 每一步摆动时长
	HangSettleDeg  float64 `yaml:"hangSettleDeg"`  // 小于此距离时进入微幅振荡
	HangMaxDeg     float64 `yaml:"hangMaxDeg"`     // 静止角度上限
	PushCooldownMs float64 `yaml:"pushCooldownMs"` // 两次推动的最小间隔
	PushDurationMs float64 `yaml:"pushDurationMs"` // 推动动画时长
	PushMinDeg     float64 `yaml:"pushMinDeg"`     // 推动角度下限
	PushMaxDeg     float64 `yaml:"pushMaxDeg"`     // 推动角度上限

	// 闪烁
	BlinkDurationMs float64 `yaml:"blinkDurationMs"`

	// 闲置漂移
	IdleBaseDurationMs float64 `yaml:"idleBaseDurationMs"` // 实际时长 = (1+random) × base
	IdleRange          float64 `yaml:"idleRange"`          // 关键帧范围 ±range/2
	IdleKeyframes      int     `yaml:"idleKeyframes"`      // 每轴关键帧数量

	// 翻转 / 可见度 / 高亮
	FlipDurationMs       float64 `yaml:"flipDurationMs"`
	FlipDegrees          float64 `yaml:"flipDegrees"`
	FlipEasing           string  `yaml:"flipEasing"`
	VisibilityDurationMs float64 `yaml:"visibilityDurationMs"`
	HighlightDurationMs  float64 `yaml:"highlightDurationMs"`
}

// DefaultEngineConfig 返回默认引擎参数
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DragThreshold:   10,
		ClickMaxMs:      150,
		ResetDurationMs: 300,
		LiftScale:       1.1,
		ResetEasing:     "outCubic",

		HangStepMs:     1000,
		HangSettleDeg:  2,
		HangMaxDeg:     35,
		PushCooldownMs: 2000,
		PushDurationMs: 600,
		PushMinDeg:     8,
		PushMaxDeg:     16,

		BlinkDurationMs: 750,

		IdleBaseDurationMs: 3000,
		IdleRange:          20,
		IdleKeyframes:      4,

		FlipDurationMs:       500,
		FlipDegrees:          180,
		FlipEasing:           "inOutQuad",
		VisibilityDurationMs: 300,
		HighlightDurationMs:  200,
	}
}

// LoadEngineConfig 从 YAML 文件加载引擎参数
// 文件中缺失的字段保留默认值
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}
	return ParseEngineConfig(data)
}

// ParseEngineConfig 解析 YAML 格式的引擎参数
func ParseEngineConfig(data []byte) (*EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证引擎参数
func (c *EngineConfig) Validate() error {
	if c.DragThreshold < 0 {
		return fmt.Errorf("%w: dragThreshold must not be negative", ErrInvalidConfig)
	}
	if c.LiftScale <= 0 {
		return fmt.Errorf("%w: liftScale must be positive, got %.2f", ErrInvalidConfig, c.LiftScale)
	}
	if c.HangStepMs <= 0 || c.PushDurationMs <= 0 {
		return fmt.Errorf("%w: hang durations must be positive", ErrInvalidConfig)
	}
	if c.PushMinDeg > c.PushMaxDeg {
		return fmt.Errorf("%w: pushMinDeg(%.1f) > pushMaxDeg(%.1f)", ErrInvalidConfig, c.PushMinDeg, c.PushMaxDeg)
	}
	if c.HangMaxDeg <= 0 {
		return fmt.Errorf("%w: hangMaxDeg must be positive", ErrInvalidConfig)
	}
	if c.IdleKeyframes < 1 {
		return fmt.Errorf("%w: idleKeyframes must be at least 1, got %d", ErrInvalidConfig, c.IdleKeyframes)
	}
	if c.IdleBaseDurationMs <= 0 || c.BlinkDurationMs <= 0 {
		return fmt.Errorf("%w: idle/blink durations must be positive", ErrInvalidConfig)
	}
	if _, ok := utils.EasingByName(c.ResetEasing); !ok {
		return fmt.Errorf("%w: unknown resetEasing %q", ErrInvalidConfig, c.ResetEasing)
	}
	if _, ok := utils.EasingByName(c.FlipEasing); !ok {
		return fmt.Errorf("%w: unknown flipEasing %q", ErrInvalidConfig, c.FlipEasing)
	}
	return nil
}

// ResetEasingFunc 回弹缓动函数（名称已在 Validate 中检查，未知时退化为线性）
func (c *EngineConfig) ResetEasingFunc() utils.EasingFunc {
	return easingOrLinear(c.ResetEasing)
}

// FlipEasingFunc 翻转缓动函数
func (c *EngineConfig) FlipEasingFunc() utils.EasingFunc {
	return easingOrLinear(c.FlipEasing)
}

func easingOrLinear(name string) utils.EasingFunc {
	if fn, ok := utils.EasingByName(name); ok {
		return fn
	}
	return utils.EaseLinear
}
