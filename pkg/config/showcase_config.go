package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShowcaseConfig 卡片展示程序的完整配置
//
// 配置文件位置: data/showcase.yaml
type ShowcaseConfig struct {
	Window WindowConfig `yaml:"window"`

	// Scale 设计坐标到渲染坐标的缩放因子
	Scale float64 `yaml:"scale"`

	// Engine 引擎参数，缺失字段使用默认值
	Engine EngineConfig `yaml:"engine"`

	// Cards 场景中的卡片
	Cards []CardEntry `yaml:"cards"`
}

// WindowConfig 窗口配置（渲染坐标）
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"` // 每秒逻辑帧数
}

// CardEntry 展示场景中的一张卡片
type CardEntry struct {
	ID string `yaml:"id"`

	// Card 卡片实例配置（内联展开）
	Card CardConfig `yaml:",inline"`

	// 启动时开启的循环动画
	Idle  bool `yaml:"idle"`
	Blink bool `yaml:"blink"`
}

// LoadShowcaseConfig 从文件加载展示配置
func LoadShowcaseConfig(path string) (*ShowcaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read showcase config: %w", err)
	}
	return ParseShowcaseConfig(data)
}

// ParseShowcaseConfig 解析 YAML 格式的展示配置
//
// 每张卡片先填入 DefaultCardConfig 再覆盖文件中的字段，
// 引擎参数同理以 DefaultEngineConfig 为底。
func ParseShowcaseConfig(data []byte) (*ShowcaseConfig, error) {
	var raw struct {
		Window WindowConfig `yaml:"window"`
		Scale  float64      `yaml:"scale"`
		Engine yaml.Node    `yaml:"engine"`
		Cards  []yaml.Node  `yaml:"cards"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse showcase config: %w", err)
	}

	cfg := &ShowcaseConfig{
		Window: raw.Window,
		Scale:  raw.Scale,
		Engine: DefaultEngineConfig(),
		Cards:  make([]CardEntry, 0, len(raw.Cards)),
	}

	if !raw.Engine.IsZero() {
		if err := raw.Engine.Decode(&cfg.Engine); err != nil {
			return nil, fmt.Errorf("failed to parse engine section: %w", err)
		}
	}

	for i := range raw.Cards {
		entry := CardEntry{Card: DefaultCardConfig()}
		if err := raw.Cards[i].Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to parse card #%d: %w", i+1, err)
		}
		cfg.Cards = append(cfg.Cards, entry)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid showcase config: %w", err)
	}
	return cfg, nil
}

// Validate 验证展示配置
func (c *ShowcaseConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %.2f", ErrInvalidConfig, c.Scale)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	seen := make(map[string]bool, len(c.Cards))
	for i := range c.Cards {
		entry := &c.Cards[i]
		if entry.ID == "" {
			return fmt.Errorf("%w: card #%d has no id", ErrInvalidConfig, i+1)
		}
		if seen[entry.ID] {
			return fmt.Errorf("%w: duplicate card id %q", ErrInvalidConfig, entry.ID)
		}
		seen[entry.ID] = true
		if err := entry.Card.Validate(); err != nil {
			return fmt.Errorf("card %q: %w", entry.ID, err)
		}
	}
	return nil
}

// ViewportSize 视口尺寸（设计坐标）
func (c *ShowcaseConfig) ViewportSize() (float64, float64) {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return float64(c.Window.Width) / scale, float64(c.Window.Height) / scale
}
