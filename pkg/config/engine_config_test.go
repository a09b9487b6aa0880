package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultEngineConfig 默认参数必须通过校验
func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("默认引擎参数校验失败: %v", err)
	}

	if cfg.DragThreshold != 10 {
		t.Errorf("DragThreshold = %v, 期望 10", cfg.DragThreshold)
	}
	if cfg.ClickMaxMs != 150 {
		t.Errorf("ClickMaxMs = %v, 期望 150", cfg.ClickMaxMs)
	}
	if cfg.HangStepMs != 1000 || cfg.PushDurationMs != 600 || cfg.PushCooldownMs != 2000 {
		t.Errorf("悬挂参数与预期不符: %+v", cfg)
	}
	if cfg.BlinkDurationMs != 750 {
		t.Errorf("BlinkDurationMs = %v, 期望 750", cfg.BlinkDurationMs)
	}
}

// TestParseEngineConfigKeepsDefaults 文件中缺失的字段保留默认值
func TestParseEngineConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte("liftScale: 1.25\nidleKeyframes: 6\n"))
	if err != nil {
		t.Fatalf("ParseEngineConfig() error: %v", err)
	}

	if cfg.LiftScale != 1.25 {
		t.Errorf("LiftScale = %v, 期望 1.25", cfg.LiftScale)
	}
	if cfg.IdleKeyframes != 6 {
		t.Errorf("IdleKeyframes = %v, 期望 6", cfg.IdleKeyframes)
	}
	if cfg.ResetDurationMs != 300 {
		t.Errorf("ResetDurationMs = %v, 期望保留默认值 300", cfg.ResetDurationMs)
	}
}

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EngineConfig)
	}{
		{"负拖拽阈值", func(c *EngineConfig) { c.DragThreshold = -1 }},
		{"零放大倍数", func(c *EngineConfig) { c.LiftScale = 0 }},
		{"推动角度范围颠倒", func(c *EngineConfig) { c.PushMinDeg = 20 }},
		{"零关键帧", func(c *EngineConfig) { c.IdleKeyframes = 0 }},
		{"未知缓动", func(c *EngineConfig) { c.ResetEasing = "wobble" }},
		{"零摆动时长", func(c *EngineConfig) { c.HangStepMs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("期望校验失败")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("错误应包装 ErrInvalidConfig: %v", err)
			}
		})
	}
}

func TestLoadEngineConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("resetEasing: inOutSine\n"), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	cfg, err := LoadEngineConfig(path)
	if err != nil {
		t.Fatalf("LoadEngineConfig() error: %v", err)
	}
	if cfg.ResetEasing != "inOutSine" {
		t.Errorf("ResetEasing = %q, 期望 inOutSine", cfg.ResetEasing)
	}
	if math.Abs(cfg.ResetEasingFunc()(0.25)-0.1464466) > 1e-6 {
		t.Error("ResetEasingFunc 应该解析为正弦缓动")
	}

	if _, err := LoadEngineConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("文件不存在时应返回错误")
	}
}
