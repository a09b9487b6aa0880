package utils

import "testing"

func TestScaler(t *testing.T) {
	tests := []struct {
		name     string
		factor   float64
		design   float64
		expected float64
	}{
		{"原始大小", 1, 100, 100},
		{"两倍", 2, 100, 200},
		{"半尺寸", 0.5, 100, 50},
		{"未配置视为1", 0, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScaler(tt.factor)
			if got := s.ToRender(tt.design); got != tt.expected {
				t.Errorf("ToRender(%v) = %v, 期望 %v", tt.design, got, tt.expected)
			}
			if got := s.ToDesign(s.ToRender(tt.design)); got != tt.design {
				t.Errorf("ToDesign(ToRender(%v)) = %v", tt.design, got)
			}
		})
	}
}

func TestClampToViewport(t *testing.T) {
	tests := []struct {
		name     string
		center   float64
		size     float64
		viewport float64
		expected float64
	}{
		{"范围内", 400, 100, 800, 400},
		{"超出左边界", 10, 100, 800, 50},
		{"超出右边界", 790, 100, 800, 750},
		{"视口小于卡片", 10, 100, 60, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampToViewport(tt.center, tt.size, tt.viewport)
			if got != tt.expected {
				t.Errorf("ClampToViewport(%v, %v, %v) = %v, 期望 %v",
					tt.center, tt.size, tt.viewport, got, tt.expected)
			}
		})
	}
}

func TestPointInRect(t *testing.T) {
	if !PointInRect(100, 100, 100, 100, 20, 20) {
		t.Error("中心点应在矩形内")
	}
	if !PointInRect(110, 90, 100, 100, 20, 20) {
		t.Error("边界点应在矩形内")
	}
	if PointInRect(111, 100, 100, 100, 20, 20) {
		t.Error("矩形外的点不应命中")
	}
}
