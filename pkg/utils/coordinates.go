// Package utils 提供卡片动画引擎使用的纯数学工具函数
//
// coordinates.go 提供设计坐标与渲染坐标之间的转换。
//
// # 坐标系统概述
//
//   - **设计坐标**：卡片配置（宽高、起始位置、拖拽夹紧）使用的坐标，与分辨率无关
//   - **渲染坐标**：宿主窗口的像素坐标，指针事件使用此坐标
//   - **卡片锚点**：位置轨道表示卡片中心
//
// 核心转换公式：
//
//	render = design * Factor
//	design = render / Factor
package utils

// Scaler 设计坐标到渲染坐标的线性缩放
// Factor <= 0 视为 1（未配置缩放）
type Scaler struct {
	Factor float64
}

// NewScaler 创建缩放器
func NewScaler(factor float64) Scaler {
	return Scaler{Factor: factor}
}

func (s Scaler) factor() float64 {
	if s.Factor <= 0 {
		return 1
	}
	return s.Factor
}

// ToRender 设计坐标 → 渲染坐标
func (s Scaler) ToRender(v float64) float64 {
	return v * s.factor()
}

// ToDesign 渲染坐标 → 设计坐标
func (s Scaler) ToDesign(v float64) float64 {
	return v / s.factor()
}

// ClampToViewport 将卡片中心坐标限制在视口内
//
// 合法范围为 [size/2, viewport - size/2]，保证卡片包围盒不超出视口。
// 当视口比卡片还小时，返回视口中心。
func ClampToViewport(center, size, viewport float64) float64 {
	half := size / 2
	lo := half
	hi := viewport - half
	if hi < lo {
		return viewport / 2
	}
	if center < lo {
		return lo
	}
	if center > hi {
		return hi
	}
	return center
}

// PointInRect 检查点是否在以 (cx, cy) 为中心、宽高为 (w, h) 的矩形内
func PointInRect(px, py, cx, cy, w, h float64) bool {
	return px >= cx-w/2 && px <= cx+w/2 && py >= cy-h/2 && py <= cy+h/2
}
