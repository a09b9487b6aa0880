package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值（通常 ∈ [0, 1]，EaseOutBack 会短暂超出 1）。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutQuad 二次方缓入缓出
// 摆动动画的默认曲线：两端慢，中间快，单调递增
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（拖拽回弹使用）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInOutSine 正弦缓入缓出
// 闲置漂移和闪烁使用，速度变化最柔和
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseOutBack 回弹缓出
// 末段会超过 1 再回落，适合"弹出"效果；不要用于翻转这类需要单调的轨道
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

var easingByName = map[string]EasingFunc{
	"linear":     EaseLinear,
	"inQuad":     EaseInQuad,
	"outQuad":    EaseOutQuad,
	"inOutQuad":  EaseInOutQuad,
	"inCubic":    EaseInCubic,
	"outCubic":   EaseOutCubic,
	"inOutCubic": EaseInOutCubic,
	"inOutSine":  EaseInOutSine,
	"outExpo":    EaseOutExpo,
	"outBack":    EaseOutBack,
}

// EasingByName 根据配置文件中的名称查找缓动函数
// 未知名称返回 (nil, false)
func EasingByName(name string) (EasingFunc, bool) {
	fn, ok := easingByName[name]
	return fn, ok
}
