package utils

import "math"

// Interpolation Functions (多关键帧插值)
//
// 插值函数把一组关键帧 values 和单一进度值 k 映射为当前值。
// values[0] 是起点，values[len-1] 是终点；k 是缓动后的进度，
// 对于会超调的缓动（如 EaseOutBack），k 可能略微超出 [0, 1]，此时按端点外推。

// InterpolationFunc 插值函数类型
type InterpolationFunc func(values []float64, k float64) float64

// LinearInterpolation 分段线性插值
func LinearInterpolation(values []float64, k float64) float64 {
	m := len(values) - 1
	if m <= 0 {
		return singleValue(values)
	}

	f := float64(m) * k
	i := int(math.Floor(f))

	if k < 0 {
		return Lerp(values[0], values[1], f)
	}
	if k > 1 {
		return Lerp(values[m], values[m-1], float64(m)-f)
	}

	next := i + 1
	if next > m {
		next = m
	}
	return Lerp(values[i], values[next], f-float64(i))
}

// CatmullRomInterpolation Catmull-Rom 样条插值
// 曲线经过每个关键帧，切线由相邻关键帧决定，闲置漂移依赖它得到平滑路径。
// 首尾相同的路径视为闭合回路。
func CatmullRomInterpolation(values []float64, k float64) float64 {
	m := len(values) - 1
	if m <= 0 {
		return singleValue(values)
	}

	f := float64(m) * k
	i := int(math.Floor(f))

	if values[0] == values[m] {
		if k < 0 {
			f = float64(m) * (1 + k)
			i = int(math.Floor(f))
		}
		return catmullRom(
			values[wrapIndex(i-1, m)],
			values[wrapIndex(i, m)],
			values[wrapIndex(i+1, m)],
			values[wrapIndex(i+2, m)],
			f-float64(i),
		)
	}

	if k < 0 {
		return values[0] - (catmullRom(values[0], values[0], values[1], values[1], -f) - values[0])
	}
	if k > 1 {
		return values[m] - (catmullRom(values[m], values[m], values[m-1], values[m-1], f-float64(m)) - values[m])
	}

	prev := i - 1
	if prev < 0 {
		prev = 0
	}
	return catmullRom(
		values[prev],
		values[i],
		values[min(i+1, m)],
		values[min(i+2, m)],
		f-float64(i),
	)
}

// BezierInterpolation 贝塞尔插值（Bernstein 多项式）
// 曲线只经过首尾关键帧，中间关键帧作为控制点
func BezierInterpolation(values []float64, k float64) float64 {
	n := len(values) - 1
	if n <= 0 {
		return singleValue(values)
	}

	result := 0.0
	for i := 0; i <= n; i++ {
		result += math.Pow(1-k, float64(n-i)) * math.Pow(k, float64(i)) * values[i] * binomial(n, i)
	}
	return result
}

var interpolationByName = map[string]InterpolationFunc{
	"linear":     LinearInterpolation,
	"catmullRom": CatmullRomInterpolation,
	"bezier":     BezierInterpolation,
}

// InterpolationByName 根据配置文件中的名称查找插值函数
func InterpolationByName(name string) (InterpolationFunc, bool) {
	fn, ok := interpolationByName[name]
	return fn, ok
}

func catmullRom(p0, p1, p2, p3, t float64) float64 {
	v0 := (p2 - p0) * 0.5
	v1 := (p3 - p1) * 0.5
	t2 := t * t
	t3 := t * t2
	return (2*p1-2*p2+v0+v1)*t3 + (-3*p1+3*p2-2*v0-v1)*t2 + v0*t + p1
}

// wrapIndex 闭合路径的下标回绕，m 为最后一个下标
func wrapIndex(i, m int) int {
	if i == m {
		return m
	}
	r := i % m
	if r < 0 {
		r += m
	}
	return r
}

func binomial(n, k int) float64 {
	result := 1.0
	for i := 1; i <= k; i++ {
		result = result * float64(n-k+i) / float64(i)
	}
	return result
}

func singleValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[0]
}
