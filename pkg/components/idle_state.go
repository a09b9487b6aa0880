package components

// IdleState 闲置漂移的当前路径
// 每轮循环重新随机生成
type IdleState struct {
	PathX []float64
	PathY []float64

	// DurationMs 本轮路径的持续时间
	DurationMs float64
}
