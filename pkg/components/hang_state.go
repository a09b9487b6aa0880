package components

// HangState 悬挂摆动状态
//
// RandomOffset 和 RestAngleDeg 在卡片创建时确定，之后不再改变；
// CurrentAngleDeg 由悬挂轨道持续更新。
type HangState struct {
	// RandomOffset 悬挂点相对卡片中心的水平偏移（设计坐标）
	RandomOffset float64

	// RestAngleDeg 静止角度（度），由 RandomOffset 推导
	RestAngleDeg float64

	// CurrentAngleDeg 当前摆动角度（度）
	CurrentAngleDeg float64

	// LastPushTimeMs 上一次推动的时刻（手势时钟，毫秒）
	LastPushTimeMs float64

	// HasPushed 是否被推动过（第一次推动不受冷却限制）
	HasPushed bool
}
