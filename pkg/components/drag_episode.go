package components

// DragEpisode 一次按下→抬起手势的状态
// 只在手势期间存在，由 DragController 创建和丢弃
type DragEpisode struct {
	// OriginScreenX, OriginScreenY 按下时的指针位置（渲染坐标）
	OriginScreenX float64
	OriginScreenY float64

	// OriginValueX, OriginValueY 按下时位置轨道的目标值（设计坐标）
	// 拖拽结束后卡片回弹到这里
	OriginValueX float64
	OriginValueY float64

	// OriginRotation, OriginScale 按下时旋转/缩放轨道的目标值
	OriginRotation float64
	OriginScale    float64

	// StartTimeMs 按下时刻（手势时钟，毫秒）
	StartTimeMs float64

	// Moved 指针移动是否超过过拖拽阈值
	Moved bool
}
