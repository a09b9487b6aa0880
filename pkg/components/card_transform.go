package components

// CardTransform 一张卡片所有动画轨道的当前值
//
// 由 card.Animator 通过各轨道的 onUpdate 回调写入，每帧推送给渲染表面。
// 除标志位外，字段只应被轨道回调修改。
//
// 最终位置 = Translate + IdleOffset（闲置漂移与拖拽/定位轨道互不干扰）
// 最终旋转 = Rotation + HangRotation
type CardTransform struct {
	// TranslateX, TranslateY 卡片中心位置（设计坐标）
	TranslateX float64
	TranslateY float64

	// RotationDeg 平面旋转（度）
	RotationDeg float64

	// FlipRotationDeg 绕竖直轴的翻转角度（度），0 = 正面，±180 = 背面
	FlipRotationDeg float64

	// Scale 等比缩放（1.0 = 原始大小）
	Scale float64

	// HighlightOpacity 高亮层透明度（0.0 - 1.0）
	HighlightOpacity float64

	// VisibilityOpacity 整体可见度（0.0 - 1.0）
	VisibilityOpacity float64

	// HangRotationDeg 悬挂摆动角度（度），绕顶部中心旋转
	HangRotationDeg float64

	// IdleOffsetX, IdleOffsetY 闲置漂移偏移（设计坐标）
	IdleOffsetX float64
	IdleOffsetY float64

	// ZIndex 前景层级，BackgroundZIndex 背景层级（高亮光晕在此层绘制）
	ZIndex           int
	BackgroundZIndex int

	// 以下为渲染标志，无动画
	Defeated       bool   // 被击败（渲染器决定表现形式）
	Disabled       bool   // 禁用（通常变灰）
	HighlightWhite bool   // 高亮使用白色
	HighlightColor string // 高亮颜色（如 "#ffcc00"），HighlightWhite 优先
}

// EffectiveX 叠加闲置偏移后的 X
func (t CardTransform) EffectiveX() float64 {
	return t.TranslateX + t.IdleOffsetX
}

// EffectiveY 叠加闲置偏移后的 Y
func (t CardTransform) EffectiveY() float64 {
	return t.TranslateY + t.IdleOffsetY
}

// EffectiveRotation 叠加悬挂摆动后的旋转角度
func (t CardTransform) EffectiveRotation() float64 {
	return t.RotationDeg + t.HangRotationDeg
}

// ShowsBack 翻转超过 90° 时显示背面
func (t CardTransform) ShowsBack() bool {
	a := t.FlipRotationDeg
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a > 90 || a < -90
}
