package components

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	PointerDown PointerEventKind = iota
	PointerMove
	PointerUp
)

// String 返回事件类型名称（用于日志）
func (k PointerEventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent 全局指针事件（渲染坐标）
type PointerEvent struct {
	Kind PointerEventKind
	X, Y float64
}
