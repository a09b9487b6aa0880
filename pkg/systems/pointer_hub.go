package systems

import "github.com/decker502/cardfx/pkg/components"

// PointerListener 指针事件监听函数
type PointerListener func(components.PointerEvent)

// PointerSource 宿主提供的全局指针事件源
// 拖拽手势期间订阅，手势结束时取消订阅
type PointerSource interface {
	Subscribe(listener PointerListener) (unsubscribe func())
}

// PointerHub 把宿主的指针事件分发给当前所有订阅者
//
// 分发时遍历订阅者快照：监听函数内取消订阅（或新增订阅）不影响本次分发的其他订阅者，
// 但已取消的订阅者不会再收到后续事件。
type PointerHub struct {
	nextID    int
	listeners map[int]PointerListener
	order     []int
}

// NewPointerHub 创建事件分发器
func NewPointerHub() *PointerHub {
	return &PointerHub{
		listeners: make(map[int]PointerListener),
	}
}

// Subscribe 注册监听函数，返回取消订阅函数（可重复调用）
func (h *PointerHub) Subscribe(listener PointerListener) func() {
	id := h.nextID
	h.nextID++
	h.listeners[id] = listener
	h.order = append(h.order, id)

	return func() {
		if _, ok := h.listeners[id]; !ok {
			return
		}
		delete(h.listeners, id)
		for i, existing := range h.order {
			if existing == id {
				h.order = append(h.order[:i:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch 分发一个事件
func (h *PointerHub) Dispatch(ev components.PointerEvent) {
	snapshot := make([]int, len(h.order))
	copy(snapshot, h.order)
	for _, id := range snapshot {
		listener, ok := h.listeners[id]
		if !ok {
			continue
		}
		listener(ev)
	}
}

// Len 当前订阅者数量
func (h *PointerHub) Len() int {
	return len(h.listeners)
}
