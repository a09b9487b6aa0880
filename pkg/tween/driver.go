package tween

// Updater 可被驱动器逐帧推进的对象
// 实现必须是可比较的类型（通常是指针），驱动器按身份注册和注销
type Updater interface {
	// Update 推进 dtMs 毫秒
	Update(dtMs float64)
}

// Driver 全局逐帧驱动器
//
// 单线程协作式：宿主每帧调用一次 Tick，驱动器按注册顺序推进所有 Updater。
// 驱动器本身没有阻塞调用，也不持有任何计时器。
type Driver struct {
	updaters  []Updater
	removed   map[Updater]bool
	elapsedMs float64
	ticking   bool
}

// NewDriver 创建驱动器
func NewDriver() *Driver {
	return &Driver{
		updaters: make([]Updater, 0),
		removed:  make(map[Updater]bool),
	}
}

// Add 注册 Updater，重复注册被忽略
func (d *Driver) Add(u Updater) {
	for _, existing := range d.updaters {
		if existing == u {
			delete(d.removed, u)
			return
		}
	}
	delete(d.removed, u)
	d.updaters = append(d.updaters, u)
}

// Remove 注销 Updater
// 在 Tick 过程中注销时，本帧剩余部分也不会再推进它
func (d *Driver) Remove(u Updater) {
	for i, existing := range d.updaters {
		if existing != u {
			continue
		}
		if d.ticking {
			// Tick 正在遍历快照，先标记，遍历结束后压缩
			d.removed[u] = true
			return
		}
		d.updaters = append(d.updaters[:i], d.updaters[i+1:]...)
		return
	}
}

// Len 已注册的 Updater 数量
func (d *Driver) Len() int {
	return len(d.updaters) - len(d.removed)
}

// ElapsedMs 驱动器累计推进的时间（补间时钟）
func (d *Driver) ElapsedMs() float64 {
	return d.elapsedMs
}

// Tick 推进所有 Updater dtMs 毫秒
// dtMs < 0 视为 0
func (d *Driver) Tick(dtMs float64) {
	if dtMs < 0 {
		dtMs = 0
	}
	d.elapsedMs += dtMs

	d.ticking = true
	snapshot := make([]Updater, len(d.updaters))
	copy(snapshot, d.updaters)
	for _, u := range snapshot {
		if d.removed[u] {
			continue
		}
		u.Update(dtMs)
	}
	d.ticking = false

	if len(d.removed) > 0 {
		kept := d.updaters[:0]
		for _, u := range d.updaters {
			if !d.removed[u] {
				kept = append(kept, u)
			}
		}
		d.updaters = kept
		d.removed = make(map[Updater]bool)
	}
}
