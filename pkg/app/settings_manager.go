package app

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/cardfx/pkg/utils"
)

// CardToggles 一张卡片在展示程序中的开关状态
type CardToggles struct {
	Flipped     bool `yaml:"flipped"`
	Idle        bool `yaml:"idle"`
	Blink       bool `yaml:"blink"`
	Hanging     bool `yaml:"hanging"`
	Hidden      bool `yaml:"hidden"`
	Defeated    bool `yaml:"defeated"`
	Highlighted bool `yaml:"highlighted"`
}

// ShowcaseSettings 展示程序的持久化设置
type ShowcaseSettings struct {
	// ShowHelp 显示按键帮助
	ShowHelp bool `yaml:"showHelp"`
	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`
	// Cards 按卡片 ID 记录的开关状态
	Cards map[string]CardToggles `yaml:"cards"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ShowcaseSettings {
	return &ShowcaseSettings{
		ShowHelp: true,
		Cards:    make(map[string]CardToggles),
	}
}

// SettingsManager 设置管理器
// 负责展示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ShowcaseSettings
	dirty        bool
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "showcase"
)

// NewSettingsManager 创建新的设置管理器实例
//
// gdataManager 可为 nil（降级模式，仅内存设置）。
// 加载失败不是致命错误，此时使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// OpenSettingsManager 打开名为 appName 的 gdata 存储并创建设置管理器
// 打开失败时退回降级模式
func OpenSettingsManager(appName string) *SettingsManager {
	if appName == "" {
		return NewSettingsManager(nil)
	}
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return NewSettingsManager(nil)
	}
	return NewSettingsManager(manager)
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	sm.dirty = false

	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.Cards == nil {
		loaded.Cards = make(map[string]CardToggles)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (%d cards)", len(loaded.Cards))
	return nil
}

// Save 保存设置到 gdata
// 降级模式下不报错；没有修改时不写入
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil || !sm.dirty {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.dirty = false
	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ShowcaseSettings {
	return sm.settings
}

// CardToggles 返回卡片的开关状态，没有记录时返回 false
func (sm *SettingsManager) CardToggles(id string) (CardToggles, bool) {
	t, ok := sm.settings.Cards[id]
	return t, ok
}

// UpdateCard 修改卡片的开关状态
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) UpdateCard(id string, update func(*CardToggles)) {
	t := sm.settings.Cards[id]
	update(&t)
	sm.settings.Cards[id] = t
	sm.dirty = true
}

// SetShowHelp 设置帮助面板开关
func (sm *SettingsManager) SetShowHelp(show bool) {
	sm.settings.ShowHelp = show
	sm.dirty = true
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
	sm.dirty = true
}
