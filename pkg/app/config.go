package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config 定义应用启动配置
//
// 命令行参数先填入，环境变量（如果设置）覆盖命令行的值。
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool `env:"CARDFX_VERBOSE"`
	// ConfigPath 展示配置文件路径，为空时使用内嵌的 data/showcase.yaml
	ConfigPath string `env:"CARDFX_CONFIG"`
	// SettingsAppName gdata 存储使用的应用名，为空时设置只保存在内存中
	SettingsAppName string `env:"CARDFX_SETTINGS_APP"`
}

// DefaultConfig 返回默认启动配置
func DefaultConfig() Config {
	return Config{
		SettingsAppName: "cardfx",
	}
}

// ApplyEnv 用环境变量覆盖配置，未设置的变量保持原值
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
