//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设置为 1 时桌面端按移动端处理指针（无悬停）
const MobileEmulateEnv = "CARDFX_MOBILE_EMULATE"

// IsMobile 是否按移动端处理输入
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
