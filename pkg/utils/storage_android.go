//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 打开存储前创建 /data/data/{package}/saves
//
// gdata 在 Android 上使用应用私有目录，但不会预先创建子目录，
// 目录缺失时溅痕账本和进度都无法落盘。
func EnsureStorageDir() error {
	dir := StorageDir()
	if dir == "" {
		return fmt.Errorf("cannot detect Android package name")
	}

	saves := filepath.Join(dir, "saves")
	if err := os.MkdirAll(saves, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", saves, err)
	}
	return nil
}

// StorageDir 应用私有目录，包名无法识别时返回空字符串
func StorageDir() string {
	pkg, err := androidPackageName()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}

// androidPackageName 从 /proc/self/cmdline 读取包名
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	// cmdline 以 NUL 分隔参数，第一个参数即包名
	name, _, _ := bytes.Cut(data, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return string(name), nil
}
