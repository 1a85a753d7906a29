//go:build !android

package utils

// EnsureStorageDir 桌面平台由 gdata 自行创建存储目录，这里无事可做
func EnsureStorageDir() error {
	return nil
}

// StorageDir 桌面平台的存储目录由 gdata 决定，返回空字符串
func StorageDir() string {
	return ""
}
