// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 以 "data/" 开头的路径从嵌入资源读取，其他路径直接读取本地文件系统
// （用于测试中的临时文件和外部关卡文件）。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在调用 Init 之前访问嵌入资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
//
// 参数：
//   - data: 根目录包含 data/ 的文件系统（embed.FS、os.DirFS 或 fstest.MapFS）
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// InitFromDir 使用本地目录初始化（命令行工具和集成测试使用）
// root 为包含 data/ 子目录的路径
func InitFromDir(root string) error {
	info, err := os.Stat(filepath.Join(root, "data"))
	if err != nil {
		return fmt.Errorf("data directory not found under %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s/data is not a directory", root)
	}
	Init(os.DirFS(root))
	return nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符为正斜杠，并移除 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

func isDataPath(path string) bool {
	return strings.HasPrefix(path, "data/")
}

// ReadFile 读取文件内容
func ReadFile(path string) ([]byte, error) {
	normalized := normalize(path)
	if !isDataPath(normalized) {
		return os.ReadFile(path)
	}
	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.ReadFile(dataFS, normalized)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	normalized := normalize(path)
	if !isDataPath(normalized) {
		_, err := os.Stat(path)
		return err == nil
	}
	if !initialized {
		return false
	}
	_, err := fs.Stat(dataFS, normalized)
	return err == nil
}

// Glob 在嵌入资源中匹配文件
// 路径模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	pattern = normalize(pattern)
	if !isDataPath(pattern) {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", pattern)
	}
	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.Glob(dataFS, pattern)
}
