package game

import (
	"log"

	"github.com/decker502/duet/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "duet_orbs"

// GameState 进程级的持久化服务
//
// 由应用层在启动时创建一次，并显式传给场景；不提供全局访问器。
// 持有：
//   - gdata 存储（可能为 nil，此时进度与溅痕只保存在内存中）
//   - SaveManager（进度记录）
//   - SplashLedger（溅痕账本，与 SaveManager 共享同一条记录）
type GameState struct {
	gdataManager *gdata.Manager
	saveManager  *SaveManager
	splashLedger *SplashLedger
}

// NewGameState 打开 gdata 存储并创建持久化服务
//
// 存储不可用不是致命错误：记录日志后以内存模式运行
//
// 参数：
//   - appName: gdata 应用名，通常为 AppName
func NewGameState(appName string) *GameState {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[GameState] Warning: storage directory unavailable: %v", err)
	} else if dir := utils.StorageDir(); dir != "" {
		log.Printf("[GameState] Storage directory: %s", dir)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GameState] Warning: failed to open gdata storage: %v (progress will not persist)", err)
		manager = nil
	}

	return NewGameStateWithManager(manager)
}

// NewGameStateWithManager 使用已打开的 gdata 存储创建持久化服务
// manager 可为 nil
func NewGameStateWithManager(manager *gdata.Manager) *GameState {
	saveManager := NewSaveManager(manager)
	return &GameState{
		gdataManager: manager,
		saveManager:  saveManager,
		splashLedger: NewSplashLedger(saveManager),
	}
}

// GetGdataManager 返回 gdata 存储，可能为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSaveManager 返回进度记录管理器
func (gs *GameState) GetSaveManager() *SaveManager {
	return gs.saveManager
}

// GetSplashLedger 返回溅痕账本
func (gs *GameState) GetSplashLedger() *SplashLedger {
	return gs.splashLedger
}

// IsPersistent 是否有可用的持久化存储
func (gs *GameState) IsPersistent() bool {
	return gs.gdataManager != nil
}

// SaveOnExit 退出前落盘
// 返回 false 表示保存失败（程序仍会正常退出）
func (gs *GameState) SaveOnExit() bool {
	gs.splashLedger.Flush()
	if err := gs.saveManager.Save(); err != nil {
		log.Printf("[GameState] Warning: failed to save on exit: %v", err)
		return false
	}
	return true
}
