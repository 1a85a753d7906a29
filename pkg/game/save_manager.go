package game

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SaveData 持久化记录
//
// 单条记录保存全部进度：
//   - 已完成关卡（升序、去重）
//   - 当前关卡与关卡总数
//   - 各关卡各障碍物的颜料溅痕
//
// 旧版本存档可能没有 colorSplashes 字段，加载时按空表处理。
type SaveData struct {
	CompletedLevels []int                                      `yaml:"completedLevels"`
	CurrentLevel    int                                        `yaml:"currentLevel"`
	TotalLevels     int                                        `yaml:"totalLevels"`
	ColorSplashes   map[string]map[string][]types.SplashRecord `yaml:"colorSplashes"` // levelID -> obstacleIdentity -> splashes
}

// DefaultSaveData 返回默认记录
func DefaultSaveData() *SaveData {
	return &SaveData{
		CompletedLevels: []int{},
		CurrentLevel:    1,
		TotalLevels:     config.Gameplay.MaxLevels,
		ColorSplashes:   make(map[string]map[string][]types.SplashRecord),
	}
}

// normalize 补齐旧存档缺失的字段
func (d *SaveData) normalize() {
	if d.CompletedLevels == nil {
		d.CompletedLevels = []int{}
	}
	if d.CurrentLevel < 1 {
		d.CurrentLevel = 1
	}
	if d.TotalLevels < 1 {
		d.TotalLevels = config.Gameplay.MaxLevels
	}
	if d.ColorSplashes == nil {
		d.ColorSplashes = make(map[string]map[string][]types.SplashRecord)
	}
	// 手工编辑的存档里 "level_1:" 会被解析为 nil 分组
	for levelID, bucket := range d.ColorSplashes {
		if bucket == nil {
			d.ColorSplashes[levelID] = make(map[string][]types.SplashRecord)
		}
	}
}

// 存储路径常量
const (
	saveObject   = "progress"
	saveProperty = "state"
)

// SaveManager 保存管理器
//
// 职责：
//   - 加载和保存持久化记录
//   - 管理关卡完成进度
//   - 为 SplashLedger 提供记录访问
//
// 架构说明：
//   - 由应用层在启动时创建一次，显式注入到需要的地方，不使用全局单例
//   - 数据通过 gdata 持久化（YAML 格式，与关卡配置保持一致）
//   - gdataManager 为 nil 时进入降级模式，只在内存中保存
type SaveManager struct {
	mu           sync.Mutex // 保护 data
	writeMu      sync.Mutex // 串行化 Save
	gdataManager *gdata.Manager
	data         *SaveData
}

// NewSaveManager 创建保存管理器
//
// 加载失败（存档损坏、存储不可用）不是致命错误，记录日志后使用默认记录
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *SaveManager: 保存管理器实例
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	sm := &SaveManager{
		gdataManager: gdataManager,
		data:         DefaultSaveData(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SaveManager] Warning: Failed to load save data: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载记录
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误（此时内存中为默认记录）
func (sm *SaveManager) Load() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.gdataManager == nil {
		sm.data = DefaultSaveData()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(saveObject, saveProperty) {
		sm.data = DefaultSaveData()
		return nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		sm.data = DefaultSaveData()
		return fmt.Errorf("failed to load save data: %w", err)
	}

	var loaded SaveData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		sm.data = DefaultSaveData()
		return fmt.Errorf("failed to unmarshal save data: %w", err)
	}

	loaded.normalize()
	sm.data = &loaded
	log.Printf("[SaveManager] Save data loaded: %d completed levels, %d levels with splashes",
		len(loaded.CompletedLevels), len(loaded.ColorSplashes))
	return nil
}

// Save 保存记录到 gdata
//
// 降级模式下直接返回 nil
// 序列化与写入在 writeMu 内完成，落盘顺序与快照顺序一致
func (sm *SaveManager) Save() error {
	sm.writeMu.Lock()
	defer sm.writeMu.Unlock()

	sm.mu.Lock()
	raw, err := yaml.Marshal(sm.data)
	sm.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}

	if sm.gdataManager == nil {
		return nil
	}

	if err := sm.gdataManager.SaveObjectProp(saveObject, saveProperty, raw); err != nil {
		return fmt.Errorf("failed to save save data: %w", err)
	}
	return nil
}

// saveOrLog 保存记录，失败只记录日志
// 进度与溅痕都是非关键数据，持久化失败不能中断游戏
func (sm *SaveManager) saveOrLog(reason string) bool {
	if err := sm.Save(); err != nil {
		log.Printf("[SaveManager] Warning: %s: %v", reason, err)
		return false
	}
	return true
}

// update 在锁内修改记录
func (sm *SaveManager) update(fn func(data *SaveData)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fn(sm.data)
}

// view 在锁内读取记录
func (sm *SaveManager) view(fn func(data *SaveData)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fn(sm.data)
}

// CompleteLevel 标记关卡完成
// 已完成的关卡不会重复记录；列表保持升序
func (sm *SaveManager) CompleteLevel(level int) {
	changed := false
	sm.update(func(data *SaveData) {
		for _, l := range data.CompletedLevels {
			if l == level {
				return
			}
		}
		data.CompletedLevels = append(data.CompletedLevels, level)
		sort.Ints(data.CompletedLevels)
		changed = true
	})

	if changed {
		sm.saveOrLog(fmt.Sprintf("failed to save completion of level %d", level))
	}
}

// IsLevelCompleted 关卡是否已完成
func (sm *SaveManager) IsLevelCompleted(level int) bool {
	completed := false
	sm.view(func(data *SaveData) {
		for _, l := range data.CompletedLevels {
			if l == level {
				completed = true
				return
			}
		}
	})
	return completed
}

// GetCompletedLevels 获取已完成关卡列表
//
// 返回：
//   - []int: 已完成关卡（副本，修改不影响原数据）
func (sm *SaveManager) GetCompletedLevels() []int {
	var levels []int
	sm.view(func(data *SaveData) {
		levels = make([]int, len(data.CompletedLevels))
		copy(levels, data.CompletedLevels)
	})
	return levels
}

// GetNextUncompletedLevel 返回第一个未完成的关卡
// 全部完成时返回 1
func (sm *SaveManager) GetNextUncompletedLevel() int {
	total := sm.GetTotalLevels()
	for level := 1; level <= total; level++ {
		if !sm.IsLevelCompleted(level) {
			return level
		}
	}
	return 1
}

// GetTotalLevels 返回关卡总数
func (sm *SaveManager) GetTotalLevels() int {
	total := 0
	sm.view(func(data *SaveData) { total = data.TotalLevels })
	return total
}

// GetCurrentLevel 返回当前关卡
func (sm *SaveManager) GetCurrentLevel() int {
	current := 0
	sm.view(func(data *SaveData) { current = data.CurrentLevel })
	return current
}

// SetCurrentLevel 设置当前关卡并保存
func (sm *SaveManager) SetCurrentLevel(level int) {
	if level < 1 {
		return
	}
	sm.update(func(data *SaveData) { data.CurrentLevel = level })
	sm.saveOrLog("failed to save current level")
}

// GetProgress 返回 (已完成数量, 总数)
func (sm *SaveManager) GetProgress() (int, int) {
	completed, total := 0, 0
	sm.view(func(data *SaveData) {
		completed = len(data.CompletedLevels)
		total = data.TotalLevels
	})
	return completed, total
}

// ResetProgress 重置为默认记录（同时清空所有溅痕）
func (sm *SaveManager) ResetProgress() {
	sm.update(func(data *SaveData) { *data = *DefaultSaveData() })
	sm.saveOrLog("failed to save reset progress")
}
