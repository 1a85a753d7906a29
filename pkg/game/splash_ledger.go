package game

import (
	"log"
	"sync"

	"github.com/decker502/duet/pkg/types"
)

// SplashLedger 颜料溅痕账本
//
// 按 (levelID, obstacleIdentity) 保存溅痕列表，数据落在 SaveManager 的持久化记录中。
//
// 约定：
//   - 写入对调用方是同步的，调用返回时不存在未决状态
//   - 持久化失败只记录日志，不返回错误（溅痕是装饰数据，不能阻塞游戏）
//   - 写入失败后标记 dirty，Flush 会重试
//   - 同一 (levelID, identity) 后写者覆盖先写者
type SplashLedger struct {
	saveManager *SaveManager

	dirtyMu sync.Mutex
	dirty   bool
}

// NewSplashLedger 创建溅痕账本
//
// 参数：
//   - saveManager: 持久化记录的所有者，由应用层创建后注入
func NewSplashLedger(saveManager *SaveManager) *SplashLedger {
	return &SplashLedger{saveManager: saveManager}
}

// Append 为障碍物追加一条溅痕
//
// 若关卡分组不存在则创建；障碍物的列表整体替换为 "已有记录 + 新记录"，随后立即落盘。
func (l *SplashLedger) Append(levelID string, identity types.ObstacleIdentity, record types.SplashRecord) {
	key := identity.Key()
	count := 0
	l.saveManager.update(func(data *SaveData) {
		bucket := levelBucket(data, levelID)
		existing := bucket[key]
		merged := make([]types.SplashRecord, 0, len(existing)+1)
		merged = append(merged, existing...)
		merged = append(merged, record)
		bucket[key] = merged
		count = len(merged)
	})

	log.Printf("[SplashLedger] %s/%s: %d splashes", levelID, key, count)
	l.persist("append")
}

// Replace 用给定列表整体替换障碍物的溅痕
func (l *SplashLedger) Replace(levelID string, identity types.ObstacleIdentity, records []types.SplashRecord) {
	key := identity.Key()
	l.saveManager.update(func(data *SaveData) {
		bucket := levelBucket(data, levelID)
		copied := make([]types.SplashRecord, len(records))
		copy(copied, records)
		bucket[key] = copied
	})
	l.persist("replace")
}

// Restore 返回障碍物已有的溅痕（副本）
// 未找到时返回空切片；不修改任何状态
func (l *SplashLedger) Restore(levelID string, identity types.ObstacleIdentity) []types.SplashRecord {
	var result []types.SplashRecord
	l.saveManager.view(func(data *SaveData) {
		records := data.ColorSplashes[levelID][identity.Key()]
		result = make([]types.SplashRecord, len(records))
		copy(result, records)
	})
	return result
}

// Level 返回一个关卡全部溅痕的快照（identity key -> splashes）
func (l *SplashLedger) Level(levelID string) map[string][]types.SplashRecord {
	snapshot := make(map[string][]types.SplashRecord)
	l.saveManager.view(func(data *SaveData) {
		for key, records := range data.ColorSplashes[levelID] {
			copied := make([]types.SplashRecord, len(records))
			copy(copied, records)
			snapshot[key] = copied
		}
	})
	return snapshot
}

// ClearLevel 删除一个关卡的全部溅痕
func (l *SplashLedger) ClearLevel(levelID string) {
	removed := false
	l.saveManager.update(func(data *SaveData) {
		if _, ok := data.ColorSplashes[levelID]; ok {
			delete(data.ColorSplashes, levelID)
			removed = true
		}
	})

	if removed {
		log.Printf("[SplashLedger] Cleared splashes for %s", levelID)
		l.persist("clear level")
	}
}

// ClearAll 清空全部溅痕
func (l *SplashLedger) ClearAll() {
	l.saveManager.update(func(data *SaveData) {
		data.ColorSplashes = make(map[string]map[string][]types.SplashRecord)
	})
	log.Printf("[SplashLedger] Cleared all splashes")
	l.persist("clear all")
}

// Flush 重试此前失败的写入
// 障碍物销毁时调用；没有未落盘的数据时不做任何事
func (l *SplashLedger) Flush() {
	l.dirtyMu.Lock()
	dirty := l.dirty
	l.dirtyMu.Unlock()

	if dirty {
		l.persist("flush")
	}
}

// IsDirty 是否存在未成功落盘的修改
func (l *SplashLedger) IsDirty() bool {
	l.dirtyMu.Lock()
	defer l.dirtyMu.Unlock()
	return l.dirty
}

func (l *SplashLedger) persist(op string) {
	ok := l.saveManager.saveOrLog("splash ledger " + op + " not persisted")

	l.dirtyMu.Lock()
	l.dirty = !ok
	l.dirtyMu.Unlock()
}

// levelBucket 返回关卡分组，不存在时创建
func levelBucket(data *SaveData, levelID string) map[string][]types.SplashRecord {
	bucket, ok := data.ColorSplashes[levelID]
	if !ok || bucket == nil {
		bucket = make(map[string][]types.SplashRecord)
		data.ColorSplashes[levelID] = bucket
	}
	return bucket
}
