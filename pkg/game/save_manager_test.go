package game

import (
	"sync"
	"testing"

	"github.com/decker502/duet/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时 HOME 下打开 gdata 存储
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSaveData 测试默认记录
func TestDefaultSaveData(t *testing.T) {
	data := DefaultSaveData()

	if len(data.CompletedLevels) != 0 {
		t.Errorf("CompletedLevels: got %v, want empty", data.CompletedLevels)
	}
	if data.CurrentLevel != 1 {
		t.Errorf("CurrentLevel: got %d, want 1", data.CurrentLevel)
	}
	if data.TotalLevels != 3 {
		t.Errorf("TotalLevels: got %d, want 3", data.TotalLevels)
	}
	if data.ColorSplashes == nil {
		t.Error("ColorSplashes should not be nil")
	}
}

// TestSaveManager_DegradedMode 测试无存储时在内存中工作
func TestSaveManager_DegradedMode(t *testing.T) {
	sm := NewSaveManager(nil)

	sm.CompleteLevel(2)
	if !sm.IsLevelCompleted(2) {
		t.Error("Level 2 should be completed in memory")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save in degraded mode should not fail: %v", err)
	}
}

// TestSaveManager_CompleteLevel 测试完成关卡：升序、去重
func TestSaveManager_CompleteLevel(t *testing.T) {
	sm := NewSaveManager(nil)

	sm.CompleteLevel(3)
	sm.CompleteLevel(1)
	sm.CompleteLevel(3)

	got := sm.GetCompletedLevels()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("GetCompletedLevels: got %v, want [1 3]", got)
	}

	// 返回副本
	got[0] = 99
	if sm.GetCompletedLevels()[0] != 1 {
		t.Error("GetCompletedLevels should return a copy")
	}

	completed, total := sm.GetProgress()
	if completed != 2 || total != 3 {
		t.Errorf("GetProgress: got (%d, %d), want (2, 3)", completed, total)
	}
}

// TestSaveManager_GetNextUncompletedLevel 测试下一个未完成关卡
func TestSaveManager_GetNextUncompletedLevel(t *testing.T) {
	sm := NewSaveManager(nil)

	if got := sm.GetNextUncompletedLevel(); got != 1 {
		t.Errorf("fresh: got %d, want 1", got)
	}

	sm.CompleteLevel(1)
	if got := sm.GetNextUncompletedLevel(); got != 2 {
		t.Errorf("after level 1: got %d, want 2", got)
	}

	sm.CompleteLevel(2)
	sm.CompleteLevel(3)
	if got := sm.GetNextUncompletedLevel(); got != 1 {
		t.Errorf("all completed: got %d, want 1", got)
	}
}

// TestSaveManager_SetCurrentLevel 测试当前关卡
func TestSaveManager_SetCurrentLevel(t *testing.T) {
	sm := NewSaveManager(nil)

	sm.SetCurrentLevel(2)
	if got := sm.GetCurrentLevel(); got != 2 {
		t.Errorf("GetCurrentLevel: got %d, want 2", got)
	}

	sm.SetCurrentLevel(0)
	if got := sm.GetCurrentLevel(); got != 2 {
		t.Errorf("invalid level should be ignored, got %d", got)
	}
}

// TestSaveManager_Persistence 测试记录跨实例保存
func TestSaveManager_Persistence(t *testing.T) {
	gdataManager := newTestGdata(t, "duet_test_progress")

	sm := NewSaveManager(gdataManager)
	sm.CompleteLevel(1)
	sm.SetCurrentLevel(2)

	reloaded := NewSaveManager(gdataManager)
	if !reloaded.IsLevelCompleted(1) {
		t.Error("Level 1 completion should be persisted")
	}
	if reloaded.GetCurrentLevel() != 2 {
		t.Errorf("CurrentLevel: got %d, want 2", reloaded.GetCurrentLevel())
	}
}

// TestSaveManager_LegacyRecord 测试没有 colorSplashes 字段的旧存档
func TestSaveManager_LegacyRecord(t *testing.T) {
	gdataManager := newTestGdata(t, "duet_test_legacy")

	legacy := []byte("completedLevels: [1]\ncurrentLevel: 2\ntotalLevels: 3\n")
	if err := gdataManager.SaveObjectProp(saveObject, saveProperty, legacy); err != nil {
		t.Fatalf("Failed to write legacy record: %v", err)
	}

	sm := NewSaveManager(gdataManager)
	if !sm.IsLevelCompleted(1) {
		t.Error("Level 1 should be completed")
	}

	ledger := NewSplashLedger(sm)
	id := types.NewObstacleIdentity(0, types.PatternSingle, types.SlotSingle, 960, 100)
	if got := ledger.Restore("level_1", id); len(got) != 0 {
		t.Errorf("Restore on legacy record: got %v, want empty", got)
	}
}

// TestSaveManager_NullLevelBucket 测试存档中关卡分组为 null 时仍可追加溅痕
func TestSaveManager_NullLevelBucket(t *testing.T) {
	gdataManager := newTestGdata(t, "duet_test_null_bucket")

	raw := []byte("completedLevels: []\ncurrentLevel: 1\ntotalLevels: 3\ncolorSplashes:\n  level_1:\n")
	if err := gdataManager.SaveObjectProp(saveObject, saveProperty, raw); err != nil {
		t.Fatalf("Failed to write record: %v", err)
	}

	sm := NewSaveManager(gdataManager)
	ledger := NewSplashLedger(sm)
	id := types.NewObstacleIdentity(0, types.PatternSingle, types.SlotSingle, 960, 100)
	ledger.Append("level_1", id, types.SplashRecord{X: 0.5, Y: 0.5, Color: 0xff3333, Size: 5, Alpha: 0.8})

	if got := ledger.Restore("level_1", id); len(got) != 1 {
		t.Fatalf("Restore after append: got %d records, want 1", len(got))
	}

	reloaded := NewSplashLedger(NewSaveManager(gdataManager))
	if got := reloaded.Restore("level_1", id); len(got) != 1 {
		t.Errorf("Restore after reload: got %d records, want 1", len(got))
	}
}

// TestSaveData_NormalizeNilBucket 测试 normalize 替换 nil 分组
func TestSaveData_NormalizeNilBucket(t *testing.T) {
	data := &SaveData{
		ColorSplashes: map[string]map[string][]types.SplashRecord{"level_1": nil},
	}
	data.normalize()

	if data.ColorSplashes["level_1"] == nil {
		t.Fatal("normalize should replace nil level bucket")
	}
	if data.CurrentLevel != 1 {
		t.Errorf("CurrentLevel: got %d, want 1", data.CurrentLevel)
	}
}

// TestSaveManager_ConcurrentSaves 测试并发写入后存档包含最新快照
func TestSaveManager_ConcurrentSaves(t *testing.T) {
	gdataManager := newTestGdata(t, "duet_test_concurrent")
	sm := NewSaveManager(gdataManager)
	ledger := NewSplashLedger(sm)

	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := types.NewObstacleIdentity(w*perWorker+i, types.PatternSingle, types.SlotSingle, 960, 100)
				ledger.Append("level_1", id, types.SplashRecord{X: 0.5, Y: 0.5, Color: 0x3333ff, Size: 4, Alpha: 0.7})
			}
		}(w)
	}
	wg.Wait()

	want := len(ledger.Level("level_1"))
	if want != workers*perWorker {
		t.Fatalf("in-memory obstacles: got %d, want %d", want, workers*perWorker)
	}

	reloaded := NewSplashLedger(NewSaveManager(gdataManager))
	if got := len(reloaded.Level("level_1")); got != want {
		t.Errorf("persisted obstacles: got %d, want %d", got, want)
	}
}

// TestSaveManager_CorruptRecord 测试存档损坏时使用默认记录
func TestSaveManager_CorruptRecord(t *testing.T) {
	gdataManager := newTestGdata(t, "duet_test_corrupt")

	if err := gdataManager.SaveObjectProp(saveObject, saveProperty, []byte("completedLevels: {not a list")); err != nil {
		t.Fatalf("Failed to write corrupt record: %v", err)
	}

	sm := NewSaveManager(gdataManager)
	if len(sm.GetCompletedLevels()) != 0 {
		t.Error("Corrupt record should fall back to defaults")
	}
	if sm.GetCurrentLevel() != 1 {
		t.Errorf("CurrentLevel: got %d, want 1", sm.GetCurrentLevel())
	}
}

// TestSaveManager_ResetProgress 测试重置进度
func TestSaveManager_ResetProgress(t *testing.T) {
	sm := NewSaveManager(nil)
	ledger := NewSplashLedger(sm)

	sm.CompleteLevel(1)
	id := types.NewObstacleIdentity(0, types.PatternSingle, types.SlotSingle, 960, 100)
	ledger.Append("level_1", id, types.SplashRecord{X: 0.5, Y: 0.5, Color: 0xff3333, Size: 5, Alpha: 0.8})

	sm.ResetProgress()

	if len(sm.GetCompletedLevels()) != 0 {
		t.Error("Completed levels should be reset")
	}
	if len(ledger.Restore("level_1", id)) != 0 {
		t.Error("Splashes should be reset")
	}
}
