package scenes

import (
	"math/rand"
	"testing"

	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/embedded"
	"github.com/decker502/duet/pkg/entities"
	"github.com/decker502/duet/pkg/game"
	"github.com/decker502/duet/pkg/utils"
)

// newTestSceneManager 创建使用内存存档和固定随机种子的场景管理器
func newTestSceneManager(t *testing.T) (*game.SceneManager, *game.GameState) {
	t.Helper()
	if err := embedded.InitFromDir("../.."); err != nil {
		t.Fatalf("InitFromDir failed: %v", err)
	}

	gs := game.NewGameStateWithManager(nil)
	sm := game.NewSceneManager()
	vp := config.NewViewport(config.GameWindowWidth, config.GameWindowHeight)
	sm.SetSceneFactory(func(level int) game.Scene {
		return newGameScene(sm, gs, level, vp, rand.New(rand.NewSource(int64(level))))
	})
	return sm, gs
}

func currentGameScene(t *testing.T, sm *game.SceneManager) *GameScene {
	t.Helper()
	scene, ok := sm.GetCurrentScene().(*GameScene)
	if !ok {
		t.Fatalf("current scene is %T, want *GameScene", sm.GetCurrentScene())
	}
	return scene
}

// stepUntilSpawn 推进直到场上出现障碍物
func stepUntilSpawn(t *testing.T, scene *GameScene) {
	t.Helper()
	for i := 0; i < 10000 && scene.obstacles.ActiveCount() == 0; i++ {
		scene.step(10)
	}
	if scene.obstacles.ActiveCount() == 0 {
		t.Fatal("no obstacle spawned")
	}
}

func TestGameScene_LoadLevel(t *testing.T) {
	sm, gs := newTestSceneManager(t)

	if !sm.LoadLevel(2) {
		t.Fatal("LoadLevel(2) returned false")
	}
	scene := currentGameScene(t, sm)

	if scene.phase != phasePlaying {
		t.Errorf("phase = %v, want playing", scene.phase)
	}
	if scene.Level() != 2 {
		t.Errorf("Level() = %d, want 2", scene.Level())
	}
	if scene.obstacles.LevelID() != "level_2" {
		t.Errorf("LevelID() = %q, want level_2", scene.obstacles.LevelID())
	}
	if got := gs.GetSaveManager().GetCurrentLevel(); got != 2 {
		t.Errorf("current level = %d, want 2", got)
	}
}

func TestGameScene_MissingLevel(t *testing.T) {
	sm, _ := newTestSceneManager(t)

	sm.LoadLevel(99)
	scene := currentGameScene(t, sm)

	if scene.phase != phaseFailed {
		t.Errorf("phase = %v, want failed", scene.phase)
	}
	if scene.loadErr == nil {
		t.Error("loadErr should be set")
	}

	if scene.obstacles.SpawnedCount() != 0 {
		t.Errorf("SpawnedCount = %d, want 0", scene.obstacles.SpawnedCount())
	}
}

func TestGameScene_CollisionRestartsLevel(t *testing.T) {
	sm, gs := newTestSceneManager(t)
	sm.LoadLevel(1)
	scene := currentGameScene(t, sm)

	stepUntilSpawn(t, scene)

	// 把第一个障碍物移到红球上
	view := scene.obstacles.GetActiveObstacles()[0]
	red := scene.player.RedCenter()
	if !scene.obstacles.SetPosition(view.ID(), red.X, red.Y) {
		t.Fatal("SetPosition failed")
	}
	scene.step(0)

	if scene.phase != phaseGameOver {
		t.Fatalf("phase = %v, want game over", scene.phase)
	}
	if scene.lastHitOrb != 0 {
		t.Errorf("lastHitOrb = %d, want 0 (red)", scene.lastHitOrb)
	}
	if scene.particles.Count() == 0 {
		t.Error("collision should emit a particle burst")
	}

	splashes := gs.GetSplashLedger().Restore("level_1", view.Identity())
	if len(splashes) == 0 {
		t.Fatal("collision should record a splash in the ledger")
	}
	if splashes[0].Color != config.RedOrbColor {
		t.Errorf("splash color = %06x, want %06x", splashes[0].Color, config.RedOrbColor)
	}

	// game over 期间障碍物冻结
	before := scene.obstacles.GetActiveObstacles()[0].Bounds()
	scene.Update(0.1)
	after := scene.obstacles.GetActiveObstacles()[0].Bounds()
	if before != after {
		t.Errorf("obstacle moved during game over: %+v -> %+v", before, after)
	}

	// 停留时间结束后重开本关
	scene.Update(config.Gameplay.GameOverDelayMs / 1000)

	restarted := currentGameScene(t, sm)
	if restarted == scene {
		t.Fatal("scene should be replaced after game over delay")
	}
	if restarted.Level() != 1 {
		t.Errorf("restarted level = %d, want 1", restarted.Level())
	}
	if scene.obstacles.ActiveCount() != 0 {
		t.Errorf("old scene still has %d obstacles", scene.obstacles.ActiveCount())
	}
}

func TestGameScene_SplashesSurviveRestart(t *testing.T) {
	sm, _ := newTestSceneManager(t)
	sm.LoadLevel(1)
	scene := currentGameScene(t, sm)

	stepUntilSpawn(t, scene)
	view := scene.obstacles.GetActiveObstacles()[0]
	blue := scene.player.BlueCenter()
	scene.obstacles.SetPosition(view.ID(), blue.X, blue.Y)
	scene.step(0)
	scene.Update(config.Gameplay.GameOverDelayMs / 1000)

	restarted := currentGameScene(t, sm)
	stepUntilSpawn(t, restarted)

	respawned := restarted.obstacles.GetActiveObstacles()[0]
	if respawned.Identity() != view.Identity() {
		t.Fatalf("identity changed across restart: %v -> %v", view.Identity(), respawned.Identity())
	}
	if len(respawned.SplashData()) == 0 {
		t.Error("respawned obstacle should carry the splash from the previous attempt")
	}
}

func TestGameScene_LevelCompleteAdvances(t *testing.T) {
	sm, gs := newTestSceneManager(t)
	sm.LoadLevel(1)
	scene := currentGameScene(t, sm)

	// 把玩家移出屏幕，障碍物不会碰到它
	scene.player.CenterY = -100000

	for i := 0; i < 100000 && scene.phase == phasePlaying; i++ {
		scene.step(100)
	}
	if scene.phase != phaseLevelComplete {
		t.Fatalf("phase = %v, want level complete", scene.phase)
	}
	if !gs.GetSaveManager().IsLevelCompleted(1) {
		t.Error("level 1 should be marked completed")
	}
	if scene.particles.Count() == 0 {
		t.Error("level complete should emit celebration particles")
	}

	scene.Update(config.Gameplay.LevelCompleteDelayMs / 1000)

	next := currentGameScene(t, sm)
	if next.Level() != 2 {
		t.Errorf("next level = %d, want 2", next.Level())
	}
	if sm.GetCurrentLevel() != 2 {
		t.Errorf("scene manager level = %d, want 2", sm.GetCurrentLevel())
	}
}

func TestGameScene_ApplyInput(t *testing.T) {
	sm, _ := newTestSceneManager(t)
	sm.LoadLevel(1)
	scene := currentGameScene(t, sm)

	tests := []struct {
		name  string
		left  bool
		right bool
		want  entities.RotationIntent
	}{
		{"left", true, false, entities.RotateLeft},
		{"right", false, true, entities.RotateRight},
		{"none", false, false, entities.RotateNone},
		{"both", true, true, entities.RotateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene.applyInput(utils.RotationInput{Left: tt.left, Right: tt.right})
			if got := scene.player.Intent(); got != tt.want {
				t.Errorf("intent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGameScene_SaveOnExit(t *testing.T) {
	sm, _ := newTestSceneManager(t)
	sm.LoadLevel(1)

	if !sm.SaveOnExit() {
		t.Error("SaveOnExit should succeed without persistent storage")
	}
}
