package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/entities"
	"github.com/decker502/duet/pkg/game"
	"github.com/decker502/duet/pkg/systems"
	"github.com/decker502/duet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// scenePhase 关卡场景的阶段
type scenePhase int

const (
	phasePlaying scenePhase = iota
	phaseGameOver
	phaseLevelComplete
	phaseFailed // 关卡加载失败，只显示错误
)

// GameScene 关卡场景
//
// 每帧流程：
//  1. 读取输入，更新玩家旋转
//  2. 障碍物系统 Tick（生成 → 移动 → 回收）
//  3. 碰撞检测，命中则进入 game over
//  4. 关卡完成检测
//
// game over 与关卡完成都有一段停留时间，之后通过 SceneManager 切换关卡。
type GameScene struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState

	level       int
	levelConfig *config.LevelConfig
	viewport    config.Viewport

	entityManager *ecs.EntityManager
	obstacles     *systems.ObstacleSpawnSystem
	particles     *systems.ParticleSystem
	player        *entities.Player
	decorations   *splashDecorations
	rng           *rand.Rand

	phase        scenePhase
	phaseTimerMs float64
	loadErr      error
	lastHitOrb   int
}

// NewGameScene 创建关卡场景
//
// 参数：
//   - sm: 场景管理器，用于切换关卡
//   - gs: 持久化服务（进度与溅痕账本）
//   - level: 关卡编号，从 1 开始
//
// 返回：
//   - *GameScene: 关卡配置加载失败时场景仍然创建，只显示错误信息
func NewGameScene(sm *game.SceneManager, gs *game.GameState, level int) *GameScene {
	return newGameScene(sm, gs, level, config.NewViewport(config.GameWindowWidth, config.GameWindowHeight),
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newGameScene(sm *game.SceneManager, gs *game.GameState, level int, vp config.Viewport, rng *rand.Rand) *GameScene {
	em := ecs.NewEntityManager()
	ledger := gs.GetSplashLedger()

	scene := &GameScene{
		sceneManager:  sm,
		gameState:     gs,
		level:         level,
		viewport:      vp,
		entityManager: em,
		obstacles:     systems.NewObstacleSpawnSystem(em, vp, ledger, rng),
		particles:     systems.NewParticleSystem(em, rng),
		player:        entities.NewPlayer(vp),
		decorations:   newSplashDecorations(rng),
		rng:           rng,
	}

	if err := scene.loadLevel(); err != nil {
		log.Printf("[GameScene] Failed to start level %d: %v", level, err)
		scene.loadErr = err
		scene.phase = phaseFailed
	}
	return scene
}

// loadLevel 读取关卡配置并交给障碍物系统
func (s *GameScene) loadLevel() error {
	cfg, err := config.LoadLevel(s.level)
	if err != nil {
		return err
	}
	s.levelConfig = cfg

	levelID := config.LevelKey(s.level)
	if config.Gameplay.ClearSplashesOnStartup {
		log.Printf("[GameScene] Debug: clearing splashes for %s", levelID)
		s.gameState.GetSplashLedger().ClearLevel(levelID)
	}

	if err := s.obstacles.LoadLevel(config.BuildSchedule(cfg, s.viewport), levelID); err != nil {
		return err
	}

	s.gameState.GetSaveManager().SetCurrentLevel(s.level)
	log.Printf("[GameScene] Level %d (%s) started", s.level, cfg.Name)
	return nil
}

// Update 更新场景
// deltaTime 为秒，内部换算为毫秒
func (s *GameScene) Update(deltaTime float64) {
	deltaMs := deltaTime * 1000
	s.particles.Update(deltaMs)

	switch s.phase {
	case phasePlaying:
		s.applyInput(utils.ReadRotationInput(int(s.viewport.Width)))
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			s.restart()
			return
		}
		s.step(deltaMs)

	case phaseGameOver:
		s.phaseTimerMs += deltaMs
		if s.phaseTimerMs >= config.Gameplay.GameOverDelayMs {
			s.restart()
		}

	case phaseLevelComplete:
		s.phaseTimerMs += deltaMs
		if s.phaseTimerMs >= config.Gameplay.LevelCompleteDelayMs {
			s.advance()
		}

	case phaseFailed:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			s.restart()
		}
	}
}

// applyInput 把输入映射为旋转意图
// 左右同时按下时停止旋转
func (s *GameScene) applyInput(input utils.RotationInput) {
	switch {
	case input.Left && !input.Right:
		s.player.RotateLeft()
	case input.Right && !input.Left:
		s.player.RotateRight()
	default:
		s.player.Stop()
	}
}

// step 推进一帧游戏逻辑
func (s *GameScene) step(deltaMs float64) {
	s.player.Update(deltaMs)
	s.obstacles.Tick(deltaMs)

	if s.obstacles.CheckCollisions(s.player.Probe()) {
		s.gameOver()
		return
	}

	if s.obstacles.IsLevelComplete() {
		s.levelComplete()
	}
}

func (s *GameScene) gameOver() {
	for i, hit := range s.obstacles.LastHits() {
		if i == 0 {
			s.lastHitOrb = hit.OrbIndex
			log.Printf("[GameScene] Game over: orb %d hit %s", hit.OrbIndex, s.obstacleKey(hit.Entity))
		}
		s.particles.EmitCollisionBurst(hit.Hit.Contact, hit.Orb.Color, s.viewport)
	}

	s.phase = phaseGameOver
	s.phaseTimerMs = 0
	s.player.Stop()
}

func (s *GameScene) levelComplete() {
	s.phase = phaseLevelComplete
	s.phaseTimerMs = 0
	s.player.Stop()
	s.gameState.GetSaveManager().CompleteLevel(s.level)
	s.particles.EmitCelebration(collision.Vec2{X: s.player.CenterX, Y: s.player.CenterY})

	completed, total := s.gameState.GetSaveManager().GetProgress()
	log.Printf("[GameScene] Level %d complete (%d/%d)", s.level, completed, total)
}

// restart 重新开始本关
func (s *GameScene) restart() {
	s.leave()
	s.sceneManager.LoadLevel(s.level)
}

// advance 进入下一个未完成的关卡
func (s *GameScene) advance() {
	s.leave()
	next := s.gameState.GetSaveManager().GetNextUncompletedLevel()
	s.sceneManager.LoadLevel(next)
}

// leave 离开场景前清除障碍物和粒子（销毁障碍物时重试未落盘的溅痕）
func (s *GameScene) leave() {
	s.obstacles.ClearAllObstacles()
	s.particles.Clear()
}

func (s *GameScene) obstacleKey(id ecs.EntityID) string {
	for _, view := range s.obstacles.GetActiveObstacles() {
		if view.ID() == id {
			return view.Identity().Key()
		}
	}
	return fmt.Sprintf("entity %d", id)
}

// SaveOnExit 实现 game.Saveable
func (s *GameScene) SaveOnExit() bool {
	return s.gameState.SaveOnExit()
}

// Level 关卡编号
func (s *GameScene) Level() int {
	return s.level
}
