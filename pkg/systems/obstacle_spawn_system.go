package systems

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/entities"
	"github.com/decker502/duet/pkg/types"
)

// SplashStore 溅痕账本
// 由 game.SplashLedger 实现；可为 nil（不持久化）
type SplashStore interface {
	Restore(levelID string, identity types.ObstacleIdentity) []types.SplashRecord
	Append(levelID string, identity types.ObstacleIdentity, record types.SplashRecord)
	Flush()
}

// ObstacleSpawnSystem 障碍物生命周期管理
//
// 职责：
//   - 按关卡调度表在到点时生成障碍物（展开形状、分配身份、恢复溅痕）
//   - 驱动障碍物移动，回收离开屏幕的障碍物
//   - 检测玩家与障碍物的碰撞
//   - 报告关卡是否完成
//
// 每帧顺序：计时 → 生成 → 移动 → 回收。碰撞检测由调用方在 Tick 之后调用 CheckCollisions。
type ObstacleSpawnSystem struct {
	entityManager *ecs.EntityManager
	movement      *ObstacleMovementSystem
	collision     *ObstacleCollisionSystem
	splashes      SplashStore
	rng           *rand.Rand

	viewport config.Viewport
	clock    *LevelClock
	schedule *config.LevelSchedule
	levelID  string

	nextIndex int            // 下一条未生成的调度项
	active    []ecs.EntityID // 场上的障碍物，按生成顺序
	spawned   int            // 本关已生成的实体数量
	lastHits  []ObstacleHit
}

// NewObstacleSpawnSystem 创建障碍物系统
//
// 参数：
//   - em: EntityManager 实例
//   - vp: 视口
//   - splashes: 溅痕账本，可为 nil
//   - rng: 随机源（往返方向、溅痕尺寸），为 nil 时使用时间种子
func NewObstacleSpawnSystem(em *ecs.EntityManager, vp config.Viewport, splashes SplashStore, rng *rand.Rand) *ObstacleSpawnSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &ObstacleSpawnSystem{
		entityManager: em,
		movement:      NewObstacleMovementSystem(em),
		collision:     NewObstacleCollisionSystem(em, vp, splashes, rng),
		splashes:      splashes,
		rng:           rng,
		viewport:      vp,
		clock:         NewLevelClock(0),
	}
}

// LoadLevel 加载关卡
//
// 清除场上全部障碍物，重置计时与生成进度。调度表非法时返回错误，
// 此时状态同样被重置，但不会生成任何障碍物。
//
// 参数：
//   - schedule: 关卡调度表（只读）
//   - levelID: 账本中的关卡键，如 "level_1"
func (s *ObstacleSpawnSystem) LoadLevel(schedule *config.LevelSchedule, levelID string) error {
	s.ClearAllObstacles()
	s.collision.Reset(s.viewport)

	s.schedule = nil
	s.levelID = levelID
	s.nextIndex = 0
	s.spawned = 0
	s.lastHits = nil
	s.clock.Reset(0)

	if err := schedule.Validate(); err != nil {
		log.Printf("[ObstacleSpawnSystem] Rejected level %s: %v", levelID, err)
		return fmt.Errorf("invalid schedule for %s: %w", levelID, err)
	}

	s.schedule = schedule
	s.clock.Reset(schedule.DurationMs)

	log.Printf("[ObstacleSpawnSystem] Loaded %s (%s): %d obstacle specs, speed %.0f",
		levelID, schedule.Name, len(schedule.Obstacles), schedule.ObstacleSpeed)
	return nil
}

// Tick 推进一帧
//
// 参数：
//   - deltaMs: 距上一帧的毫秒数
func (s *ObstacleSpawnSystem) Tick(deltaMs float64) {
	if s.schedule == nil {
		return
	}

	s.clock.Advance(deltaMs)

	// 同一帧可能有多条到点，按调度顺序全部生成
	for s.nextIndex < len(s.schedule.Obstacles) {
		spec := s.schedule.Obstacles[s.nextIndex]
		if !s.clock.Reached(spec.DelayMs) {
			break
		}
		s.spawnSpec(s.nextIndex, spec)
		s.nextIndex++
	}

	s.movement.Update(deltaMs)
	s.collision.Sync()
	s.retireOffscreen()
}

// spawnSpec 展开一条调度项并生成对应的障碍物
func (s *ObstacleSpawnSystem) spawnSpec(index int, spec config.ObstacleSpec) {
	speed := s.schedule.ObstacleSpeed
	if speed <= 0 {
		speed = config.DefaultObstacleSpeed
	}
	horizontalSpeed := spec.HorizontalSpeed
	if horizontalSpeed <= 0 {
		horizontalSpeed = config.DefaultHorizontalSpeed
	}
	nominalX, nominalHeight := spec.Nominal()

	for _, piece := range expandPattern(spec, s.viewport) {
		spawn := entities.ObstacleSpawn{
			Identity:      types.NewObstacleIdentity(index, spec.Pattern, piece.Slot, nominalX, nominalHeight),
			LevelID:       s.levelID,
			Rect:          piece.Rect,
			VerticalSpeed: speed,
		}
		if spec.Pattern.IsMoving() {
			spawn.Oscillating = true
			spawn.HorizontalSpeed = horizontalSpeed
			spawn.Direction = s.randomDirection()
			spawn.ViewportWidth = s.viewport.Width
		}

		var restorer entities.SplashRestorer
		if s.splashes != nil {
			restorer = s.splashes
		}
		id := entities.NewObstacleEntity(s.entityManager, spawn, restorer)
		s.collision.Track(id)
		s.active = append(s.active, id)
		s.spawned++

		log.Printf("[ObstacleSpawnSystem] Spawned %s at %.0fms (x=%.1f, %.0fx%.0f)",
			spawn.Identity.Key(), s.clock.Elapsed(), piece.Rect.CenterX, piece.Rect.Width, piece.Rect.Height)
	}
}

func (s *ObstacleSpawnSystem) randomDirection() float64 {
	if s.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// retireOffscreen 回收顶边已超出视口底部的障碍物
func (s *ObstacleSpawnSystem) retireOffscreen() {
	remaining := s.active[:0]
	for _, id := range s.active {
		rect, ok := obstacleRect(s.entityManager, id)
		if ok && rect.Top() <= s.viewport.Height {
			remaining = append(remaining, id)
			continue
		}
		s.destroy(id)
	}
	s.active = remaining
	s.entityManager.RemoveMarkedEntities()
}

// destroy 标记障碍物为已回收并删除，同时重试未落盘的溅痕
func (s *ObstacleSpawnSystem) destroy(id ecs.EntityID) {
	if obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id); ok {
		obstacle.State = components.ObstacleRetired
	}
	s.collision.Untrack(id)
	s.entityManager.DestroyEntity(id)

	if s.splashes != nil {
		s.splashes.Flush()
	}
}

// CheckCollisions 检测玩家与障碍物的碰撞
//
// 返回：
//   - bool: 任一球命中障碍物时返回 true
func (s *ObstacleSpawnSystem) CheckCollisions(probe collision.PlayerProbe) bool {
	s.lastHits = s.collision.Check(probe)
	return len(s.lastHits) > 0
}

// LastHits 最近一次 CheckCollisions 的命中详情
func (s *ObstacleSpawnSystem) LastHits() []ObstacleHit {
	return s.lastHits
}

// IsLevelComplete 全部调度项已生成且场上没有障碍物时为 true
// 未加载关卡时返回 false
func (s *ObstacleSpawnSystem) IsLevelComplete() bool {
	if s.schedule == nil {
		return false
	}
	return s.nextIndex >= len(s.schedule.Obstacles) && len(s.active) == 0
}

// ClearAllObstacles 立即删除场上全部障碍物
func (s *ObstacleSpawnSystem) ClearAllObstacles() {
	for _, id := range s.active {
		s.destroy(id)
	}
	s.active = nil
	s.entityManager.RemoveMarkedEntities()
}

// SetPosition 外部强制设置障碍物位置
// 往返运动的障碍物立即钳制到允许范围
func (s *ObstacleSpawnSystem) SetPosition(id ecs.EntityID, x, y float64) bool {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return false
	}
	pos.X, pos.Y = x, y
	if move, ok := ecs.GetComponent[*components.MovementComponent](s.entityManager, id); ok {
		ClampOscillation(pos, move)
	}
	s.collision.syncEntity(id)
	return true
}

// GetActiveObstacles 返回场上障碍物的只读快照，按生成顺序
func (s *ObstacleSpawnSystem) GetActiveObstacles() []ObstacleView {
	views := make([]ObstacleView, 0, len(s.active))
	for _, id := range s.active {
		if view, ok := newObstacleView(s.entityManager, id); ok {
			views = append(views, view)
		}
	}
	return views
}

// ActiveCount 场上障碍物数量
func (s *ObstacleSpawnSystem) ActiveCount() int {
	return len(s.active)
}

// SpawnedCount 本关已生成的障碍物数量
func (s *ObstacleSpawnSystem) SpawnedCount() int {
	return s.spawned
}

// Clock 关卡计时器
func (s *ObstacleSpawnSystem) Clock() *LevelClock {
	return s.clock
}

// LevelID 当前关卡键
func (s *ObstacleSpawnSystem) LevelID() string {
	return s.levelID
}

// Viewport 当前视口
func (s *ObstacleSpawnSystem) Viewport() config.Viewport {
	return s.viewport
}
