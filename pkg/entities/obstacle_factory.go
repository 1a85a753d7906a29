package entities

import (
	"math"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/types"
)

// SplashRestorer 障碍物创建时恢复历史溅痕的来源
// 由 game.SplashLedger 实现
type SplashRestorer interface {
	Restore(levelID string, identity types.ObstacleIdentity) []types.SplashRecord
}

// ObstacleSpawn 创建障碍物所需的全部参数
type ObstacleSpawn struct {
	Identity types.ObstacleIdentity
	LevelID  string
	Rect     collision.Rect // 生成时的矩形（视口像素）

	VerticalSpeed float64

	// 以下字段仅对往返运动的障碍物有效
	Oscillating     bool
	HorizontalSpeed float64
	Direction       float64 // +1 或 -1
	ViewportWidth   float64
}

// NewObstacleEntity 创建一个障碍物实体
//
// 参数：
//   - em: EntityManager 实例
//   - spawn: 障碍物参数
//   - splashes: 溅痕来源，可为 nil（不恢复溅痕）
//
// 返回：
//   - ecs.EntityID: 新实体 ID
func NewObstacleEntity(em *ecs.EntityManager, spawn ObstacleSpawn, splashes SplashRestorer) ecs.EntityID {
	id := em.CreateEntity()

	movement := &components.MovementComponent{
		Kind:          components.MovementStatic,
		VerticalSpeed: spawn.VerticalSpeed,
	}
	x := spawn.Rect.CenterX

	if spawn.Oscillating {
		minX, maxX := OscillationBounds(spawn.Rect.Width, spawn.ViewportWidth)
		direction := spawn.Direction
		if direction >= 0 {
			direction = 1
		} else {
			direction = -1
		}

		movement.Kind = components.MovementOscillating
		movement.HorizontalSpeed = spawn.HorizontalSpeed
		movement.Direction = direction
		movement.MinX = minX
		movement.MaxX = maxX

		// 初始位置也必须在范围内
		x = math.Max(minX, math.Min(maxX, x))
	}

	ecs.AddComponent(em, id, &components.PositionComponent{
		X: x,
		Y: spawn.Rect.CenterY,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  spawn.Rect.Width,
		Height: spawn.Rect.Height,
	})
	ecs.AddComponent(em, id, movement)
	ecs.AddComponent(em, id, &components.ObstacleComponent{
		Identity: spawn.Identity,
		LevelID:  spawn.LevelID,
		State:    components.ObstacleFalling,
	})

	var restored []types.SplashRecord
	if splashes != nil {
		restored = splashes.Restore(spawn.LevelID, spawn.Identity)
	}
	if restored == nil {
		restored = []types.SplashRecord{}
	}
	ecs.AddComponent(em, id, &components.SplashComponent{Splashes: restored})

	return id
}

// OscillationBounds 往返运动的中心 x 范围 [width/2, viewportWidth-width/2]
// 障碍物比视口还宽时退化为视口中心
func OscillationBounds(width, viewportWidth float64) (float64, float64) {
	minX := width / 2
	maxX := viewportWidth - width/2
	if maxX < minX {
		mid := viewportWidth / 2
		return mid, mid
	}
	return minX, maxX
}
