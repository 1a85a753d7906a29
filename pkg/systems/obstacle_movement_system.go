package systems

import (
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/ecs"
)

// ObstacleMovementSystem 推进障碍物的位置
//
// 运动方式在创建时确定，之后不再改变：
//   - MovementStatic: 只竖直下落
//   - MovementOscillating: 下落的同时水平往返，碰到边界时钳制并反向
type ObstacleMovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewObstacleMovementSystem 创建障碍物移动系统
func NewObstacleMovementSystem(em *ecs.EntityManager) *ObstacleMovementSystem {
	return &ObstacleMovementSystem{
		entityManager: em,
	}
}

// Update 更新所有下落中的障碍物
//
// 参数：
//   - deltaMs: 距上一帧的毫秒数
func (s *ObstacleMovementSystem) Update(deltaMs float64) {
	entities := ecs.GetEntitiesWith3[
		*components.ObstacleComponent,
		*components.PositionComponent,
		*components.MovementComponent,
	](s.entityManager)

	for _, id := range entities {
		obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		if !ok || obstacle.State != components.ObstacleFalling {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		move, ok := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)
		if !ok {
			continue
		}

		Step(pos, move, deltaMs)
	}
}

// Step 按运动方式推进一个障碍物
// 速度单位为像素/秒，deltaMs 为毫秒
func Step(pos *components.PositionComponent, move *components.MovementComponent, deltaMs float64) {
	dt := deltaMs / 1000

	switch move.Kind {
	case components.MovementStatic:
		pos.Y += move.VerticalSpeed * dt

	case components.MovementOscillating:
		pos.Y += move.VerticalSpeed * dt
		pos.X += move.HorizontalSpeed * move.Direction * dt
		ClampOscillation(pos, move)
	}
}

// ClampOscillation 把往返障碍物的 x 钳制到 [MinX, MaxX]
// 碰到左边界时方向改为向右，碰到右边界时改为向左
func ClampOscillation(pos *components.PositionComponent, move *components.MovementComponent) {
	if move.Kind != components.MovementOscillating {
		return
	}

	if pos.X <= move.MinX {
		pos.X = move.MinX
		move.Direction = 1
	} else if pos.X >= move.MaxX {
		pos.X = move.MaxX
		move.Direction = -1
	}
}
