package systems

import (
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/ecs"
)

// LifetimeSystem 管理限时实体
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进所有限时实体，到期的标记删除
// 标记的实体在调用方执行 RemoveMarkedEntities 时才真正移除
//
// 返回：
//   - int: 本帧到期的实体数
func (s *LifetimeSystem) Update(deltaMs float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.ElapsedMs += deltaMs
		if lifetime.ElapsedMs >= lifetime.MaxMs {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
			expired++
		}
	}
	return expired
}
