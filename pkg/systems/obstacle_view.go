package systems

import (
	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/types"
)

// ObstacleView 障碍物的只读快照，供渲染层使用
type ObstacleView struct {
	id       ecs.EntityID
	identity types.ObstacleIdentity
	bounds   collision.Rect
	kind     components.MovementKind
	splashes []types.SplashRecord
}

func newObstacleView(em *ecs.EntityManager, id ecs.EntityID) (ObstacleView, bool) {
	rect, ok := obstacleRect(em, id)
	if !ok {
		return ObstacleView{}, false
	}
	obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](em, id)
	if !ok {
		return ObstacleView{}, false
	}

	view := ObstacleView{
		id:       id,
		identity: obstacle.Identity,
		bounds:   rect,
	}
	if move, ok := ecs.GetComponent[*components.MovementComponent](em, id); ok {
		view.kind = move.Kind
	}
	if splash, ok := ecs.GetComponent[*components.SplashComponent](em, id); ok {
		view.splashes = make([]types.SplashRecord, len(splash.Splashes))
		copy(view.splashes, splash.Splashes)
	}
	return view, true
}

// ID 实体 ID
func (v ObstacleView) ID() ecs.EntityID { return v.id }

// Identity 障碍物身份
func (v ObstacleView) Identity() types.ObstacleIdentity { return v.identity }

// Bounds 当前矩形（视口像素）
func (v ObstacleView) Bounds() collision.Rect { return v.bounds }

// Movement 运动方式
func (v ObstacleView) Movement() components.MovementKind { return v.kind }

// SplashData 溅痕列表（副本）
func (v ObstacleView) SplashData() []types.SplashRecord { return v.splashes }

// SplashPosition 溅痕在世界坐标中的位置
// worldX = left + x*width，worldY = top + y*height
func (v ObstacleView) SplashPosition(record types.SplashRecord) collision.Vec2 {
	return v.bounds.FromRelative(record.X, record.Y)
}
