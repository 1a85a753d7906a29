package systems

import (
	"math"
	"math/rand"
	"sort"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/types"
	"github.com/solarlune/resolv"
)

// resolv 空间中的标签
const (
	tagObstacle = "obstacle"
	tagOrb      = "orb"
)

// broadphaseCellSize resolv 空间的网格尺寸（像素）
const broadphaseCellSize = 32

// broadphasePadding 粗筛查询框每边的放大量（像素）
const broadphasePadding = 1.0

// ObstacleHit 一次命中
type ObstacleHit struct {
	Entity   ecs.EntityID
	OrbIndex int // 0 红球，1 蓝球
	Orb      collision.Orb
	Hit      collision.Hit
	Splash   types.SplashRecord
}

// ObstacleCollisionSystem 玩家与障碍物的碰撞检测
//
// 两阶段：
//  1. resolv.Space 网格粗筛出与球所在网格相交的障碍物
//  2. collision.CheckCollision 做精确的圆-矩形检测并计算接触点
//
// 障碍物生成在视口上方，resolv 会忽略空间以外的网格，
// 所以空间四周各留出一圈边距，世界坐标加上边距后再写入空间。
type ObstacleCollisionSystem struct {
	entityManager *ecs.EntityManager
	splashes      SplashStore
	rng           *rand.Rand

	space   *resolv.Space
	marginX float64
	marginY float64
	orbs    [2]*resolv.Object
}

// NewObstacleCollisionSystem 创建碰撞系统
//
// 参数：
//   - em: EntityManager 实例
//   - vp: 视口，决定 resolv 空间大小
//   - splashes: 溅痕账本，可为 nil
//   - rng: 溅痕尺寸与透明度的随机源
func NewObstacleCollisionSystem(em *ecs.EntityManager, vp config.Viewport, splashes SplashStore, rng *rand.Rand) *ObstacleCollisionSystem {
	s := &ObstacleCollisionSystem{
		entityManager: em,
		splashes:      splashes,
		rng:           rng,
	}
	s.Reset(vp)
	return s
}

// Reset 按视口重建 resolv 空间，已登记的障碍物全部丢弃
func (s *ObstacleCollisionSystem) Reset(vp config.Viewport) {
	s.marginX = math.Max(vp.Width/2, broadphaseCellSize)
	s.marginY = math.Max(vp.Height, broadphaseCellSize)

	width := int(math.Ceil(vp.Width + 2*s.marginX))
	height := int(math.Ceil(vp.Height + 2*s.marginY))
	s.space = resolv.NewSpace(width, height, broadphaseCellSize, broadphaseCellSize)

	for i := range s.orbs {
		s.orbs[i] = resolv.NewObject(0, 0, 1, 1, tagOrb)
		s.space.Add(s.orbs[i])
	}

	// 旧空间中的代理对象已失效
	for _, id := range ecs.GetEntitiesWith1[*components.BroadphaseComponent](s.entityManager) {
		ecs.RemoveComponent[*components.BroadphaseComponent](s.entityManager, id)
	}
}

// Track 为障碍物创建 resolv 代理对象并加入空间
func (s *ObstacleCollisionSystem) Track(id ecs.EntityID) {
	rect, ok := obstacleRect(s.entityManager, id)
	if !ok {
		return
	}

	left, top := s.toSpace(rect.Left(), rect.Top())
	obj := resolv.NewObject(left, top, math.Max(rect.Width, 1), math.Max(rect.Height, 1), tagObstacle)
	obj.Data = id
	s.space.Add(obj)

	ecs.AddComponent(s.entityManager, id, &components.BroadphaseComponent{Object: obj})
}

// Untrack 把障碍物移出空间
func (s *ObstacleCollisionSystem) Untrack(id ecs.EntityID) {
	bp, ok := ecs.GetComponent[*components.BroadphaseComponent](s.entityManager, id)
	if !ok {
		return
	}
	if bp.Object != nil {
		s.space.Remove(bp.Object)
	}
	ecs.RemoveComponent[*components.BroadphaseComponent](s.entityManager, id)
}

// Sync 把障碍物的当前位置同步到 resolv 空间
func (s *ObstacleCollisionSystem) Sync() {
	for _, id := range ecs.GetEntitiesWith1[*components.BroadphaseComponent](s.entityManager) {
		s.syncEntity(id)
	}
}

func (s *ObstacleCollisionSystem) syncEntity(id ecs.EntityID) {
	bp, ok := ecs.GetComponent[*components.BroadphaseComponent](s.entityManager, id)
	if !ok || bp.Object == nil {
		return
	}
	rect, ok := obstacleRect(s.entityManager, id)
	if !ok {
		return
	}

	bp.Object.Position.X, bp.Object.Position.Y = s.toSpace(rect.Left(), rect.Top())
	bp.Object.Update()
}

// Candidates 返回与圆所在网格相交的障碍物，按生成顺序排列
//
// resolv 按 Position+Size-1 计算对象覆盖的最后一个网格，
// 不足 1 像素的重叠可能落在相邻网格里，所以查询框四周各放大 broadphasePadding。
func (s *ObstacleCollisionSystem) Candidates(orbIndex int, center collision.Vec2, radius float64) []ecs.EntityID {
	query := s.orbs[orbIndex%len(s.orbs)]
	query.Position.X, query.Position.Y = s.toSpace(center.X-radius-broadphasePadding, center.Y-radius-broadphasePadding)
	query.Size.X = math.Max(2*radius, 1) + 2*broadphasePadding
	query.Size.Y = math.Max(2*radius, 1) + 2*broadphasePadding
	query.Update()

	col := query.Check(0, 0, tagObstacle)
	if col == nil {
		return nil
	}

	seen := make(map[ecs.EntityID]bool, len(col.Objects))
	ids := make([]ecs.EntityID, 0, len(col.Objects))
	for _, obj := range col.Objects {
		id, ok := obj.Data.(ecs.EntityID)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	// 实体 ID 单调递增，即生成顺序
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Check 检测玩家两个球与所有下落中障碍物的碰撞
//
// 两个球分别检测；每个球每帧最多记录一次命中（按生成顺序的第一个障碍物）。
// 命中时在障碍物上追加溅痕并写入账本。
//
// 返回：
//   - []ObstacleHit: 本帧的命中，红球在前
func (s *ObstacleCollisionSystem) Check(probe collision.PlayerProbe) []ObstacleHit {
	s.Sync()

	var hits []ObstacleHit
	for i, orb := range probe.Orbs {
		for _, id := range s.Candidates(i, orb.Center, probe.Radius) {
			obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
			if !ok || obstacle.State != components.ObstacleFalling {
				continue
			}
			rect, ok := obstacleRect(s.entityManager, id)
			if !ok {
				continue
			}

			hit, ok := collision.CheckCollision(orb.Center, probe.Radius, rect)
			if !ok {
				continue
			}

			record := s.recordSplash(id, obstacle, rect, hit.Contact, orb.Color)
			hits = append(hits, ObstacleHit{
				Entity:   id,
				OrbIndex: i,
				Orb:      orb,
				Hit:      hit,
				Splash:   record,
			})
			break
		}
	}
	return hits
}

// recordSplash 把接触点换算为相对坐标，追加到障碍物并写入账本
func (s *ObstacleCollisionSystem) recordSplash(id ecs.EntityID, obstacle *components.ObstacleComponent, rect collision.Rect, contact collision.Vec2, color uint32) types.SplashRecord {
	relX, relY := rect.ToRelative(contact)
	record := types.SplashRecord{
		X:     relX,
		Y:     relY,
		Color: color,
		Size:  config.SplashMinSize + s.rng.Float64()*(config.SplashMaxSize-config.SplashMinSize),
		Alpha: config.SplashMinAlpha + s.rng.Float64()*(config.SplashMaxAlpha-config.SplashMinAlpha),
	}

	if splash, ok := ecs.GetComponent[*components.SplashComponent](s.entityManager, id); ok {
		splash.Splashes = append(splash.Splashes, record)
	}
	if s.splashes != nil {
		s.splashes.Append(obstacle.LevelID, obstacle.Identity, record)
	}
	return record
}

func (s *ObstacleCollisionSystem) toSpace(x, y float64) (float64, float64) {
	return x + s.marginX, y + s.marginY
}

// obstacleRect 由位置与碰撞组件组成障碍物的当前矩形
func obstacleRect(em *ecs.EntityManager, id ecs.EntityID) (collision.Rect, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return collision.Rect{}, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return collision.Rect{}, false
	}
	return collision.NewRect(pos.X, pos.Y, col.Width, col.Height), true
}
