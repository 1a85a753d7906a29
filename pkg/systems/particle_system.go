package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/utils"
)

// 碰撞爆炸与通关庆祝的粒子数量
const (
	collisionBurstCount = 80
	collisionBlastCount = 60
	celebrationCount    = 50
)

// celebrationColors 通关庆祝粒子的颜色
var celebrationColors = []uint32{0x00ff00, 0x00ff88, 0x44ff44, 0xffffff}

// ParticleView 粒子当前帧的绘制参数
type ParticleView struct {
	Center collision.Vec2
	Radius float64
	Alpha  float64
	Color  uint32
}

// ParticleSystem 碰撞爆炸和通关庆祝效果
//
// 粒子是普通的 ECS 实体（ParticleComponent + LifetimeComponent），
// 与障碍物共用实体管理器但互不查询。到期删除由 LifetimeSystem 负责。
type ParticleSystem struct {
	entityManager *ecs.EntityManager
	lifetime      *LifetimeSystem
	rng           *rand.Rand
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(em *ecs.EntityManager, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		entityManager: em,
		lifetime:      NewLifetimeSystem(em),
		rng:           rng,
	}
}

// EmitCollisionBurst 在命中点生成爆炸
//
// 两圈粒子：
//   - 主爆炸：均匀分布的方向，飞出 50~300 像素
//   - 全屏冲击：飞到视口边缘之外
func (s *ParticleSystem) EmitCollisionBurst(at collision.Vec2, color uint32, vp config.Viewport) {
	for i := 0; i < collisionBurstCount; i++ {
		angle := float64(i) / collisionBurstCount * 2 * math.Pi
		distance := s.between(50, 300)
		s.spawn(components.ParticleComponent{
			StartX:   at.X,
			StartY:   at.Y,
			TargetX:  at.X + math.Cos(angle)*distance,
			TargetY:  at.Y + math.Sin(angle)*distance,
			Radius:   s.between(3, 12),
			EndScale: 0.1,
			Color:    color,
			Ease:     components.ParticleEaseCubic,
		}, s.between(500, 1200))
	}

	for i := 0; i < collisionBlastCount; i++ {
		angle := float64(i) / collisionBlastCount * 2 * math.Pi
		s.spawn(components.ParticleComponent{
			StartX:   at.X,
			StartY:   at.Y,
			TargetX:  at.X + math.Cos(angle)*vp.Width,
			TargetY:  at.Y + math.Sin(angle)*vp.Height,
			Radius:   s.between(2, 8),
			EndScale: 0.2,
			Color:    color,
			Ease:     components.ParticleEaseQuad,
		}, s.between(800, 1500))
	}
}

// EmitCelebration 通关时在玩家位置向上飘散的粒子
func (s *ParticleSystem) EmitCelebration(at collision.Vec2) {
	for i := 0; i < celebrationCount; i++ {
		x := at.X + s.between(-30, 30)
		y := at.Y + s.between(-30, 30)
		s.spawn(components.ParticleComponent{
			StartX:   x,
			StartY:   y,
			TargetX:  x + s.between(-50, 50),
			TargetY:  y - s.between(100, 200),
			Radius:   s.between(2, 5),
			EndScale: 0.1,
			Color:    celebrationColors[s.rng.Intn(len(celebrationColors))],
			Ease:     components.ParticleEaseQuad,
		}, s.between(1000, 1500))
	}
}

func (s *ParticleSystem) spawn(particle components.ParticleComponent, durationMs float64) {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &particle)
	ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{MaxMs: durationMs})
}

func (s *ParticleSystem) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Update 推进粒子寿命并移除到期的粒子
func (s *ParticleSystem) Update(deltaMs float64) {
	if s.lifetime.Update(deltaMs) > 0 {
		s.entityManager.RemoveMarkedEntities()
	}
}

// Count 存活的粒子数
func (s *ParticleSystem) Count() int {
	return len(ecs.GetEntitiesWith2[*components.ParticleComponent, *components.LifetimeComponent](s.entityManager))
}

// Clear 删除全部粒子
func (s *ParticleSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}

// Particles 返回所有粒子当前帧的位置、大小与透明度
func (s *ParticleSystem) Particles() []ParticleView {
	ids := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.LifetimeComponent](s.entityManager)
	views := make([]ParticleView, 0, len(ids))
	for _, id := range ids {
		particle, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		views = append(views, particleAt(particle, lifetime.Progress()))
	}
	return views
}

// particleAt 按进度计算粒子的绘制参数
func particleAt(p *components.ParticleComponent, progress float64) ParticleView {
	eased := utils.EaseOutQuad(progress)
	if p.Ease == components.ParticleEaseCubic {
		eased = utils.EaseOutCubic(progress)
	}
	return ParticleView{
		Center: collision.Vec2{
			X: utils.Lerp(p.StartX, p.TargetX, eased),
			Y: utils.Lerp(p.StartY, p.TargetY, eased),
		},
		Radius: p.Radius * utils.Lerp(1, p.EndScale, eased),
		Alpha:  1 - eased,
		Color:  p.Color,
	}
}
