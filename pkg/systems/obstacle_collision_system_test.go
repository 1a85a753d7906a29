package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/entities"
	"github.com/decker502/duet/pkg/types"
)

func newTestCollisionSystem(store SplashStore) (*ecs.EntityManager, *ObstacleCollisionSystem) {
	em := ecs.NewEntityManager()
	vp := config.NewViewport(1280, 720)
	return em, NewObstacleCollisionSystem(em, vp, store, rand.New(rand.NewSource(3)))
}

func addObstacle(em *ecs.EntityManager, cs *ObstacleCollisionSystem, index int, rect collision.Rect) ecs.EntityID {
	id := entities.NewObstacleEntity(em, entities.ObstacleSpawn{
		Identity: types.NewObstacleIdentity(index, types.PatternSingle, types.SlotSingle, rect.CenterX, rect.Height),
		LevelID:  "level_1",
		Rect:     rect,
	}, nil)
	cs.Track(id)
	return id
}

func probeAt(first, second collision.Vec2) collision.PlayerProbe {
	return collision.NewPlayerProbe(
		collision.Orb{Center: first, Color: config.RedOrbColor},
		collision.Orb{Center: second, Color: config.BlueOrbColor},
		15,
	)
}

// TestCollisionSystem_CenterInside 球心与矩形中心重合
func TestCollisionSystem_CenterInside(t *testing.T) {
	store := newMemorySplashStore()
	em, cs := newTestCollisionSystem(store)
	id := addObstacle(em, cs, 0, collision.NewRect(100, 100, 40, 40))

	hits := cs.Check(probeAt(collision.Vec2{X: 100, Y: 100}, collision.Vec2{X: 1000, Y: 600}))
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}

	hit := hits[0]
	if hit.Entity != id || hit.OrbIndex != 0 {
		t.Errorf("hit entity/orb: got %v/%d", hit.Entity, hit.OrbIndex)
	}
	if d := hit.Hit.Contact.Dist(collision.Vec2{X: 100, Y: 100}); math.Abs(d-20) > 1e-9 {
		t.Errorf("contact distance: got %v, want 20", d)
	}

	if hit.Splash.Size < config.SplashMinSize || hit.Splash.Size > config.SplashMaxSize {
		t.Errorf("splash size out of range: %v", hit.Splash.Size)
	}
	if hit.Splash.Alpha < config.SplashMinAlpha || hit.Splash.Alpha > config.SplashMaxAlpha {
		t.Errorf("splash alpha out of range: %v", hit.Splash.Alpha)
	}
	if hit.Splash.Color != config.RedOrbColor {
		t.Errorf("splash color: got %x", hit.Splash.Color)
	}

	splash, _ := ecs.GetComponent[*components.SplashComponent](em, id)
	if len(splash.Splashes) != 1 || splash.Splashes[0] != hit.Splash {
		t.Errorf("entity splashes: got %v", splash.Splashes)
	}
	if store.appends != 1 {
		t.Errorf("ledger appends: got %d, want 1", store.appends)
	}
}

// TestCollisionSystem_ObstacleAboveViewport 部分在视口上方的障碍物也能被检测到
func TestCollisionSystem_ObstacleAboveViewport(t *testing.T) {
	em, cs := newTestCollisionSystem(nil)
	addObstacle(em, cs, 0, collision.NewRect(300, -30, 200, 100))

	hits := cs.Check(probeAt(collision.Vec2{X: 300, Y: 25}, collision.Vec2{X: 1000, Y: 600}))
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Hit.Edge != collision.EdgeBottom {
		t.Errorf("edge: got %v, want bottom", hits[0].Hit.Edge)
	}
	if hits[0].Splash.Y != 1 {
		t.Errorf("splash on bottom edge should have relative y 1, got %v", hits[0].Splash.Y)
	}
}

// TestCollisionSystem_OneHitPerOrb 每个球每帧只记录第一个障碍物
func TestCollisionSystem_OneHitPerOrb(t *testing.T) {
	store := newMemorySplashStore()
	em, cs := newTestCollisionSystem(store)
	first := addObstacle(em, cs, 0, collision.NewRect(400, 300, 100, 100))
	addObstacle(em, cs, 1, collision.NewRect(400, 300, 60, 60))
	third := addObstacle(em, cs, 2, collision.NewRect(800, 300, 100, 100))

	hits := cs.Check(probeAt(collision.Vec2{X: 400, Y: 300}, collision.Vec2{X: 800, Y: 300}))
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Entity != first || hits[0].OrbIndex != 0 {
		t.Errorf("red orb should hit the earliest obstacle, got %v", hits[0].Entity)
	}
	if hits[1].Entity != third || hits[1].OrbIndex != 1 {
		t.Errorf("blue orb should hit the third obstacle, got %v", hits[1].Entity)
	}
	if store.appends != 2 {
		t.Errorf("ledger appends: got %d, want 2", store.appends)
	}
}

// TestCollisionSystem_Miss 接近但不接触
func TestCollisionSystem_Miss(t *testing.T) {
	em, cs := newTestCollisionSystem(nil)
	addObstacle(em, cs, 0, collision.NewRect(400, 300, 100, 100))

	// 角点 (450, 350)，球心距离 sqrt(2)*12 ≈ 16.97 > 15
	hits := cs.Check(probeAt(collision.Vec2{X: 462, Y: 362}, collision.Vec2{X: 1000, Y: 600}))
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

// TestCollisionSystem_FollowsMovement 障碍物移动后同步到粗筛空间
func TestCollisionSystem_FollowsMovement(t *testing.T) {
	em, cs := newTestCollisionSystem(nil)
	id := addObstacle(em, cs, 0, collision.NewRect(200, 100, 80, 80))

	orb := collision.Vec2{X: 200, Y: 500}
	if len(cs.Check(probeAt(orb, collision.Vec2{X: 1000, Y: 50}))) != 0 {
		t.Fatal("obstacle is far above the orb")
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	pos.Y = 480
	if len(cs.Check(probeAt(orb, collision.Vec2{X: 1000, Y: 50}))) != 1 {
		t.Fatal("obstacle moved onto the orb, expected a hit")
	}

	cs.Untrack(id)
	if len(cs.Check(probeAt(orb, collision.Vec2{X: 1000, Y: 50}))) != 0 {
		t.Error("untracked obstacle should not be reported")
	}
}

// TestCollisionSystem_SubPixelOverlapAcrossCells 不足 1 像素的重叠落在网格边界两侧时仍然命中
func TestCollisionSystem_SubPixelOverlapAcrossCells(t *testing.T) {
	const overlap = 0.5
	em, cs := newTestCollisionSystem(nil)
	far := collision.Vec2{X: 1200, Y: 700}

	tests := []struct {
		name string
		orb  func(rect collision.Rect) collision.Vec2
	}{
		{"left edge", func(r collision.Rect) collision.Vec2 {
			return collision.Vec2{X: r.Left() - 15 + overlap, Y: r.CenterY}
		}},
		{"right edge", func(r collision.Rect) collision.Vec2 {
			return collision.Vec2{X: r.Right() + 15 - overlap, Y: r.CenterY}
		}},
		{"top edge", func(r collision.Rect) collision.Vec2 {
			return collision.Vec2{X: r.CenterX, Y: r.Top() - 15 + overlap}
		}},
		{"bottom edge", func(r collision.Rect) collision.Vec2 {
			return collision.Vec2{X: r.CenterX, Y: r.Bottom() + 15 - overlap}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 400; i++ {
				offset := float64(i) * 0.37
				rect := collision.NewRect(250+offset, 250+offset, 60, 60)
				orb := tt.orb(rect)

				if _, ok := collision.CheckCollision(orb, 15, rect); !ok {
					t.Fatalf("resolver should report a hit for rect.Left=%.3f orb=%+v", rect.Left(), orb)
				}

				id := addObstacle(em, cs, i, rect)
				hits := cs.Check(probeAt(orb, far))
				cs.Untrack(id)

				if len(hits) != 1 || hits[0].Entity != id {
					t.Fatalf("broadphase dropped hit: rect.Left=%.3f rect.Top=%.3f orb=%+v", rect.Left(), rect.Top(), orb)
				}
			}
		})
	}
}
