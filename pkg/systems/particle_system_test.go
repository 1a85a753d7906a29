package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/ecs"
)

func TestParticleSystem_CollisionBurst(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, rand.New(rand.NewSource(5)))
	vp := config.NewViewport(1280, 720)
	at := collision.Vec2{X: 640, Y: 500}

	ps.EmitCollisionBurst(at, config.RedOrbColor, vp)

	if got := ps.Count(); got != collisionBurstCount+collisionBlastCount {
		t.Fatalf("Count = %d, want %d", got, collisionBurstCount+collisionBlastCount)
	}

	for _, p := range ps.Particles() {
		if p.Center != at {
			t.Errorf("particle should start at the hit point, got %+v", p.Center)
		}
		if p.Alpha != 1 {
			t.Errorf("initial alpha = %v, want 1", p.Alpha)
		}
		if p.Color != config.RedOrbColor {
			t.Errorf("color = %06x, want %06x", p.Color, config.RedOrbColor)
		}
	}

	// 最长寿命 1500ms
	ps.Update(1500)
	if got := ps.Count(); got != 0 {
		t.Errorf("Count after 1500ms = %d, want 0", got)
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", em.EntityCount())
	}
}

func TestParticleSystem_Celebration(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, rand.New(rand.NewSource(9)))
	at := collision.Vec2{X: 300, Y: 400}

	ps.EmitCelebration(at)
	if got := ps.Count(); got != celebrationCount {
		t.Fatalf("Count = %d, want %d", got, celebrationCount)
	}

	ps.Update(500)
	for _, p := range ps.Particles() {
		if p.Center.Y >= at.Y+30 {
			t.Errorf("celebration particle should rise, got y=%v", p.Center.Y)
		}
		if p.Alpha <= 0 || p.Alpha >= 1 {
			t.Errorf("alpha %v should be fading", p.Alpha)
		}
	}

	ps.Clear()
	if got := ps.Count(); got != 0 {
		t.Errorf("Count after Clear = %d, want 0", got)
	}
}

func TestParticleAt(t *testing.T) {
	p := &components.ParticleComponent{
		StartX: 0, StartY: 0,
		TargetX: 100, TargetY: -200,
		Radius: 10, EndScale: 0.1,
		Ease: components.ParticleEaseQuad,
	}

	start := particleAt(p, 0)
	if start.Center != (collision.Vec2{}) || start.Radius != 10 || start.Alpha != 1 {
		t.Errorf("start = %+v", start)
	}

	end := particleAt(p, 1)
	if end.Center != (collision.Vec2{X: 100, Y: -200}) {
		t.Errorf("end center = %+v", end.Center)
	}
	if math.Abs(end.Radius-1) > 1e-9 || end.Alpha != 0 {
		t.Errorf("end = %+v, want radius 1 alpha 0", end)
	}

	// 三次方缓出比二次方更早接近终点
	p.Ease = components.ParticleEaseCubic
	cubic := particleAt(p, 0.5)
	p.Ease = components.ParticleEaseQuad
	quad := particleAt(p, 0.5)
	if cubic.Center.X <= quad.Center.X {
		t.Errorf("cubic x %v should lead quad x %v", cubic.Center.X, quad.Center.X)
	}
}
