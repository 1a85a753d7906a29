package entities

import (
	"math"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/config"
)

// RotationIntent 玩家旋转意图
type RotationIntent int

const (
	RotateNone RotationIntent = iota
	RotateLeft
	RotateRight
)

// Player 两个轨道球组成的玩家
//
// 红球位于 angle，蓝球位于 angle+π，两球始终在同一直径两端。
// 玩家不是 ECS 实体：它只有一份，且不参与障碍物查询。
type Player struct {
	CenterX float64
	CenterY float64
	Radius  float64 // 旋转半径

	OrbSize       float64 // 球的碰撞半径
	RotationSpeed float64 // 弧度/毫秒

	angle  float64
	intent RotationIntent
}

// NewPlayer 根据视口创建玩家
func NewPlayer(vp config.Viewport) *Player {
	return &Player{
		CenterX:       vp.CenterX,
		CenterY:       vp.OrbitCenterY(),
		Radius:        vp.OrbitRadius(),
		OrbSize:       config.OrbSize,
		RotationSpeed: config.RotationSpeed,
	}
}

// RotateLeft 开始逆时针旋转
func (p *Player) RotateLeft() { p.intent = RotateLeft }

// RotateRight 开始顺时针旋转
func (p *Player) RotateRight() { p.intent = RotateRight }

// Stop 停止旋转
func (p *Player) Stop() { p.intent = RotateNone }

// Intent 当前旋转意图
func (p *Player) Intent() RotationIntent { return p.intent }

// Angle 当前角度，范围 (-2π, 2π)
func (p *Player) Angle() float64 { return p.angle }

// Update 按旋转意图推进角度
//
// 参数：
//   - deltaMs: 距上一帧的毫秒数
func (p *Player) Update(deltaMs float64) {
	switch p.intent {
	case RotateLeft:
		p.angle -= p.RotationSpeed * deltaMs
	case RotateRight:
		p.angle += p.RotationSpeed * deltaMs
	}
	p.angle = math.Mod(p.angle, 2*math.Pi)
}

// Reset 回到初始角度并停止旋转
func (p *Player) Reset() {
	p.angle = 0
	p.intent = RotateNone
}

// RedCenter 红球中心
func (p *Player) RedCenter() collision.Vec2 {
	return p.orbAt(p.angle)
}

// BlueCenter 蓝球中心
func (p *Player) BlueCenter() collision.Vec2 {
	return p.orbAt(p.angle + math.Pi)
}

// Probe 生成本帧的碰撞探针（红球在前）
func (p *Player) Probe() collision.PlayerProbe {
	return collision.NewPlayerProbe(
		collision.Orb{Center: p.RedCenter(), Color: config.RedOrbColor},
		collision.Orb{Center: p.BlueCenter(), Color: config.BlueOrbColor},
		p.OrbSize,
	)
}

func (p *Player) orbAt(angle float64) collision.Vec2 {
	return collision.Vec2{
		X: p.CenterX + math.Cos(angle)*p.Radius,
		Y: p.CenterY + math.Sin(angle)*p.Radius,
	}
}
