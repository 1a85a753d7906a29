package components

import "github.com/decker502/duet/pkg/types"

// ObstacleState 障碍物生命周期状态
type ObstacleState int

const (
	// ObstacleFalling 在场上下落，参与碰撞
	ObstacleFalling ObstacleState = iota
	// ObstacleRetired 已离开屏幕或被清除，等待删除
	ObstacleRetired
)

func (s ObstacleState) String() string {
	switch s {
	case ObstacleFalling:
		return "falling"
	case ObstacleRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// ObstacleComponent 障碍物标识与状态
type ObstacleComponent struct {
	Identity types.ObstacleIdentity
	LevelID  string // 所属关卡的存储键，如 "level_1"
	State    ObstacleState
}
