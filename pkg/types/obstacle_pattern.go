// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// ObstaclePattern 定义关卡中一条障碍物配置的形状类别
// 一条配置会被展开为 1~3 个具体矩形
type ObstaclePattern string

const (
	// PatternSingle 单个障碍物
	PatternSingle ObstaclePattern = "single"
	// PatternDouble 中间留缺口的左右两块
	PatternDouble ObstaclePattern = "double"
	// PatternTriple 围绕屏幕中心的三块
	PatternTriple ObstaclePattern = "triple"
	// PatternMovingSingle 左右摆动的单个障碍物
	PatternMovingSingle ObstaclePattern = "moving-single"
	// PatternMovingDouble 左右摆动的两块
	PatternMovingDouble ObstaclePattern = "moving-double"
)

// AllPatterns 返回全部合法的障碍物形状
func AllPatterns() []ObstaclePattern {
	return []ObstaclePattern{
		PatternSingle,
		PatternDouble,
		PatternTriple,
		PatternMovingSingle,
		PatternMovingDouble,
	}
}

// IsValid 检查形状是否为已知类别
func (p ObstaclePattern) IsValid() bool {
	switch p {
	case PatternSingle, PatternDouble, PatternTriple, PatternMovingSingle, PatternMovingDouble:
		return true
	default:
		return false
	}
}

// IsMoving 是否使用水平摆动的运动方式
func (p ObstaclePattern) IsMoving() bool {
	return p == PatternMovingSingle || p == PatternMovingDouble
}

// Geometry 返回决定几何展开方式的基础形状
// moving-single / moving-double 与 single / double 几何相同
func (p ObstaclePattern) Geometry() ObstaclePattern {
	switch p {
	case PatternMovingSingle:
		return PatternSingle
	case PatternMovingDouble:
		return PatternDouble
	default:
		return p
	}
}

// ObstacleSlot 表示展开后矩形在形状中的位置
type ObstacleSlot string

const (
	SlotSingle ObstacleSlot = "single"
	SlotLeft   ObstacleSlot = "left"
	SlotCenter ObstacleSlot = "center"
	SlotRight  ObstacleSlot = "right"
)
