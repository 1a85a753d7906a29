package collision

// Orb 玩家的一个球
type Orb struct {
	Center Vec2
	Color  uint32 // 0xRRGGBB，命中时作为溅痕颜色
}

// PlayerProbe 每帧交给碰撞检测的玩家快照
//
// 两个球位于旋转直径的两端，共享同一半径。
// 旋转状态由输入层维护，这里只关心结果坐标。
type PlayerProbe struct {
	Orbs   [2]Orb
	Radius float64
}

// NewPlayerProbe 创建玩家快照
func NewPlayerProbe(first, second Orb, radius float64) PlayerProbe {
	return PlayerProbe{
		Orbs:   [2]Orb{first, second},
		Radius: radius,
	}
}
