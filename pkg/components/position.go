package components

// PositionComponent 实体位置（像素，矩形中心）
type PositionComponent struct {
	X float64
	Y float64
}
