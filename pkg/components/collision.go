package components

// CollisionComponent 定义实体的碰撞边界框
// 边界框中心与 PositionComponent 对齐
type CollisionComponent struct {
	Width  float64 // 碰撞盒宽度（像素）
	Height float64 // 碰撞盒高度（像素）
}
