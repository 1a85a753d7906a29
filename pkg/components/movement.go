package components

// MovementKind 障碍物运动方式
type MovementKind int

const (
	// MovementStatic 只竖直下落
	MovementStatic MovementKind = iota
	// MovementOscillating 下落同时在 [MinX, MaxX] 内水平往返
	MovementOscillating
)

func (k MovementKind) String() string {
	switch k {
	case MovementStatic:
		return "static"
	case MovementOscillating:
		return "oscillating"
	default:
		return "unknown"
	}
}

// MovementComponent 障碍物运动参数
//
// Kind 为 MovementStatic 时只使用 VerticalSpeed；
// 水平相关字段只对 MovementOscillating 有意义。
type MovementComponent struct {
	Kind MovementKind

	VerticalSpeed   float64 // 像素/秒，向下为正
	HorizontalSpeed float64 // 像素/秒
	Direction       float64 // +1 向右，-1 向左

	// 中心 X 的允许范围：[Width/2, ViewportWidth-Width/2]
	MinX float64
	MaxX float64
}
