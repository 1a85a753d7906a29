package config

import "math"

// Viewport 视口上下文
// 由场景层在关卡开始时提供，核心逻辑不直接读取窗口尺寸
type Viewport struct {
	Width   float64
	Height  float64
	CenterX float64
}

// NewViewport 根据宽高创建视口，CenterX 取水平中心
func NewViewport(width, height float64) Viewport {
	return Viewport{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
	}
}

// Scale 相对参考分辨率的缩放因子 min(w/1920, h/1080)
func (v Viewport) Scale() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 0
	}
	return math.Min(v.Width/ReferenceWidth, v.Height/ReferenceHeight)
}

// DoubleGap double 形状的缺口宽度
func (v Viewport) DoubleGap() float64 {
	return math.Max(DoubleGapBase*v.Scale(), DoubleGapMin)
}

// TripleGap triple 形状的缺口宽度
func (v Viewport) TripleGap() float64 {
	return math.Max(TripleGapBase*v.Scale(), TripleGapMin)
}

// MinFlank double 形状单侧块的最小宽度
func (v Viewport) MinFlank() float64 {
	return MinFlankWidth * v.Scale()
}

// OrbitRadius 玩家旋转半径
func (v Viewport) OrbitRadius() float64 {
	return math.Max(OrbitRadiusBase*v.Scale(), OrbitRadiusMin)
}

// OrbitCenterY 玩家旋转中心的 y 坐标
func (v Viewport) OrbitCenterY() float64 {
	return v.Height - math.Max(OrbitBottomOffsetBase*v.Scale(), OrbitBottomOffsetMin)
}
