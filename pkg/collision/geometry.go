// Package collision 提供双球玩家与轴对齐矩形障碍物之间的精确碰撞检测
//
// 本包只包含纯几何计算，不依赖 ECS 或渲染层，可独立测试。
// 坐标系与屏幕一致：x 向右，y 向下。
package collision

import "math"

// Vec2 二维向量/坐标点
type Vec2 struct {
	X, Y float64
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub 向量相减
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale 数乘
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Len 向量长度
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist 两点之间的欧氏距离
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Rect 以中心点和尺寸描述的轴对齐矩形
type Rect struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// NewRect 创建矩形，负尺寸按 0 处理
func NewRect(centerX, centerY, width, height float64) Rect {
	return Rect{
		CenterX: centerX,
		CenterY: centerY,
		Width:   math.Max(width, 0),
		Height:  math.Max(height, 0),
	}
}

func (r Rect) Left() float64   { return r.CenterX - r.Width/2 }
func (r Rect) Right() float64  { return r.CenterX + r.Width/2 }
func (r Rect) Top() float64    { return r.CenterY - r.Height/2 }
func (r Rect) Bottom() float64 { return r.CenterY + r.Height/2 }

// Center 返回中心点
func (r Rect) Center() Vec2 { return Vec2{X: r.CenterX, Y: r.CenterY} }

// Contains 点是否位于矩形内（含边界）
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// ClosestPoint 返回矩形上距离 p 最近的点（p 在矩形内时返回 p 本身）
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: clamp(p.X, r.Left(), r.Right()),
		Y: clamp(p.Y, r.Top(), r.Bottom()),
	}
}

// ToRelative 将世界坐标转换为矩形内的相对坐标，结果限制在 [0,1]
//
// 尺寸为 0 的轴返回 0.5（矩形中线）
func (r Rect) ToRelative(p Vec2) (float64, float64) {
	return relativeAxis(p.X, r.Left(), r.Width), relativeAxis(p.Y, r.Top(), r.Height)
}

// FromRelative 将相对坐标映射回世界坐标
// worldX = left + relX * width
func (r Rect) FromRelative(relX, relY float64) Vec2 {
	return Vec2{
		X: r.Left() + relX*r.Width,
		Y: r.Top() + relY*r.Height,
	}
}

func relativeAxis(v, start, size float64) float64 {
	if size <= 0 {
		return 0.5
	}
	return clamp((v-start)/size, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
