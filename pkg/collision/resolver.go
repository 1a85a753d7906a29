package collision

import "math"

// Edge 矩形的四条边
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String 返回边的名称
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Hit 一次命中的结果
type Hit struct {
	Contact Vec2    // 接触点，总是落在矩形边界上
	Edge    Edge    // 接触点所在的边（角点时取穿透方向上较近的一条）
	Normal  Vec2    // 该边的外法线
	Depth   float64 // 穿透深度
	Inside  bool    // 球心是否位于矩形内部
}

// CheckCollision 检测圆形与矩形是否重叠，并计算接触点
//
// 算法：
//  1. 将圆心钳制到矩形的 x/y 区间，得到矩形上的最近点
//  2. 圆心到最近点的距离 <= 半径 即为命中（真实圆-矩形重叠，而非包围盒相交）
//  3. 圆心在矩形外：沿圆心指向最近点的方向前进 radius，再落回矩形边界
//  4. 圆心在矩形内：取轴向距离最小的一条边，返回该边上正对圆心的点
//
// 参数：
//   - center: 圆心
//   - radius: 半径
//   - rect: 障碍物矩形
//
// 返回：
//   - Hit: 命中信息（未命中时为零值）
//   - bool: 是否命中
func CheckCollision(center Vec2, radius float64, rect Rect) (Hit, bool) {
	if radius < 0 {
		radius = 0
	}

	closest := rect.ClosestPoint(center)
	offset := closest.Sub(center)
	dist := offset.Len()
	if dist > radius {
		return Hit{}, false
	}

	if dist == 0 {
		return insideHit(center, radius, rect), true
	}

	dir := offset.Scale(1 / dist)
	projected := center.Add(dir.Scale(radius))
	contact, edge := snapToBoundary(projected, dir, rect)

	return Hit{
		Contact: contact,
		Edge:    edge,
		Normal:  edgeNormal(edge),
		Depth:   radius - dist,
		Inside:  false,
	}, true
}

// insideHit 处理圆心位于矩形内部（含边界）的深度穿透情况
// 平局时按 左、右、上、下 的顺序选择，保证结果确定
func insideHit(center Vec2, radius float64, rect Rect) Hit {
	distances := [4]float64{
		center.X - rect.Left(),
		rect.Right() - center.X,
		center.Y - rect.Top(),
		rect.Bottom() - center.Y,
	}

	edge := EdgeLeft
	minDist := distances[0]
	for i := 1; i < len(distances); i++ {
		if distances[i] < minDist {
			minDist = distances[i]
			edge = Edge(i)
		}
	}

	return Hit{
		Contact: pointOnEdge(center, edge, rect),
		Edge:    edge,
		Normal:  edgeNormal(edge),
		Depth:   radius + minDist,
		Inside:  true,
	}
}

// snapToBoundary 将投影点落到矩形边界上
//
// 先钳制到矩形区间；若结果仍在矩形内部，则沿进入方向退回到最近的入射边。
// dir 为圆心指向最近点的单位向量，它决定了可能的入射边。
func snapToBoundary(p, dir Vec2, rect Rect) (Vec2, Edge) {
	c := rect.ClosestPoint(p)

	type candidate struct {
		edge Edge
		dist float64
	}
	candidates := make([]candidate, 0, 2)
	if dir.X > 0 {
		candidates = append(candidates, candidate{EdgeLeft, c.X - rect.Left()})
	} else if dir.X < 0 {
		candidates = append(candidates, candidate{EdgeRight, rect.Right() - c.X})
	}
	if dir.Y > 0 {
		candidates = append(candidates, candidate{EdgeTop, c.Y - rect.Top()})
	} else if dir.Y < 0 {
		candidates = append(candidates, candidate{EdgeBottom, rect.Bottom() - c.Y})
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.dist < best.dist {
			best = cand
		}
	}

	return pointOnEdge(c, best.edge, rect), best.edge
}

// pointOnEdge 返回 edge 上与 p 正对的点
func pointOnEdge(p Vec2, edge Edge, rect Rect) Vec2 {
	switch edge {
	case EdgeLeft:
		return Vec2{X: rect.Left(), Y: clamp(p.Y, rect.Top(), rect.Bottom())}
	case EdgeRight:
		return Vec2{X: rect.Right(), Y: clamp(p.Y, rect.Top(), rect.Bottom())}
	case EdgeTop:
		return Vec2{X: clamp(p.X, rect.Left(), rect.Right()), Y: rect.Top()}
	default:
		return Vec2{X: clamp(p.X, rect.Left(), rect.Right()), Y: rect.Bottom()}
	}
}

func edgeNormal(edge Edge) Vec2 {
	switch edge {
	case EdgeLeft:
		return Vec2{X: -1}
	case EdgeRight:
		return Vec2{X: 1}
	case EdgeTop:
		return Vec2{Y: -1}
	default:
		return Vec2{Y: 1}
	}
}

// OnBoundary 检查点是否位于矩形边界上（允许 eps 误差）
func OnBoundary(p Vec2, rect Rect, eps float64) bool {
	if p.X < rect.Left()-eps || p.X > rect.Right()+eps || p.Y < rect.Top()-eps || p.Y > rect.Bottom()+eps {
		return false
	}
	return math.Abs(p.X-rect.Left()) <= eps ||
		math.Abs(p.X-rect.Right()) <= eps ||
		math.Abs(p.Y-rect.Top()) <= eps ||
		math.Abs(p.Y-rect.Bottom()) <= eps
}
