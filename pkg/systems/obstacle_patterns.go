package systems

import (
	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/types"
)

// patternPiece 形状展开后的一个矩形
type patternPiece struct {
	Slot types.ObstacleSlot
	Rect collision.Rect
}

// expandPattern 把一条调度项展开为 0~3 个矩形
//
// 所有矩形的初始 y 为 -height/2，即刚好完全位于视口上方。
// moving-* 与对应静态形状的几何完全相同，只是运动方式不同。
//
// 规则：
//   - single: spec.X 处一个矩形
//   - double: 以 spec.X 为中心留出缺口，两侧各一块填满到屏幕边缘；
//     宽度不超过 MinFlank 的一侧不生成
//   - triple: 中块位于屏幕中心；左右块位于 ±(gap + width/2)，越出屏幕的不生成
func expandPattern(spec config.ObstacleSpec, vp config.Viewport) []patternPiece {
	y := -spec.Height / 2

	switch spec.Pattern.Geometry() {
	case types.PatternSingle:
		return []patternPiece{{
			Slot: types.SlotSingle,
			Rect: collision.NewRect(spec.X, y, spec.Width, spec.Height),
		}}

	case types.PatternDouble:
		gap := vp.DoubleGap()
		minFlank := vp.MinFlank()
		leftWidth := spec.X - gap/2
		rightWidth := vp.Width - (spec.X + gap/2)

		pieces := make([]patternPiece, 0, 2)
		if leftWidth > minFlank {
			pieces = append(pieces, patternPiece{
				Slot: types.SlotLeft,
				Rect: collision.NewRect(leftWidth/2, y, leftWidth, spec.Height),
			})
		}
		if rightWidth > minFlank {
			pieces = append(pieces, patternPiece{
				Slot: types.SlotRight,
				Rect: collision.NewRect(spec.X+gap/2+rightWidth/2, y, rightWidth, spec.Height),
			})
		}
		return pieces

	case types.PatternTriple:
		gap := vp.TripleGap()
		halfW := spec.Width / 2
		leftX := vp.CenterX - gap - halfW
		rightX := vp.CenterX + gap + halfW

		pieces := make([]patternPiece, 0, 3)
		if leftX-halfW > 0 {
			pieces = append(pieces, patternPiece{
				Slot: types.SlotLeft,
				Rect: collision.NewRect(leftX, y, spec.Width, spec.Height),
			})
		}
		pieces = append(pieces, patternPiece{
			Slot: types.SlotCenter,
			Rect: collision.NewRect(vp.CenterX, y, spec.Width, spec.Height),
		})
		if rightX+halfW < vp.Width {
			pieces = append(pieces, patternPiece{
				Slot: types.SlotRight,
				Rect: collision.NewRect(rightX, y, spec.Width, spec.Height),
			})
		}
		return pieces
	}

	return nil
}
