// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RotationInput 当前帧的旋转输入
type RotationInput struct {
	Left  bool // 左半屏触摸、鼠标左半屏按下、← 或 A
	Right bool // 右半屏触摸、鼠标右半屏按下、→ 或 D
}

// ReadRotationInput 读取键盘、触摸与鼠标输入
//
// 参数：
//   - screenWidth: 逻辑屏幕宽度，用于划分左右触摸区
func ReadRotationInput(screenWidth int) RotationInput {
	input := RotationInput{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}

	left, right := PointerZones(PressedPointerXs(), screenWidth)
	input.Left = input.Left || left
	input.Right = input.Right || right
	return input
}

// PressedPointerXs 返回所有按下的指针的 x 坐标
// 有触摸时只看触摸，否则看鼠标左键
func PressedPointerXs() []int {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		xs := make([]int, 0, len(touchIDs))
		for _, id := range touchIDs {
			x, _ := ebiten.TouchPosition(id)
			xs = append(xs, x)
		}
		return xs
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		return []int{x}
	}
	return nil
}

// PointerZones 把指针位置映射到左右两个输入区
// x < screenWidth/2 为左区，其余为右区
func PointerZones(xs []int, screenWidth int) (left, right bool) {
	half := screenWidth / 2
	for _, x := range xs {
		if x < half {
			left = true
		} else {
			right = true
		}
	}
	return left, right
}
