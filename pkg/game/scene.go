package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 游戏场景（关卡、结算画面等）
// 同一时刻只有一个场景处于活动状态，由 SceneManager 驱动
type Scene interface {
	// Update 推进场景逻辑
	// deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在程序退出时落盘
//
// 调用时机：
//   - 窗口关闭
//   - 移动端进入后台
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
