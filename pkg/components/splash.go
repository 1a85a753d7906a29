package components

import "github.com/decker502/duet/pkg/types"

// SplashComponent 障碍物上已有的颜料溅痕
// 坐标为相对障碍物的 [0,1] 比例，渲染时再换算为像素
type SplashComponent struct {
	Splashes []types.SplashRecord
}
