package config

// 分辨率与玩法常量
// 所有以像素表示的数值都以参考分辨率 1920x1080 为基准，运行时按 Viewport.Scale() 缩放

const (
	// ReferenceWidth 参考分辨率宽度
	ReferenceWidth = 1920.0
	// ReferenceHeight 参考分辨率高度
	ReferenceHeight = 1080.0

	// GameWindowWidth 默认窗口逻辑宽度
	GameWindowWidth = 1280
	// GameWindowHeight 默认窗口逻辑高度
	GameWindowHeight = 720
)

// 障碍物展开参数
const (
	// DoubleGapBase double 形状缺口的参考宽度，实际为 max(DoubleGapBase*s, DoubleGapMin)
	DoubleGapBase = 250.0
	DoubleGapMin  = 180.0

	// TripleGapBase triple 形状缺口的参考宽度，实际为 max(TripleGapBase*s, TripleGapMin)
	TripleGapBase = 180.0
	TripleGapMin  = 120.0

	// MinFlankWidth double 两侧块的最小宽度（参考像素），低于 MinFlankWidth*s 的一侧不生成
	MinFlankWidth = 40.0

	// DefaultObstacleSpeed 关卡未配置下落速度时使用（像素/秒）
	DefaultObstacleSpeed = 100.0

	// DefaultHorizontalSpeed 移动障碍物未配置水平速度时使用（像素/秒）
	DefaultHorizontalSpeed = 100.0
)

// 玩家参数
const (
	// OrbSize 球的碰撞半径（像素，不缩放）
	OrbSize = 15.0

	// RotationSpeed 旋转角速度（弧度/毫秒）
	RotationSpeed = 0.004

	// OrbitRadiusBase 旋转半径参考值，实际为 max(OrbitRadiusBase*s, OrbitRadiusMin)
	OrbitRadiusBase = 150.0
	OrbitRadiusMin  = 80.0

	// OrbitBottomOffsetBase 旋转中心距屏幕底部的参考距离，实际为 max(200*s, 120)
	OrbitBottomOffsetBase = 200.0
	OrbitBottomOffsetMin  = 120.0

	// RedOrbColor 红球颜色
	RedOrbColor uint32 = 0xff3333
	// BlueOrbColor 蓝球颜色
	BlueOrbColor uint32 = 0x3333ff
)

// 颜料溅痕参数
const (
	// SplashMinSize / SplashMaxSize 溅痕主体半径范围（像素）
	SplashMinSize = 4.0
	SplashMaxSize = 7.0

	// SplashMinAlpha / SplashMaxAlpha 溅痕透明度范围
	SplashMinAlpha = 0.7
	SplashMaxAlpha = 0.9
)

// GameplayConfig 场景流程相关的可调参数
type GameplayConfig struct {
	GameOverDelayMs      float64 // 碰撞后显示粒子的时间，之后重开本关
	LevelCompleteDelayMs float64 // 通关庆祝时间，之后进入下一关
	MaxLevels            int     // 关卡总数

	// ClearSplashesOnStartup 调试开关：进入关卡前清空该关卡的溅痕
	// 注意：与尚未落盘的写入之间没有顺序保证
	ClearSplashesOnStartup bool
}

// Gameplay 全局玩法配置
var Gameplay = GameplayConfig{
	GameOverDelayMs:        1000,
	LevelCompleteDelayMs:   3000,
	MaxLevels:              3,
	ClearSplashesOnStartup: false,
}
