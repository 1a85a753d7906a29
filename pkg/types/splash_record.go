package types

// SplashRecord 一条颜料溅痕的持久化记录
//
// X/Y 是相对障碍物自身宽高的坐标，范围 [0,1]，而不是世界坐标，
// 因此障碍物移动或缩放后溅痕仍然跟随障碍物。
// 溅痕周围的装饰小点属于渲染细节，不在记录中。
type SplashRecord struct {
	X     float64 `yaml:"x"`     // 相对宽度位置 (0-1)
	Y     float64 `yaml:"y"`     // 相对高度位置 (0-1)
	Color uint32  `yaml:"color"` // 0xRRGGBB
	Size  float64 `yaml:"size"`  // 主体半径（像素）
	Alpha float64 `yaml:"alpha"` // 透明度
}
