package components

// ParticleEase 粒子位移的缓动曲线
type ParticleEase int

const (
	ParticleEaseQuad ParticleEase = iota
	ParticleEaseCubic
)

// ParticleComponent 一个效果粒子
//
// 粒子从起点沿直线飞向终点，同时淡出并缩小；
// 位置由 LifetimeComponent 的进度和缓动曲线决定，不逐帧积分。
type ParticleComponent struct {
	StartX, StartY   float64
	TargetX, TargetY float64

	Radius   float64 // 初始半径
	EndScale float64 // 结束时的缩放
	Color    uint32  // 0xRRGGBB
	Ease     ParticleEase
}
