package systems

// LevelClock 关卡计时器（毫秒）
//
// 只负责累计时间，不持有任何实体；由 ObstacleSpawnSystem 在 Tick 开始时推进。
type LevelClock struct {
	elapsedMs  float64
	durationMs float64
}

// NewLevelClock 创建计时器
//
// 参数：
//   - durationMs: 关卡名义时长，仅用于 Progress，<=0 表示未知
func NewLevelClock(durationMs float64) *LevelClock {
	return &LevelClock{durationMs: durationMs}
}

// Advance 推进时间，负值按 0 处理
func (c *LevelClock) Advance(deltaMs float64) {
	if deltaMs <= 0 {
		return
	}
	c.elapsedMs += deltaMs
}

// Elapsed 关卡开始以来的毫秒数
func (c *LevelClock) Elapsed() float64 {
	return c.elapsedMs
}

// Duration 关卡名义时长
func (c *LevelClock) Duration() float64 {
	return c.durationMs
}

// Reset 归零并设置新的时长
func (c *LevelClock) Reset(durationMs float64) {
	c.elapsedMs = 0
	c.durationMs = durationMs
}

// Reached 是否已到达给定的延迟
func (c *LevelClock) Reached(delayMs float64) bool {
	return c.elapsedMs >= delayMs
}

// Progress 关卡进度 [0,1]，用于进度条
func (c *LevelClock) Progress() float64 {
	if c.durationMs <= 0 {
		return 0
	}
	p := c.elapsedMs / c.durationMs
	if p > 1 {
		return 1
	}
	return p
}
