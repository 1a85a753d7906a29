package components

// LifetimeComponent 限时实体的生命周期（毫秒）
// 到期后由 LifetimeSystem 标记删除，用于碰撞爆炸、通关庆祝等短暂效果
type LifetimeComponent struct {
	MaxMs     float64 // 最大存活时间
	ElapsedMs float64 // 已存活时间
	IsExpired bool
}

// Progress 已存活比例，范围 [0,1]
func (l *LifetimeComponent) Progress() float64 {
	if l.MaxMs <= 0 {
		return 1
	}
	p := l.ElapsedMs / l.MaxMs
	if p > 1 {
		return 1
	}
	return p
}
