package config

import (
	"fmt"

	"github.com/decker502/duet/pkg/types"
)

// ObstacleSpec 调度表中的一条障碍物（视口像素）
type ObstacleSpec struct {
	Pattern         types.ObstaclePattern
	X               float64 // 名义 x：single 为中心，double 为缺口中心
	Width           float64
	Height          float64
	DelayMs         float64 // 距关卡开始的延迟
	HorizontalSpeed float64 // 仅 moving-* 使用，0 表示默认值

	// 参考分辨率下的名义 x / 高度，只用于构造障碍物身份，
	// 使身份不随窗口尺寸变化。为 0 时使用 X / Height。
	NominalX      float64
	NominalHeight float64
}

// Nominal 返回构造身份使用的名义 x 与高度
func (s ObstacleSpec) Nominal() (float64, float64) {
	x, h := s.NominalX, s.NominalHeight
	if x == 0 && h == 0 {
		return s.X, s.Height
	}
	return x, h
}

// LevelSchedule 只读的关卡调度表
// 由关卡配置层构造，障碍物引擎只读不写
type LevelSchedule struct {
	ID            int
	Name          string
	ObstacleSpeed float64 // 下落速度（像素/秒）
	DurationMs    float64
	Obstacles     []ObstacleSpec
}

// LevelKey 返回调度表对应的存档键
func (s *LevelSchedule) LevelKey() string {
	return LevelKey(s.ID)
}

// Validate 校验调度表
func (s *LevelSchedule) Validate() error {
	if s == nil {
		return fmt.Errorf("level schedule is nil")
	}
	if s.ObstacleSpeed < 0 {
		return fmt.Errorf("obstacle speed cannot be negative, got %v", s.ObstacleSpeed)
	}
	return validateSpecs(s.Obstacles)
}

// validateSpecs 校验障碍物列表：形状合法、延迟非负且不递减、尺寸为正、速度非负
func validateSpecs(specs []ObstacleSpec) error {
	lastDelay := 0.0
	for i, spec := range specs {
		if !spec.Pattern.IsValid() {
			return fmt.Errorf("obstacle %d: unknown pattern %q", i, spec.Pattern)
		}
		if spec.DelayMs < 0 {
			return fmt.Errorf("obstacle %d: delay cannot be negative, got %v", i, spec.DelayMs)
		}
		if spec.DelayMs < lastDelay {
			return fmt.Errorf("obstacle %d: delay %v is earlier than previous obstacle (%v)", i, spec.DelayMs, lastDelay)
		}
		if spec.Width <= 0 || spec.Height <= 0 {
			return fmt.Errorf("obstacle %d: width and height must be positive, got %vx%v", i, spec.Width, spec.Height)
		}
		if spec.HorizontalSpeed < 0 {
			return fmt.Errorf("obstacle %d: horizontalSpeed cannot be negative, got %v", i, spec.HorizontalSpeed)
		}
		lastDelay = spec.DelayMs
	}
	return nil
}
