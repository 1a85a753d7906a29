package config

import (
	"fmt"

	"github.com/decker502/duet/pkg/embedded"
	"github.com/decker502/duet/pkg/types"
	"gopkg.in/yaml.v3"
)

// LevelConfig 关卡配置数据结构（YAML 文件格式）
// 坐标与尺寸以参考分辨率 1920x1080 表示，由 BuildSchedule 换算为视口像素
type LevelConfig struct {
	ID            int              `yaml:"id"`            // 关卡编号，从 1 开始
	Name          string           `yaml:"name"`          // 关卡名称，如 "Beginner"
	ObstacleSpeed float64          `yaml:"obstacleSpeed"` // 障碍物下落速度（像素/秒），默认 100
	Duration      float64          `yaml:"duration"`      // 关卡标称时长（毫秒），用于进度条
	Obstacles     []ObstacleConfig `yaml:"obstacles"`     // 按出现顺序排列的障碍物
}

// ObstacleConfig 单条障碍物配置
type ObstacleConfig struct {
	Type            types.ObstaclePattern `yaml:"type"`            // single / double / triple / moving-single / moving-double
	XOffset         float64               `yaml:"xOffset"`         // 相对屏幕中心的水平偏移（参考像素）
	Width           float64               `yaml:"width"`           // 宽度（参考像素）
	Height          float64               `yaml:"height"`          // 高度（参考像素）
	Delay           float64               `yaml:"delay"`           // 距关卡开始的延迟（毫秒）
	HorizontalSpeed float64               `yaml:"horizontalSpeed"` // 可选：移动障碍物的水平速度（像素/秒）
}

// LevelConfigPath 返回关卡编号对应的配置文件路径
func LevelConfigPath(level int) string {
	return fmt.Sprintf("data/levels/level-%d.yaml", level)
}

// LevelKey 返回关卡在存档中的键，如 "level_1"
func LevelKey(level int) string {
	return fmt.Sprintf("level_%d", level)
}

// LoadLevel 按编号加载关卡配置
func LoadLevel(level int) (*LevelConfig, error) {
	return LoadLevelConfig(LevelConfigPath(level))
}

// LoadLevelConfig 从YAML文件加载关卡配置
// 参数：
//
//	filepath - 关卡配置文件的路径（"data/" 开头时从嵌入资源读取）
//
// 返回：
//
//	*LevelConfig - 解析后的关卡配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}

	cfg, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseLevelConfig 解析并校验 YAML 数据
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	applyDefaults(&levelConfig)

	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, err
	}
	return &levelConfig, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(config *LevelConfig) {
	if config.ObstacleSpeed == 0 {
		config.ObstacleSpeed = DefaultObstacleSpeed
	}

	for i := range config.Obstacles {
		obstacle := &config.Obstacles[i]
		if obstacle.Type.IsMoving() && obstacle.HorizontalSpeed == 0 {
			obstacle.HorizontalSpeed = DefaultHorizontalSpeed
		}
	}
}

// validateLevelConfig 验证关卡配置的完整性和合法性
// 配置错误属于编写问题，在加载时直接拒绝，不在运行时跳过
func validateLevelConfig(config *LevelConfig) error {
	if config.ID < 1 {
		return fmt.Errorf("level id must be at least 1, got %d", config.ID)
	}

	if config.Name == "" {
		return fmt.Errorf("level name is required")
	}

	if config.ObstacleSpeed < 0 {
		return fmt.Errorf("obstacleSpeed cannot be negative, got %v", config.ObstacleSpeed)
	}

	if config.Duration < 0 {
		return fmt.Errorf("duration cannot be negative, got %v", config.Duration)
	}

	if len(config.Obstacles) == 0 {
		return fmt.Errorf("at least one obstacle is required")
	}

	specs := make([]ObstacleSpec, len(config.Obstacles))
	for i, o := range config.Obstacles {
		specs[i] = ObstacleSpec{
			Pattern:         o.Type,
			X:               o.XOffset,
			Width:           o.Width,
			Height:          o.Height,
			DelayMs:         o.Delay,
			HorizontalSpeed: o.HorizontalSpeed,
		}
	}
	return validateSpecs(specs)
}

// BuildSchedule 将关卡配置换算为视口像素下的调度表
//
// x = centerX + xOffset*s，width/height 同比缩放；延迟与速度不缩放
func BuildSchedule(cfg *LevelConfig, vp Viewport) *LevelSchedule {
	scale := vp.Scale()

	specs := make([]ObstacleSpec, len(cfg.Obstacles))
	for i, o := range cfg.Obstacles {
		specs[i] = ObstacleSpec{
			Pattern:         o.Type,
			X:               vp.CenterX + o.XOffset*scale,
			Width:           o.Width * scale,
			Height:          o.Height * scale,
			DelayMs:         o.Delay,
			HorizontalSpeed: o.HorizontalSpeed,
			NominalX:        ReferenceWidth/2 + o.XOffset,
			NominalHeight:   o.Height,
		}
	}

	return &LevelSchedule{
		ID:            cfg.ID,
		Name:          cfg.Name,
		ObstacleSpeed: cfg.ObstacleSpeed,
		DurationMs:    cfg.Duration,
		Obstacles:     specs,
	}
}
