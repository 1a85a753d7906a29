package types

import (
	"strconv"
	"strings"
)

// ObstacleIdentity 障碍物的确定性身份
//
// 同一关卡、同一调度序号、同一形状位置的障碍物在每次运行中都得到相同的身份，
// 颜料溅痕依靠它在重新生成的障碍物上恢复。
// 身份在生成时构造一次，之后不再从运行时字段重新推导。
type ObstacleIdentity struct {
	ScheduleIndex int             // 在关卡调度列表中的序号（0-based）
	Pattern       ObstaclePattern // 配置的形状类别
	Slot          ObstacleSlot    // 展开后的位置
	NominalX      float64         // 配置中的名义 x（展开前）
	NominalHeight float64         // 配置中的名义高度
}

// NewObstacleIdentity 创建障碍物身份
func NewObstacleIdentity(index int, pattern ObstaclePattern, slot ObstacleSlot, nominalX, nominalHeight float64) ObstacleIdentity {
	return ObstacleIdentity{
		ScheduleIndex: index,
		Pattern:       pattern,
		Slot:          slot,
		NominalX:      nominalX,
		NominalHeight: nominalHeight,
	}
}

// Key 返回用于持久化的字符串键
//
// 格式：<pattern>[_<slot>]_<index>_<x>_<height>
// 例如 "single_0_960_120"、"moving_double_left_7_960_100"
func (id ObstacleIdentity) Key() string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(string(id.Pattern), "-", "_"))
	if id.Slot != "" && id.Slot != SlotSingle {
		b.WriteByte('_')
		b.WriteString(string(id.Slot))
	}
	b.WriteByte('_')
	b.WriteString(strconv.Itoa(id.ScheduleIndex))
	b.WriteByte('_')
	b.WriteString(formatNominal(id.NominalX))
	b.WriteByte('_')
	b.WriteString(formatNominal(id.NominalHeight))
	return b.String()
}

// String 实现 fmt.Stringer
func (id ObstacleIdentity) String() string {
	return id.Key()
}

// formatNominal 以最短且可往返的形式格式化浮点数
func formatNominal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
