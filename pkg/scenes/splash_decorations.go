package scenes

import (
	"math"
	"math/rand"

	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/types"
)

// 溅痕靠近边缘的阈值（相对坐标）
const (
	splashEdgeLow  = 0.15
	splashEdgeHigh = 0.85
)

// splashDroplet 一个要绘制的圆点（主体或卫星）
// 坐标相对障碍物，可能略微超出 [0,1]，绘制时由裁剪去掉
type splashDroplet struct {
	RelX, RelY float64
	Radius     float64
	Alpha      float64
}

// buildSplashDroplets 由一条溅痕生成主体和 2~4 个卫星点
//
// 卫星点只用于渲染，不会写入账本。溅痕靠近某条边时，
// 卫星点的方向偏向障碍物内部。
func buildSplashDroplets(record types.SplashRecord, width, height float64, rng *rand.Rand) []splashDroplet {
	droplets := []splashDroplet{{
		RelX:   record.X,
		RelY:   record.Y,
		Radius: record.Size,
		Alpha:  record.Alpha,
	}}
	if width <= 0 || height <= 0 {
		return droplets
	}

	count := 2 + rng.Intn(3)
	for i := 0; i < count; i++ {
		angle := satelliteAngle(record.X, record.Y, rng)
		distance := record.Size*0.5 + rng.Float64()*record.Size*0.3
		radius := record.Size*0.3 + rng.Float64()*record.Size*0.3

		relX := record.X + math.Cos(angle)*distance/width
		relY := record.Y + math.Sin(angle)*distance/height
		if relX < -0.1 || relX > 1.1 || relY < -0.1 || relY > 1.1 {
			continue
		}

		droplets = append(droplets, splashDroplet{
			RelX:   relX,
			RelY:   relY,
			Radius: radius,
			Alpha:  record.Alpha * 0.6,
		})
	}
	return droplets
}

// satelliteAngle 卫星点方向；靠近边缘时只取朝内的半圆
// 上下边缘优先于左右边缘
func satelliteAngle(relX, relY float64, rng *rand.Rand) float64 {
	angle := rng.Float64() * 2 * math.Pi

	if relX < splashEdgeLow {
		angle = rng.Float64()*math.Pi - math.Pi/2
	} else if relX > splashEdgeHigh {
		angle = rng.Float64()*math.Pi + math.Pi/2
	}

	if relY < splashEdgeLow {
		angle = rng.Float64() * math.Pi
	} else if relY > splashEdgeHigh {
		angle = rng.Float64()*math.Pi + math.Pi
	}
	return angle
}

// splashDecorations 缓存每个障碍物的溅痕圆点，避免每帧重新随机
type splashDecorations struct {
	rng   *rand.Rand
	cache map[ecs.EntityID][][]splashDroplet
}

func newSplashDecorations(rng *rand.Rand) *splashDecorations {
	return &splashDecorations{
		rng:   rng,
		cache: make(map[ecs.EntityID][][]splashDroplet),
	}
}

// forObstacle 返回障碍物全部溅痕的圆点，新增的溅痕按需生成
func (d *splashDecorations) forObstacle(id ecs.EntityID, records []types.SplashRecord, width, height float64) [][]splashDroplet {
	cached := d.cache[id]
	for i := len(cached); i < len(records); i++ {
		cached = append(cached, buildSplashDroplets(records[i], width, height, d.rng))
	}
	d.cache[id] = cached
	return cached[:len(records)]
}

// prune 丢弃已不在场上的障碍物
func (d *splashDecorations) prune(alive map[ecs.EntityID]bool) {
	for id := range d.cache {
		if !alive[id] {
			delete(d.cache, id)
		}
	}
}
