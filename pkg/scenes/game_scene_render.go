package scenes

import (
	"fmt"
	"image"
	"image/color"

	"github.com/decker502/duet/pkg/collision"
	"github.com/decker502/duet/pkg/components"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor     = color.RGBA{R: 8, G: 8, B: 20, A: 255}
	staticObstacleColor = color.RGBA{R: 235, G: 235, B: 240, A: 255}
	movingObstacleColor = color.RGBA{R: 255, G: 214, B: 120, A: 255}
	orbitColor          = color.RGBA{R: 90, G: 90, B: 110, A: 160}
	progressTrackColor  = color.RGBA{R: 50, G: 50, B: 70, A: 255}
	progressFillColor   = color.RGBA{R: 0, G: 255, B: 68, A: 255}
	touchZoneColor      = color.RGBA{R: 255, G: 255, B: 255, A: 12}
	overlayColor        = color.RGBA{R: 0, G: 0, B: 0, A: 150}
)

// Draw 绘制场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if s.phase == phaseFailed {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %d failed to load:\n%v\n\nPress R to retry", s.level, s.loadErr), 20, 20)
		return
	}

	if utils.IsMobile() {
		s.drawTouchZones(screen)
	}
	s.drawObstacles(screen)
	s.drawPlayer(screen)
	s.drawParticles(screen)
	s.drawHUD(screen)

	switch s.phase {
	case phaseGameOver:
		s.drawBanner(screen, "GAME OVER")
	case phaseLevelComplete:
		s.drawBanner(screen, "LEVEL COMPLETE!")
	}
}

func (s *GameScene) drawTouchZones(screen *ebiten.Image) {
	half := float32(s.viewport.Width / 2)
	vector.DrawFilledRect(screen, 0, 0, half-1, float32(s.viewport.Height), touchZoneColor, false)
	vector.DrawFilledRect(screen, half+1, 0, half-1, float32(s.viewport.Height), touchZoneColor, false)
}

// drawObstacles 绘制障碍物及其溅痕
// 溅痕裁剪在障碍物矩形之内
func (s *GameScene) drawObstacles(screen *ebiten.Image) {
	views := s.obstacles.GetActiveObstacles()
	alive := make(map[ecs.EntityID]bool, len(views))

	for _, view := range views {
		alive[view.ID()] = true
		bounds := view.Bounds()

		fill := staticObstacleColor
		if view.Movement() == components.MovementOscillating {
			fill = movingObstacleColor
		}
		vector.DrawFilledRect(screen,
			float32(bounds.Left()), float32(bounds.Top()),
			float32(bounds.Width), float32(bounds.Height),
			fill, false)

		splashes := view.SplashData()
		if len(splashes) == 0 {
			continue
		}

		clipRect := image.Rect(int(bounds.Left()), int(bounds.Top()), int(bounds.Right()), int(bounds.Bottom()))
		clip, ok := screen.SubImage(clipRect).(*ebiten.Image)
		if !ok || clipRect.Empty() {
			continue
		}

		groups := s.decorations.forObstacle(view.ID(), splashes, bounds.Width, bounds.Height)
		for i, droplets := range groups {
			for _, droplet := range droplets {
				p := bounds.FromRelative(droplet.RelX, droplet.RelY)
				vector.DrawFilledCircle(clip, float32(p.X), float32(p.Y), float32(droplet.Radius),
					rgbaWithAlpha(splashes[i].Color, droplet.Alpha), true)
			}
		}
	}

	s.decorations.prune(alive)
}

func (s *GameScene) drawPlayer(screen *ebiten.Image) {
	vector.StrokeCircle(screen,
		float32(s.player.CenterX), float32(s.player.CenterY), float32(s.player.Radius),
		1, orbitColor, true)

	probe := s.player.Probe()
	for i, orb := range probe.Orbs {
		alpha := 1.0
		if s.phase == phaseGameOver && i != s.lastHitOrb {
			alpha = 0.4
		}
		drawOrb(screen, orb.Center, probe.Radius, rgbaWithAlpha(orb.Color, alpha))
	}
}

func (s *GameScene) drawParticles(screen *ebiten.Image) {
	for _, p := range s.particles.Particles() {
		if p.Alpha <= 0 || p.Radius <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(p.Center.X), float32(p.Center.Y), float32(p.Radius),
			rgbaWithAlpha(p.Color, p.Alpha), true)
	}
}

func drawOrb(screen *ebiten.Image, center collision.Vec2, radius float64, clr color.RGBA) {
	glow := clr
	glow.A = clr.A / 4
	vector.DrawFilledCircle(screen, float32(center.X), float32(center.Y), float32(radius*1.6), glow, true)
	vector.DrawFilledCircle(screen, float32(center.X), float32(center.Y), float32(radius), clr, true)
}

func (s *GameScene) drawHUD(screen *ebiten.Image) {
	name := ""
	if s.levelConfig != nil {
		name = s.levelConfig.Name
	}
	completed, total := s.gameState.GetSaveManager().GetProgress()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %d: %s   cleared %d/%d", s.level, name, completed, total), 10, 10)

	// 进度条
	const barHeight = 4
	width := float32(s.viewport.Width - 20)
	progress := float32(s.obstacles.Clock().Progress())
	vector.DrawFilledRect(screen, 10, 30, width, barHeight, progressTrackColor, false)
	vector.DrawFilledRect(screen, 10, 30, width*progress, barHeight, progressFillColor, false)
}

func (s *GameScene) drawBanner(screen *ebiten.Image, message string) {
	const bannerHeight = 60
	top := float32(s.viewport.Height/2 - bannerHeight/2)
	vector.DrawFilledRect(screen, 0, top, float32(s.viewport.Width), bannerHeight, overlayColor, false)

	// DebugPrint 字符宽 6 像素
	x := int(s.viewport.Width/2) - len(message)*3
	ebitenutil.DebugPrintAt(screen, message, x, int(s.viewport.Height/2)-8)
}

// rgbaWithAlpha 0xRRGGBB + 透明度 → 预乘 alpha 的颜色
func rgbaWithAlpha(rgb uint32, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	a := alpha * 255
	return color.RGBA{
		R: uint8(float64((rgb>>16)&0xff) * alpha),
		G: uint8(float64((rgb>>8)&0xff) * alpha),
		B: uint8(float64(rgb&0xff) * alpha),
		A: uint8(a),
	}
}
