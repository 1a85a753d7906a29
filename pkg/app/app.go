// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/game"
	"github.com/decker502/duet/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 指定要加载的关卡编号，0 表示从存档中选择第一个未完成的关卡
	Level int
	// ClearSplashes 调试用：进入关卡前清空该关卡的溅痕
	ClearSplashes bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
//
// App 在整个进程生命周期内持有 GameState，
// 溅痕账本和进度存档都由它在退出时落盘。
type App struct {
	sceneManager             *game.SceneManager
	gameState                *game.GameState
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameState := game.NewGameState(game.AppName)
	if !gameState.IsPersistent() {
		log.Printf("[App] Running without persistent storage")
	}
	return newApp(cfg, gameState)
}

func newApp(cfg Config, gameState *game.GameState) (*App, error) {
	if cfg.ClearSplashes {
		config.Gameplay.ClearSplashesOnStartup = true
	}

	// 确定加载哪个关卡
	levelToLoad := cfg.Level
	if levelToLoad == 0 {
		levelToLoad = gameState.GetSaveManager().GetNextUncompletedLevel()
		log.Printf("[App] Loading from save: next level = %d", levelToLoad)
	}
	if _, err := config.LoadLevel(levelToLoad); err != nil {
		return nil, fmt.Errorf("关卡 %d 加载失败: %w", levelToLoad, err)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(level int) game.Scene {
		return scenes.NewGameScene(sceneManager, gameState, level)
	})

	log.Printf("[App] Starting level: %d", levelToLoad)
	sceneManager.LoadLevel(levelToLoad)

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色，使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// SaveOnExit 退出前保存
// 当前场景实现了 game.Saveable 时交给场景，否则直接保存 GameState
func (a *App) SaveOnExit() bool {
	if _, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		return a.sceneManager.SaveOnExit()
	}
	return a.gameState.SaveOnExit()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
