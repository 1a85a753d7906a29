package main

import (
	"flag"
	"log"

	"github.com/decker502/duet/pkg/app"
	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose       = flag.Bool("verbose", false, "显示详细日志")
	level         = flag.Int("level", 0, "直接进入指定关卡（0 表示从存档继续）")
	clearSplashes = flag.Bool("clear-splashes", false, "调试：进入关卡前清空该关卡的溅痕")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		Level:         *level,
		ClearSplashes: *clearSplashes,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Duet")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)

	if !gameApp.SaveOnExit() {
		log.Printf("[Main] Warning: progress was not saved")
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
