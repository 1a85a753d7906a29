// verify_level 无窗口运行一个关卡，打印每次生成的障碍物和关卡完成时间
//
// 用法：
//
//	go run ./cmd/verify_level --level 2 --width 1920 --height 1080
//	go run ./cmd/verify_level --level 3 --collide   # 玩家静止不动，报告命中与溅痕
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"

	"github.com/decker502/duet/pkg/config"
	"github.com/decker502/duet/pkg/ecs"
	"github.com/decker502/duet/pkg/embedded"
	"github.com/decker502/duet/pkg/entities"
	"github.com/decker502/duet/pkg/game"
	"github.com/decker502/duet/pkg/systems"
	"github.com/decker502/duet/pkg/types"
)

var (
	level   = flag.Int("level", 1, "关卡编号")
	width   = flag.Float64("width", config.GameWindowWidth, "视口宽度（像素）")
	height  = flag.Float64("height", config.GameWindowHeight, "视口高度（像素）")
	step    = flag.Float64("step", 1000.0/60.0, "模拟步长（毫秒）")
	maxTime = flag.Float64("max", 120000, "最长模拟时间（毫秒）")
	seed    = flag.Int64("seed", 1, "随机种子（移动方向、溅痕大小）")
	collide = flag.Bool("collide", false, "检测静止玩家与障碍物的碰撞")
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := embedded.InitFromDir("."); err != nil {
		fmt.Fprintf(os.Stderr, "初始化数据目录失败: %v\n", err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *step <= 0 {
		return fmt.Errorf("step must be positive, got %v", *step)
	}

	cfg, err := config.LoadLevel(*level)
	if err != nil {
		return err
	}

	vp := config.NewViewport(*width, *height)
	// 不打开持久化存储，溅痕只保存在内存里
	ledger := game.NewGameStateWithManager(nil).GetSplashLedger()

	em := ecs.NewEntityManager()
	spawner := systems.NewObstacleSpawnSystem(em, vp, ledger, rand.New(rand.NewSource(*seed)))
	levelID := config.LevelKey(*level)
	if err := spawner.LoadLevel(config.BuildSchedule(cfg, vp), levelID); err != nil {
		return err
	}
	player := entities.NewPlayer(vp)

	fmt.Printf("Level %d %q  viewport %.0fx%.0f  scale %.3f  obstacles %d\n",
		cfg.ID, cfg.Name, vp.Width, vp.Height, vp.Scale(), len(cfg.Obstacles))

	seen := make(map[ecs.EntityID]bool)
	hits := 0
	for elapsed := 0.0; elapsed <= *maxTime; elapsed += *step {
		spawner.Tick(*step)

		for _, view := range spawner.GetActiveObstacles() {
			if seen[view.ID()] {
				continue
			}
			seen[view.ID()] = true
			b := view.Bounds()
			fmt.Printf("%8.0fms  spawn  %-40s  x=[%7.1f,%7.1f] w=%6.1f h=%6.1f  %s\n",
				spawner.Clock().Elapsed(), view.Identity().Key(), b.Left(), b.Right(), b.Width, b.Height, view.Movement())
		}

		if *collide && spawner.CheckCollisions(player.Probe()) {
			for _, hit := range spawner.LastHits() {
				hits++
				fmt.Printf("%8.0fms  hit    orb %d at (%.1f, %.1f)  splash (%.2f, %.2f)\n",
					spawner.Clock().Elapsed(), hit.OrbIndex, hit.Hit.Contact.X, hit.Hit.Contact.Y, hit.Splash.X, hit.Splash.Y)
			}
		}

		if spawner.IsLevelComplete() {
			fmt.Printf("Level complete at %.0fms (nominal duration %.0fms), %d obstacles spawned\n",
				spawner.Clock().Elapsed(), cfg.Duration, spawner.SpawnedCount())
			if *collide {
				printLedger(ledger.Level(levelID), hits)
			}
			return nil
		}
	}

	return fmt.Errorf("level %d not complete after %.0fms (%d active)", *level, *maxTime, spawner.ActiveCount())
}

func printLedger(splashes map[string][]types.SplashRecord, hits int) {
	keys := make([]string, 0, len(splashes))
	for key := range splashes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Printf("%d hits, %d obstacles carry splashes\n", hits, len(keys))
	for _, key := range keys {
		fmt.Printf("  %-40s %d\n", key, len(splashes[key]))
	}
}
