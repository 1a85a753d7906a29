package scenes

import (
	"github.com/decker502/duet/pkg/game"
)

// Scene 场景接口，与 game.Scene 相同
type Scene = game.Scene

var (
	_ Scene         = (*GameScene)(nil)
	_ game.Saveable = (*GameScene)(nil)
)
