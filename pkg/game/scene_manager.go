package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按关卡编号创建场景
// 由应用层注入，避免 game 包依赖 scenes 包
type SceneFactory func(level int) Scene

// SceneManager 管理当前活动场景
type SceneManager struct {
	currentScene Scene
	currentLevel int
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换到指定场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// GetCurrentLevel 返回最近一次 LoadLevel 的关卡编号
func (sm *SceneManager) GetCurrentLevel() int {
	return sm.currentLevel
}

// LoadLevel 创建并切换到指定关卡的场景
//
// 返回：
//   - bool: 是否切换成功
func (sm *SceneManager) LoadLevel(level int) bool {
	log.Printf("[SceneManager] Loading level %d", level)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: scene factory not set")
		return false
	}

	scene := sm.sceneFactory(level)
	if scene == nil {
		log.Printf("[SceneManager] Error: failed to create scene for level %d", level)
		return false
	}

	sm.SwitchTo(scene)
	sm.currentLevel = level
	return true
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// SaveOnExit 让当前场景落盘（如果它实现了 Saveable）
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}
