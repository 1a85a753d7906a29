package components

import "github.com/solarlune/resolv"

// BroadphaseComponent 障碍物在碰撞空间中的代理对象
// 位置由 ObstacleCollisionSystem 每帧同步
type BroadphaseComponent struct {
	Object *resolv.Object
}
