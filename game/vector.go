package game

import "github.com/go-gl/mathgl/mgl64"

// Vec2 二维向量（x, y），直接复用 mgl64 的定长数组实现
type Vec2 = mgl64.Vec2

// V 构造向量
func V(x, y float64) Vec2 { return Vec2{x, y} }

// distance 欧氏距离 sqrt(dx²+dy²)，所有碰撞判定统一走这里
func distance(a, b Vec2) float64 {
	return a.Sub(b).Len()
}
