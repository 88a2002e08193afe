package game

import "time"

// 场地与实体常量（逻辑单位，与显示分辨率无关）
const (
	Width  = 800.0
	Height = 900.0

	PlayerSpeed   = 6.0
	PlayerMargin  = 20.0 // 玩家 x 限制在 [20, Width-20]
	PlayerStartY  = Height - 60
	StartingLives = 3

	BulletSpeed          = 10.0
	EnemyBulletSpeed     = 5.0
	EnemyBulletLevelGain = 0.2
	PlayerMuzzleOffset   = 20.0
	EnemyMuzzleOffset    = 15.0

	BulletHitRadius      = 25.0 // 玩家子弹 vs 敌机
	EnemyBulletHitRadius = 20.0 // 敌方子弹 vs 玩家
	DiverHitRadius       = 30.0 // 俯冲敌机 vs 玩家机体

	FormationBound     = 100.0
	FormationBaseSpeed = 0.5
	FormationLevelGain = 0.2
	BobAmplitude       = 10.0

	DivePhaseStep  = 0.05
	DiveBaseSpeed  = 4.0
	DiveLevelGain  = 0.5
	DiveWeaveFreq  = 3.0
	DiveWeaveAmp   = 5.0
	DiveRespawnY   = -50.0
	DiveLevelBoost = 0.5

	GridCols     = 8
	GridBaseRows = 4
	GridMaxBonus = 4
	GridSpacingX = 50.0
	GridSpacingY = 45.0
	GridStartY   = 100.0

	ExplosionParticles = 15
	ParticleSpread     = 8.0
	ParticleDecay      = 0.02
)

// FrameDuration 单帧逻辑时长：模拟时钟每帧固定前进该值，不读墙钟
const FrameDuration = time.Second / 60

// 颜色标签，仅供前端渲染
const (
	ColorPlayer       = "#00ffff"
	ColorPlayerBullet = "#ffffff"
	ColorEnemyBullet  = "#ff4444"
	ColorDrone        = "#ff00ff"
	ColorStinger      = "#00ff00"
	ColorCommander    = "#ffff00"
)

// Tuning 可热更新的概率/节奏参数
type Tuning struct {
	DiveChanceBase  float64       // 每帧俯冲概率基数，实际为 base*(1+level*0.5)
	EnemyFireChance float64       // 俯冲中每帧开火概率
	FireCooldown    time.Duration // 玩家射击间隔下限
}

// DefaultTuning 默认参数
func DefaultTuning() Tuning {
	return Tuning{
		DiveChanceBase:  0.0005,
		EnemyFireChance: 0.02,
		FireCooldown:    300 * time.Millisecond,
	}
}

// DiveChance 当前关卡下单个敌机每帧转入俯冲的概率
func (t Tuning) DiveChance(level int) float64 {
	return t.DiveChanceBase * (1 + float64(level)*DiveLevelBoost)
}

// FormationSpeed 编队横向摆动速度
func FormationSpeed(level int) float64 {
	return FormationBaseSpeed + float64(level)*FormationLevelGain
}

// DiveSpeed 俯冲下落速度
func DiveSpeed(level int) float64 {
	return DiveBaseSpeed + float64(level)*DiveLevelGain
}

// GridRows 关卡敌阵行数
func GridRows(level int) int {
	return GridBaseRows + min(level, GridMaxBonus)
}
