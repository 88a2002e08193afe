package game

// EnemyType 敌机类型（封闭枚举，属性查表）
type EnemyType uint8

const (
	Drone EnemyType = iota
	Stinger
	Commander
)

var enemyTable = [...]struct {
	name   string
	points int
	color  string
}{
	Drone:     {"DRONE", 50, ColorDrone},
	Stinger:   {"STINGER", 100, ColorStinger},
	Commander: {"COMMANDER", 200, ColorCommander},
}

func (t EnemyType) String() string { return enemyTable[t].name }

// Points 击毁得分
func (t EnemyType) Points() int { return enemyTable[t].points }

// Color 渲染颜色
func (t EnemyType) Color() string { return enemyTable[t].color }

// rowType 敌阵行号到类型：第 0 行指挥官，1-2 行毒刺，其余无人机
func rowType(row int) EnemyType {
	switch {
	case row == 0:
		return Commander
	case row < 3:
		return Stinger
	default:
		return Drone
	}
}

// Player 玩家飞船
type Player struct {
	Pos   Vec2
	Lives int
}

// Enemy 敌机；Origin 为编队槽位，本关内不变
type Enemy struct {
	ID        string
	Type      EnemyType
	Pos       Vec2
	Origin    Vec2
	Active    bool
	Diving    bool
	DivePhase float64
	Color     string
}

// Bullet 子弹，FromPlayer 区分敌我
type Bullet struct {
	ID         uint64
	Pos        Vec2
	Vel        Vec2
	FromPlayer bool
	Active     bool
}

// Particle 爆炸粒子，纯视觉
type Particle struct {
	Pos     Vec2
	Vel     Vec2
	Life    float64
	MaxLife float64
	Color   string
}

// Stats 本局统计
type Stats struct {
	Score      int `json:"score" msgpack:"score"`
	Lives      int `json:"lives" msgpack:"lives"`
	Level      int `json:"level" msgpack:"level"`
	ShotsFired int `json:"shotsFired" msgpack:"shotsFired"`
	Hits       int `json:"hits" msgpack:"hits"`
}

// Accuracy 命中率 hits/shotsFired，未开火时为 0
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.ShotsFired)
}
