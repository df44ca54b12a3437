package domain

// Типы сущностей
const (
	EntityTypeHiveling     EntityType = "HIVELING"
	EntityTypeTrail        EntityType = "TRAIL"
	EntityTypeFood         EntityType = "FOOD"
	EntityTypeObstacle     EntityType = "OBSTACLE"
	EntityTypeHiveEntrance EntityType = "HIVE_ENTRANCE"
)

// Изменения счета за решения
const (
	ScoreWait          = -1
	ScoreInvalid       = -2
	ScoreFailedPickup  = -1
	ScoreFoodDelivered = 15
)

// Параметры сущностей
const (
	DefaultRadius = 0.5
	TrailRadius   = 0.5
	TrailLifetime = 4
	MemoryCap     = 128 // в рунах
)

// Параметры хода
const (
	// RandomSeedLength - длина зерна, выдаваемого разуму на каждый вызов.
	RandomSeedLength = 16
	// DropDistance - расстояние перед хивлингом, куда кладется еда (локальная [0, 1]).
	DropDistance = 1.0
	// MaxStep - максимальная длина одного шага.
	MaxStep = 1.0
)

// Стили препятствий (косметика)
const (
	ObstacleStyleTreeStump = "treeStump"
	ObstacleStyleRocks     = "rocks"
)
