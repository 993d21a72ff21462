package game

// Rules holds the tunable constants of the simulation. Distances are world
// units, speeds are world units per frame and angles are degrees.
type Rules struct {
	WorldWidth  float64
	WorldHeight float64

	RotationSpeed float64
	Thrust        float64
	MaxSpeed      float64
	Friction      float64
	SmokeJitter   float64

	MissileSpeed float64
	MissileCap   int

	SmokeCap int
	// Sizes are drawn from [SmokeSizeMin, SmokeSizeMax).
	SmokeSizeMin   uint32
	SmokeSizeMax   uint32
	SmokeSlackMin  float64
	SmokeSlackMax  float64
	SmokeSpeedMin  float64
	SmokeSpeedMax  float64
	ShrinkSpeedMin float64
	ShrinkSpeedMax float64
	// Shrink factors are drawn from [ShrinkFactorMin, ShrinkFactorMax], inclusive.
	ShrinkFactorMin uint32
	ShrinkFactorMax uint32
	ShrinkTime      float64

	PlayerStart      Position
	AsteroidStart    Position
	AsteroidSpeed    float64
	AsteroidRotSpeed float64
}

// DefaultRules returns the classic 800x600 arcade tuning.
func DefaultRules() Rules {
	return Rules{
		WorldWidth:  800,
		WorldHeight: 600,

		RotationSpeed: 2.5,
		Thrust:        4.0,
		MaxSpeed:      4.5,
		Friction:      0.95,
		SmokeJitter:   20,

		MissileSpeed: 6.0,
		MissileCap:   10000,

		SmokeCap:        64,
		SmokeSizeMin:    16,
		SmokeSizeMax:    52,
		SmokeSlackMin:   1.005,
		SmokeSlackMax:   1.1,
		SmokeSpeedMin:   4.0,
		SmokeSpeedMax:   5.0,
		ShrinkSpeedMin:  0.3,
		ShrinkSpeedMax:  1.0,
		ShrinkFactorMin: 2,
		ShrinkFactorMax: 3,
		ShrinkTime:      1.0,

		PlayerStart:      Position{X: 350, Y: 250, Rot: 0},
		AsteroidStart:    Position{X: 200, Y: 400, Rot: 45},
		AsteroidSpeed:    2.5,
		AsteroidRotSpeed: 0.25,
	}
}

func (r Rules) shipSprite() Renderable    { return sprite(TexShip, 32, 32, 64, 64) }
func (r Rules) rockSprite() Renderable    { return sprite(TexRock, 32, 32, 64, 64) }
func (r Rules) missileSprite() Renderable { return sprite(TexMissile, 24, 8, 24, 8) }
func (r Rules) smokeSprite(size uint32) Renderable {
	return sprite(TexSmoke, 16, 16, size, size)
}
