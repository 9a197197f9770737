package physac

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/akmonengine/physac/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	MaxBodies    = 64
	MaxManifolds = 4096

	// DefaultDeltaTime is the fixed step, in seconds
	DefaultDeltaTime  = 1.0 / 60.0
	DefaultIterations = 100
	// DefaultGravity is along +y, the screen space down
	DefaultGravityY = 9.81
)

// Config holds the settings of a World
type Config struct {
	// Gravity acceleration, in units/s²
	Gravity mgl64.Vec2
	// DeltaTime is the duration of one step, in seconds
	DeltaTime float64
	// Iterations is the number of impulse passes per step
	Iterations  int
	ImpulseMode constraint.ImpulseMode

	Debug  bool
	Logger *log.Logger
	// Clock is read by RunStep, time.Now when nil
	Clock func() time.Time
}

func DefaultConfig() Config {
	return Config{
		Gravity:     mgl64.Vec2{0, DefaultGravityY},
		DeltaTime:   DefaultDeltaTime,
		Iterations:  DefaultIterations,
		ImpulseMode: constraint.ImpulseModeSkip,
		Logger:      defaultLogger(),
		Clock:       time.Now,
	}
}

func defaultLogger() *log.Logger {
	return log.New(os.Stderr, "physac: ", log.LstdFlags)
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.DeltaTime <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeStep, c.DeltaTime)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfig, c.Iterations)
	}
	if c.ImpulseMode != constraint.ImpulseModeSkip && c.ImpulseMode != constraint.ImpulseModeLegacy {
		return fmt.Errorf("%w: impulse mode %d", ErrInvalidConfig, int(c.ImpulseMode))
	}

	return nil
}
