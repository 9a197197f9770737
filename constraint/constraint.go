package constraint

import (
	"math"

	"github.com/akmonengine/physac/actor"
)

const (
	// Epsilon is the tolerance used by the solver for near-zero quantities
	Epsilon = 0.000001

	// PenetrationAllowance is the depth left uncorrected, to avoid jitter on resting bodies
	PenetrationAllowance = 0.05
	// PenetrationCorrection is the fraction of the remaining depth corrected every step
	PenetrationCorrection = 0.4
)

// ImpulseMode selects what happens to a contact whose impulse is not needed
type ImpulseMode int

const (
	// ImpulseModeSkip moves on to the next contact point of the manifold
	ImpulseModeSkip ImpulseMode = iota
	// ImpulseModeLegacy stops processing the whole manifold, as Physac 1.x does.
	// With two contact points, the second one is then never resolved.
	ImpulseModeLegacy
)

func (m ImpulseMode) String() string {
	if m == ImpulseModeLegacy {
		return "legacy"
	}
	return "skip"
}

// ComputeRestitution mixes the restitution of two materials.
// The geometric mean makes a zero on either side win.
func ComputeRestitution(matA, matB actor.Material) float64 {
	return math.Sqrt(matA.Restitution * matB.Restitution)
}

func ComputeStaticFriction(matA, matB actor.Material) float64 {
	return math.Sqrt(matA.StaticFriction * matB.StaticFriction)
}

func ComputeDynamicFriction(matA, matB actor.Material) float64 {
	return math.Sqrt(matA.DynamicFriction * matB.DynamicFriction)
}
