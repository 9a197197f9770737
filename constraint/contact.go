package constraint

import (
	"math"

	"github.com/akmonengine/physac/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Manifold describes the contact between two bodies for a single step
type Manifold struct {
	ID          int
	BodyA       *actor.RigidBody
	BodyB       *actor.RigidBody
	Penetration float64
	// Normal points from BodyA toward BodyB
	Normal        mgl64.Vec2
	Contacts      [2]mgl64.Vec2
	ContactsCount int

	// Mixed material properties, set by Initialize
	Restitution     float64
	StaticFriction  float64
	DynamicFriction float64
}

// relativeVelocity returns the velocity of B relative to A at a contact point
func (m *Manifold) relativeVelocity(radiusA, radiusB mgl64.Vec2) mgl64.Vec2 {
	vB := m.BodyB.Velocity.Add(actor.CrossScalar(m.BodyB.AngularVelocity, radiusB))
	vA := m.BodyA.Velocity.Add(actor.CrossScalar(m.BodyA.AngularVelocity, radiusA))

	return vB.Sub(vA)
}

// Initialize mixes the material properties and detects resting contacts.
// If gravity alone explains the relative velocity, the contact is resting and
// bounces are disabled.
func (m *Manifold) Initialize(dt float64, gravity mgl64.Vec2) {
	if m.BodyA == nil || m.BodyB == nil {
		return
	}

	m.Restitution = ComputeRestitution(m.BodyA.Material, m.BodyB.Material)
	m.StaticFriction = ComputeStaticFriction(m.BodyA.Material, m.BodyB.Material)
	m.DynamicFriction = ComputeDynamicFriction(m.BodyA.Material, m.BodyB.Material)

	restingSpeedSqr := actor.LenSqr(gravity.Mul(dt)) + Epsilon
	for i := 0; i < m.ContactsCount; i++ {
		radiusA := m.Contacts[i].Sub(m.BodyA.Position)
		radiusB := m.Contacts[i].Sub(m.BodyB.Position)

		if actor.LenSqr(m.relativeVelocity(radiusA, radiusB)) < restingSpeedSqr {
			m.Restitution = 0
		}
	}
}

// IntegrateImpulses applies one pass of normal and friction impulses
func (m *Manifold) IntegrateImpulses(mode ImpulseMode) {
	bodyA, bodyB := m.BodyA, m.BodyB
	if bodyA == nil || bodyB == nil {
		return
	}

	// Two bodies with infinite mass can only stop
	if math.Abs(bodyA.InverseMass+bodyB.InverseMass) <= Epsilon {
		bodyA.Velocity = mgl64.Vec2{}
		bodyB.Velocity = mgl64.Vec2{}
		return
	}

	contactsCount := float64(m.ContactsCount)
	for i := 0; i < m.ContactsCount; i++ {
		radiusA := m.Contacts[i].Sub(bodyA.Position)
		radiusB := m.Contacts[i].Sub(bodyB.Position)

		relativeVel := m.relativeVelocity(radiusA, radiusB)
		contactVel := relativeVel.Dot(m.Normal)

		// Do not pull separating bodies together
		if contactVel > 0 {
			if mode == ImpulseModeLegacy {
				return
			}
			continue
		}

		raCrossN := actor.Cross(radiusA, m.Normal)
		rbCrossN := actor.Cross(radiusB, m.Normal)
		inverseMassSum := bodyA.InverseMass + bodyB.InverseMass +
			raCrossN*raCrossN*bodyA.InverseInertia + rbCrossN*rbCrossN*bodyB.InverseInertia

		// ========== NORMAL IMPULSE ==========
		impulse := -(1.0 + m.Restitution) * contactVel
		impulse /= inverseMassSum
		impulse /= contactsCount

		impulseV := m.Normal.Mul(impulse)
		bodyA.ApplyImpulse(impulseV.Mul(-1), radiusA)
		bodyB.ApplyImpulse(impulseV, radiusB)

		// ========== TANGENTIAL IMPULSE (friction) ==========
		relativeVel = m.relativeVelocity(radiusA, radiusB)
		tangent := actor.Normalize(relativeVel.Sub(m.Normal.Mul(relativeVel.Dot(m.Normal))))

		impulseTangent := -relativeVel.Dot(tangent)
		impulseTangent /= inverseMassSum
		impulseTangent /= contactsCount

		// Tiny friction impulses are not worth applying
		if math.Abs(impulseTangent) <= Epsilon {
			if mode == ImpulseModeLegacy {
				return
			}
			continue
		}

		// Coulomb's law: static friction holds while the impulse stays in the cone
		var tangentImpulse mgl64.Vec2
		if math.Abs(impulseTangent) < impulse*m.StaticFriction {
			tangentImpulse = tangent.Mul(impulseTangent)
		} else {
			tangentImpulse = tangent.Mul(-impulse * m.DynamicFriction)
		}

		bodyA.ApplyImpulse(tangentImpulse.Mul(-1), radiusA)
		bodyB.ApplyImpulse(tangentImpulse, radiusB)
	}
}

// CorrectPositions pushes the bodies apart along the normal (Baumgarte stabilization).
// Each body moves in proportion to its inverse mass.
func (m *Manifold) CorrectPositions() {
	bodyA, bodyB := m.BodyA, m.BodyB
	if bodyA == nil || bodyB == nil {
		return
	}

	inverseMassSum := bodyA.InverseMass + bodyB.InverseMass
	if inverseMassSum == 0 {
		return
	}

	correction := math.Max(m.Penetration-PenetrationAllowance, 0) / inverseMassSum * PenetrationCorrection
	correctionV := m.Normal.Mul(correction)

	if bodyA.Enabled {
		bodyA.Position = bodyA.Position.Sub(correctionV.Mul(bodyA.InverseMass))
	}
	if bodyB.Enabled {
		bodyB.Position = bodyB.Position.Add(correctionV.Mul(bodyB.InverseMass))
	}
}
