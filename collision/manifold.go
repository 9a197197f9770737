// Package collision computes contact manifolds between pairs of bodies.
//
// A manifold holds up to two contact points, a penetration depth and a
// normal pointing from body A toward body B. The algorithm is chosen from the
// shape types of the pair:
//   - Circle-Circle: distance between centers
//   - Circle-Polygon: closest feature (face or vertex) in the polygon space
//   - Polygon-Circle: same as above with the bodies swapped
//   - Polygon-Polygon: separating axis test, then the incident face is clipped
//     against the reference face side planes
//
// References:
//   - Randy Gaul: "How to Create a Custom 2D Physics Engine" (2013)
//   - Erin Catto: "Contact Manifolds", GDC (2007)
package collision

import (
	"github.com/akmonengine/physac/actor"
	"github.com/akmonengine/physac/constraint"
)

// SolveManifold computes the contact information of the manifold bodies.
// A manifold without contacts has ContactsCount set to zero.
func SolveManifold(manifold *constraint.Manifold) {
	bodyA, bodyB := manifold.BodyA, manifold.BodyB
	if bodyA == nil || bodyB == nil {
		return
	}

	manifold.ContactsCount = 0
	manifold.Penetration = 0

	switch bodyA.Shape.Type {
	case actor.ShapeTypeCircle:
		switch bodyB.Shape.Type {
		case actor.ShapeTypeCircle:
			circleToCircle(manifold)
		case actor.ShapeTypePolygon:
			circleToPolygon(manifold)
		}
	case actor.ShapeTypePolygon:
		switch bodyB.Shape.Type {
		case actor.ShapeTypeCircle:
			polygonToCircle(manifold)
		case actor.ShapeTypePolygon:
			polygonToPolygon(manifold)
		}
	}

	updateGrounded(manifold)
}

// updateGrounded flags the body lying on top of the other one.
// With y pointing down, a normal going up means B rests on A.
func updateGrounded(manifold *constraint.Manifold) {
	if manifold.ContactsCount == 0 {
		return
	}
	// Sensors never hold a body
	if manifold.BodyA.IsTrigger || manifold.BodyB.IsTrigger {
		return
	}

	if manifold.Normal.Y() < 0 && !manifold.BodyB.IsGrounded {
		manifold.BodyB.IsGrounded = true
	}
	if manifold.Normal.Y() > 0 && !manifold.BodyA.IsGrounded {
		manifold.BodyA.IsGrounded = true
	}
}
