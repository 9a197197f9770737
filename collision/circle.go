package collision

import (
	"math"

	"github.com/akmonengine/physac/actor"
	"github.com/akmonengine/physac/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

func circleToCircle(manifold *constraint.Manifold) {
	bodyA, bodyB := manifold.BodyA, manifold.BodyB

	normal := bodyB.Position.Sub(bodyA.Position)
	distSqr := actor.LenSqr(normal)
	radius := bodyA.Shape.Radius + bodyB.Shape.Radius

	if distSqr >= radius*radius {
		return
	}

	distance := math.Sqrt(distSqr)
	manifold.ContactsCount = 1

	// Coincident centers: any direction works, pick a stable one
	if distance == 0 {
		manifold.Penetration = bodyA.Shape.Radius
		manifold.Normal = mgl64.Vec2{1, 0}
		manifold.Contacts[0] = bodyA.Position
		return
	}

	manifold.Penetration = radius - distance
	// sqrt is already computed, no need to call Normalize
	manifold.Normal = normal.Mul(1.0 / distance)
	manifold.Contacts[0] = bodyA.Position.Add(manifold.Normal.Mul(bodyA.Shape.Radius))
}

func circleToPolygon(manifold *constraint.Manifold) {
	circlePolygon(manifold, manifold.BodyA, manifold.BodyB)
}

func polygonToCircle(manifold *constraint.Manifold) {
	circlePolygon(manifold, manifold.BodyB, manifold.BodyA)
	manifold.Normal = manifold.Normal.Mul(-1)
}

// circlePolygon fills the manifold for a circle against a polygon, with a
// normal pointing from the circle toward the polygon
func circlePolygon(manifold *constraint.Manifold, circle, polygon *actor.RigidBody) {
	radius := circle.Shape.Radius
	transform := polygon.Shape.Transform
	vertexData := polygon.Shape.VertexData

	// Circle center in the polygon model space
	center := transform.Transpose().Mul2x1(circle.Position.Sub(polygon.Position))

	// Find the face with the least penetration, same idea as the polygon support points
	separation := -math.MaxFloat64
	faceNormal := 0
	for i := 0; i < vertexData.Count; i++ {
		currentSeparation := vertexData.Normals[i].Dot(center.Sub(vertexData.Positions[i]))

		if currentSeparation > radius {
			return
		}

		if currentSeparation > separation {
			separation = currentSeparation
			faceNormal = i
		}
	}

	v1 := vertexData.Positions[faceNormal]
	v2 := vertexData.Positions[actor.Next(faceNormal, vertexData.Count)]

	// Center inside the polygon
	if separation < constraint.Epsilon {
		manifold.ContactsCount = 1
		manifold.Normal = transform.Mul2x1(vertexData.Normals[faceNormal]).Mul(-1)
		manifold.Contacts[0] = circle.Position.Add(manifold.Normal.Mul(radius))
		manifold.Penetration = radius
		return
	}

	// Voronoi region of the face the center lies in
	dot1 := center.Sub(v1).Dot(v2.Sub(v1))
	dot2 := center.Sub(v2).Dot(v1.Sub(v2))
	penetration := radius - separation

	switch {
	case dot1 <= 0: // closest to v1
		if actor.DistSqr(center, v1) > radius*radius {
			return
		}

		manifold.Normal = actor.Normalize(transform.Mul2x1(v1.Sub(center)))
		manifold.Contacts[0] = transform.Mul2x1(v1).Add(polygon.Position)
	case dot2 <= 0: // closest to v2
		if actor.DistSqr(center, v2) > radius*radius {
			return
		}

		manifold.Normal = actor.Normalize(transform.Mul2x1(v2.Sub(center)))
		manifold.Contacts[0] = transform.Mul2x1(v2).Add(polygon.Position)
	default: // closest to the face
		normal := vertexData.Normals[faceNormal]
		if center.Sub(v1).Dot(normal) > radius {
			return
		}

		manifold.Normal = transform.Mul2x1(normal).Mul(-1)
		manifold.Contacts[0] = circle.Position.Add(manifold.Normal.Mul(radius))
	}

	manifold.ContactsCount = 1
	manifold.Penetration = penetration
}
