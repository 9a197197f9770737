package collision

import (
	"math"

	"github.com/akmonengine/physac/actor"
	"github.com/akmonengine/physac/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

func polygonToPolygon(manifold *constraint.Manifold) {
	bodyA, bodyB := manifold.BodyA, manifold.BodyB

	// Separating axis among A faces
	faceA, penetrationA := findAxisLeastPenetration(bodyA, bodyB)
	if penetrationA >= 0 {
		return
	}

	// Separating axis among B faces
	faceB, penetrationB := findAxisLeastPenetration(bodyB, bodyA)
	if penetrationB >= 0 {
		return
	}

	// Reference face holder, the normal must still point from A to B
	var reference, incident *actor.RigidBody
	var referenceIndex int
	flip := false

	if biasGreaterThan(penetrationA, penetrationB) {
		reference, incident, referenceIndex = bodyA, bodyB, faceA
	} else {
		reference, incident, referenceIndex = bodyB, bodyA, faceB
		flip = true
	}

	incidentFace := findIncidentFace(reference, incident, referenceIndex)

	// Reference face in world space
	refData := reference.Shape.VertexData
	v1 := reference.Shape.Transform.Mul2x1(refData.Positions[referenceIndex]).Add(reference.Position)
	v2 := reference.Shape.Transform.Mul2x1(refData.Positions[actor.Next(referenceIndex, refData.Count)]).Add(reference.Position)

	sidePlaneNormal := actor.Normalize(v2.Sub(v1))
	refFaceNormal := mgl64.Vec2{sidePlaneNormal.Y(), -sidePlaneNormal.X()}

	refC := refFaceNormal.Dot(v1)
	negSide := -sidePlaneNormal.Dot(v1)
	posSide := sidePlaneNormal.Dot(v2)

	// Floating point error may leave less than two points
	if clipSegment(sidePlaneNormal.Mul(-1), negSide, &incidentFace) < 2 {
		return
	}
	if clipSegment(sidePlaneNormal, posSide, &incidentFace) < 2 {
		return
	}

	if flip {
		manifold.Normal = refFaceNormal.Mul(-1)
	} else {
		manifold.Normal = refFaceNormal
	}

	// Keep the points behind the reference face
	contacts := 0
	penetration := 0.0
	for _, point := range incidentFace {
		separation := refFaceNormal.Dot(point) - refC
		if separation <= 0 {
			manifold.Contacts[contacts] = point
			penetration += -separation
			contacts++
		}
	}

	if contacts > 0 {
		penetration /= float64(contacts)
	}

	manifold.Penetration = penetration
	manifold.ContactsCount = contacts
}

// findAxisLeastPenetration returns the face of a whose plane is the least
// penetrated by b, with the signed distance of b support point to it.
// A positive distance is a separating axis.
func findAxisLeastPenetration(a, b *actor.RigidBody) (int, float64) {
	bestIndex := 0
	bestDistance := -math.MaxFloat64

	dataA := a.Shape.VertexData
	bTranspose := b.Shape.Transform.Transpose()

	for i := 0; i < dataA.Count; i++ {
		// Face normal of A, in B model space
		normal := bTranspose.Mul2x1(a.Shape.Transform.Mul2x1(dataA.Normals[i]))

		// Deepest point of B along the opposite of the normal
		support := b.Shape.VertexData.Support(normal.Mul(-1))

		// Vertex on the face of A, in B model space
		vertex := a.Shape.Transform.Mul2x1(dataA.Positions[i]).Add(a.Position).Sub(b.Position)
		vertex = bTranspose.Mul2x1(vertex)

		distance := normal.Dot(support.Sub(vertex))
		if distance > bestDistance {
			bestDistance = distance
			bestIndex = i
		}
	}

	return bestIndex, bestDistance
}

// findIncidentFace returns in world space the face of incident that is the
// most anti-parallel to the reference face
func findIncidentFace(reference, incident *actor.RigidBody, referenceIndex int) [2]mgl64.Vec2 {
	incData := incident.Shape.VertexData

	// Reference normal in the incident model space
	refNormal := reference.Shape.Transform.Mul2x1(reference.Shape.VertexData.Normals[referenceIndex])
	refNormal = incident.Shape.Transform.Transpose().Mul2x1(refNormal)

	incidentFace := 0
	minDot := math.MaxFloat64
	for i := 0; i < incData.Count; i++ {
		dot := refNormal.Dot(incData.Normals[i])
		if dot < minDot {
			minDot = dot
			incidentFace = i
		}
	}

	return [2]mgl64.Vec2{
		incident.Shape.Transform.Mul2x1(incData.Positions[incidentFace]).Add(incident.Position),
		incident.Shape.Transform.Mul2x1(incData.Positions[actor.Next(incidentFace, incData.Count)]).Add(incident.Position),
	}
}

// clipSegment clips the segment against the half plane dot(normal, p) <= offset.
// It returns the number of points kept, the segment is updated in place.
func clipSegment(normal mgl64.Vec2, offset float64, face *[2]mgl64.Vec2) int {
	sp := 0
	out := *face

	// Distances from each endpoint to the line
	distanceA := normal.Dot(face[0]) - offset
	distanceB := normal.Dot(face[1]) - offset

	// Behind the plane
	if distanceA <= 0 {
		out[sp] = face[0]
		sp++
	}
	if distanceB <= 0 {
		out[sp] = face[1]
		sp++
	}

	// Points on each side of the plane: keep the intersection
	if distanceA*distanceB < 0 {
		alpha := distanceA / (distanceA - distanceB)
		out[sp] = face[0].Add(face[1].Sub(face[0]).Mul(alpha))
		sp++
	}

	*face = out
	return sp
}

// biasGreaterThan favors a over b when they are almost equal, which keeps the
// same reference face from one step to the next
func biasGreaterThan(a, b float64) bool {
	return a >= b*0.95+a*0.01
}
