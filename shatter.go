package physac

import (
	"fmt"
	"slices"

	"github.com/akmonengine/physac/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ShatterScale shrinks every piece so the pieces do not start overlapping
const ShatterScale = 0.95

// Shatter breaks a polygon body into triangles meeting at point, if point is
// inside the body. Each piece is pushed away from point with force.
// It returns nil pieces and a nil error when point misses the body.
func (w *World) Shatter(body *actor.RigidBody, point mgl64.Vec2, force float64) ([]*actor.RigidBody, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if !slices.Contains(w.bodies, body) {
		w.debugf("body id %d could not be shattered, not found", body.ID)
		return nil, fmt.Errorf("%w: id %d", ErrBodyNotFound, body.ID)
	}
	if body.Shape.Type != actor.ShapeTypePolygon {
		w.debugf("body id %d could not be shattered, %s shape", body.ID, body.Shape.Type)
		return nil, ErrNotPolygon
	}

	if !body.ComputeAABB().ContainsPoint(point) {
		return nil, nil
	}

	vertexData := body.Shape.VertexData
	transform := body.Shape.Transform
	count := vertexData.Count

	hit := false
	for i := 0; i < count; i++ {
		vertexA := body.Position.Add(transform.Mul2x1(vertexData.Positions[i]))
		vertexB := body.Position.Add(transform.Mul2x1(vertexData.Positions[actor.Next(i, count)]))

		if pointInTriangle(point, body.Position, vertexA, vertexB) {
			hit = true
			break
		}
	}
	if !hit {
		return nil, nil
	}

	if len(w.bodies)-1+count > MaxBodies {
		w.debugf("body id %d could not be shattered into %d pieces", body.ID, count)
		return nil, fmt.Errorf("%w: %d pieces needed", ErrBodyLimit, count)
	}

	// Copy of the body state before it is destroyed
	original := *body
	density := body.Density()
	impact := transform.Transpose().Mul2x1(point.Sub(body.Position))

	if err := w.DestroyBody(body); err != nil {
		return nil, err
	}

	pieces := make([]*actor.RigidBody, 0, count)
	for i := 0; i < count; i++ {
		v1 := vertexData.Positions[i]
		v2 := vertexData.Positions[actor.Next(i, count)]

		triangle, err := actor.NewVertexData([]mgl64.Vec2{v1, v2, impact})
		if err != nil {
			// point on the edge, nothing to build
			continue
		}
		center := triangle.Recenter()
		triangle = triangle.Scale(ShatterScale)

		position := original.Position.Add(transform.Mul2x1(center))
		piece, err := actor.NewPolygonBody(position, triangle, density)
		if err != nil {
			continue
		}

		piece.SetRotation(original.Orient)
		piece.Velocity = original.Velocity
		piece.AngularVelocity = original.AngularVelocity
		piece.Material = original.Material
		piece.UseGravity = original.UseGravity
		piece.FreezeOrient = original.FreezeOrient
		piece.Enabled = original.Enabled

		if err := w.AddBody(piece); err != nil {
			return pieces, err
		}

		// Push the piece outward, toward the middle of its outer edge
		edgeCenter := original.Position.Add(transform.Mul2x1(v1.Add(v2).Mul(0.5)))
		direction := actor.Normalize(edgeCenter.Sub(piece.Position))
		piece.AddForce(direction.Mul(force))

		pieces = append(pieces, piece)
	}

	w.debugf("shattered body id %d into %d pieces", original.ID, len(pieces))
	return pieces, nil
}

// pointInTriangle uses barycentric coordinates, points on the edges are inside
func pointInTriangle(point, a, b, c mgl64.Vec2) bool {
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := point.Sub(a)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denominator := dot00*dot11 - dot01*dot01
	if denominator == 0 {
		return false
	}

	u := (dot11*dot02 - dot01*dot12) / denominator
	v := (dot00*dot12 - dot01*dot02) / denominator

	return u >= 0 && v >= 0 && u+v <= 1
}
