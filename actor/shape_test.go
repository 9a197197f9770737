package actor

import (
	"errors"
	"math"
	"testing"

	"github.com/ByteArena/box2d"
	"github.com/go-gl/mathgl/mgl64"
)

func floatEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

func vec2Equal(a, b mgl64.Vec2, epsilon float64) bool {
	return floatEqual(a.X(), b.X(), epsilon) && floatEqual(a.Y(), b.Y(), epsilon)
}

// =============================================================================
// ShapeType Tests
// =============================================================================

func TestShapeType_String(t *testing.T) {
	if ShapeTypeCircle.String() != "circle" {
		t.Errorf("Expected circle, got %s", ShapeTypeCircle)
	}
	if ShapeTypePolygon.String() != "polygon" {
		t.Errorf("Expected polygon, got %s", ShapeTypePolygon)
	}
	if ShapeType(7).String() != "ShapeType(7)" {
		t.Errorf("Expected ShapeType(7), got %s", ShapeType(7))
	}
}

// =============================================================================
// VertexData Tests
// =============================================================================

func TestNewRegularPolygon(t *testing.T) {
	for _, sides := range []int{3, 4, 5, 8, MaxVertices} {
		data, err := NewRegularPolygon(2, sides)
		if err != nil {
			t.Fatalf("%d sides: unexpected error %v", sides, err)
		}

		if data.Count != sides {
			t.Errorf("Expected %d vertices, got %d", sides, data.Count)
		}

		for i := 0; i < data.Count; i++ {
			if !floatEqual(data.Positions[i].Len(), 2, 1e-9) {
				t.Errorf("%d sides: vertex %d expected at distance 2, got %v", sides, i, data.Positions[i].Len())
			}
			if !floatEqual(data.Normals[i].Len(), 1, 1e-9) {
				t.Errorf("%d sides: normal %d should be unit, got length %v", sides, i, data.Normals[i].Len())
			}
			// Outward: the normal points away from the origin
			if data.Normals[i].Dot(data.Positions[i]) <= 0 {
				t.Errorf("%d sides: normal %d should point outward, got %v", sides, i, data.Normals[i])
			}
		}
	}
}

func TestNewRegularPolygon_InvalidSides(t *testing.T) {
	for _, sides := range []int{-1, 0, 2, MaxVertices + 1, 100} {
		_, err := NewRegularPolygon(1, sides)
		if !errors.Is(err, ErrVertexCount) {
			t.Errorf("%d sides: expected ErrVertexCount, got %v", sides, err)
		}
	}

	_, err := NewRegularPolygon(0, 5)
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("zero radius: expected ErrDegenerate, got %v", err)
	}
}

func TestNewRectangle(t *testing.T) {
	data, err := NewRectangle(4, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Count != 4 {
		t.Fatalf("Expected 4 vertices, got %d", data.Count)
	}
	if !floatEqual(data.Area(), 8, 1e-12) {
		t.Errorf("Expected area 8, got %v", data.Area())
	}

	expectedNormals := []mgl64.Vec2{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i, expected := range expectedNormals {
		if !vec2Equal(data.Normals[i], expected, 1e-12) {
			t.Errorf("normal %d: expected %v, got %v", i, expected, data.Normals[i])
		}
	}

	if _, err := NewRectangle(0, 1); !errors.Is(err, ErrDegenerate) {
		t.Errorf("Expected ErrDegenerate for a zero width, got %v", err)
	}
}

func TestNewVertexData_Clockwise(t *testing.T) {
	// Same square, both windings
	counterClockwise := []mgl64.Vec2{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
	clockwise := []mgl64.Vec2{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}

	for name, points := range map[string][]mgl64.Vec2{"ccw": counterClockwise, "cw": clockwise} {
		data, err := NewVertexData(points)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}

		if data.signedArea() <= 0 {
			t.Errorf("%s: expected a positive signed area, got %v", name, data.signedArea())
		}
		for i := 0; i < data.Count; i++ {
			if data.Normals[i].Dot(data.Positions[i]) <= 0 {
				t.Errorf("%s: normal %d should point outward, got %v", name, i, data.Normals[i])
			}
		}
	}
}

func TestNewVertexData_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		points   []mgl64.Vec2
		expected error
	}{
		{"two points", []mgl64.Vec2{{0, 0}, {1, 0}}, ErrVertexCount},
		{"too many points", make([]mgl64.Vec2, MaxVertices+1), ErrVertexCount},
		{"collinear", []mgl64.Vec2{{0, 0}, {1, 0}, {2, 0}}, ErrDegenerate},
		{"duplicated", []mgl64.Vec2{{0, 0}, {1, 0}, {1, 0}, {0, 1}}, ErrDegenerate},
		{"concave", []mgl64.Vec2{{0, 0}, {2, 0}, {1, 0.5}, {2, 2}, {0, 2}}, ErrDegenerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVertexData(tt.points)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestVertexData_Support(t *testing.T) {
	data, _ := NewRectangle(2, 2)

	support := data.Support(mgl64.Vec2{1, 1})
	if support != (mgl64.Vec2{1, 1}) {
		t.Errorf("Expected [1 1], got %v", support)
	}

	support = data.Support(mgl64.Vec2{-1, 0.1})
	if support != (mgl64.Vec2{-1, 1}) {
		t.Errorf("Expected [-1 1], got %v", support)
	}
}

func TestVertexData_Recenter(t *testing.T) {
	data, err := NewVertexData([]mgl64.Vec2{{2, 2}, {4, 2}, {4, 6}, {2, 6}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	center := data.Recenter()
	if !vec2Equal(center, mgl64.Vec2{3, 4}, 1e-12) {
		t.Errorf("Expected former centroid [3 4], got %v", center)
	}
	if !vec2Equal(data.Centroid(), mgl64.Vec2{}, 1e-12) {
		t.Errorf("Expected centroid at origin, got %v", data.Centroid())
	}
}

// =============================================================================
// Mass Tests
// =============================================================================

func TestShape_ComputeMass_Circle(t *testing.T) {
	shape := Shape{Type: ShapeTypeCircle, Radius: 2}

	mass, inertia := shape.ComputeMass(3)

	expectedMass := math.Pi * 4 * 3
	if !floatEqual(mass, expectedMass, 1e-9) {
		t.Errorf("Expected mass %v, got %v", expectedMass, mass)
	}
	if !floatEqual(inertia, expectedMass*4, 1e-9) {
		t.Errorf("Expected inertia %v, got %v", expectedMass*4, inertia)
	}
}

func TestShape_ComputeMass_Rectangle(t *testing.T) {
	width, height, density := 4.0, 2.0, 1.5
	data, _ := NewRectangle(width, height)
	shape := Shape{Type: ShapeTypePolygon, VertexData: data}

	mass, inertia := shape.ComputeMass(density)

	expectedMass := density * width * height
	expectedInertia := expectedMass * (width*width + height*height) / 12
	if !floatEqual(mass, expectedMass, 1e-9) {
		t.Errorf("Expected mass %v, got %v", expectedMass, mass)
	}
	if !floatEqual(inertia, expectedInertia, 1e-9) {
		t.Errorf("Expected inertia %v, got %v", expectedInertia, inertia)
	}
}

// The body inertia is computed about the centroid, so it does not depend on
// where the body is created
func TestRectangleBody_InertiaIndependentOfPosition(t *testing.T) {
	atOrigin, _ := NewRectangleBody(mgl64.Vec2{0, 0}, 3, 1, 1)
	farAway, _ := NewRectangleBody(mgl64.Vec2{250, -40}, 3, 1, 1)

	if !floatEqual(atOrigin.Inertia, farAway.Inertia, 1e-9) {
		t.Errorf("Expected the same inertia, got %v and %v", atOrigin.Inertia, farAway.Inertia)
	}
}

// Polygon mass properties are cross-checked with box2d
func TestShape_ComputeMass_MatchesBox2D(t *testing.T) {
	polygons := map[string][]mgl64.Vec2{
		"triangle":    {{0, 0}, {3, 0}, {0, 2}},
		"square":      {{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		"offset quad": {{2, 1}, {6, 2}, {5, 5}, {1, 4}},
		"pentagon":    {{0, -2}, {2, -0.5}, {1.2, 2}, {-1.2, 2}, {-2, -0.5}},
	}
	density := 2.5

	for name, points := range polygons {
		t.Run(name, func(t *testing.T) {
			data, err := NewVertexData(points)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			body, err := NewPolygonBody(mgl64.Vec2{}, data, density)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// box2d computes the inertia about the shape origin, the centroid here
			vertices := make([]box2d.B2Vec2, body.Shape.VertexData.Count)
			for i := range vertices {
				p := body.Shape.VertexData.Positions[i]
				vertices[i] = box2d.MakeB2Vec2(p.X(), p.Y())
			}
			polygon := box2d.MakeB2PolygonShape()
			polygon.Set(vertices, len(vertices))

			massData := box2d.MakeMassData()
			polygon.ComputeMass(&massData, density)

			if !floatEqual(body.Mass, massData.Mass, 1e-9) {
				t.Errorf("Expected mass %v, got %v", massData.Mass, body.Mass)
			}
			if !floatEqual(body.Inertia, massData.I, 1e-6) {
				t.Errorf("Expected inertia %v, got %v", massData.I, body.Inertia)
			}
			if !floatEqual(massData.Center.X, 0, 1e-9) || !floatEqual(massData.Center.Y, 0, 1e-9) {
				t.Errorf("Expected the box2d center at the origin, got %v", massData.Center)
			}
		})
	}
}

func TestShape_Validate(t *testing.T) {
	valid, err := NewRegularPolygon(1, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	overflow := valid
	overflow.Count = MaxVertices + 6

	tests := []struct {
		name     string
		shape    Shape
		expected error
	}{
		{"circle", Shape{Type: ShapeTypeCircle, Radius: 1}, nil},
		{"polygon", Shape{Type: ShapeTypePolygon, VertexData: valid}, nil},
		{"zero radius", Shape{Type: ShapeTypeCircle}, ErrDegenerate},
		{"too many vertices", Shape{Type: ShapeTypePolygon, VertexData: overflow}, ErrVertexCount},
		{"too few vertices", Shape{Type: ShapeTypePolygon, VertexData: VertexData{Count: 2}}, ErrVertexCount},
		{"unknown type", Shape{Type: ShapeType(7), Radius: 1}, ErrDegenerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.shape.Validate(); !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}
