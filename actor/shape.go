package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypePolygon
)

func (t ShapeType) String() string {
	switch t {
	case ShapeTypeCircle:
		return "circle"
	case ShapeTypePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("ShapeType(%d)", int(t))
	}
}

const (
	// MaxVertices is the capacity of a polygon's vertex data
	MaxVertices = 24
	// CircleVertices is the number of points used to outline a circle
	CircleVertices = 24

	// inv3 is the 1/3 factor of the triangle centroid and inertia integrals
	inv3 = 1.0 / 3.0
)

var (
	ErrVertexCount = errors.New("actor: invalid vertex count")
	ErrDegenerate  = errors.New("actor: degenerate shape")
)

// VertexData holds a convex polygon in body-local space.
// Normals[i] is the outward unit normal of the edge from vertex i to vertex i+1.
type VertexData struct {
	Positions [MaxVertices]mgl64.Vec2
	Normals   [MaxVertices]mgl64.Vec2
	Count     int
}

// NewRegularPolygon creates a polygon with the given number of sides, every
// vertex at radius distance from the origin.
func NewRegularPolygon(radius float64, sides int) (VertexData, error) {
	var data VertexData

	if sides < 3 || sides > MaxVertices {
		return data, fmt.Errorf("%w: %d sides, want 3 to %d", ErrVertexCount, sides, MaxVertices)
	}
	if radius <= 0 {
		return data, fmt.Errorf("%w: radius %v", ErrDegenerate, radius)
	}

	data.Count = sides
	for i := 0; i < sides; i++ {
		angle := mgl64.DegToRad(360.0 / float64(sides) * float64(i))
		data.Positions[i] = mgl64.Vec2{math.Cos(angle) * radius, math.Sin(angle) * radius}
	}
	data.ComputeNormals()

	return data, nil
}

// NewRectangle creates an axis-aligned rectangle centered on the origin
func NewRectangle(width, height float64) (VertexData, error) {
	var data VertexData

	if width <= 0 || height <= 0 {
		return data, fmt.Errorf("%w: rectangle %vx%v", ErrDegenerate, width, height)
	}

	hw, hh := width/2, height/2
	data.Count = 4
	data.Positions[0] = mgl64.Vec2{hw, -hh}
	data.Positions[1] = mgl64.Vec2{hw, hh}
	data.Positions[2] = mgl64.Vec2{-hw, hh}
	data.Positions[3] = mgl64.Vec2{-hw, -hh}
	data.ComputeNormals()

	return data, nil
}

// NewVertexData creates a polygon from a list of convex hull points.
// Clockwise input is reversed so the normals always point outward.
func NewVertexData(points []mgl64.Vec2) (VertexData, error) {
	var data VertexData

	count := len(points)
	if count < 3 || count > MaxVertices {
		return data, fmt.Errorf("%w: %d vertices, want 3 to %d", ErrVertexCount, count, MaxVertices)
	}

	data.Count = count
	copy(data.Positions[:], points)

	if data.signedArea() < 0 {
		for i, j := 0, count-1; i < j; i, j = i+1, j-1 {
			data.Positions[i], data.Positions[j] = data.Positions[j], data.Positions[i]
		}
	}

	for i := 0; i < count; i++ {
		a := data.Positions[i]
		b := data.Positions[Next(i, count)]
		c := data.Positions[Next(Next(i, count), count)]

		if DistSqr(a, b) == 0 {
			return VertexData{}, fmt.Errorf("%w: duplicated vertex %d", ErrDegenerate, i)
		}
		if Cross(b.Sub(a), c.Sub(b)) < -1e-12 {
			return VertexData{}, fmt.Errorf("%w: polygon is not convex", ErrDegenerate)
		}
	}
	if data.signedArea() <= 1e-12 {
		return VertexData{}, fmt.Errorf("%w: zero area", ErrDegenerate)
	}

	data.ComputeNormals()

	return data, nil
}

// ComputeNormals recomputes the outward normal of every edge
func (v *VertexData) ComputeNormals() {
	for i := 0; i < v.Count; i++ {
		face := v.Positions[Next(i, v.Count)].Sub(v.Positions[i])
		v.Normals[i] = Normalize(mgl64.Vec2{face.Y(), -face.X()})
	}
}

// Support returns the vertex furthest along direction
func (v VertexData) Support(direction mgl64.Vec2) mgl64.Vec2 {
	bestProjection := -math.MaxFloat64
	var bestVertex mgl64.Vec2

	for i := 0; i < v.Count; i++ {
		projection := v.Positions[i].Dot(direction)
		if projection > bestProjection {
			bestVertex = v.Positions[i]
			bestProjection = projection
		}
	}

	return bestVertex
}

func (v VertexData) signedArea() float64 {
	area := 0.0
	for i := 0; i < v.Count; i++ {
		area += Cross(v.Positions[i], v.Positions[Next(i, v.Count)]) / 2
	}
	return area
}

// Area returns the polygon area, using triangles fanned from the origin
func (v VertexData) Area() float64 {
	return math.Abs(v.signedArea())
}

// Centroid returns the area-weighted centroid of the polygon
func (v VertexData) Centroid() mgl64.Vec2 {
	var center mgl64.Vec2
	area := 0.0

	for i := 0; i < v.Count; i++ {
		// Triangle vertices, third vertex implied as (0, 0)
		p1 := v.Positions[i]
		p2 := v.Positions[Next(i, v.Count)]

		triangleArea := Cross(p1, p2) / 2
		area += triangleArea
		center = center.Add(p1.Add(p2).Mul(triangleArea * inv3))
	}

	if area == 0 {
		return mgl64.Vec2{}
	}

	return center.Mul(1.0 / area)
}

// Recenter translates the vertices so the centroid becomes the origin.
// It returns the former centroid.
func (v *VertexData) Recenter() mgl64.Vec2 {
	center := v.Centroid()
	for i := 0; i < v.Count; i++ {
		v.Positions[i] = v.Positions[i].Sub(center)
	}

	return center
}

// PolarMoment returns the second moment of area about the origin, ∫(x²+y²)dA
func (v VertexData) PolarMoment() float64 {
	inertia := 0.0

	for i := 0; i < v.Count; i++ {
		p1 := v.Positions[i]
		p2 := v.Positions[Next(i, v.Count)]

		d := Cross(p1, p2)
		intx2 := p1.X()*p1.X() + p2.X()*p1.X() + p2.X()*p2.X()
		inty2 := p1.Y()*p1.Y() + p2.Y()*p1.Y() + p2.Y()*p2.Y()
		inertia += (0.25 * inv3 * d) * (intx2 + inty2)
	}

	return inertia
}

// Scale returns a copy with every vertex multiplied by factor
func (v VertexData) Scale(factor float64) VertexData {
	for i := 0; i < v.Count; i++ {
		v.Positions[i] = v.Positions[i].Mul(factor)
	}

	return v
}

// Shape is the collision geometry owned by a Body
type Shape struct {
	Type ShapeType
	// BodyID is the id of the owning body
	BodyID int
	// Radius is only used by circles
	Radius float64
	// VertexData is only used by polygons, in local space around the centroid
	VertexData VertexData
	Transform  mgl64.Mat2
}

// Validate reports shapes the collision code cannot handle: an unknown type,
// a non-positive circle radius, or a polygon outside 3 to MaxVertices vertices
func (s Shape) Validate() error {
	switch s.Type {
	case ShapeTypeCircle:
		if s.Radius <= 0 {
			return fmt.Errorf("%w: radius %v", ErrDegenerate, s.Radius)
		}
	case ShapeTypePolygon:
		if s.VertexData.Count < 3 || s.VertexData.Count > MaxVertices {
			return fmt.Errorf("%w: %d vertices, want 3 to %d", ErrVertexCount, s.VertexData.Count, MaxVertices)
		}
	default:
		return fmt.Errorf("%w: unknown shape type %s", ErrDegenerate, s.Type)
	}

	return nil
}

// ComputeMass returns the mass and the moment of inertia of the shape.
// Polygons are expected to be centered on their centroid.
func (s Shape) ComputeMass(density float64) (mass float64, inertia float64) {
	switch s.Type {
	case ShapeTypeCircle:
		mass = math.Pi * s.Radius * s.Radius * density
		inertia = mass * s.Radius * s.Radius
	case ShapeTypePolygon:
		mass = density * s.VertexData.Area()
		inertia = density * math.Abs(s.VertexData.PolarMoment())
	}

	return mass, inertia
}
