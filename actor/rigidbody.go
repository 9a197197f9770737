package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultStaticFriction  = 0.4
	DefaultDynamicFriction = 0.2
	DefaultRestitution     = 0.0

	// UnregisteredID is the id of a body that does not belong to a world yet
	UnregisteredID = -1
)

type Material struct {
	StaticFriction  float64 // Friction when the body is at rest, 0 to 1
	DynamicFriction float64 // Friction when the body slides, 0 to 1
	Restitution     float64 // 0= no rebound, 1= perfect restitution
}

// DefaultMaterial returns the material every new body starts with
func DefaultMaterial() Material {
	return Material{
		StaticFriction:  DefaultStaticFriction,
		DynamicFriction: DefaultDynamicFriction,
		Restitution:     DefaultRestitution,
	}
}

// RigidBody represents a rigid body in the physics simulation
type RigidBody struct {
	// ID is unique among the live bodies of a world, and reused once the body is destroyed
	ID int
	// Enabled toggles dynamics. Collisions are still detected when disabled
	Enabled bool

	// Linear motion
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Force    mgl64.Vec2 // reset to zero after every step

	// Angular motion
	AngularVelocity float64
	Torque          float64 // reset to zero after every step
	Orient          float64 // radians

	Mass           float64
	InverseMass    float64
	Inertia        float64
	InverseInertia float64

	Material Material

	UseGravity   bool
	IsGrounded   bool // set during a step when the body rests on another one
	FreezeOrient bool
	// IsTrigger bodies report collisions without any collision response
	IsTrigger bool

	Shape Shape
}

func newRigidBody(position mgl64.Vec2, shape Shape) *RigidBody {
	shape.BodyID = UnregisteredID
	shape.Transform = Rotation(0)

	return &RigidBody{
		ID:         UnregisteredID,
		Enabled:    true,
		Position:   position,
		Material:   DefaultMaterial(),
		UseGravity: true,
		Shape:      shape,
	}
}

// NewCircleBody creates a circle body, its mass computed from its area and density
func NewCircleBody(position mgl64.Vec2, radius float64, density float64) (*RigidBody, error) {
	if radius <= 0 {
		return nil, ErrDegenerate
	}
	if err := checkDensity(density); err != nil {
		return nil, err
	}

	rb := newRigidBody(position, Shape{Type: ShapeTypeCircle, Radius: radius})
	rb.SetMass(rb.Shape.ComputeMass(density))

	return rb, nil
}

// NewPolygonBody creates a polygon body from local vertices around position.
// The vertices are moved so their centroid is the local origin, and the body
// position follows the centroid so the world geometry is unchanged.
func NewPolygonBody(position mgl64.Vec2, vertexData VertexData, density float64) (*RigidBody, error) {
	if vertexData.Count < 3 || vertexData.Count > MaxVertices {
		return nil, ErrVertexCount
	}
	if vertexData.Area() == 0 {
		return nil, ErrDegenerate
	}
	if err := checkDensity(density); err != nil {
		return nil, err
	}

	center := vertexData.Recenter()
	rb := newRigidBody(position.Add(center), Shape{Type: ShapeTypePolygon, VertexData: vertexData})
	rb.SetMass(rb.Shape.ComputeMass(density))

	return rb, nil
}

// NewRectangleBody creates an axis-aligned rectangle body centered on position
func NewRectangleBody(position mgl64.Vec2, width, height, density float64) (*RigidBody, error) {
	vertexData, err := NewRectangle(width, height)
	if err != nil {
		return nil, err
	}

	return NewPolygonBody(position, vertexData, density)
}

// NewRegularPolygonBody creates a regular polygon body centered on position
func NewRegularPolygonBody(position mgl64.Vec2, radius float64, sides int, density float64) (*RigidBody, error) {
	vertexData, err := NewRegularPolygon(radius, sides)
	if err != nil {
		return nil, err
	}

	return NewPolygonBody(position, vertexData, density)
}

// SetMass sets mass and inertia, keeping their inverse values in sync.
// A zero value means infinite.
func (rb *RigidBody) SetMass(mass, inertia float64) {
	rb.Mass = mass
	rb.InverseMass = safeInverse(mass)
	rb.Inertia = inertia
	rb.InverseInertia = safeInverse(inertia)
}

// SetStatic gives the body infinite mass and inertia
func (rb *RigidBody) SetStatic() {
	rb.SetMass(0, 0)
	rb.Velocity = mgl64.Vec2{}
	rb.AngularVelocity = 0
}

// IsImmovable reports whether neither impulses nor forces can move the body
func (rb *RigidBody) IsImmovable() bool {
	return rb.InverseMass == 0 && rb.InverseInertia == 0
}

// Density returns the mass per unit area of the body shape
func (rb *RigidBody) Density() float64 {
	var area float64
	switch rb.Shape.Type {
	case ShapeTypeCircle:
		area = math.Pi * rb.Shape.Radius * rb.Shape.Radius
	case ShapeTypePolygon:
		area = rb.Shape.VertexData.Area()
	}

	if area == 0 {
		return 0
	}
	return rb.Mass / area
}

// AddForce accumulates a force, applied during the next step
func (rb *RigidBody) AddForce(force mgl64.Vec2) {
	rb.Force = rb.Force.Add(force)
}

// AddTorque accumulates an angular force, applied during the next step
func (rb *RigidBody) AddTorque(torque float64) {
	rb.Torque += torque
}

func (rb *RigidBody) ClearForces() {
	rb.Force = mgl64.Vec2{}
	rb.Torque = 0
}

// SetRotation sets the orientation and rebuilds the shape transform
func (rb *RigidBody) SetRotation(radians float64) {
	rb.Orient = radians
	rb.Shape.Transform = Rotation(radians)
}

// VertexCount returns the number of outline vertices of the body shape
func (rb *RigidBody) VertexCount() int {
	switch rb.Shape.Type {
	case ShapeTypeCircle:
		return CircleVertices
	case ShapeTypePolygon:
		return rb.Shape.VertexData.Count
	}
	return 0
}

// ShapeVertex returns a vertex of the body outline in world space.
// Circles are sampled on CircleVertices points of their circumference.
func (rb *RigidBody) ShapeVertex(vertex int) mgl64.Vec2 {
	switch rb.Shape.Type {
	case ShapeTypeCircle:
		angle := mgl64.DegToRad(360.0 / CircleVertices * float64(vertex))
		return rb.Position.Add(mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(rb.Shape.Radius))
	case ShapeTypePolygon:
		if vertex < 0 || vertex >= rb.Shape.VertexData.Count {
			return rb.Position
		}
		return rb.Position.Add(rb.Shape.Transform.Mul2x1(rb.Shape.VertexData.Positions[vertex]))
	}
	return rb.Position
}

// ComputeAABB returns the world space bounding box of the body shape
func (rb *RigidBody) ComputeAABB() AABB {
	if rb.Shape.Type == ShapeTypeCircle {
		r := mgl64.Vec2{rb.Shape.Radius, rb.Shape.Radius}
		return AABB{Min: rb.Position.Sub(r), Max: rb.Position.Add(r)}
	}

	first := rb.ShapeVertex(0)
	aabb := AABB{Min: first, Max: first}
	for i := 1; i < rb.Shape.VertexData.Count; i++ {
		v := rb.ShapeVertex(i)
		aabb.Min = mgl64.Vec2{math.Min(aabb.Min.X(), v.X()), math.Min(aabb.Min.Y(), v.Y())}
		aabb.Max = mgl64.Vec2{math.Max(aabb.Max.X(), v.X()), math.Max(aabb.Max.Y(), v.Y())}
	}

	return aabb
}

// IntegrateForces applies half a step of forces and gravity to the velocities.
// It runs twice per step, before solving and after moving the body.
func (rb *RigidBody) IntegrateForces(dt float64, gravity mgl64.Vec2) {
	if !rb.Enabled || rb.InverseMass == 0 {
		return
	}

	h := dt / 2.0
	rb.Velocity = rb.Velocity.Add(rb.Force.Mul(rb.InverseMass * h))
	if rb.UseGravity {
		rb.Velocity = rb.Velocity.Add(gravity.Mul(h))
	}

	if !rb.FreezeOrient {
		rb.AngularVelocity += rb.Torque * rb.InverseInertia * h
	}
}

// IntegrateVelocity moves the body with its velocities, then applies the
// second half of the forces
func (rb *RigidBody) IntegrateVelocity(dt float64, gravity mgl64.Vec2) {
	if !rb.Enabled {
		return
	}

	rb.Position = rb.Position.Add(rb.Velocity.Mul(dt))
	if !rb.FreezeOrient {
		rb.Orient += rb.AngularVelocity * dt
	}
	rb.Shape.Transform = Rotation(rb.Orient)

	rb.IntegrateForces(dt, gravity)
}

// ApplyImpulse changes the velocities as if impulse was applied at contact,
// contact being relative to the center of mass
func (rb *RigidBody) ApplyImpulse(impulse mgl64.Vec2, contact mgl64.Vec2) {
	if !rb.Enabled {
		return
	}

	rb.Velocity = rb.Velocity.Add(impulse.Mul(rb.InverseMass))
	if !rb.FreezeOrient {
		rb.AngularVelocity += rb.InverseInertia * Cross(contact, impulse)
	}
}

// checkDensity rejects negative densities, zero gives a static body
func checkDensity(density float64) error {
	if density < 0 || math.IsNaN(density) {
		return fmt.Errorf("%w: density %v", ErrDegenerate, density)
	}
	return nil
}

func safeInverse(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1.0 / v
}
