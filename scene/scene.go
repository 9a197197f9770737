// Package scene loads a world description from YAML.
//
//	gravity: {x: 0, y: 9.81}
//	timestep: 0.016
//	bodies:
//	  - shape: rectangle
//	    position: {x: 0, y: 10}
//	    width: 20
//	    height: 1
//	    static: true
//	  - shape: circle
//	    position: {x: 0, y: 0}
//	    radius: 1
package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/akmonengine/physac"
	"github.com/akmonengine/physac/actor"
	"github.com/akmonengine/physac/constraint"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	ShapeCircle    = "circle"
	ShapeRectangle = "rectangle"
	ShapePolygon   = "polygon"
	ShapeVertices  = "vertices"

	DefaultDensity = 1.0
)

var (
	ErrUnknownShape       = errors.New("scene: unknown shape")
	ErrUnknownImpulseMode = errors.New("scene: unknown impulse mode")
)

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2) Vec() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// Body is the description of a single body
type Body struct {
	Shape    string   `yaml:"shape"`
	Position Vec2     `yaml:"position"`
	Density  *float64 `yaml:"density,omitempty"`

	Radius   float64 `yaml:"radius,omitempty"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Sides    int     `yaml:"sides,omitempty"`
	Vertices []Vec2  `yaml:"vertices,omitempty"`

	Rotation        float64 `yaml:"rotation,omitempty"` // radians
	Velocity        Vec2    `yaml:"velocity,omitempty"`
	AngularVelocity float64 `yaml:"angular_velocity,omitempty"`

	StaticFriction  *float64 `yaml:"static_friction,omitempty"`
	DynamicFriction *float64 `yaml:"dynamic_friction,omitempty"`
	Restitution     *float64 `yaml:"restitution,omitempty"`

	Static       bool  `yaml:"static,omitempty"`
	UseGravity   *bool `yaml:"use_gravity,omitempty"`
	FreezeOrient bool  `yaml:"freeze_orient,omitempty"`
	Trigger      bool  `yaml:"trigger,omitempty"`
	Enabled      *bool `yaml:"enabled,omitempty"`
}

// Scene is the description of a world and its bodies.
// Settings left out keep the values of the base configuration.
type Scene struct {
	Gravity     *Vec2   `yaml:"gravity,omitempty"`
	TimeStep    float64 `yaml:"timestep,omitempty"`
	Iterations  int     `yaml:"iterations,omitempty"`
	ImpulseMode string  `yaml:"impulse_mode,omitempty"`

	Bodies []Body `yaml:"bodies"`
}

// Parse decodes a YAML scene
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}

	return &s, nil
}

// Load reads and decodes a YAML scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	return Parse(data)
}

// Config returns base with the settings of the scene applied
func (s *Scene) Config(base physac.Config) (physac.Config, error) {
	if s.Gravity != nil {
		base.Gravity = s.Gravity.Vec()
	}
	if s.TimeStep != 0 {
		base.DeltaTime = s.TimeStep
	}
	if s.Iterations != 0 {
		base.Iterations = s.Iterations
	}

	switch s.ImpulseMode {
	case "":
	case constraint.ImpulseModeSkip.String():
		base.ImpulseMode = constraint.ImpulseModeSkip
	case constraint.ImpulseModeLegacy.String():
		base.ImpulseMode = constraint.ImpulseModeLegacy
	default:
		return base, fmt.Errorf("%w: %q", ErrUnknownImpulseMode, s.ImpulseMode)
	}

	return base, nil
}

// Build creates a world from base and the scene, with every body of the scene
func (s *Scene) Build(base physac.Config) (*physac.World, error) {
	config, err := s.Config(base)
	if err != nil {
		return nil, err
	}

	world, err := physac.NewWorld(config)
	if err != nil {
		return nil, err
	}

	for i, description := range s.Bodies {
		body, err := description.build()
		if err != nil {
			return nil, fmt.Errorf("scene: body %d: %w", i, err)
		}
		if err := world.AddBody(body); err != nil {
			return nil, fmt.Errorf("scene: body %d: %w", i, err)
		}
	}

	return world, nil
}

func (b Body) build() (*actor.RigidBody, error) {
	density := DefaultDensity
	if b.Density != nil {
		density = *b.Density
	}

	var body *actor.RigidBody
	var err error

	switch b.Shape {
	case ShapeCircle:
		body, err = actor.NewCircleBody(b.Position.Vec(), b.Radius, density)
	case ShapeRectangle:
		body, err = actor.NewRectangleBody(b.Position.Vec(), b.Width, b.Height, density)
	case ShapePolygon:
		body, err = actor.NewRegularPolygonBody(b.Position.Vec(), b.Radius, b.Sides, density)
	case ShapeVertices:
		points := make([]mgl64.Vec2, len(b.Vertices))
		for i, v := range b.Vertices {
			points[i] = v.Vec()
		}

		var vertexData actor.VertexData
		vertexData, err = actor.NewVertexData(points)
		if err == nil {
			body, err = actor.NewPolygonBody(b.Position.Vec(), vertexData, density)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, b.Shape)
	}
	if err != nil {
		return nil, err
	}

	body.SetRotation(b.Rotation)
	body.Velocity = b.Velocity.Vec()
	body.AngularVelocity = b.AngularVelocity

	if b.StaticFriction != nil {
		body.Material.StaticFriction = *b.StaticFriction
	}
	if b.DynamicFriction != nil {
		body.Material.DynamicFriction = *b.DynamicFriction
	}
	if b.Restitution != nil {
		body.Material.Restitution = *b.Restitution
	}

	if b.UseGravity != nil {
		body.UseGravity = *b.UseGravity
	}
	if b.Enabled != nil {
		body.Enabled = *b.Enabled
	}
	body.FreezeOrient = b.FreezeOrient
	body.IsTrigger = b.Trigger

	if b.Static {
		body.SetStatic()
	}

	return body, nil
}
