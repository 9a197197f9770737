package physac

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/akmonengine/physac/actor"
	"github.com/akmonengine/physac/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

type World struct {
	// Gravity acceleration (units/s²), y pointing down
	Gravity mgl64.Vec2
	// Iterations is the number of impulse passes over the manifolds per step
	Iterations  int
	ImpulseMode constraint.ImpulseMode

	Events Events

	bodies    []*actor.RigidBody
	manifolds []*constraint.Manifold
	// manifolds handed to the solver, triggers excluded
	solverManifolds []*constraint.Manifold

	deltaTime    float64
	accumulator  float64
	clock        func() time.Time
	previousTime time.Time

	debug                bool
	logger               *log.Logger
	manifoldLimitReached bool
}

// NewWorld creates an empty world. Zero values of the time step, the
// iterations, the logger and the clock are replaced by their defaults.
// Gravity is taken as is, a zero gravity is valid: start from DefaultConfig
// for the default (0, 9.81).
func NewWorld(config Config) (*World, error) {
	if config.DeltaTime == 0 {
		config.DeltaTime = DefaultDeltaTime
	}
	if config.Iterations == 0 {
		config.Iterations = DefaultIterations
	}
	if config.Logger == nil {
		config.Logger = defaultLogger()
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		Gravity:         config.Gravity,
		Iterations:      config.Iterations,
		ImpulseMode:     config.ImpulseMode,
		Events:          NewEvents(),
		bodies:          make([]*actor.RigidBody, 0, MaxBodies),
		manifolds:       make([]*constraint.Manifold, 0, 64),
		solverManifolds: make([]*constraint.Manifold, 0, 64),
		deltaTime:       config.DeltaTime,
		clock:           config.Clock,
		debug:           config.Debug,
		logger:          config.Logger,
	}
	w.previousTime = w.clock()

	return w, nil
}

func (w *World) debugf(format string, args ...any) {
	if w.debug {
		w.logger.Printf(format, args...)
	}
}

// SetDebug toggles the debug logs
func (w *World) SetDebug(debug bool) {
	w.debug = debug
}

func (w *World) SetGravity(x, y float64) {
	w.Gravity = mgl64.Vec2{x, y}
}

// SetTimeStep changes the duration of one step, in seconds
func (w *World) SetTimeStep(dt float64) error {
	if dt <= 0 {
		w.debugf("invalid time step %v", dt)
		return fmt.Errorf("%w: got %v", ErrInvalidTimeStep, dt)
	}

	w.deltaTime = dt
	return nil
}

// TimeStep returns the duration of one step, in seconds
func (w *World) TimeStep() float64 {
	return w.deltaTime
}

// AddBody registers a body built with the actor constructors.
// The body gets the first id not used by a live body.
func (w *World) AddBody(body *actor.RigidBody) error {
	if body == nil {
		return ErrNilBody
	}
	if slices.Contains(w.bodies, body) {
		return nil
	}
	if err := body.Shape.Validate(); err != nil {
		w.debugf("body could not be added: %v", err)
		return err
	}
	if len(w.bodies) >= MaxBodies {
		w.debugf("body could not be created, %d bodies already exist", MaxBodies)
		return ErrBodyLimit
	}

	body.ID = w.freeID()
	body.Shape.BodyID = body.ID
	body.SetRotation(body.Orient)
	w.bodies = append(w.bodies, body)

	w.debugf("created %s body id %d", body.Shape.Type, body.ID)
	return nil
}

// freeID returns the smallest id not used by a live body
func (w *World) freeID() int {
	var used [MaxBodies]bool
	for _, body := range w.bodies {
		if body.ID >= 0 && body.ID < MaxBodies {
			used[body.ID] = true
		}
	}

	for id, taken := range used {
		if !taken {
			return id
		}
	}
	return actor.UnregisteredID
}

func (w *World) register(body *actor.RigidBody, err error) (*actor.RigidBody, error) {
	if err != nil {
		w.debugf("body could not be created: %v", err)
		return nil, err
	}
	if err := w.AddBody(body); err != nil {
		return nil, err
	}

	return body, nil
}

// CreateCircle creates a circle body with its mass computed from the density
func (w *World) CreateCircle(position mgl64.Vec2, radius, density float64) (*actor.RigidBody, error) {
	if len(w.bodies) >= MaxBodies {
		w.debugf("circle could not be created, %d bodies already exist", MaxBodies)
		return nil, ErrBodyLimit
	}

	return w.register(actor.NewCircleBody(position, radius, density))
}

// CreateRectangle creates an axis-aligned rectangle body centered on position
func (w *World) CreateRectangle(position mgl64.Vec2, width, height, density float64) (*actor.RigidBody, error) {
	if len(w.bodies) >= MaxBodies {
		w.debugf("rectangle could not be created, %d bodies already exist", MaxBodies)
		return nil, ErrBodyLimit
	}

	return w.register(actor.NewRectangleBody(position, width, height, density))
}

// CreatePolygon creates a regular polygon body with 3 to actor.MaxVertices sides
func (w *World) CreatePolygon(position mgl64.Vec2, radius float64, sides int, density float64) (*actor.RigidBody, error) {
	if len(w.bodies) >= MaxBodies {
		w.debugf("polygon could not be created, %d bodies already exist", MaxBodies)
		return nil, ErrBodyLimit
	}

	return w.register(actor.NewRegularPolygonBody(position, radius, sides, density))
}

// CreatePolygonFromVertices creates a convex polygon body from vertices
// relative to position. The body position is moved to the polygon centroid.
func (w *World) CreatePolygonFromVertices(position mgl64.Vec2, vertices []mgl64.Vec2, density float64) (*actor.RigidBody, error) {
	if len(w.bodies) >= MaxBodies {
		w.debugf("polygon could not be created, %d bodies already exist", MaxBodies)
		return nil, ErrBodyLimit
	}

	vertexData, err := actor.NewVertexData(vertices)
	if err != nil {
		w.debugf("polygon could not be created: %v", err)
		return nil, err
	}

	return w.register(actor.NewPolygonBody(position, vertexData, density))
}

// DestroyBody removes the body from the world, the remaining bodies keep their order
func (w *World) DestroyBody(body *actor.RigidBody) error {
	if body == nil {
		return ErrNilBody
	}

	index := slices.Index(w.bodies, body)
	if index == -1 {
		w.debugf("body id %d could not be destroyed, not found", body.ID)
		return fmt.Errorf("%w: id %d", ErrBodyNotFound, body.ID)
	}

	w.bodies = slices.Delete(w.bodies, index, index+1)

	// Manifolds of the previous step must not point to the body anymore
	w.manifolds = slices.DeleteFunc(w.manifolds, func(m *constraint.Manifold) bool {
		return m.BodyA == body || m.BodyB == body
	})
	w.Events.forget(body)

	w.debugf("destroyed body id %d", body.ID)
	body.ID = actor.UnregisteredID
	body.Shape.BodyID = actor.UnregisteredID

	return nil
}

// Reset destroys every body and manifold, the configuration is kept
func (w *World) Reset() {
	for _, body := range w.bodies {
		body.ID = actor.UnregisteredID
		body.Shape.BodyID = actor.UnregisteredID
	}

	w.bodies = w.bodies[:0]
	w.manifolds = w.manifolds[:0]
	w.solverManifolds = w.solverManifolds[:0]
	w.Events.reset()
	w.accumulator = 0
	w.manifoldLimitReached = false
}

func (w *World) BodiesCount() int {
	return len(w.bodies)
}

// Body returns the body stored at index
func (w *World) Body(index int) (*actor.RigidBody, bool) {
	if index < 0 || index >= len(w.bodies) {
		w.debugf("body index %d out of bounds", index)
		return nil, false
	}

	return w.bodies[index], true
}

// Bodies returns a copy of the live bodies list, in creation order
func (w *World) Bodies() []*actor.RigidBody {
	return slices.Clone(w.bodies)
}

func (w *World) ShapeType(index int) (actor.ShapeType, bool) {
	body, ok := w.Body(index)
	if !ok {
		return 0, false
	}

	return body.Shape.Type, true
}

// ShapeVerticesCount returns the outline vertex count of the body at index,
// or 0 if there is no such body
func (w *World) ShapeVerticesCount(index int) int {
	body, ok := w.Body(index)
	if !ok {
		return 0
	}

	return body.VertexCount()
}

func (w *World) ManifoldsCount() int {
	return len(w.manifolds)
}

// Manifold returns a manifold generated by the last step
func (w *World) Manifold(index int) (*constraint.Manifold, bool) {
	if index < 0 || index >= len(w.manifolds) {
		return nil, false
	}

	return w.manifolds[index], true
}

// AddForce accumulates a force on body for the next step, a nil body is ignored
func (w *World) AddForce(body *actor.RigidBody, force mgl64.Vec2) {
	if body == nil {
		w.debugf("force ignored, nil body")
		return
	}
	body.AddForce(force)
}

// AddTorque accumulates a torque on body for the next step, a nil body is ignored
func (w *World) AddTorque(body *actor.RigidBody, torque float64) {
	if body == nil {
		w.debugf("torque ignored, nil body")
		return
	}
	body.AddTorque(torque)
}

// Step runs exactly one simulation step of TimeStep seconds
func (w *World) Step() {
	dt := w.deltaTime

	// Phase 1: Collision detection, the grounded flags are rebuilt from scratch
	for _, body := range w.bodies {
		body.IsGrounded = false
	}
	w.detectCollisions()

	w.solverManifolds = w.Events.recordCollisions(w.manifolds, w.solverManifolds[:0])

	// Phase 2: First half of the forces
	for _, body := range w.bodies {
		body.IntegrateForces(dt, w.Gravity)
	}

	// Phase 3: Sequential impulses
	for _, manifold := range w.solverManifolds {
		manifold.Initialize(dt, w.Gravity)
	}
	for iter := 0; iter < w.Iterations; iter++ {
		for _, manifold := range w.solverManifolds {
			manifold.IntegrateImpulses(w.ImpulseMode)
		}
	}

	// Phase 4: Move the bodies, second half of the forces
	for _, body := range w.bodies {
		body.IntegrateVelocity(dt, w.Gravity)
	}

	// Phase 5: Baumgarte position correction
	for _, manifold := range w.solverManifolds {
		manifold.CorrectPositions()
	}

	for _, body := range w.bodies {
		body.ClearForces()
	}

	w.Events.flush()
}
