package main

import (
	"fmt"

	"github.com/akmonengine/physac"
	"github.com/akmonengine/physac/actor"
	"github.com/akmonengine/physac/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a static floor and a rotated box falling on it
func SetupScene() (*physac.World, *actor.RigidBody, *actor.RigidBody) {
	config := physac.DefaultConfig()
	world, err := physac.NewWorld(config)
	if err != nil {
		panic(err)
	}

	floor, err := world.CreateRectangle(mgl64.Vec2{0, 5}, 20, 1, 1)
	if err != nil {
		panic(err)
	}
	floor.SetStatic()

	box, err := world.CreateRectangle(mgl64.Vec2{0, 0}, 1, 1, 1)
	if err != nil {
		panic(err)
	}
	box.SetRotation(mgl64.DegToRad(30))
	box.Material.Restitution = 0.5

	world.Events.Subscribe(physac.COLLISION_ENTER, func(event physac.Event) {
		e := event.(physac.CollisionEnterEvent)
		fmt.Printf("  Collision enter: body %d with body %d\n", e.BodyA.ID, e.BodyB.ID)
	})
	world.Events.Subscribe(physac.COLLISION_EXIT, func(event physac.Event) {
		e := event.(physac.CollisionExitEvent)
		fmt.Printf("  Collision exit: body %d with body %d\n", e.BodyA.ID, e.BodyB.ID)
	})

	return world, floor, box
}

func printManifold(m *constraint.Manifold) {
	fmt.Printf("  Manifold %d: bodies %d-%d normal=%v penetration=%.4f\n",
		m.ID, m.BodyA.ID, m.BodyB.ID, m.Normal, m.Penetration)
	for i := 0; i < m.ContactsCount; i++ {
		fmt.Printf("    Contact %d: %v\n", i, m.Contacts[i])
	}
}

func main() {
	fmt.Println("Falling box on a static floor")
	fmt.Println("=============================")

	world, floor, box := SetupScene()

	fmt.Printf("Initial state:\n")
	fmt.Printf("  Floor: position %v\n", floor.Position)
	fmt.Printf("  Box: position %v, orient %.3f\n", box.Position, box.Orient)
	fmt.Printf("  Gravity: %v\n", world.Gravity)
	fmt.Println()

	const maxSteps = 180
	for step := 1; step <= maxSteps; step++ {
		world.Step()

		if step%20 != 0 {
			continue
		}

		fmt.Printf("--- STEP %d ---\n", step)
		fmt.Printf("  Position: %v\n", box.Position)
		fmt.Printf("  Velocity: %v\n", box.Velocity)
		fmt.Printf("  Angular Velocity: %.4f\n", box.AngularVelocity)
		fmt.Printf("  Orient: %.4f, grounded: %v\n", box.Orient, box.IsGrounded)
		for i := 0; i < world.ManifoldsCount(); i++ {
			if m, ok := world.Manifold(i); ok {
				printManifold(m)
			}
		}
		fmt.Println()
	}

	fmt.Println("Done!")
}
