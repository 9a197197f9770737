package main

import (
	"fmt"
	"log"

	"github.com/akmonengine/physac"
	"github.com/akmonengine/physac/actor"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	screenWidth  = 800
	screenHeight = 450
	// pixels per world unit
	scale = 20.0

	shatterForce = 200.0
)

func toScreen(v mgl64.Vec2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X() * scale), Y: float32(v.Y() * scale)}
}

func toWorld(v rl.Vector2) mgl64.Vec2 {
	return mgl64.Vec2{float64(v.X) / scale, float64(v.Y) / scale}
}

func setupScene(world *physac.World) {
	world.Reset()

	floor, err := world.CreateRectangle(mgl64.Vec2{20, 21}, 38, 1, 10)
	if err != nil {
		log.Fatal(err)
	}
	floor.SetStatic()

	// A regular polygon to break
	if _, err := world.CreatePolygon(mgl64.Vec2{20, 8}, 3, 8, 10); err != nil {
		log.Fatal(err)
	}
}

func drawBody(body *actor.RigidBody) {
	color := rl.Black
	if body.IsGrounded {
		color = rl.DarkGreen
	}

	count := body.VertexCount()
	for i := 0; i < count; i++ {
		a := body.ShapeVertex(i)
		b := body.ShapeVertex(actor.Next(i, count))
		rl.DrawLineV(toScreen(a), toScreen(b), color)
	}
}

func main() {
	config := physac.DefaultConfig()
	world, err := physac.NewWorld(config)
	if err != nil {
		log.Fatal(err)
	}
	setupScene(world)

	rl.InitWindow(screenWidth, screenHeight, "physac - shatter")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyR) {
			setupScene(world)
		}

		mouse := toWorld(rl.GetMousePosition())
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			for _, body := range world.Bodies() {
				if body.Shape.Type != actor.ShapeTypePolygon || body.IsImmovable() {
					continue
				}

				pieces, err := world.Shatter(body, mouse, shatterForce)
				if err != nil {
					log.Println(err)
					break
				}
				if pieces != nil {
					break
				}
			}
		}
		if rl.IsMouseButtonPressed(rl.MouseRightButton) {
			if _, err := world.CreateCircle(mouse, 1, 10); err != nil {
				log.Println(err)
			}
		}

		world.RunStep()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		for _, body := range world.Bodies() {
			drawBody(body)
		}

		rl.DrawText("Left click a polygon to shatter it, right click to drop a ball", 10, 10, 10, rl.DarkGray)
		rl.DrawText("Press 'R' to reset the example", 10, 25, 10, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("bodies: %d  manifolds: %d", world.BodiesCount(), world.ManifoldsCount()), 10, 40, 10, rl.DarkGray)
		rl.DrawFPS(screenWidth-90, 10)

		rl.EndDrawing()
	}
}
