package physac

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// detectCollisions Tests
// =============================================================================

func TestDetectCollisions_NoBodies(t *testing.T) {
	world := newTestWorld(t)

	world.detectCollisions()

	if world.ManifoldsCount() != 0 {
		t.Errorf("Expected no manifold, got %d", world.ManifoldsCount())
	}
}

func TestDetectCollisions_Pairs(t *testing.T) {
	tests := []struct {
		name      string
		positionB mgl64.Vec2
		expected  int
	}{
		{"overlapping", mgl64.Vec2{1.5, 0}, 1},
		{"touching AABBs only", mgl64.Vec2{1.6, 1.6}, 0},
		{"far apart", mgl64.Vec2{10, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := newTestWorld(t)
			createCircle(t, world, mgl64.Vec2{0, 0}, 1)
			createCircle(t, world, tt.positionB, 1)

			world.detectCollisions()

			if world.ManifoldsCount() != tt.expected {
				t.Errorf("Expected %d manifolds, got %d", tt.expected, world.ManifoldsCount())
			}
		})
	}
}

func TestDetectCollisions_PairOrder(t *testing.T) {
	world := newTestWorld(t)
	bodyA := createCircle(t, world, mgl64.Vec2{0, 0}, 1)
	bodyB := createCircle(t, world, mgl64.Vec2{1, 0}, 1)
	bodyC := createCircle(t, world, mgl64.Vec2{1.8, 0}, 1)

	world.detectCollisions()

	// Pairs follow the bodies order, the lowest index as body A
	expected := [][2]int{{bodyA.ID, bodyB.ID}, {bodyA.ID, bodyC.ID}, {bodyB.ID, bodyC.ID}}
	if world.ManifoldsCount() != len(expected) {
		t.Fatalf("Expected %d manifolds, got %d", len(expected), world.ManifoldsCount())
	}
	for i, pair := range expected {
		m, _ := world.Manifold(i)
		if m.ID != i {
			t.Errorf("manifold %d: expected id %d, got %d", i, i, m.ID)
		}
		if m.BodyA.ID != pair[0] || m.BodyB.ID != pair[1] {
			t.Errorf("manifold %d: expected pair %v, got (%d, %d)", i, pair, m.BodyA.ID, m.BodyB.ID)
		}
	}
}

func TestDetectCollisions_ImmovablePairs(t *testing.T) {
	world := newTestWorld(t)
	static := createCircle(t, world, mgl64.Vec2{0, 0}, 1)
	static.SetStatic()
	massless := createCircle(t, world, mgl64.Vec2{1, 0}, 1)
	massless.SetMass(0, 0)
	createCircle(t, world, mgl64.Vec2{0, 1}, 1)

	world.detectCollisions()

	// Only the pairs with the dynamic body remain
	if world.ManifoldsCount() != 2 {
		t.Errorf("Expected 2 manifolds, got %d", world.ManifoldsCount())
	}
}

func TestDetectCollisions_RebuiltEveryCall(t *testing.T) {
	world := newTestWorld(t)
	createCircle(t, world, mgl64.Vec2{0, 0}, 1)
	bodyB := createCircle(t, world, mgl64.Vec2{1, 0}, 1)

	world.detectCollisions()
	if world.ManifoldsCount() != 1 {
		t.Fatalf("Expected 1 manifold, got %d", world.ManifoldsCount())
	}

	bodyB.Position = mgl64.Vec2{5, 0}
	world.detectCollisions()
	if world.ManifoldsCount() != 0 {
		t.Errorf("Expected no manifold once separated, got %d", world.ManifoldsCount())
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func createPile(b *testing.B, count int) *World {
	config := DefaultConfig()
	config.Logger = nil
	world, err := NewWorld(config)
	if err != nil {
		b.Fatal(err)
	}

	floor, _ := world.CreateRectangle(mgl64.Vec2{0, 40}, 80, 2, 1)
	floor.SetStatic()

	rng := rand.New(rand.NewSource(0))
	for i := 0; i < count; i++ {
		position := mgl64.Vec2{rng.Float64()*60 - 30, rng.Float64() * 30}
		if i%2 == 0 {
			world.CreateCircle(position, 1, 1)
		} else {
			world.CreatePolygon(position, 1.2, 3+i%6, 1)
		}
	}

	return world
}

func BenchmarkDetectCollisions(b *testing.B) {
	world := createPile(b, MaxBodies-1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.detectCollisions()
	}
}

func BenchmarkWorldStep(b *testing.B) {
	world := createPile(b, MaxBodies-1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Step()
	}
}
