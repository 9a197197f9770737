package physac

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pmezard/go-difflib/difflib"
)

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteFailed
}

func TestWorld_WriteTrace(t *testing.T) {
	world := newTestWorld(t)
	createCircle(t, world, mgl64.Vec2{1, 2}, 1)
	box, err := world.CreateRectangle(mgl64.Vec2{-3.5, 0.25}, 1, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	box.SetRotation(0.5)

	var buffer bytes.Buffer
	if err := world.WriteTrace(&buffer, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "7(0): 1.000000 2.000000 0.000000\n" +
		"7(1): -3.500000 0.250000 0.500000\n"
	if buffer.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buffer.String())
	}
}

func TestWorld_WriteTrace_Error(t *testing.T) {
	world := newTestWorld(t)
	createCircle(t, world, mgl64.Vec2{}, 1)

	if err := world.WriteTrace(failingWriter{}, 0); !errors.Is(err, errWriteFailed) {
		t.Errorf("Expected errWriteFailed, got %v", err)
	}
}

// traceScene runs a small pile of bodies and returns its trace
func traceScene(t *testing.T) string {
	t.Helper()

	world := newTestWorld(t)
	world.SetDebug(false)
	createFloor(t, world)

	for i := 0; i < 6; i++ {
		x := float64(i-3) * 1.1
		y := 4 - float64(i%3)*1.5
		if i%2 == 0 {
			createCircle(t, world, mgl64.Vec2{x, y}, 0.5)
		} else if _, err := world.CreatePolygon(mgl64.Vec2{x, y}, 0.6, 3+i, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var buffer strings.Builder
	for step := 0; step < 240; step++ {
		world.Step()
		if step%20 == 0 {
			if err := world.WriteTrace(&buffer, step); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}

	return buffer.String()
}

func TestWorld_Determinism(t *testing.T) {
	expected := traceScene(t)
	current := traceScene(t)

	if expected != current {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(expected),
			B:        difflib.SplitLines(current),
			FromFile: "Expected",
			ToFile:   "Current",
			Context:  0,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		t.Fatalf("Identical scenes produced different traces:\n%s", text)
	}

	if lines := strings.Count(expected, "\n"); lines != 12*7 {
		t.Errorf("Expected %d trace lines, got %d", 12*7, lines)
	}
}
