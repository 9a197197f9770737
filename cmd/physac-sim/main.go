// Command physac-sim runs a scene without rendering and prints the bodies state.
//
//	physac-sim -scene scene.yaml -steps 600 -every 60
//	physac-sim -scene scene.yaml -duration 5s
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akmonengine/physac"
	"github.com/akmonengine/physac/scene"
)

// defaultScene is used when no scene file is given: a box and a ball over a floor
const defaultScene = `
bodies:
  - shape: rectangle
    position: {x: 0, y: 10}
    width: 20
    height: 1
    static: true
  - shape: rectangle
    position: {x: -2, y: 0}
    width: 1
    height: 1
    rotation: 0.3
  - shape: circle
    position: {x: 2, y: -2}
    radius: 0.5
    restitution: 0.5
`

func main() {
	var (
		scenePath string
		steps     int
		every     int
		duration  time.Duration
		debug     bool
	)

	flag.StringVar(&scenePath, "scene", "", "YAML scene file to load (built-in scene if empty)")
	flag.IntVar(&steps, "steps", 600, "number of fixed steps to run")
	flag.IntVar(&every, "every", 60, "print the bodies state every N steps (0 = last step only)")
	flag.DurationVar(&duration, "duration", 0, "run in real time for this duration instead of a fixed number of steps")
	flag.BoolVar(&debug, "debug", false, "enable the world debug logs")
	flag.Parse()

	if err := run(scenePath, steps, every, duration, debug); err != nil {
		log.Fatalf("physac-sim: %v", err)
	}
}

func run(scenePath string, steps, every int, duration time.Duration, debug bool) error {
	var s *scene.Scene
	var err error
	if scenePath == "" {
		s, err = scene.Parse([]byte(defaultScene))
	} else {
		s, err = scene.Load(scenePath)
	}
	if err != nil {
		return err
	}

	config := physac.DefaultConfig()
	config.Debug = debug

	world, err := s.Build(config)
	if err != nil {
		return err
	}

	if duration > 0 {
		return runRealtime(world, duration)
	}

	for step := 1; step <= steps; step++ {
		world.Step()

		if (every > 0 && step%every == 0) || step == steps {
			if err := world.WriteTrace(os.Stdout, step); err != nil {
				return err
			}
		}
	}

	return nil
}

// runRealtime drives the world from the wall clock until duration elapses or
// the process is interrupted
func runRealtime(world *physac.World, duration time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	runner := physac.NewRunner(world, 0)
	err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}

	var traceErr error
	runner.Do(func(w *physac.World) {
		fmt.Printf("simulated %d bodies for %v\n", w.BodiesCount(), duration)
		traceErr = w.WriteTrace(os.Stdout, 0)
	})

	return traceErr
}
