package physac

import (
	"github.com/akmonengine/physac/actor"
	"github.com/akmonengine/physac/collision"
	"github.com/akmonengine/physac/constraint"
)

// detectCollisions rebuilds the manifolds list from every pair of bodies.
// This is an O(n²) brute-force approach, the number of bodies is capped by MaxBodies.
func (w *World) detectCollisions() {
	w.manifolds = w.manifolds[:0]

	// AABBs are computed once per step
	var boxes [MaxBodies]actor.AABB
	for i, body := range w.bodies {
		boxes[i] = body.ComputeAABB()
	}

	for i := 0; i < len(w.bodies); i++ {
		bodyA := w.bodies[i]

		for j := i + 1; j < len(w.bodies); j++ {
			bodyB := w.bodies[j]

			// Two immovable bodies never respond to each other
			if bodyA.IsImmovable() && bodyB.IsImmovable() {
				continue
			}
			if !boxes[i].Overlaps(boxes[j]) {
				continue
			}

			if len(w.manifolds) >= MaxManifolds {
				if !w.manifoldLimitReached {
					w.debugf("%v, %d manifolds kept for this step", ErrManifoldLimit, MaxManifolds)
					w.manifoldLimitReached = true
				}
				return
			}

			manifold := &constraint.Manifold{
				ID:    len(w.manifolds),
				BodyA: bodyA,
				BodyB: bodyB,
			}
			collision.SolveManifold(manifold)

			if manifold.ContactsCount > 0 {
				w.manifolds = append(w.manifolds, manifold)
			}
		}
	}

	w.manifoldLimitReached = false
}
