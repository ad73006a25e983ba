package game

import (
	"math"
	"testing"
)

func TestHeadOnCollisionImpulse(t *testing.T) {
	p := DefaultParams()
	a := &Stone{ID: 0, Pos: NewVec2(0, 0), Vel: NewVec2(1, 0), InPlay: true}
	b := &Stone{ID: 1, Pos: NewVec2(0.25, 0), InPlay: true} // overlapping: 0.25 < 2R

	ResolveCollisions([]*Stone{a, b}, p)

	// j = (1+e)*|vn|/2 with e=0.9 gives 0.95 transferred along the normal.
	if math.Abs(a.Vel.X-0.05) > 1e-12 || math.Abs(b.Vel.X-0.95) > 1e-12 {
		t.Errorf("head-on impulse wrong: a.vx=%.6f b.vx=%.6f", a.Vel.X, b.Vel.X)
	}
	// Pure head-on hit along the normal produces no spin perturbation.
	if a.W != 0 || b.W != 0 {
		t.Errorf("head-on hit should leave spin unchanged: a.w=%.6f b.w=%.6f", a.W, b.W)
	}
}

func TestOverlapIsSeparated(t *testing.T) {
	p := DefaultParams()
	a := &Stone{ID: 0, Pos: NewVec2(0, 0), Vel: NewVec2(0.5, 0), InPlay: true}
	b := &Stone{ID: 1, Pos: NewVec2(0.1, 0.05), InPlay: true}

	ResolveCollisions([]*Stone{a, b}, p)

	dist := b.Pos.Minus(a.Pos).Magnitude()
	if dist < 2*p.R-1e-9 {
		t.Errorf("stones still overlapping after resolution: dist=%.6f want >= %.6f", dist, 2*p.R)
	}
}

func TestSeparatingStonesGetNoImpulse(t *testing.T) {
	p := DefaultParams()
	// Overlapping but already moving apart.
	a := &Stone{ID: 0, Pos: NewVec2(0, 0), Vel: NewVec2(-1, 0), InPlay: true}
	b := &Stone{ID: 1, Pos: NewVec2(0.2, 0), Vel: NewVec2(1, 0), InPlay: true}

	ResolveCollisions([]*Stone{a, b}, p)

	if a.Vel.X != -1 || b.Vel.X != 1 {
		t.Errorf("separating stones must not exchange impulse: a.vx=%.4f b.vx=%.4f", a.Vel.X, b.Vel.X)
	}
	// Positions are still pushed apart to prevent sustained overlap.
	if d := b.Pos.Minus(a.Pos).Magnitude(); d < 2*p.R-1e-9 {
		t.Errorf("separating overlap not resolved: dist=%.6f", d)
	}
}

func TestObliqueHitPerturbsSpin(t *testing.T) {
	p := DefaultParams()
	a := &Stone{ID: 0, Pos: NewVec2(0, 0), Vel: NewVec2(1, 0.4), InPlay: true}
	b := &Stone{ID: 1, Pos: NewVec2(0.25, 0.08), InPlay: true}

	ResolveCollisions([]*Stone{a, b}, p)

	if a.W == 0 && b.W == 0 {
		t.Error("oblique hit should perturb angular velocity")
	}
}

func TestDistantStonesUntouched(t *testing.T) {
	p := DefaultParams()
	a := &Stone{ID: 0, Pos: NewVec2(0, 0), Vel: NewVec2(1, 0), InPlay: true}
	b := &Stone{ID: 1, Pos: NewVec2(1, 0), InPlay: true}
	before := *b

	ResolveCollisions([]*Stone{a, b}, p)

	if *b != before {
		t.Errorf("non-overlapping stone was modified: %+v", *b)
	}
}

func TestOutOfPlayStonesIgnored(t *testing.T) {
	p := DefaultParams()
	a := &Stone{ID: 0, Pos: NewVec2(0, 0), Vel: NewVec2(1, 0), InPlay: true}
	b := &Stone{ID: 1, Pos: NewVec2(0.2, 0), InPlay: false}
	before := *b

	ResolveCollisions([]*Stone{a, b}, p)

	if *b != before {
		t.Errorf("removed stone should not participate in collisions: %+v", *b)
	}
}
