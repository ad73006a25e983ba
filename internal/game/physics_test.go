package game

import (
	"math"
	"testing"
)

// testParams uses a coarser band discretization than the defaults so the
// full draw-shot loops stay fast.
func testParams() Params {
	p := DefaultParams()
	p.Segments = 72
	return p
}

func throw(v0, w0 float64) *Stone {
	return &Stone{
		ID:     0,
		Team:   TeamRed,
		Pos:    NewVec2(0, 0),
		Vel:    NewVec2(v0, 0),
		W:      w0,
		InPlay: true,
	}
}

func TestDrawShotCurlsTowardRotation(t *testing.T) {
	p := testParams()

	in := throw(1.0, 1.45)
	if _, err := SimulateStone(in, p, p.TMax); err != nil {
		t.Fatalf("SimulateStone: %v", err)
	}
	if in.Pos.Y <= 0 {
		t.Errorf("in-turn stone should curl to +y, got y=%.4f", in.Pos.Y)
	}

	out := throw(1.0, -1.45)
	if _, err := SimulateStone(out, p, p.TMax); err != nil {
		t.Fatalf("SimulateStone: %v", err)
	}
	if out.Pos.Y >= 0 {
		t.Errorf("out-turn stone should curl to -y, got y=%.4f", out.Pos.Y)
	}

	// Mirror-image turns produce mirror-image paths.
	if math.Abs(in.Pos.Y+out.Pos.Y) > 1e-6 || math.Abs(in.Pos.X-out.Pos.X) > 1e-6 {
		t.Errorf("turns not symmetric: in=(%.6f,%.6f) out=(%.6f,%.6f)",
			in.Pos.X, in.Pos.Y, out.Pos.X, out.Pos.Y)
	}
}

func TestStoneComesToRest(t *testing.T) {
	p := testParams()
	s := throw(1.0, 1.45)
	traj, err := SimulateStone(s, p, p.TMax)
	if err != nil {
		t.Fatalf("SimulateStone: %v", err)
	}
	if !s.Stopped(p) {
		t.Errorf("stone still moving after t_max: |v|=%.4f w=%.4f", s.Vel.Magnitude(), s.W)
	}
	if s.T >= p.TMax {
		t.Errorf("expected early stop, ran the full %v s", p.TMax)
	}
	if len(traj) < 2 {
		t.Fatalf("trajectory too short: %d", len(traj))
	}
	if got := traj.Final(); got != *s {
		t.Errorf("final snapshot does not match mutated stone: %+v vs %+v", got, *s)
	}
}

func TestFasterThrowTravelsFarther(t *testing.T) {
	p := testParams()
	slow := throw(1.0, 1.45)
	fast := throw(1.8, 1.45)
	if _, err := SimulateStone(slow, p, p.TMax); err != nil {
		t.Fatal(err)
	}
	if _, err := SimulateStone(fast, p, p.TMax); err != nil {
		t.Fatal(err)
	}
	if fast.Pos.X <= slow.Pos.X {
		t.Errorf("heavier weight should travel farther: fast=%.3f slow=%.3f", fast.Pos.X, slow.Pos.X)
	}
}

func TestSimulateStoneDeterministic(t *testing.T) {
	p := testParams()
	run := func() Stone {
		s := throw(1.3, 1.45)
		if _, err := SimulateStone(s, p, p.TMax); err != nil {
			t.Fatal(err)
		}
		return *s
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("identical inputs diverged: %+v vs %+v", a, b)
	}
}

func TestSimulateStoneRejectsBadInput(t *testing.T) {
	p := testParams()

	bad := p
	bad.Dt = 0
	if _, err := SimulateStone(throw(1, 1), bad, 10); err == nil {
		t.Error("expected error for dt=0")
	}

	bad = p
	bad.TMax = -1
	if _, err := SimulateStone(throw(1, 1), bad, 10); err == nil {
		t.Error("expected error for t_max<0")
	}

	if _, err := SimulateStone(throw(1, 1), p, 0); err == nil {
		t.Error("expected error for non-positive duration")
	}

	s := throw(1, 1)
	s.Pos.X = math.NaN()
	if _, err := SimulateStone(s, p, 10); err == nil {
		t.Error("expected error for non-finite position")
	}
}

func TestTrajectoryTimeIsMonotonic(t *testing.T) {
	p := testParams()
	s := throw(1.0, -1.0)
	traj, err := SimulateStone(s, p, p.TMax)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(traj); i++ {
		if traj[i].T <= traj[i-1].T {
			t.Fatalf("time not increasing at step %d: %.4f then %.4f", i, traj[i-1].T, traj[i].T)
		}
	}
}
