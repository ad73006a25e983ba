package game

import (
	"testing"
)

func TestSimulateAllTakeout(t *testing.T) {
	p := testParams()
	sheet := StandardSheet()

	// Shooter delivered down-ice at a stone sitting on the button.
	shooter := &Stone{ID: 0, Team: TeamRed, Pos: NewVec2(0, 5), Vel: NewVec2(0, -1.6), InPlay: true}
	target := &Stone{ID: 1, Team: TeamYellow, Pos: NewVec2(0, 0), InPlay: true}

	trajs, err := SimulateAll(p, p.TMax, []*Stone{shooter, target}, sheet)
	if err != nil {
		t.Fatalf("SimulateAll: %v", err)
	}
	if len(trajs) != 2 {
		t.Fatalf("expected 2 trajectories, got %d", len(trajs))
	}
	if target.Pos.Y >= -0.01 {
		t.Errorf("target should be driven down-ice by the hit, y=%.4f", target.Pos.Y)
	}
	if len(trajs[1]) < 2 {
		t.Errorf("struck stone recorded no movement: %d snapshots", len(trajs[1]))
	}
}

func TestSimulateAllRemovesOutOfBounds(t *testing.T) {
	p := testParams()
	sheet := StandardSheet()

	// Heavy takeout weight through the house and over the back line.
	s := &Stone{ID: 3, Team: TeamRed, Pos: NewVec2(0, 1), Vel: NewVec2(0, -3.5), InPlay: true}

	trajs, err := SimulateAll(p, p.TMax, []*Stone{s}, sheet)
	if err != nil {
		t.Fatal(err)
	}
	if s.InPlay {
		t.Errorf("stone past the back line should be out of play, pos=(%.2f,%.2f)", s.Pos.X, s.Pos.Y)
	}
	// State retained for logging even after removal.
	final := trajs[3].Final()
	if sheet.Contains(final.Pos) {
		t.Errorf("final snapshot should be outside the sheet rectangle: (%.2f,%.2f)", final.Pos.X, final.Pos.Y)
	}
}

func TestSimulateAllBounded(t *testing.T) {
	p := testParams()
	sheet := StandardSheet()
	s := &Stone{ID: 0, Team: TeamYellow, Pos: NewVec2(0, 10), Vel: NewVec2(0, -1), W: 1.45, InPlay: true}

	duration := 2.0
	trajs, err := SimulateAll(p, duration, []*Stone{s}, sheet)
	if err != nil {
		t.Fatal(err)
	}
	maxSnapshots := int(duration/p.Dt) + 1
	if len(trajs[0]) > maxSnapshots {
		t.Errorf("trajectory longer than duration/dt bound: %d > %d", len(trajs[0]), maxSnapshots)
	}
}

func TestSimulateAllValidation(t *testing.T) {
	p := testParams()
	sheet := StandardSheet()

	var tooMany []*Stone
	for i := 0; i < 17; i++ {
		tooMany = append(tooMany, &Stone{ID: i, Team: TeamRed, InPlay: true})
	}
	if _, err := SimulateAll(p, 10, tooMany, sheet); err == nil {
		t.Error("expected error for more than 16 stones")
	}

	var nineRed []*Stone
	for i := 0; i < 9; i++ {
		nineRed = append(nineRed, &Stone{ID: i, Team: TeamRed, InPlay: true})
	}
	if _, err := SimulateAll(p, 10, nineRed, sheet); err == nil {
		t.Error("expected error for 9 stones on one team")
	}

	dup := []*Stone{
		{ID: 1, Team: TeamRed, InPlay: true},
		{ID: 1, Team: TeamYellow, InPlay: true},
	}
	if _, err := SimulateAll(p, 10, dup, sheet); err == nil {
		t.Error("expected error for duplicate stone ids")
	}
}

func TestSimulateAllDeterministic(t *testing.T) {
	p := testParams()
	sheet := StandardSheet()
	run := func() (Stone, Stone) {
		a := &Stone{ID: 0, Team: TeamRed, Pos: NewVec2(0.05, 5), Vel: NewVec2(0, -1.7), W: 1.45, InPlay: true}
		b := &Stone{ID: 1, Team: TeamYellow, Pos: NewVec2(0, 0.3), InPlay: true}
		if _, err := SimulateAll(p, p.TMax, []*Stone{a, b}, sheet); err != nil {
			t.Fatal(err)
		}
		return *a, *b
	}
	a1, b1 := run()
	a2, b2 := run()
	if a1 != a2 || b1 != b2 {
		t.Error("identical multi-stone runs diverged")
	}
}
