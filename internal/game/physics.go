package game

import (
	"fmt"
	"math"
)

// Force model per Leaney (2020): the running band is N point contacts, each
// carrying an equal share of the normal load with a speed-dependent friction
// coefficient mu(v) = mu0 / sqrt(v), plus a pivot force perpendicular to the
// travel direction that produces the curl and an opposing spin-down torque.

// netForce returns the net force (N) and torque (N*m) acting on a stone.
func netForce(s *Stone, p Params) (Vec2, float64) {
	var fx, fy, tau float64

	dN := p.Mass * p.G / float64(p.Segments)
	for i := 0; i < p.Segments; i++ {
		phi := 2 * math.Pi * float64(i) / float64(p.Segments)
		cosPhi := math.Cos(phi)
		sinPhi := math.Sin(phi)

		// Local band contact velocity: translation plus rotation.
		vlx := s.Vel.X - s.W*p.RBand*sinPhi
		vly := s.Vel.Y + s.W*p.RBand*cosPhi

		vmag := math.Hypot(vlx, vly)
		if vmag < p.VEps {
			vmag = p.VEps
		}
		muLocal := p.Mu0 / math.Sqrt(vmag)

		// Friction opposes the local velocity direction.
		dfx := -(dN * muLocal) * (vlx / vmag)
		dfy := -(dN * muLocal) * (vly / vmag)

		fx += dfx
		fy += dfy
		tau += p.RBand * (cosPhi*dfy - sinPhi*dfx)
	}

	// Pivot term: lateral force toward the slow side of the band, with an
	// equal-magnitude torque opposing the spin.
	speed := s.Vel.Magnitude()
	var vhx, vhy float64
	if speed >= p.VEps {
		vhx = s.Vel.X / speed
		vhy = s.Vel.Y / speed
	}

	vRot := math.Abs(s.W) * p.RBand
	if vRot < p.VEps {
		vRot = p.VEps
	}
	muPivot := p.Alpha * p.Mu0 / math.Sqrt(vRot)
	fPivot := p.Mass * p.G * muPivot

	var sgnW float64
	if s.W > 1e-12 {
		sgnW = 1
	} else if s.W < -1e-12 {
		sgnW = -1
	}

	// Left perpendicular of the velocity direction, signed by spin.
	fx += sgnW * fPivot * -vhy
	fy += sgnW * fPivot * vhx
	tau += -sgnW * fPivot * p.RBand

	return Vec2{X: fx, Y: fy}, tau
}

// stepOnce advances a stone by exactly one time step using semi-implicit
// Euler: velocities update first, positions advance with the UPDATED
// velocities. The ordering is load-bearing for numerical parity.
func stepOnce(s *Stone, p Params) {
	f, tau := netForce(s, p)

	ax := f.X / p.Mass
	ay := f.Y / p.Mass
	alphaZ := tau / p.Inertia()

	s.Vel.X += p.Dt * ax
	s.Vel.Y += p.Dt * ay
	s.W += p.Dt * alphaZ

	s.Pos.X += p.Dt * s.Vel.X
	s.Pos.Y += p.Dt * s.Vel.Y
	s.T += p.Dt
}

// SimulateStone advances one stone in isolation until it stops or the
// duration elapses, mutating the stone and returning the trajectory of
// accepted steps (initial state included).
func SimulateStone(s *Stone, p Params, duration float64) (Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("duration must be > 0, got %v", duration)
	}
	if duration > p.TMax {
		duration = p.TMax
	}

	traj := Trajectory{*s}
	steps := int(duration / p.Dt)
	for i := 0; i < steps; i++ {
		if s.Stopped(p) {
			break
		}
		stepOnce(s, p)
		traj = append(traj, *s)
	}
	return traj, nil
}
