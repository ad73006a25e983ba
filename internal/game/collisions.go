package game

// Pairwise impulse collision resolution. Runs once per tick, after every
// stone's position has been advanced; there is no iterative re-resolution
// within the tick.

// ResolveCollisions resolves every overlapping unordered pair of in-play
// stones in slice order.
func ResolveCollisions(stones []*Stone, p Params) {
	for i := 0; i < len(stones); i++ {
		if !stones[i].InPlay {
			continue
		}
		for j := i + 1; j < len(stones); j++ {
			if !stones[j].InPlay {
				continue
			}
			resolvePair(stones[i], stones[j], p)
		}
	}
}

func resolvePair(a, b *Stone, p Params) {
	delta := b.Pos.Minus(a.Pos)
	dist := delta.Magnitude()
	if dist >= 2*p.R {
		return
	}

	if dist < p.VEps {
		dist = p.VEps
	}
	n := delta.Times(1 / dist)

	// Already separating: no impulse.
	rel := b.Vel.Minus(a.Vel)
	vn := rel.Dot(n)
	if vn > 0 {
		separate(a, b, n, dist, p)
		return
	}

	// Equal masses cancel in the impulse formula, leaving the division by 2.
	j := -(1 + p.Rest) * vn / 2
	a.Vel = a.Vel.Minus(n.Times(j))
	b.Vel = b.Vel.Plus(n.Times(j))

	// Empirical spin transfer: a fixed share of the normal/velocity cross
	// term, not a rigid-body law. Kept as-is for parity with the reference.
	a.W += spinTransferFactor * n.Cross(a.Vel)
	b.W += spinTransferFactor * n.Cross(b.Vel)

	separate(a, b, n, dist, p)
}

const spinTransferFactor = 0.5

// separate pushes the pair apart along the normal, splitting the penetration
// depth evenly so overlap cannot persist across ticks.
func separate(a, b *Stone, n Vec2, dist float64, p Params) {
	pen := 2*p.R - dist
	if pen <= 0 {
		return
	}
	shift := n.Times(pen / 2)
	a.Pos = a.Pos.Minus(shift)
	b.Pos = b.Pos.Plus(shift)
}
