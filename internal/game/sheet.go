package game

// Sheet describes the playing surface in button-centered coordinates:
// the button is the origin, x runs across the sheet, y runs down-ice with
// the delivering end at positive y. Read-only during a run.
type Sheet struct {
	HalfWidth   float64 `json:"half_width"`   // centerline to side line [m]
	HouseRadius float64 `json:"house_radius"` // button to outer twelve-foot edge [m]
	HogY        float64 `json:"hog_y"`        // tee line to near hog line [m]
	BackY       float64 `json:"back_y"`       // y of the back line (negative) [m]
	FarY        float64 `json:"far_y"`        // y of the far back line [m]
	Margin      float64 `json:"margin"`       // out-of-bounds margin on every edge [m]
}

// StandardSheet is a World Curling Federation sheet.
func StandardSheet() Sheet {
	return Sheet{
		HalfWidth:   2.375,
		HouseRadius: 1.829,
		HogY:        6.401,
		BackY:       -1.829,
		FarY:        38.405,
		Margin:      0.5,
	}
}

// Contains reports whether a stone center is still inside the bounded
// rectangle (sheet plus margin). Outside means the stone leaves play.
func (s Sheet) Contains(p Vec2) bool {
	if p.X < -(s.HalfWidth+s.Margin) || p.X > s.HalfWidth+s.Margin {
		return false
	}
	if p.Y < s.BackY-s.Margin || p.Y > s.FarY+s.Margin {
		return false
	}
	return true
}

// InHouse reports whether a point lies within the house circle.
func (s Sheet) InHouse(p Vec2) bool {
	return p.MagnitudeSquared() <= s.HouseRadius*s.HouseRadius
}
