package game

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Trajectory is the ordered, append-only sequence of stone snapshots for one
// run. Finite and not restartable; rendering, export and hog timing are the
// caller's concern.
type Trajectory []Stone

// Final returns the last snapshot.
func (t Trajectory) Final() Stone {
	return t[len(t)-1]
}

// WriteCSV streams the trajectory in the t,x,y,vx,vy,omega column layout
// used by the original export tooling.
func (t Trajectory) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t_s", "x_m", "y_m", "vx_mps", "vy_mps", "omega_radps"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range t {
		row := []string{
			strconv.FormatFloat(s.T, 'f', 4, 64),
			strconv.FormatFloat(s.Pos.X, 'f', 6, 64),
			strconv.FormatFloat(s.Pos.Y, 'f', 6, 64),
			strconv.FormatFloat(s.Vel.X, 'f', 6, 64),
			strconv.FormatFloat(s.Vel.Y, 'f', 6, 64),
			strconv.FormatFloat(s.W, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
