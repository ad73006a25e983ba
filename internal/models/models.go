package models

import (
	"encoding/json"
	"time"
)

// SavedPosition is a named house layout a user can reload and re-evaluate.
type SavedPosition struct {
	ID         int             `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	ShotNumber int             `db:"shot_number" json:"shot_number"`
	HammerTeam string          `db:"hammer_team" json:"hammer_team"`
	Skill      int             `db:"skill" json:"skill"`
	Stones     json.RawMessage `db:"stones" json:"stones"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// SimulationRun records one multi-stone run: the inputs and the resulting
// per-stone trajectories, kept for replay and CSV export.
type SimulationRun struct {
	ID           int             `db:"id" json:"id"`
	Params       json.RawMessage `db:"params" json:"params"`
	Stones       json.RawMessage `db:"stones" json:"stones"`
	Trajectories json.RawMessage `db:"trajectories" json:"trajectories,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// AdminAccount holds the bcrypt-hashed token used for privileged routes.
type AdminAccount struct {
	Username  string    `db:"username" json:"username"`
	TokenHash string    `db:"token_hash" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
