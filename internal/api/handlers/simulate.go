package handlers

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/playbonspiel/backend/internal/config"
	"github.com/playbonspiel/backend/internal/game"
	"github.com/playbonspiel/backend/internal/models"
)

type throwRequest struct {
	Stone    StoneDTO `json:"stone"`
	Duration float64  `json:"duration"`
}

type endRequest struct {
	Stones   []StoneDTO `json:"stones"`
	Duration float64    `json:"duration"`
}

// SimulateThrow integrates a single stone and returns its full trajectory.
func SimulateThrow(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req throwRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		stone, err := stoneFromDTO(req.Stone)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		params := cfg.Params()
		duration := req.Duration
		if duration <= 0 {
			duration = params.TMax
		}

		traj, err := game.SimulateStone(stone, params, duration)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"trajectory": traj,
			"final":      traj.Final(),
		})
	}
}

// SimulateEnd runs the multi-stone stepper over every supplied stone and
// persists the run for later replay. Persistence is best-effort: a storage
// failure is logged but never fails the simulation itself.
func SimulateEnd(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req endRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		stones, err := stonesFromDTOs(req.Stones)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		params := cfg.Params()
		duration := req.Duration
		if duration <= 0 {
			duration = params.TMax
		}

		trajectories, err := game.SimulateAll(params, duration, stones, game.StandardSheet())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		runID := 0
		if db != nil {
			if id, err := saveRun(c, db, params, req.Stones, trajectories); err != nil {
				log.Printf("[SIM] Failed to persist run: %v", err)
			} else {
				runID = id
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"run_id":       runID,
			"trajectories": trajectories,
			"final":        stones,
		})
	}
}

func saveRun(c *gin.Context, db *sqlx.DB, params game.Params, stones []StoneDTO, trajectories map[int]game.Trajectory) (int, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return 0, err
	}
	stonesJSON, err := json.Marshal(stones)
	if err != nil {
		return 0, err
	}
	trajJSON, err := json.Marshal(trajectories)
	if err != nil {
		return 0, err
	}

	var id int
	err = db.QueryRowContext(c.Request.Context(), `
		INSERT INTO simulation_runs (params, stones, trajectories)
		VALUES ($1, $2, $3)
		RETURNING id
	`, paramsJSON, stonesJSON, trajJSON).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ExportRunCSV streams a stored run as CSV. With ?stone=N only that stone's
// trajectory is written; otherwise all stones are interleaved with a
// stone_id column.
func ExportRunCSV(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
			return
		}

		runID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
			return
		}

		var run models.SimulationRun
		err = db.GetContext(c.Request.Context(), &run,
			`SELECT id, params, stones, trajectories, created_at FROM simulation_runs WHERE id = $1`, runID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		if err != nil {
			log.Printf("[SIM] Failed to load run %d: %v", runID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run"})
			return
		}

		var trajectories map[int]game.Trajectory
		if err := json.Unmarshal(run.Trajectories, &trajectories); err != nil {
			log.Printf("[SIM] Corrupt trajectories for run %d: %v", runID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "corrupt run data"})
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=run-%d.csv", runID))

		if raw, ok := c.GetQuery("stone"); ok {
			stoneID, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stone id"})
				return
			}
			traj, ok := trajectories[stoneID]
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "stone not in run"})
				return
			}
			if err := traj.WriteCSV(c.Writer); err != nil {
				log.Printf("[SIM] CSV export for run %d failed: %v", runID, err)
			}
			return
		}

		if err := writeCombinedCSV(c, trajectories); err != nil {
			log.Printf("[SIM] CSV export for run %d failed: %v", runID, err)
		}
	}
}

func writeCombinedCSV(c *gin.Context, trajectories map[int]game.Trajectory) error {
	ids := make([]int, 0, len(trajectories))
	for id := range trajectories {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	w := csv.NewWriter(c.Writer)
	if err := w.Write([]string{"stone_id", "t_s", "x_m", "y_m", "vx_mps", "vy_mps", "omega_radps"}); err != nil {
		return err
	}
	for _, id := range ids {
		for _, s := range trajectories[id] {
			row := []string{
				strconv.Itoa(id),
				strconv.FormatFloat(s.T, 'f', 4, 64),
				strconv.FormatFloat(s.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(s.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(s.Vel.X, 'f', 6, 64),
				strconv.FormatFloat(s.Vel.Y, 'f', 6, 64),
				strconv.FormatFloat(s.W, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
