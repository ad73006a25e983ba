package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/playbonspiel/backend/internal/game"
	"github.com/playbonspiel/backend/internal/models"
)

type createPositionRequest struct {
	Name       string      `json:"name"`
	ShotNumber *int        `json:"shot_number"`
	Hammer     string      `json:"hammer"`
	Skill      int         `json:"skill"`
	Stones     []PlacedDTO `json:"stones"`
}

// CreatePosition stores a named house layout after validating it evaluates
// cleanly, so saved positions can always be reloaded into the evaluator.
func CreatePosition(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
			return
		}

		var req createPositionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if req.ShotNumber == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shot_number is required"})
			return
		}

		hammer, err := game.ParseTeam(req.Hammer)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		stones, err := placedFromDTOs(req.Stones)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		skill := req.Skill
		if skill == 0 {
			skill = 50
		}

		if _, err := game.EvaluatePosition(*req.ShotNumber, hammer, stones, float64(skill), game.StandardSheet()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		stonesJSON, err := json.Marshal(req.Stones)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode stones"})
			return
		}

		var pos models.SavedPosition
		err = db.GetContext(c.Request.Context(), &pos, `
			INSERT INTO positions (name, shot_number, hammer_team, skill, stones)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, name, shot_number, hammer_team, skill, stones, created_at
		`, req.Name, *req.ShotNumber, hammer.String(), skill, stonesJSON)
		if err != nil {
			log.Printf("[POSITIONS] Failed to create position: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save position"})
			return
		}

		c.JSON(http.StatusCreated, pos)
	}
}

// ListPositions returns the most recent saved positions, newest first.
func ListPositions(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
			return
		}

		limit := 50
		if raw, ok := c.GetQuery("limit"); ok {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}

		positions := []models.SavedPosition{}
		err := db.SelectContext(c.Request.Context(), &positions, `
			SELECT id, name, shot_number, hammer_team, skill, stones, created_at
			FROM positions
			ORDER BY created_at DESC
			LIMIT $1
		`, limit)
		if err != nil {
			log.Printf("[POSITIONS] Failed to list positions: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list positions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"positions": positions})
	}
}

// GetPosition fetches one saved position by id.
func GetPosition(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position id"})
			return
		}

		var pos models.SavedPosition
		err = db.GetContext(c.Request.Context(), &pos, `
			SELECT id, name, shot_number, hammer_team, skill, stones, created_at
			FROM positions WHERE id = $1
		`, id)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "position not found"})
			return
		}
		if err != nil {
			log.Printf("[POSITIONS] Failed to load position %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load position"})
			return
		}

		c.JSON(http.StatusOK, pos)
	}
}

// DeletePosition removes a saved position. Admin-only.
func DeletePosition(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position id"})
			return
		}

		res, err := db.ExecContext(c.Request.Context(), `DELETE FROM positions WHERE id = $1`, id)
		if err != nil {
			log.Printf("[POSITIONS] Failed to delete position %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete position"})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "position not found"})
			return
		}

		log.Printf("[POSITIONS] Deleted position %d", id)
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}
