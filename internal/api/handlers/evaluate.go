package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/playbonspiel/backend/internal/config"
	"github.com/playbonspiel/backend/internal/game"
)

type evalRequest struct {
	ShotNumber *int        `json:"shot_number"`
	Hammer     string      `json:"hammer"`
	Stones     []PlacedDTO `json:"stones"`
	Skill      *float64    `json:"skill"`
}

// EvaluateHouse scores a house layout and returns the signed advantage plus
// the end-score distribution. Results are cached in Redis keyed by the
// canonical request, since evaluation is pure in its inputs.
func EvaluateHouse(rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	ttl := time.Duration(cfg.EvalCacheTTLSecs) * time.Second

	return func(c *gin.Context) {
		var req evalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
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

		skill := float64(cfg.DefaultSkill)
		if req.Skill != nil {
			skill = *req.Skill
		}

		stones, err := placedFromDTOs(req.Stones)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		key := evalCacheKey(*req.ShotNumber, hammer, stones, skill)
		if rdb != nil {
			if cached, err := rdb.Get(c.Request.Context(), key).Result(); err == nil {
				c.Data(http.StatusOK, "application/json", []byte(cached))
				return
			} else if err != redis.Nil {
				log.Printf("[CACHE] Lookup failed for %s: %v", key, err)
			}
		}

		adv, err := game.EvaluatePosition(*req.ShotNumber, hammer, stones, skill, game.StandardSheet())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body, err := json.Marshal(adv)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode result"})
			return
		}

		if rdb != nil {
			if err := rdb.Set(c.Request.Context(), key, body, ttl).Err(); err != nil {
				log.Printf("[CACHE] Store failed for %s: %v", key, err)
			}
		}

		c.Data(http.StatusOK, "application/json", body)
	}
}

// evalCacheKey hashes the fully-resolved evaluation inputs so that requests
// differing only in defaulted fields share an entry.
func evalCacheKey(shot int, hammer game.Team, stones []game.PlacedStone, skill float64) string {
	canonical, _ := json.Marshal(struct {
		Shot   int                `json:"shot"`
		Hammer string             `json:"hammer"`
		Stones []game.PlacedStone `json:"stones"`
		Skill  float64            `json:"skill"`
	}{shot, hammer.String(), stones, skill})

	sum := sha256.Sum256(canonical)
	return "eval:" + hex.EncodeToString(sum[:])
}
