package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/playbonspiel/backend/internal/config"
	"github.com/playbonspiel/backend/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin is enforced by the WebSocketCORSCheck middleware
	},
}

const (
	writeWait = 10 * time.Second
	readWait  = 60 * time.Second
)

// WSMessage is the envelope for every frame in both directions.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type throwFrame struct {
	ID   int     `json:"id"`
	Team string  `json:"team"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	W    float64 `json:"w"`
}

type simCommand struct {
	Stones   []throwFrame `json:"stones"`
	Duration float64      `json:"duration"`
	Stride   int          `json:"stride"`
}

// HandleSimSocket upgrades the connection and serves simulation commands.
// The client sends one command per message; the server streams the resulting
// snapshots as "frame" messages and finishes each run with a "done" message.
func HandleSimSocket(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		log.Printf("[WS] Client connected: %s", c.ClientIP())

		for {
			conn.SetReadDeadline(time.Now().Add(readWait))
			var msg WSMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[WS] Read error: %v", err)
				}
				return
			}

			switch msg.Type {
			case "simulate":
				var cmd simCommand
				if err := json.Unmarshal(msg.Data, &cmd); err != nil {
					sendError(conn, "invalid simulate payload")
					continue
				}
				runSimulation(conn, cfg, cmd)
			case "ping":
				send(conn, "pong", nil)
			default:
				sendError(conn, "unknown message type: "+msg.Type)
			}
		}
	}
}

func runSimulation(conn *websocket.Conn, cfg *config.Config, cmd simCommand) {
	stones := make([]*game.Stone, 0, len(cmd.Stones))
	for _, f := range cmd.Stones {
		team, err := game.ParseTeam(f.Team)
		if err != nil {
			sendError(conn, err.Error())
			return
		}
		stones = append(stones, &game.Stone{
			ID:     f.ID,
			Team:   team,
			Pos:    game.NewVec2(f.X, f.Y),
			Vel:    game.NewVec2(f.VX, f.VY),
			W:      f.W,
			InPlay: true,
		})
	}
	if len(stones) == 0 {
		sendError(conn, "at least one stone required")
		return
	}

	params := cfg.Params()
	duration := cmd.Duration
	if duration <= 0 {
		duration = params.TMax
	}
	stride := cmd.Stride
	if stride <= 0 {
		stride = 10 // 100 ms of sim time at the default step
	}

	trajectories, err := game.SimulateAll(params, duration, stones, game.StandardSheet())
	if err != nil {
		sendError(conn, err.Error())
		return
	}

	// Stream tick-aligned frames: one message per stride carrying every
	// stone's snapshot at that tick, so the client can animate in lockstep.
	maxTicks := 0
	for _, traj := range trajectories {
		if len(traj) > maxTicks {
			maxTicks = len(traj)
		}
	}

	for tick := 0; tick < maxTicks; tick += stride {
		frame := make(map[int]game.Stone, len(trajectories))
		for id, traj := range trajectories {
			i := tick
			if i >= len(traj) {
				i = len(traj) - 1
			}
			frame[id] = traj[i]
		}
		if !send(conn, "frame", frame) {
			return
		}
	}

	final := make(map[int]game.Stone, len(trajectories))
	for id, traj := range trajectories {
		final[id] = traj.Final()
	}
	send(conn, "done", final)
}

func send(conn *websocket.Conn, msgType string, payload interface{}) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WS] Marshal failed: %v", err)
		return false
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(WSMessage{Type: msgType, Data: data}); err != nil {
		log.Printf("[WS] Write failed: %v", err)
		return false
	}
	return true
}

func sendError(conn *websocket.Conn, msg string) {
	send(conn, "error", map[string]string{"error": msg})
}
