package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dungeonbot/models"
	"dungeonbot/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type handlers struct {
	db    Pinger
	users service.UserService
}

type userView struct {
	ID         string `json:"id"`
	Gold       int64  `json:"gold"`
	Level      int64  `json:"level"`
	Experience int64  `json:"experience"`
	Kills      int64  `json:"kills"`
	Deaths     int64  `json:"deaths"`
	Gambles    int64  `json:"gambles"`
	GamblesWon int64  `json:"gambles_won"`
	Location   string `json:"location"`
	Floor      int64  `json:"floor"`
}

// Discord snowflakes exceed the float precision of JavaScript clients, so ids
// are rendered as strings
func newUserView(u *models.User) userView {
	return userView{
		ID:         strconv.FormatInt(u.ID, 10),
		Gold:       u.Gold,
		Level:      u.Level,
		Experience: u.Experience,
		Kills:      u.Kills,
		Deaths:     u.Deaths,
		Gambles:    u.Gambles,
		GamblesWon: u.GamblesWon,
		Location:   string(u.Location),
		Floor:      u.Floor,
	}
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		log.WithError(err).Warn("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": "down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": "up"})
}

func (h *handlers) user(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	u, ok := h.users.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, newUserView(u))
}

func (h *handlers) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLeaderboardLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	users := h.users.Leaderboard(limit)
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
