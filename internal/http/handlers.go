package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tobiasvn/benchboss/internal/match"
	"github.com/tobiasvn/benchboss/internal/roster"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Store.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
		}
	}
}

// respondWithJSON is a helper to write a JSON response body.
func respondWithJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

func (s *Server) ListRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		respondWithJSON(w, players)
	}
}

func (s *Server) AddPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Names []string `json:"names"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if len(body.Names) == 0 {
			http.Error(w, "At least one player name is required", http.StatusBadRequest)
			return
		}

		created := rotation.InitializePlayers(body.Names)
		now := time.Now().Unix()
		infos := make([]roster.PlayerInfo, 0, len(created))
		for _, p := range created {
			infos = append(infos, roster.PlayerInfo{ID: p.ID, Name: p.Name, CreatedAt: now})
		}

		if err := s.Store.UpsertPlayers(infos); err != nil {
			http.Error(w, "Failed to save players", http.StatusInternalServerError)
			log.Error("Failed to upsert players", "error", err)
			return
		}
		log.Info("Added players to roster", "count", len(infos))
		respondWithJSON(w, infos)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		respondWithJSON(w, matches)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		record, err := s.Matches.Get(matchID)
		if err != nil {
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			log.Error("Failed to get match", "matchID", matchID, "error", err)
			return
		}
		if record == nil {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		respondWithJSON(w, record)
	}
}

func (s *Server) StartMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var setup match.MatchSetup
		if err := json.NewDecoder(r.Body).Decode(&setup); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if setup.TeamName == "" {
			setup.TeamName = s.Cfg.TeamName
		}

		record, err := s.Matches.StartMatch(setup, time.Now().Unix())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to start match", "error", err)
			return
		}
		respondWithJSON(w, record)
	}
}

func (s *Server) SubstituteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MatchID string  `json:"match_id"`
			OutID   string  `json:"out_id"`
			InID    string  `json:"in_id"`
			PairKey *string `json:"pair_key,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := s.Matches.Substitute(body.MatchID, body.OutID, body.InID, body.PairKey, time.Now().Unix()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to apply substitution", "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) ChangeGoalieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MatchID  string `json:"match_id"`
			GoalieID string `json:"goalie_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := s.Matches.ChangeGoalie(body.MatchID, body.GoalieID, time.Now().Unix()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to change goalie", "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) SwapRolesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MatchID string `json:"match_id"`
			PlayerA string `json:"player_a"`
			PlayerB string `json:"player_b"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := s.Matches.SwapRoles(body.MatchID, body.PlayerA, body.PlayerB, time.Now().Unix()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to swap roles", "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) PauseMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if err := s.Matches.Pause(matchID, time.Now().Unix()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to pause match", "matchID", matchID, "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) ResumeMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if err := s.Matches.Resume(matchID, time.Now().Unix()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to resume match", "matchID", matchID, "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) EndPeriodHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		isDryRun := isDryRunFromContext(r)

		if err := s.Matches.EndPeriod(matchID, time.Now().Unix(), isDryRun); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to end period", "matchID", matchID, "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) EditSquadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MatchID   string   `json:"match_id"`
			PlayerIDs []string `json:"player_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := s.Matches.EditSquad(body.MatchID, body.PlayerIDs, time.Now().Unix()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to edit squad", "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) FinishMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		isDryRun := isDryRunFromContext(r)

		if err := s.Matches.FinishMatch(matchID, time.Now().Unix(), isDryRun); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to finish match", "matchID", matchID, "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) RolePointsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		points, err := s.Matches.RolePoints(matchID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to calculate role points", "matchID", matchID, "error", err)
			return
		}
		respondWithJSON(w, points)
	}
}

func (s *Server) MatchStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		snapshots, err := s.Store.GetStatSnapshots(matchID)
		if err != nil {
			http.Error(w, "Failed to get match stats", http.StatusInternalServerError)
			log.Error("Failed to get match stats from store", "matchID", matchID, "error", err)
			return
		}
		respondWithJSON(w, snapshots)
	}
}

func (s *Server) SuggestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		suggestions, err := s.Matches.Suggestions(matchID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to rank suggestions", "matchID", matchID, "error", err)
			return
		}

		if r.URL.Query().Get("notify") == "true" {
			if err := s.Matches.NotifySuggestions(matchID, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to notify suggestions", "matchID", matchID, "error", err)
			}
		}
		respondWithJSON(w, suggestions)
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.Store.GetFairnessLeaderboard()
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}

		if r.URL.Query().Get("share") == "true" {
			if err := s.Matches.ShareLeaderboard(isDryRunFromContext(r)); err != nil {
				log.Error("Failed to share leaderboard", "error", err)
			}
		}
		respondWithJSON(w, entries)
	}
}
