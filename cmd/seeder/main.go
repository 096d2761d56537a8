package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/tobiasvn/benchboss/internal/rotation"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	rosterNames := []string{
		"Seeder Player A", "Seeder Player B", "Seeder Player C", "Seeder Player D",
		"Seeder Player E", "Seeder Player F", "Seeder Player G", "Seeder Player H",
	}
	players := rotation.InitializePlayers(rosterNames)

	now := time.Now().Unix()
	for _, p := range players {
		_, err := db.Exec("INSERT OR IGNORE INTO roster_players (id, name, created_at) VALUES (?, ?, ?)", p.ID, p.Name, now)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.", "count", len(players))

	var squadIDs []string
	for _, p := range players {
		squadIDs = append(squadIDs, p.ID)
	}
	playersJSON, _ := json.Marshal(players)
	squadJSON, _ := json.Marshal(squadIDs)

	const batchSize = 100
	const numMatches = 1000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*11)
	statStrings := make([]string, 0, batchSize*len(players))
	statArgs := make([]interface{}, 0, batchSize*len(players)*15)

	flush := func(completed int) {
		stmt := fmt.Sprintf(`
			INSERT INTO matches (id, team_name, opponent, period_length_seconds, period_count,
				current_period, state, started_at, finished_at, players_json, squad_json)
			VALUES %s;`, strings.Join(valueStrings, ","))
		if _, err := tx.Exec(stmt, valueArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute batch insert: %s", err)
		}

		statStmt := fmt.Sprintf(`
			INSERT INTO match_stats (match_id, player_id, player_name, time_on_field_seconds,
				time_as_goalie_seconds, time_as_defender_seconds, time_as_attacker_seconds,
				time_as_sub_seconds, periods_as_goalie, periods_as_defender, periods_as_attacker,
				goalie_points, defender_points, attacker_points)
			VALUES %s;`, strings.Join(statStrings, ","))
		if _, err := tx.Exec(statStmt, statArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute stats batch insert: %s", err)
		}

		valueStrings = valueStrings[:0]
		valueArgs = valueArgs[:0]
		statStrings = statStrings[:0]
		statArgs = statArgs[:0]
		log.Info("Inserted batch", "completed", completed, "total", numMatches)
	}

	for i := 0; i < numMatches; i++ {
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		matchID := uuid.NewString()

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			matchID,
			"Seeded Team",
			fmt.Sprintf("Opponent %d", i%20),
			int64(900),
			3,
			3,
			"COMPLETED",
			matchTime.Unix(),
			matchTime.Add(60*time.Minute).Unix(),
			string(playersJSON),
			string(squadJSON),
		)

		for _, p := range players {
			fieldSeconds := int64(rand.Intn(2700))
			statStrings = append(statStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			statArgs = append(statArgs,
				matchID, p.ID, p.Name,
				fieldSeconds, 0, fieldSeconds, 0, int64(2700)-fieldSeconds,
				0, rand.Intn(4), 0,
				0.0, 3.0, 0.0,
			)
		}

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			flush(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}
