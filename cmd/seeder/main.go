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
	"github.com/courtside/matchpoint/internal/scoring"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
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

	const clubID = "seed-club"
	const categoryID = "seed-category"

	if _, err := db.Exec("INSERT OR IGNORE INTO clubs (id, name) VALUES (?, ?)", clubID, "Seeded Club"); err != nil {
		log.Fatalf("Failed to insert club: %s", err)
	}
	if _, err := db.Exec("INSERT OR IGNORE INTO categories (id, club_id, name) VALUES (?, ?, ?)", categoryID, clubID, "Seeded Division"); err != nil {
		log.Fatalf("Failed to insert category: %s", err)
	}

	playerIDs := []string{"player-1", "player-2", "player-3", "player-4"}
	playerNames := []string{"Seeder Player A", "Seeder Player B", "Seeder Player C", "Seeder Player D"}
	for i, id := range playerIDs {
		if _, err := db.Exec("INSERT OR IGNORE INTO players (id, club_id, name, level) VALUES (?, ?, ?, ?)", id, clubID, playerNames[i], 4.0); err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", id, err)
		}
		if _, err := db.Exec("INSERT OR IGNORE INTO category_players (category_id, player_id) VALUES (?, ?)", categoryID, id); err != nil {
			log.Fatalf("Failed to enroll dummy player %s: %s", id, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 10000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	teams := []scoring.Team{
		{Players: []string{playerIDs[0], playerIDs[1]}},
		{Players: []string{playerIDs[2], playerIDs[3]}},
	}
	teamsJSON, _ := json.Marshal(teams)

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*11) // 11 columns per match

	for i := 0; i < numMatches; i++ {
		playedAt := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		winner := rand.Intn(2)
		sets := randomSets(winner)
		setsJSON, _ := json.Marshal(sets)
		participantsJSON, _ := json.Marshal(participants(teams, winner))

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			clubID,
			categoryID,
			scoring.FormatDoubles,
			3,
			scoring.DecidingSetStandard,
			playedAt.Unix(),
			time.Now().Unix(),
			string(teamsJSON),
			string(setsJSON),
			string(participantsJSON),
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(`
				INSERT INTO matches (id, club_id, category_id, format, best_of, deciding_set,
					played_at, created_at, teams_json, sets_json, participants_json)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*11)
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}

// randomSets produces two legal straight sets for the winning team.
func randomSets(winner int) []scoring.SetScore {
	set := func() scoring.SetScore {
		loserGames := rand.Intn(5) // 0..4 keeps 6-x legal
		games := []scoring.GameScore{
			{TeamIndex: winner, Score: 6},
			{TeamIndex: 1 - winner, Score: loserGames},
		}
		return scoring.SetScore{Games: games}
	}
	return []scoring.SetScore{set(), set()}
}

func participants(teams []scoring.Team, winner int) []scoring.Participant {
	var out []scoring.Participant
	for idx, team := range teams {
		result := scoring.ResultLoss
		if idx == winner {
			result = scoring.ResultWin
		}
		for _, playerID := range team.Players {
			out = append(out, scoring.Participant{PlayerID: playerID, Result: result})
		}
	}
	return out
}
