package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatamihq/tatami-backend/internal/config"
	"github.com/tatamihq/tatami-backend/internal/database"
	"github.com/tatamihq/tatami-backend/internal/logger"
	"github.com/tatamihq/tatami-backend/internal/model"
)

// Dev seeding tool: one location, two classes, and a mat full of members
// with active memberships so the roster endpoints have data to chew on.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Println("=== Seeding location, classes, and members ===")

	locationID, err := upsertLocation(ctx, pool, "HQ Academy")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed location")
	}

	typeID, err := upsertMembershipType(ctx, pool, "Unlimited")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed membership type")
	}

	// Monday fundamentals open to everyone, Wednesday advanced restricted
	// to the Unlimited plan.
	if _, err := upsertClass(ctx, pool, locationID, "Fundamentals", 1, "18:00", "19:00", nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed class")
	}
	if _, err := upsertClass(ctx, pool, locationID, "Advanced Gi", 3, "19:00", "20:30", &typeID); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed class")
	}

	names := []string{
		"Ana Souza", "Bruno Lima", "Carla Mendes", "Diego Ferreira", "Elisa Rocha",
		"Felipe Costa", "Gabriela Nunes", "Hugo Almeida", "Isabela Martins", "Joao Pereira",
		"Karen Oliveira", "Lucas Barbosa", "Mariana Ribeiro", "Nathan Carvalho", "Olivia Santos",
		"Pedro Azevedo", "Quenia Moraes", "Rafael Teixeira", "Sofia Cardoso", "Thiago Ramos",
	}

	successCount := 0
	for i, fullName := range names {
		parts := strings.SplitN(fullName, " ", 2)

		program := model.ProgramAdult
		belt := model.BeltWhite
		if i%5 == 4 {
			program = model.ProgramKids
			belt = model.BeltGrey
		}

		var memberID int
		err := pool.QueryRow(ctx,
			`INSERT INTO members (external_ref, first_name, last_name, program, belt, stripes)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (external_ref) DO UPDATE SET first_name = EXCLUDED.first_name
			 RETURNING id`,
			uuid.New().String(), parts[0], parts[1], program, belt, i%3,
		).Scan(&memberID)
		if err != nil {
			fmt.Printf("Error creating member %s: %v\n", fullName, err)
			continue
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO memberships (member_id, location_id, membership_type_id, status)
			 VALUES ($1, $2, $3, 'active')
			 ON CONFLICT DO NOTHING`,
			memberID, locationID, typeID)
		if err != nil {
			fmt.Printf("Error creating membership for %s: %v\n", fullName, err)
			continue
		}
		successCount++
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d members.\n", successCount, len(names))
}

func upsertLocation(ctx context.Context, pool *pgxpool.Pool, name string) (int, error) {
	var id int
	err := pool.QueryRow(ctx,
		`INSERT INTO locations (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, name).Scan(&id)
	return id, err
}

func upsertMembershipType(ctx context.Context, pool *pgxpool.Pool, name string) (int, error) {
	var id int
	err := pool.QueryRow(ctx,
		`INSERT INTO membership_types (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, name).Scan(&id)
	return id, err
}

func upsertClass(ctx context.Context, pool *pgxpool.Pool, locationID int, name string, weekday int, start, end string, typeID *int) (int, error) {
	var id int
	err := pool.QueryRow(ctx,
		`INSERT INTO classes (location_id, name, weekday, start_time, end_time, membership_type_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (location_id, name) DO UPDATE SET weekday = EXCLUDED.weekday
		 RETURNING id`,
		locationID, name, weekday, start, end, typeID).Scan(&id)
	return id, err
}
