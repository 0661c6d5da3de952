// Package store is crossgen serve's persistence layer: a Postgres
// puzzles table plus a Redis job-status cache, adapted from the
// teacher's internal/db/db.go connection-pool and InitSchema pattern
// but reduced to the single-job generation model.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wordgrid/crossgen/internal/models"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	DB    *sql.DB
	Redis *redis.Client
}

func New(postgresURL, redisURL string) (*Store, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

func (s *Store) Close() error {
	if err := s.DB.Close(); err != nil {
		return err
	}
	return s.Redis.Close()
}

// InitSchema creates the puzzles table.
func (s *Store) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		author VARCHAR(100) NOT NULL,
		difficulty VARCHAR(20) NOT NULL,
		grid_width INTEGER NOT NULL,
		grid_height INTEGER NOT NULL,
		grid JSONB NOT NULL,
		clues_across JSONB NOT NULL,
		clues_down JSONB NOT NULL,
		seed BIGINT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_created_at ON puzzles(created_at);
	`

	_, err := s.DB.Exec(schema)
	return err
}

func (s *Store) CreatePuzzle(puzzle *models.Puzzle) error {
	gridJSON, err := json.Marshal(puzzle.Grid)
	if err != nil {
		return err
	}
	cluesAcrossJSON, err := json.Marshal(puzzle.CluesAcross)
	if err != nil {
		return err
	}
	cluesDownJSON, err := json.Marshal(puzzle.CluesDown)
	if err != nil {
		return err
	}

	_, err = s.DB.Exec(`
		INSERT INTO puzzles (id, title, author, difficulty, grid_width, grid_height,
							 grid, clues_across, clues_down, seed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, puzzle.ID, puzzle.Title, puzzle.Author, puzzle.Difficulty, puzzle.GridWidth, puzzle.GridHeight,
		gridJSON, cluesAcrossJSON, cluesDownJSON, puzzle.Seed, puzzle.CreatedAt)
	return err
}

func (s *Store) GetPuzzleByID(id string) (*models.Puzzle, error) {
	puzzle := &models.Puzzle{}
	var gridJSON, cluesAcrossJSON, cluesDownJSON []byte

	err := s.DB.QueryRow(`
		SELECT id, title, author, difficulty, grid_width, grid_height,
			   grid, clues_across, clues_down, seed, created_at
		FROM puzzles WHERE id = $1
	`, id).Scan(&puzzle.ID, &puzzle.Title, &puzzle.Author, &puzzle.Difficulty,
		&puzzle.GridWidth, &puzzle.GridHeight, &gridJSON, &cluesAcrossJSON, &cluesDownJSON,
		&puzzle.Seed, &puzzle.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(gridJSON, &puzzle.Grid); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cluesAcrossJSON, &puzzle.CluesAcross); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cluesDownJSON, &puzzle.CluesDown); err != nil {
		return nil, err
	}

	return puzzle, nil
}

// Job status cache, keyed by job id, as the teacher caches ephemeral
// room state in Redis rather than Postgres.

const jobTTL = 24 * time.Hour

func jobKey(id string) string { return "job:" + id }

func (s *Store) SetJob(ctx context.Context, job *models.Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, jobKey(job.ID), payload, jobTTL).Err()
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	payload, err := s.Redis.Get(ctx, jobKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	job := &models.Job{}
	if err := json.Unmarshal(payload, job); err != nil {
		return nil, err
	}
	return job, nil
}
