// Package models holds the DTOs shared between pkg/puzzle, pkg/output,
// and internal/httpapi — the shapes that cross a serialization boundary
// (JSON over HTTP, JSON/ipuz/puz on disk).
package models

import (
	"time"
)

// Difficulty levels for puzzles.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Puzzle represents a finished crossword puzzle.
type Puzzle struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Difficulty  Difficulty   `json:"difficulty"`
	GridWidth   int          `json:"gridWidth"`
	GridHeight  int          `json:"gridHeight"`
	Grid        [][]GridCell `json:"grid"`
	CluesAcross []Clue       `json:"cluesAcross"`
	CluesDown   []Clue       `json:"cluesDown"`
	Seed        int64        `json:"seed"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// GridCell represents a single cell in the puzzle grid.
type GridCell struct {
	Letter *string `json:"letter"` // null = black square
	Number *int    `json:"number,omitempty"`
}

// Clue represents a single clue.
type Clue struct {
	Number    int    `json:"number"`
	Text      string `json:"text"`
	Answer    string `json:"answer"`
	PositionX int    `json:"positionX"` // starting cell column
	PositionY int    `json:"positionY"` // starting cell row
	Length    int    `json:"length"`
	Direction string `json:"direction"` // "across" or "down"
}

// JobStatus is the lifecycle state of an asynchronous generation job
// submitted through internal/httpapi.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job tracks one asynchronous puzzle-generation request: its current
// status, the finished puzzle once JobStatus is JobDone, and an error
// message once JobStatus is JobFailed. Cached in Redis by id while
// running and persisted to Postgres once done.
type Job struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	Puzzle    *Puzzle   `json:"puzzle,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GenerateRequest is the body of POST /puzzles.
type GenerateRequest struct {
	Title      string     `json:"title"`
	GridSize   int        `json:"gridSize"`
	Difficulty Difficulty `json:"difficulty"`
	Seed       int64      `json:"seed"`
	Retries    int        `json:"retries"`
	Symmetry   bool       `json:"symmetry"`
}
