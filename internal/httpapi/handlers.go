// Package httpapi exposes crossgen's constructor as a small async job
// API, adapted from the teacher's internal/api/handlers.go request/
// response shape and reduced to the generation job endpoints of the
// optional serve mode.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wordgrid/crossgen/internal/authsvc"
	"github.com/wordgrid/crossgen/internal/models"
	"github.com/wordgrid/crossgen/internal/realtime"
	"github.com/wordgrid/crossgen/internal/store"
	"github.com/wordgrid/crossgen/pkg/grid"
	"github.com/wordgrid/crossgen/pkg/puzzle"
	"github.com/wordgrid/crossgen/pkg/retryctl"
)

// Handlers wires the generation pipeline to gin request handlers.
type Handlers struct {
	store     *store.Store
	auth      *authsvc.Service
	generator *puzzle.Generator
	hub       *realtime.Hub
	log       *logrus.Logger
}

func NewHandlers(st *store.Store, auth *authsvc.Service, generator *puzzle.Generator, hub *realtime.Hub, log *logrus.Logger) *Handlers {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handlers{store: st, auth: auth, generator: generator, hub: hub, log: log}
}

// LoginRequest is the body of POST /login: the raw operator API key.
type LoginRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(req.APIKey)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// CreatePuzzle handles POST /puzzles: validates the request, starts the
// retry-controller pipeline in a goroutine, and returns a job id
// immediately.
func (h *Handlers) CreatePuzzle(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	difficulty := grid.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = grid.Medium
	}

	job := &models.Job{
		ID:        uuid.New().String(),
		Status:    models.JobPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	ctx := c.Request.Context()
	if err := h.store.SetJob(ctx, job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	go h.runJob(job.ID, puzzle.Config{
		Size:       req.GridSize,
		Difficulty: difficulty,
		Seed:       req.Seed,
		Retries:    req.Retries,
		Symmetry:   req.Symmetry,
		Title:      req.Title,
	})

	c.JSON(http.StatusAccepted, gin.H{"id": job.ID, "status": job.Status})
}

func (h *Handlers) runJob(jobID string, cfg puzzle.Config) {
	ctx := context.Background()

	running, err := h.store.GetJob(ctx, jobID)
	if err != nil || running == nil {
		h.log.WithField("job", jobID).Error("httpapi: job vanished before it could start")
		return
	}
	running.Status = models.JobRunning
	running.UpdatedAt = time.Now()
	h.store.SetJob(ctx, running)

	cfg.OnAttempt = func(attempt retryctl.Attempt) {
		stage, detail := "fill", "ok"
		if attempt.TemplateErr != nil {
			stage, detail = "template", attempt.TemplateErr.Error()
		} else if attempt.FillErr != nil {
			stage, detail = "fill", attempt.FillErr.Error()
		}
		if h.hub != nil {
			h.hub.PublishAttempt(jobID, attempt.Index, stage, detail)
		}
	}

	p, err := h.generator.GeneratePuzzle(cfg)
	job, getErr := h.store.GetJob(ctx, jobID)
	if getErr != nil || job == nil {
		h.log.WithField("job", jobID).Error("httpapi: job vanished before it could finish")
		return
	}

	if err != nil {
		job.Status = models.JobFailed
		job.Error = err.Error()
		job.UpdatedAt = time.Now()
		h.store.SetJob(ctx, job)
		if h.hub != nil {
			h.hub.PublishFailed(jobID, err.Error())
		}
		return
	}

	exported := puzzle.ToModelsPuzzle(p)
	job.Status = models.JobDone
	job.Puzzle = exported
	job.UpdatedAt = time.Now()
	if err := h.store.SetJob(ctx, job); err != nil {
		h.log.WithField("job", jobID).WithError(err).Error("httpapi: failed to cache finished job")
	}
	if err := h.store.CreatePuzzle(exported); err != nil {
		h.log.WithField("job", jobID).WithError(err).Error("httpapi: failed to persist finished puzzle")
	}
	if h.hub != nil {
		h.hub.PublishDone(jobID, exported.ID)
	}
}

// GetPuzzle handles GET /puzzles/:id: returns job status and, once
// done, the finished puzzle.
func (h *Handlers) GetPuzzle(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	job, err := h.store.GetJob(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// StreamPuzzle handles GET /puzzles/:id/stream: upgrades the connection
// to a websocket and streams one message per retry attempt.
func (h *Handlers) StreamPuzzle(c *gin.Context) {
	id := c.Param("id")
	if err := realtime.ServeWs(h.hub, c.Writer, c.Request, id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("websocket upgrade failed: %v", err)})
	}
}
