// Package realtime streams retry-controller attempt progress to
// connected websocket clients for a single generation job, reduced
// from the teacher's room/multiplayer Hub (many rooms, many players,
// cursor broadcast) to one hub entry per job id.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// MessageType mirrors the teacher's client/server message envelope,
// reduced to the progress events a generation job can emit.
type MessageType string

const (
	MsgAttempt MessageType = "attempt"
	MsgDone    MessageType = "done"
	MsgFailed  MessageType = "failed"
	MsgError   MessageType = "error"
)

// Message is the JSON envelope sent over the wire.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type AttemptPayload struct {
	Attempt int    `json:"attempt"`
	Stage   string `json:"stage"`
	Detail  string `json:"detail"`
}

type DonePayload struct {
	PuzzleID string `json:"puzzleId"`
}

type FailedPayload struct {
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Client is one websocket connection subscribed to a job's progress.
type Client struct {
	JobID string
	Send  chan []byte
	conn  *websocket.Conn
}

// Hub fans out job-progress messages to every client subscribed to
// that job, following the teacher's register/unregister channel
// pattern but keyed by job id instead of room id.
type Hub struct {
	log        *logrus.Logger
	jobs       map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan jobMessage
	mutex      sync.RWMutex
}

type jobMessage struct {
	jobID string
	data  []byte
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		log:        log,
		jobs:       make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan jobMessage, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			if h.jobs[client.JobID] == nil {
				h.jobs[client.JobID] = make(map[*Client]bool)
			}
			h.jobs[client.JobID][client] = true
			h.mutex.Unlock()
			h.log.WithField("job", client.JobID).Debug("realtime: client registered")

		case client := <-h.unregister:
			h.mutex.Lock()
			if clients, ok := h.jobs[client.JobID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
				}
				if len(clients) == 0 {
					delete(h.jobs, client.JobID)
				}
			}
			h.mutex.Unlock()
			h.log.WithField("job", client.JobID).Debug("realtime: client unregistered")

		case m := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.jobs[m.jobID] {
				select {
				case client.Send <- m.data:
				default:
				}
			}
			h.mutex.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client)   { h.register <- client }
func (h *Hub) Unregister(client *Client) { h.unregister <- client }

func (h *Hub) send(jobID string, msgType MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msgData, err := json.Marshal(Message{Type: msgType, Payload: data})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- jobMessage{jobID: jobID, data: msgData}:
	default:
	}
}

// PublishAttempt reports one retry-controller attempt outcome.
func (h *Hub) PublishAttempt(jobID string, attempt int, stage, detail string) {
	h.send(jobID, MsgAttempt, AttemptPayload{Attempt: attempt, Stage: stage, Detail: detail})
}

// PublishDone reports that the job finished successfully.
func (h *Hub) PublishDone(jobID, puzzleID string) {
	h.send(jobID, MsgDone, DonePayload{PuzzleID: puzzleID})
}

// PublishFailed reports that the job exhausted its retries.
func (h *Hub) PublishFailed(jobID, reason string) {
	h.send(jobID, MsgFailed, FailedPayload{Reason: reason})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades an HTTP request to a websocket connection streaming
// progress for jobID, following the teacher's ServeWs signature shape
// (hub, writer, request, identity) with the room/user identity
// collapsed to a single job id.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, jobID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{JobID: jobID, Send: make(chan []byte, 16), conn: conn}
	hub.Register(client)

	go client.writePump()
	go client.readPump(hub)

	return nil
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains and discards client frames; progress is one-way
// (server to client), but the read loop must run to process control
// frames and detect disconnects.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
