package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMessageTypes_Distinct(t *testing.T) {
	types := []MessageType{MsgAttempt, MsgDone, MsgFailed, MsgError}
	seen := make(map[MessageType]bool)
	for _, msgType := range types {
		if seen[msgType] {
			t.Errorf("duplicate message type: %s", msgType)
		}
		seen[msgType] = true
	}
}

func TestMessageSerialization(t *testing.T) {
	payload, err := json.Marshal(AttemptPayload{Attempt: 3, Stage: "fill", Detail: "failed"})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	msg := Message{Type: MsgAttempt, Payload: payload}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if decoded.Type != MsgAttempt {
		t.Errorf("Type = %q, want %q", decoded.Type, MsgAttempt)
	}

	var decodedPayload AttemptPayload
	if err := json.Unmarshal(decoded.Payload, &decodedPayload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decodedPayload.Attempt != 3 || decodedPayload.Stage != "fill" {
		t.Errorf("payload = %+v, want Attempt=3 Stage=fill", decodedPayload)
	}
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil)
	go hub.Run()
	return hub
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := newTestHub(t)
	client := &Client{JobID: "job-1", Send: make(chan []byte, 4)}

	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.mutex.RLock()
	_, registered := hub.jobs["job-1"][client]
	hub.mutex.RUnlock()
	if !registered {
		t.Fatal("expected client to be registered under job-1")
	}

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	hub.mutex.RLock()
	_, stillPresent := hub.jobs["job-1"]
	hub.mutex.RUnlock()
	if stillPresent {
		t.Error("expected job-1 entry to be cleaned up after last client unregisters")
	}
}

func TestHub_PublishAttempt_DeliversToSubscriber(t *testing.T) {
	hub := newTestHub(t)
	client := &Client{JobID: "job-2", Send: make(chan []byte, 4)}
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.PublishAttempt("job-2", 1, "template", "rejected")

	select {
	case data := <-client.Send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != MsgAttempt {
			t.Errorf("Type = %q, want %q", msg.Type, MsgAttempt)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for attempt message")
	}
}

func TestHub_PublishDone_OnlyReachesMatchingJob(t *testing.T) {
	hub := newTestHub(t)
	subscribed := &Client{JobID: "job-a", Send: make(chan []byte, 4)}
	other := &Client{JobID: "job-b", Send: make(chan []byte, 4)}
	hub.Register(subscribed)
	hub.Register(other)
	time.Sleep(10 * time.Millisecond)

	hub.PublishDone("job-a", "puzzle-123")

	select {
	case <-subscribed.Send:
	case <-time.After(time.Second):
		t.Fatal("expected job-a subscriber to receive the done message")
	}

	select {
	case <-other.Send:
		t.Error("job-b subscriber should not receive job-a's message")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_PublishFailed_Payload(t *testing.T) {
	hub := newTestHub(t)
	client := &Client{JobID: "job-3", Send: make(chan []byte, 4)}
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.PublishFailed("job-3", "exhausted retries")

	select {
	case data := <-client.Send:
		var msg Message
		json.Unmarshal(data, &msg)
		var payload FailedPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if payload.Reason != "exhausted retries" {
			t.Errorf("Reason = %q, want %q", payload.Reason, "exhausted retries")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for failed message")
	}
}
