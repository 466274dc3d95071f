package sse_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mergington-activities/internal/logger"
	"mergington-activities/internal/model"
	"mergington-activities/internal/sse"
)

func TestManagerBroadcast(t *testing.T) {
	appLogger := logger.New()
	manager := sse.NewManager(appLogger)
	defer manager.Close()

	clientChannel := manager.AddClient()
	assert.Equal(t, 1, manager.ConnectionCount())

	activity := model.NewActivity("Chess Club", "Learn strategies", "Fridays, 3:30 PM", 12)
	activity.Participants = append(activity.Participants, "michael@mergington.edu")
	manager.BroadcastRosterUpdate(activity)

	select {
	case msg := <-clientChannel:
		var event map[string]interface{}
		err := json.Unmarshal(msg, &event)
		assert.NoError(t, err)
		assert.Equal(t, "roster_update", event["type"])

		data := event["data"].(map[string]interface{})
		assert.Equal(t, "Chess Club", data["name"])
		participants := data["participants"].([]interface{})
		assert.Len(t, participants, 1)
	case <-time.After(1 * time.Second):
		t.Fatal("Did not receive roster update within timeout")
	}

	manager.RemoveClient(clientChannel)
	assert.Equal(t, 0, manager.ConnectionCount())

	// Removing the same channel twice is harmless
	manager.RemoveClient(clientChannel)
}

func TestManagerBroadcastReachesAllClients(t *testing.T) {
	appLogger := logger.New()
	manager := sse.NewManager(appLogger)
	defer manager.Close()

	first := manager.AddClient()
	second := manager.AddClient()
	assert.Equal(t, 2, manager.ConnectionCount())

	activity := model.NewActivity("Art Studio", "Painting and drawing", "Thursdays, 3:30 PM", 15)
	manager.BroadcastRosterUpdate(activity)

	for _, ch := range []chan []byte{first, second} {
		select {
		case msg := <-ch:
			assert.Contains(t, string(msg), "Art Studio")
		case <-time.After(1 * time.Second):
			t.Fatal("A client did not receive the broadcast")
		}
	}
}

func TestManagerClose(t *testing.T) {
	appLogger := logger.New()
	manager := sse.NewManager(appLogger)

	clientChannel := manager.AddClient()
	manager.Close()

	// The client channel is closed on shutdown
	_, open := <-clientChannel
	assert.False(t, open)
	assert.Equal(t, 0, manager.ConnectionCount())

	select {
	case <-manager.Done():
		// lifecycle context cancelled
	default:
		t.Fatal("Manager context not cancelled after Close")
	}
}
