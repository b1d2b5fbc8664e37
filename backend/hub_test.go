package main

import (
	"encoding/json"
	"testing"
	"time"

	"gomoku/game"
)

func TestHubBroadcastsToClients(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	defer close(done)
	go hub.Run(done)

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(client)
	hub.PublishNotices([]game.Notice{{Level: game.NoticeWarn, Text: "hurry"}})

	select {
	case raw := <-client.send:
		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msg.Type != "notice" {
			t.Fatalf("expected notice message, got %q", msg.Type)
		}
		var notice game.Notice
		if err := json.Unmarshal(msg.Payload, &notice); err != nil || notice.Text != "hurry" {
			t.Fatalf("expected notice payload, got %s", msg.Payload)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected broadcast within 1s")
	}

	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Fatalf("expected client removed")
	}
	if _, ok := <-client.send; ok {
		t.Fatalf("expected send channel closed")
	}
}
