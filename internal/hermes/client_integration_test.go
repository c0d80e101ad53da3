//go:build integration

package hermes

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func skipWithoutNATS(t *testing.T) string {
	t.Helper()
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}
	return url
}

func TestIntegration_PubSub(t *testing.T) {
	natsURL := skipWithoutNATS(t)
	ctx := context.Background()
	logger := slog.Default()

	client, err := NewClient(ctx, natsURL, os.Getenv("NATS_TOKEN"), logger)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	received := make(chan map[string]string, 1)

	err = client.Subscribe("petrosight.test.>", "petrosight-test", func(subject string, data []byte) {
		var msg map[string]string
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		received <- msg
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	// Give subscription time to propagate
	time.Sleep(100 * time.Millisecond)

	err = client.Publish("petrosight.test.ping", map[string]string{
		"message": "basin survey ping",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case msg := <-received:
		if msg["message"] != "basin survey ping" {
			t.Errorf("expected ping message, got %v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestIntegration_AnalysisEventDelivered(t *testing.T) {
	natsURL := skipWithoutNATS(t)
	client, err := NewClient(context.Background(), natsURL, os.Getenv("NATS_TOKEN"), slog.Default())
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	received := make(chan AnalysisEvent, 1)
	err = client.Subscribe(SubjectAnalysisCompleted, "petrosight-test-events", func(_ string, data []byte) {
		var ev AnalysisEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Errorf("bad event: %v", err)
		}
		received <- ev
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	sent := AnalysisEvent{AnalysisID: "it-1", AnalysisType: "feature_engineering", Trigger: "test", Success: true, Timestamp: time.Now().UTC()}
	if err := client.Publish(SubjectAnalysisCompleted, sent); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case ev := <-received:
		if ev.AnalysisID != "it-1" || !ev.Success {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
