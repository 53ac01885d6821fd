package queue

import (
	"encoding/json"
	"testing"
	"time"
)

func TestThreadJob_WireShape(t *testing.T) {
	b, err := json.Marshal(ThreadJob("abc123"))
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["type"] != "thread" || m["threadId"] != "abc123" {
		t.Fatalf("payload: %s", b)
	}
	if _, ok := m["postId"]; ok {
		t.Fatalf("thread job must not carry postId: %s", b)
	}
	ts, _ := m["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Fatalf("timestamp %q not RFC3339: %v", ts, err)
	}
}

func TestPostJob_WireShape(t *testing.T) {
	b, err := json.Marshal(PostJob("def456"))
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["type"] != "post" || m["postId"] != "def456" {
		t.Fatalf("payload: %s", b)
	}
	if _, ok := m["threadId"]; ok {
		t.Fatalf("post job must not carry threadId: %s", b)
	}
}
