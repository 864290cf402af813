package jsonlog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("not JSON: %v; line=%s", err, line)
	}
	return m
}

func TestInfo_EmitsJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info("http_request", map[string]any{"method": "GET", "status": 200})

	m := decodeLine(t, &buf)
	if m["msg"] != "http_request" {
		t.Fatalf("msg=%v", m["msg"])
	}
	if m["level"] != "info" {
		t.Fatalf("level=%v", m["level"])
	}
	if m["method"] != "GET" {
		t.Fatalf("method=%v", m["method"])
	}
	if m["status"] != float64(200) {
		t.Fatalf("status=%v", m["status"])
	}
	if _, ok := m["time"]; !ok {
		t.Fatalf("expected timestamp in %v", m)
	}
}

func TestDebug_FilteredAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Debug("noise", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestWith_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).With(map[string]any{"rid": "abc"})

	l.Error("store failure", map[string]any{"error": "boom"})

	m := decodeLine(t, &buf)
	if m["rid"] != "abc" || m["error"] != "boom" || m["level"] != "error" {
		t.Fatalf("unexpected entry: %v", m)
	}
}

func TestNewWithOptions_Validates(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewWithOptions(&buf, Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if _, err := NewWithOptions(&buf, Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for bad format")
	}

	l, err := NewWithOptions(&buf, Options{Level: "debug", Format: "logfmt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Debug("visible", map[string]any{"k": "v"})
	if !strings.Contains(buf.String(), "msg=visible") || !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("unexpected logfmt output: %q", buf.String())
	}
}
