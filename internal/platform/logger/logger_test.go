package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"postgres_dsn", "postgres://u:p@h/db",
		"card_id", "abc",
		"client_ip", "127.0.0.1",
		"dangling",
	})
	if len(out) != 7 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("dsn not redacted: %v", out[1])
	}
	if out[3] != "abc" {
		t.Fatalf("card_id changed: %v", out[3])
	}
	hashed, _ := out[5].(string)
	if !strings.HasPrefix(hashed, "hash:") || len(hashed) != len("hash:")+12 {
		t.Fatalf("client_ip not hashed: %v", out[5])
	}
	if out[6] != "dangling" {
		t.Fatalf("dangling key dropped: %v", out[6])
	}
}

func TestSanitizeValueNestedMap(t *testing.T) {
	got := sanitizeValue("metadata", map[string]interface{}{"Auth_Token": "x", "device": "desktop"})
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if m["Auth_Token"] != "[REDACTED]" || m["device"] != "desktop" {
		t.Fatalf("unexpected sanitized map: %+v", m)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"production", "development", "test", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("component", "test").Debug("hello", "k", "v")
	}
	Nop().Info("discarded")
}
