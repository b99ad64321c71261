package metrics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHealth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "planner.db"), make([]byte, 512), 0644); err != nil {
		t.Fatalf("Failed to seed data dir: %v", err)
	}

	health := Health(dir, 7)

	if health.LiveSessions != 7 {
		t.Errorf("Expected 7 live sessions, got %d", health.LiveSessions)
	}
	if health.Goroutines < 1 {
		t.Errorf("Expected at least one goroutine, got %d", health.Goroutines)
	}
	if health.Uptime == "" {
		t.Error("Expected a non-empty uptime")
	}
	if health.DataDiskSize != "512 B" {
		t.Errorf("Expected data size 512 B, got %q", health.DataDiskSize)
	}
}

func TestHealthMissingDataDir(t *testing.T) {
	health := Health(filepath.Join(t.TempDir(), "nope"), 0)
	if health.DataDiskSize != "0 B" {
		t.Errorf("Expected 0 B for a missing data dir, got %q", health.DataDiskSize)
	}
}
