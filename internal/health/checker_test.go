package health

import (
	"context"
	"testing"

	"github.com/stride-labs/stride/internal/infra/sqlite"
)

func TestChecker_AllHealthy(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	c := NewChecker(db, dir)
	c.runAll(context.Background())

	if !c.IsHealthy() {
		t.Errorf("expected healthy, got %+v", c.Statuses())
	}
	statuses := c.Statuses()
	if len(statuses) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %s unhealthy: %s", s.Name, s.Error)
		}
		if s.CheckedAt.IsZero() {
			t.Errorf("check %s missing timestamp", s.Name)
		}
	}
}

func TestChecker_MissingDataDir(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	c := NewChecker(db, dir+"/does-not-exist")
	c.runAll(context.Background())

	if c.IsHealthy() {
		t.Error("expected unhealthy with a missing data dir")
	}
	for _, s := range c.Statuses() {
		if s.Name == "data_dir" && s.Healthy {
			t.Error("data_dir check should fail")
		}
		if s.Name == "sqlite" && !s.Healthy {
			t.Error("sqlite check should still pass")
		}
	}
}

func TestChecker_EmptyStatusesIsHealthy(t *testing.T) {
	c := &Checker{}
	if !c.IsHealthy() {
		t.Error("no checks run yet should read as healthy")
	}
}
