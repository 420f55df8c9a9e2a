package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "jobscout.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestSeenURLDedup(t *testing.T) {
	db := openTestDB(t)

	seen, err := db.Seen("https://example.com/job/1")
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Fatal("fresh database should not know the URL")
	}

	if err := db.MarkSeen("https://example.com/job/1"); err != nil {
		t.Fatal(err)
	}
	// second mark must not error
	if err := db.MarkSeen("https://example.com/job/1"); err != nil {
		t.Fatal(err)
	}

	seen, err = db.Seen("https://example.com/job/1")
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Fatal("marked URL not reported as seen")
	}

	all, err := db.LoadSeen()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 seen URL, got %d", len(all))
	}
}

func TestOutcomesPerRun(t *testing.T) {
	db := openTestDB(t)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, o := range []Outcome{
		{RunID: "run-1", URL: "https://a", Kind: "application", Status: "sent", At: at},
		{RunID: "run-1", URL: "https://b", Kind: "email", Status: "skipped", Detail: "quota", At: at},
		{RunID: "run-2", URL: "https://c", Kind: "email", Status: "sent", At: at},
	} {
		if err := db.RecordOutcome(o); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.RunOutcomes("run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 outcomes for run-1, got %d", len(got))
	}
	if got[0].URL != "https://a" || got[1].Detail != "quota" {
		t.Fatalf("unexpected outcomes: %+v", got)
	}
	if !got[0].At.Equal(at) {
		t.Fatalf("timestamp not round-tripped: %v", got[0].At)
	}
}

func TestOpenRefusesSecondLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobscout.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer first.Close()

	if _, err := Open(path); err == nil {
		t.Fatal("second open should fail while the lock is held")
	}
}
