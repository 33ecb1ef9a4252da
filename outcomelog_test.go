package pdf2png

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
}

// ---------------------------------------------------------------------------
// TestOutcomeLog - CSV records
// ---------------------------------------------------------------------------

func TestOutcomeLog_Record(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewOutcomeLog(&buf)
	log.Now = fixedNow

	records := []struct {
		doc     string
		outcome Outcome
	}{
		{"report", OutcomeNormal},
		{"scan, part 2", OutcomeResized},
		{"huge", OutcomeSizeExceeded},
	}
	for _, r := range records {
		if err := log.Record(r.doc, r.outcome); err != nil {
			t.Fatalf("Record(%q) error = %v", r.doc, err)
		}
	}

	want := "2026-01-02 03:04:05,report,normal\n" +
		"2026-01-02 03:04:05,\"scan, part 2\",resized\n" +
		"2026-01-02 03:04:05,huge,size-exceeded\n"
	if got := buf.String(); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
}

func TestOpenOutcomeLog_Appends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte("2025-12-31 23:59:59,old,normal\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	log, err := OpenOutcomeLog(path)
	if err != nil {
		t.Fatalf("OpenOutcomeLog() error = %v", err)
	}
	log.Now = fixedNow
	if err := log.Record("new", OutcomeResized); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := log.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "2025-12-31 23:59:59,old,normal\n2026-01-02 03:04:05,new,resized\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestOpenOutcomeLog_BadPath(t *testing.T) {
	t.Parallel()

	_, err := OpenOutcomeLog(filepath.Join(t.TempDir(), "missing", "log.csv"))
	if !errors.Is(err, ErrWriteLog) {
		t.Errorf("OpenOutcomeLog() error = %v, want ErrWriteLog", err)
	}
}

func TestOutcomeLog_ConcurrentRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewOutcomeLog(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = log.Record("doc", OutcomeNormal)
		}()
	}
	wg.Wait()

	if n := bytes.Count(buf.Bytes(), []byte("\n")); n != 20 {
		t.Errorf("lines = %d, want 20", n)
	}
}
