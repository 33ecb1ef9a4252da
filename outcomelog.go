package pdf2png

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// OutcomeRecorder receives one outcome per processed document.
type OutcomeRecorder interface {
	Record(documentID string, outcome Outcome) error
}

// outcomeTimeLayout matches the timestamps of existing log.csv files.
const outcomeTimeLayout = "2006-01-02 15:04:05"

// OutcomeLog appends outcomes to a CSV stream, one line per document:
// timestamp, document ID, outcome. It is safe for concurrent use.
type OutcomeLog struct {
	// Now returns the timestamp for new records. Defaults to time.Now.
	Now func() time.Time

	mu     sync.Mutex
	w      *csv.Writer
	closer io.Closer
}

// NewOutcomeLog writes records to w.
func NewOutcomeLog(w io.Writer) *OutcomeLog {
	return &OutcomeLog{Now: time.Now, w: csv.NewWriter(w)}
}

// OpenOutcomeLog appends records to the file at path, creating it if needed.
func OpenOutcomeLog(path string) (*OutcomeLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G302 G304 -- log is meant to be shared
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteLog, err)
	}
	l := NewOutcomeLog(f)
	l.closer = f
	return l, nil
}

// Record appends one line and flushes it.
func (l *OutcomeLog) Record(documentID string, outcome Outcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.Now().Format(outcomeTimeLayout)
	if err := l.w.Write([]string{ts, documentID, outcome.String()}); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteLog, err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteLog, err)
	}
	return nil
}

// Close closes the underlying file when the log was opened by OpenOutcomeLog.
func (l *OutcomeLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}
