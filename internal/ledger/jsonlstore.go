package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"centralbank/internal/domain"
)

// JSONLStore is the default Store: one JSON object per line, appended to
// a single file opened for the lifetime of the process. It mirrors the
// teacher's atomic-write discipline for the full-state snapshot
// (internal/backup) but, being append-only, needs no tmp-file/rename
// dance — a torn final line from a crash mid-write is simply the last
// line Scan ever sees skip.
type JSONLStore struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// NewJSONLStore opens (creating if necessary) the file at path for
// appending and returns a ready Store.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	return &JSONLStore{path: path, file: f}, nil
}

// Append writes tx as one JSON line and fsyncs before returning, so a
// caller that has observed a successful Append can rely on the record
// surviving a crash.
func (s *JSONLStore) Append(tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("ledger: marshal transaction %d: %w", tx.Id, err)
	}
	line = append(line, '\n')
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("ledger: append transaction %d: %w", tx.Id, err)
	}
	return s.file.Sync()
}

// Scan reads every transaction currently in the file, in append order.
// A line that fails to parse (a torn write from a mid-crash, per the
// doc comment above) is skipped rather than aborting the whole scan.
func (s *JSONLStore) Scan() ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s for scan: %w", s.path, err)
	}
	defer f.Close()

	var out []domain.Transaction
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var tx domain.Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			continue
		}
		out = append(out, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ledger: scan %s: %w", s.path, err)
	}
	return out, nil
}

// Close releases the underlying file handle.
func (s *JSONLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
