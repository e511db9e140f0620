package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/incorporate/pkg/domain"
)

const maxLineBytes = 4 * 1024 * 1024

// LeadSink appends leads as JSON lines to a single file.
// It implements ports.LeadSink and ports.LeadReader.
type LeadSink struct {
	Path string
	mu   sync.Mutex
}

// NewLeadSink creates a sink writing to path.
// If path is empty, it defaults to ".incorporate/leads.jsonl".
func NewLeadSink(path string) *LeadSink {
	if path == "" {
		path = filepath.Join(".incorporate", "leads.jsonl")
	}
	return &LeadSink{Path: path}
}

// Submit appends lead to the file and fsyncs it.
func (s *LeadSink) Submit(ctx context.Context, lead *domain.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead is nil")
	}
	line, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to ensure lead directory: %w", err)
	}
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lead file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("write lead: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to fsync lead file: %w", err)
	}
	return nil
}

// Lead returns the most recently appended lead with the given ID.
func (s *LeadSink) Lead(ctx context.Context, id string) (*domain.Lead, error) {
	leads, err := s.Leads()
	if err != nil {
		return nil, err
	}
	for i := len(leads) - 1; i >= 0; i-- {
		if leads[i].ID == id {
			return leads[i], nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

// Leads reads every lead in the file, in append order.
func (s *LeadSink) Leads() ([]*domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open lead file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var out []*domain.Lead
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var lead domain.Lead
		if err := json.Unmarshal(scanner.Bytes(), &lead); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, &lead)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lead file: %w", err)
	}
	return out, nil
}
