package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/classical-cipher-go/internal/storage"
)

// AuditRecord describes one cipher request. It never holds the text or the key.
type AuditRecord struct {
	ID        uint64    `json:"id"`
	RequestID string    `json:"request_id"`
	Cipher    string    `json:"cipher"`
	Action    string    `json:"action"`
	Letters   int       `json:"letters"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

// Outcome values
const (
	OutcomeOK = "ok"
)

// AuditSink records cipher requests
type AuditSink interface {
	Append(ctx context.Context, rec AuditRecord) error
	Recent(ctx context.Context, limit int) ([]AuditRecord, error)
	Close() error
}

// BoltAuditSink keeps the audit trail in the local BoltDB store
type BoltAuditSink struct {
	store *storage.Store
}

// NewBoltAuditSink creates an audit sink over store. Closing the sink does
// not close the store.
func NewBoltAuditSink(store *storage.Store) *BoltAuditSink {
	return &BoltAuditSink{store: store}
}

// Append stores rec with the next sequence number as its id
func (s *BoltAuditSink) Append(_ context.Context, rec AuditRecord) error {
	_, err := s.store.AppendJSON(storage.BucketAudit, func(seq uint64) interface{} {
		rec.ID = seq
		return rec
	})
	return err
}

// Recent returns up to limit records, newest first
func (s *BoltAuditSink) Recent(_ context.Context, limit int) ([]AuditRecord, error) {
	rows, err := s.store.LastJSON(storage.BucketAudit, limit)
	if err != nil {
		return nil, err
	}
	out := make([]AuditRecord, 0, len(rows))
	for _, row := range rows {
		var rec AuditRecord
		if err := json.Unmarshal(row, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *BoltAuditSink) Close() error { return nil }

// NopAuditSink discards every record
type NopAuditSink struct{}

func (NopAuditSink) Append(context.Context, AuditRecord) error { return nil }

func (NopAuditSink) Recent(context.Context, int) ([]AuditRecord, error) { return nil, nil }

func (NopAuditSink) Close() error { return nil }
