package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	appctx "joinerpro/internal/core/context"
	"joinerpro/internal/core/id"
)

// AuditRecord describes a single audited mutation.
type AuditRecord struct {
	ID         id.ID     `db:"id"`
	OccurredAt time.Time `db:"occurred_at"`
	Actor      string    `db:"actor"`
	Action     string    `db:"action"`
	Entity     string    `db:"entity"`
	EntityID   string    `db:"entity_id"`
	Payload    []byte    `db:"payload"`
}

// AuditStore persists audit records for financial and production mutations.
// Payloads are stored as zstd-compressed JSON; they are write-heavy and
// read rarely, so compact storage wins over scan speed.
type AuditStore struct {
	txm     *TxManager
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewAuditStore creates an audit store bound to the transaction manager.
func NewAuditStore(txm *TxManager) (*AuditStore, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AuditStore{txm: txm, encoder: enc, decoder: dec}, nil
}

// Record writes an audit entry. The payload is marshaled to JSON and
// compressed. Joins the active transaction if one is in context so the
// audit row commits atomically with the mutation it describes.
func (s *AuditStore) Record(ctx context.Context, action, entity, entityID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	rec := AuditRecord{
		ID:         id.New(),
		OccurredAt: time.Now().UTC(),
		Actor:      appctx.GetUsername(ctx),
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Payload:    s.encoder.EncodeAll(raw, nil),
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("audit_log").
		SetMap(StructToMap(rec))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}

	return nil
}

// DecodePayload decompresses a stored payload back to JSON bytes.
func (s *AuditStore) DecodePayload(compressed []byte) ([]byte, error) {
	raw, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress audit payload: %w", err)
	}
	return raw, nil
}
