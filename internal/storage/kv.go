package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	apperrors "github.com/julianstephens/streakguard/internal/errors"
	"github.com/julianstephens/streakguard/internal/logger"
)

// Get decodes the value under key for callers that are about to write. ok is false when
// the key is absent or the stored JSON does not decode into T, which is logged. err is set
// only when the backend itself could not be read.
func Get[T any](p Provider, key string) (T, bool, error) {
	var zero T
	raw, err := p.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, false, nil
		}
		return zero, false, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("Malformed stored value, treating as absent", "key", key, "error", err)
		return zero, false, nil
	}
	return v, true, nil
}

// Lookup is Get for display paths: an unreachable store is logged and reads as absent.
func Lookup[T any](p Provider, key string) (T, bool) {
	v, ok, err := Get[T](p, key)
	if err != nil {
		logger.Warn("Storage read failed, using default", "key", key, "error", err)
	}
	return v, ok
}

// Read is Lookup with a default for the absent case.
func Read[T any](p Provider, key string, def T) T {
	if v, ok := Lookup[T](p, key); ok {
		return v
	}
	return def
}

// Batch collects writes to apply atomically. Marshal errors are deferred to Commit.
type Batch struct {
	ops []Op
	err error
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Set queues key = JSON(value).
func (b *Batch) Set(key string, value any) *Batch {
	if b.err != nil {
		return b
	}
	raw, err := json.Marshal(value)
	if err != nil {
		b.err = fmt.Errorf("encode %s: %w", key, err)
		return b
	}
	b.ops = append(b.ops, SetOp(key, raw))
	return b
}

// SetRaw queues key = raw, which must already be valid JSON.
func (b *Batch) SetRaw(key string, raw json.RawMessage) *Batch {
	if b.err != nil {
		return b
	}
	if !json.Valid(raw) {
		b.err = fmt.Errorf("encode %s: invalid JSON", key)
		return b
	}
	b.ops = append(b.ops, SetOp(key, []byte(raw)))
	return b
}

// Delete queues removal of key.
func (b *Batch) Delete(key string) *Batch {
	b.ops = append(b.ops, DeleteOp(key))
	return b
}

// Clear queues removal of every key.
func (b *Batch) Clear() *Batch {
	b.ops = append(b.ops, ClearOp())
	return b
}

// Len reports how many ops are queued.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Ops returns the queued ops.
func (b *Batch) Ops() []Op {
	return b.ops
}

// Commit applies the batch. Any failure is reported as errors.ErrSave.
func (b *Batch) Commit(p Provider, op string) error {
	if b.err != nil {
		return apperrors.SaveFailed(op, b.err)
	}
	if len(b.ops) == 0 {
		return nil
	}
	if err := p.Apply(b.ops...); err != nil {
		logger.Error("Storage write failed", "op", op, "error", err)
		return apperrors.SaveFailed(op, err)
	}
	return nil
}

// Set writes a single key.
func Set(p Provider, key string, value any) error {
	return NewBatch().Set(key, value).Commit(p, "set "+key)
}

// Remove deletes a single key.
func Remove(p Provider, key string) error {
	return NewBatch().Delete(key).Commit(p, "remove "+key)
}

// Clear deletes every key.
func Clear(p Provider) error {
	return NewBatch().Clear().Commit(p, "clear")
}

// ExportAll returns the whole key space as raw JSON values.
func ExportAll(p Provider) (map[string]json.RawMessage, error) {
	all, err := p.All()
	if err != nil {
		return nil, fmt.Errorf("export key space: %w", err)
	}
	out := make(map[string]json.RawMessage, len(all))
	for k, v := range all {
		out[k] = json.RawMessage(v)
	}
	return out, nil
}

// ImportAll replaces the whole key space with data in one transaction.
func ImportAll(p Provider, data map[string]json.RawMessage) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := NewBatch().Clear()
	for _, k := range keys {
		b.SetRaw(k, data[k])
	}
	return b.Commit(p, "import key space")
}
