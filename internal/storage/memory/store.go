// Package memory is an in-process Provider used by tests and dry runs.
package memory

import (
	"fmt"
	"sync"

	"github.com/julianstephens/streakguard/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	loaded bool

	// FailWrites makes every Apply fail, simulating unavailable storage.
	FailWrites bool
	// FailReads makes every Get and All fail.
	FailReads bool
}

var _ storage.Provider = (*Store)(nil)

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	return nil
}

func (s *Store) Load() error {
	return s.Init()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, storage.ErrNotLoaded
	}
	if s.FailReads {
		return nil, fmt.Errorf("read %s: storage unavailable", key)
	}
	v, ok := s.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) All() (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, storage.ErrNotLoaded
	}
	if s.FailReads {
		return nil, fmt.Errorf("list keys: storage unavailable")
	}
	out := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

// Apply stages the batch on a copy and swaps it in only if every op succeeds.
func (s *Store) Apply(ops ...storage.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return storage.ErrNotLoaded
	}
	if s.FailWrites {
		return fmt.Errorf("write: storage unavailable")
	}

	next := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		next[k] = v
	}
	for _, op := range ops {
		switch op.Kind {
		case storage.OpSet:
			next[op.Key] = append([]byte(nil), op.Value...)
		case storage.OpDelete:
			delete(next, op.Key)
		case storage.OpClear:
			next = make(map[string][]byte)
		default:
			return fmt.Errorf("unknown op kind %d", op.Kind)
		}
	}
	s.data = next
	return nil
}

func (s *Store) SchemaVersion() (int, int, error) {
	return 0, 0, nil
}

func (s *Store) GetConfigPath() string {
	return ":memory:"
}
