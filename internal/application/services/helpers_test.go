package services

import (
	"context"
	"errors"
	"sync"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
)

var errStorageDown = errors.New("storage down")

// scriptedSource replays fixed values so tests control every random
// draw. It wraps around when a script runs out.
type scriptedSource struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
	iIdx   int
	fIdx   int
}

func (s *scriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.iIdx%len(s.ints)]
	s.iIdx++
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fIdx%len(s.floats)]
	s.fIdx++
	return v
}

// fakeStorage is an in-memory StorageProvider double
type fakeStorage struct {
	mu     sync.Mutex
	values map[string][]byte
	failed bool
	sets   int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{values: make(map[string][]byte)}
}

func (f *fakeStorage) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return nil, errStorageDown
	}
	value, ok := f.values[key]
	if !ok {
		return nil, providers.ErrKeyNotFound
	}
	return value, nil
}

func (f *fakeStorage) Set(_ context.Context, key string, value []byte, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return errStorageDown
	}
	f.values[key] = value
	f.sets++
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return false, errStorageDown
	}
	_, ok := f.values[key]
	return ok, nil
}

// recordingNotifier captures every delivered notification
type recordingNotifier struct {
	mu       sync.Mutex
	name     string
	err      error
	received []*entities.Notification
}

func (n *recordingNotifier) Name() string {
	if n.name == "" {
		return "recording"
	}
	return n.name
}

func (n *recordingNotifier) Notify(_ context.Context, notification *entities.Notification) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received = append(n.received, notification)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.received)
}

func (n *recordingNotifier) last() *entities.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.received) == 0 {
		return nil
	}
	return n.received[len(n.received)-1]
}
