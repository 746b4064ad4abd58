package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/KuzenkovAG/restaurant-menu/common/logger"
)

// fakeCache is an in-memory entityCache that records invalidations
type fakeCache struct {
	store   map[string][]byte
	cleared []string
	masks   []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, found := f.store[key]
	if !found {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = data
	return nil
}

func (f *fakeCache) Clear(ctx context.Context, keys ...string) error {
	f.cleared = append(f.cleared, keys...)
	for _, key := range keys {
		delete(f.store, key)
	}
	return nil
}

func (f *fakeCache) ClearByMask(ctx context.Context, mask string) error {
	f.masks = append(f.masks, mask)
	for key := range f.store {
		if strings.HasPrefix(key, mask) {
			delete(f.store, key)
		}
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New("error", "text")
}
