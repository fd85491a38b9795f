package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"room_balancer/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu       sync.Mutex
	rs       []domain.Reservation
	rejects  []string
	listCall int
	err      error

	// entered is signalled when ListActive starts; gate, when set, holds it.
	entered chan struct{}
	gate    chan struct{}
}

func (f *fakeRepo) UpsertReservations(ctx context.Context, rs []domain.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rs = append(f.rs, rs...)
	return nil
}

func (f *fakeRepo) LogReject(ctx context.Context, sourceID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejects = append(f.rejects, sourceID)
	return nil
}

func (f *fakeRepo) ListActive(ctx context.Context, from, to domain.Date) ([]domain.Reservation, error) {
	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCall++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Reservation
	for _, r := range f.rs {
		if !r.Checkin.After(to) && !r.Checkout.Before(from) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Reservation(nil), f.rs...), f.err
}

// fakeCache stores JSON like the real one so round-trips are exercised.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	hits  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// brokenCache fails every call.
type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, errBoom }
func (brokenCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return errBoom
}
func (brokenCache) Del(ctx context.Context, key string) error { return errBoom }

type fakeLedger struct {
	mu sync.Mutex
	m  map[string]map[string]bool
}

func (l *fakeLedger) Approvals(ctx context.Context, d domain.Date) (map[string]bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := map[string]bool{}
	for k, v := range l.m[d.String()] {
		out[k] = v
	}
	return out, nil
}

func (l *fakeLedger) SetApproval(ctx context.Context, d domain.Date, guest string, approved bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.m == nil {
		l.m = map[string]map[string]bool{}
	}
	if l.m[d.String()] == nil {
		l.m[d.String()] = map[string]bool{}
	}
	l.m[d.String()][guest] = approved
	return nil
}

func (l *fakeLedger) Reset(ctx context.Context, d domain.Date) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.m, d.String())
	return nil
}

type fakeAdvisor struct {
	recs  []domain.Recommendation
	err   error
	block bool
	got   domain.AdvisoryRequest
}

func (a *fakeAdvisor) Recommend(ctx context.Context, req domain.AdvisoryRequest) ([]domain.Recommendation, error) {
	a.got = req
	if a.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return a.recs, a.err
}

var errBoom = errors.New("boom")
