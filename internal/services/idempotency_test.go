package services

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyService_RoundTrip(t *testing.T) {
	db := newServiceDB(t)
	svc := NewIdempotencyService(db, time.Hour)
	ctx := context.Background()
	now := time.Now().UTC()

	exists, err := svc.Exists(ctx, "u1", "plan", "k1", now)
	if err != nil || exists {
		t.Fatalf("empty store: exists=%v err=%v", exists, err)
	}

	if err := svc.Put(ctx, "u1", "plan", "k1", `{"plan_id":"p"}`, 200); err != nil {
		t.Fatalf("put: %v", err)
	}

	exists, err = svc.Exists(ctx, "u1", "plan", "k1", now)
	if err != nil || !exists {
		t.Fatalf("after put: exists=%v err=%v", exists, err)
	}

	body, status, err := svc.Get(ctx, "u1", "plan", "k1", now)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if body != `{"plan_id":"p"}` || status != 200 {
		t.Errorf("body=%q status=%d", body, status)
	}

	// First writer wins; a duplicate put is silently absorbed.
	if err := svc.Put(ctx, "u1", "plan", "k1", `{"plan_id":"other"}`, 200); err != nil {
		t.Fatalf("duplicate put: %v", err)
	}
	body, _, _ = svc.Get(ctx, "u1", "plan", "k1", now)
	if body != `{"plan_id":"p"}` {
		t.Errorf("duplicate overwrote body: %q", body)
	}
}

func TestIdempotencyService_TTLDefault(t *testing.T) {
	svc := NewIdempotencyService(nil, 0)
	if svc.TTL != 24*time.Hour {
		t.Fatalf("TTL = %v", svc.TTL)
	}
}
