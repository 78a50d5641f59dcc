package session

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestStoreInMemoryFallback(t *testing.T) {
	s := NewStore(nil, time.Hour, 5)
	ctx := context.Background()

	if got := s.History(ctx, "s1"); len(got) != 0 {
		t.Errorf("new session should have empty history, got %v", got)
	}

	s.Append(ctx, "s1", "inception")
	s.Append(ctx, "s1", "nolan movies")

	want := []string{"inception", "nolan movies"}
	if got := s.History(ctx, "s1"); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Sessions are isolated.
	if got := s.History(ctx, "s2"); len(got) != 0 {
		t.Errorf("expected empty history for another session, got %v", got)
	}
}

func TestStoreTrimsToMaxHistory(t *testing.T) {
	s := NewStore(nil, time.Hour, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s.Append(ctx, "s1", fmt.Sprintf("query %d", i))
	}

	got := s.History(ctx, "s1")
	want := []string{"query 2", "query 3", "query 4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected the most recent %d queries %v, got %v", 3, want, got)
	}
}

func TestStoreHistoryReturnsCopy(t *testing.T) {
	s := NewStore(nil, time.Hour, 5)
	ctx := context.Background()

	s.Append(ctx, "s1", "original")
	h := s.History(ctx, "s1")
	h[0] = "mutated"

	if got := s.History(ctx, "s1"); got[0] != "original" {
		t.Error("History must return a copy, not the backing slice")
	}
}
