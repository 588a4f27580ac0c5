package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/store/audit"
	"github.com/dalemusser/diocesehub/internal/testutil"
)

func TestStore_Log_DefaultsIDAndTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Second)
	err := store.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    7,
		Email:     "ann@example.org",
		IP:        "192.168.1.1",
		Success:   true,
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	after := time.Now().Add(time.Second)

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if events[0].Timestamp.Before(before) || events[0].Timestamp.After(after) {
		t.Errorf("timestamp %v not within test window", events[0].Timestamp)
	}
	if events[0].UserID != 7 || events[0].Email != "ann@example.org" {
		t.Errorf("event = %+v", events[0])
	}
}

func TestStore_Query(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events := []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: 1, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLogout, UserID: 1, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventRecordCreated, ActorID: 1, Entity: "parish", EntityID: 40, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventRecordUpdated, ActorID: 2, Entity: "parish", EntityID: 40, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventRecordDeleted, ActorID: 2, Entity: "state", EntityID: 3, Success: true},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter audit.QueryFilter
		want   int
	}{
		{"all", audit.QueryFilter{}, 5},
		{"auth category", audit.QueryFilter{Category: audit.CategoryAuth}, 2},
		{"event type", audit.QueryFilter{EventType: audit.EventRecordDeleted}, 1},
		{"actor", audit.QueryFilter{ActorID: 2}, 2},
		{"entity", audit.QueryFilter{Entity: "parish"}, 2},
		{"user", audit.QueryFilter{UserID: 1}, 2},
		{"limit", audit.QueryFilter{Limit: 3}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil || n != 3 {
		t.Errorf("CountByFilter = %d, %v", n, err)
	}
}

func TestStore_History(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC().Add(-time.Hour)
	for i, typ := range []string{audit.EventRecordCreated, audit.EventRecordUpdated, audit.EventRecordUpdated} {
		err := store.Log(ctx, audit.Event{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Category:  audit.CategoryAdmin,
			EventType: typ,
			Entity:    "diocese",
			EntityID:  9,
			Success:   true,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.History(ctx, "diocese", 9, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events", len(got))
	}
	if got[0].EventType != audit.EventRecordUpdated || got[2].EventType != audit.EventRecordCreated {
		t.Errorf("history not newest-first: %v, %v", got[0].EventType, got[2].EventType)
	}
}

func TestStore_EnsureIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := audit.New(db).EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
}
