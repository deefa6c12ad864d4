package audit

import (
	"context"
	"testing"

	"staffpay/internal/testhelpers"
)

func TestBuildBaseQuery(t *testing.T) {
	query, args := buildBaseQuery("SELECT COUNT(1)", Filter{Action: ActionAttendanceMark, EntityID: "EMP001"})
	want := "SELECT COUNT(1) FROM audit_events WHERE 1=1 AND action = $1 AND entity_id = $2"
	if query != want {
		t.Fatalf("unexpected query %q", query)
	}
	if len(args) != 2 || args[0] != ActionAttendanceMark || args[1] != "EMP001" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestRecordAndList(t *testing.T) {
	pool := testhelpers.Pool(t)
	ctx := context.Background()
	svc := New(pool)

	err := svc.Record(ctx, Entry{
		Action: ActionEmployeeUpdate, EntityType: EntityEmployee, EntityID: "EMP001",
		RequestID: "req-1", IP: "203.0.113.5",
		Before: map[string]any{"salary": 30000}, After: map[string]any{"salary": 32000},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(ctx, Entry{Action: ActionEmployeeDelete, EntityType: EntityEmployee, EntityID: "EMP002"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	total, err := svc.Count(ctx, Filter{EntityID: "EMP001"})
	if err != nil || total != 1 {
		t.Fatalf("expected one event for EMP001, got %d (%v)", total, err)
	}
	events, err := svc.List(ctx, Filter{Action: ActionEmployeeUpdate}, true, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || len(events[0].After) == 0 || events[0].IP != "203.0.113.5" {
		t.Fatalf("unexpected events %+v", events)
	}
}
