package metric

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/callboard/callboard-backend/internal/assistant"
	"github.com/callboard/callboard-backend/internal/user"
)

func createTestOwner(t *testing.T, db *gorm.DB) *user.User {
	u := &user.User{Name: "Owner", Email: "owner@example.com", Password: "x", Role: "customer"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

func createOwnedAssistant(t *testing.T, db *gorm.DB, owner *user.User, name string) *assistant.Assistant {
	a := &assistant.Assistant{Name: name, ModelType: "gpt-4o", UserID: &owner.ID}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to create assistant: %v", err)
	}
	return a
}

func newTestAggregator(db *gorm.DB) *Aggregator {
	return NewAggregator(assistant.NewStore(db), NewStore(db))
}

func TestAggregator_EmptyAssistantSet(t *testing.T) {
	db := setupTestMetricDB(t)
	owner := createTestOwner(t, db)
	agg := newTestAggregator(db)

	resp, err := agg.Analytics(context.Background(), owner.ID, AnalyticsQuery{})
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if resp.Summary.TotalAssistants != 0 {
		t.Errorf("expected 0 assistants, got %d", resp.Summary.TotalAssistants)
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected no buckets, got %d", len(resp.Data))
	}
	if resp.Data == nil {
		t.Error("data should be an empty slice, not nil")
	}
	if resp.Summary.DateRange.Start != nil || resp.Summary.DateRange.End != nil {
		t.Error("date range should be open when no rows exist")
	}
}

func TestAggregator_DailyBuckets(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	owner := createTestOwner(t, db)
	a1 := createOwnedAssistant(t, db, owner, "One")
	a2 := createOwnedAssistant(t, db, owner, "Two")
	agg := newTestAggregator(db)
	ctx := context.Background()

	rows := []*Metric{
		{AssistantID: a1.ID, Date: day("2024-01-15"), OutboundCallCount: 10, TotalMinutes: 100, AvgCallCost: 0.1, TotalCost: 10},
		{AssistantID: a2.ID, Date: day("2024-01-15"), WebCallCount: 5, TotalMinutes: 50, AvgCallCost: 0.3, TotalCost: 5},
		{AssistantID: a1.ID, Date: day("2024-01-16"), OutboundCallCount: 2, TotalMinutes: 20, AvgCallCost: 0.2, TotalCost: 2},
	}
	for _, m := range rows {
		if err := store.Upsert(ctx, m); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	resp, err := agg.Analytics(ctx, owner.ID, AnalyticsQuery{Bucket: TimeRangeDaily})
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}

	if resp.Summary.TotalAssistants != 2 {
		t.Errorf("expected 2 assistants, got %d", resp.Summary.TotalAssistants)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", len(resp.Data))
	}

	// Newest bucket first.
	if resp.Data[0].Period != "2024-01-16" {
		t.Errorf("expected newest bucket first, got %s", resp.Data[0].Period)
	}

	jan15 := resp.Data[1]
	if jan15.TotalCalls != 15 {
		t.Errorf("expected 15 total calls on Jan 15, got %d", jan15.TotalCalls)
	}
	if jan15.TotalMinutes != 150 {
		t.Errorf("expected 150 minutes on Jan 15, got %v", jan15.TotalMinutes)
	}
	if jan15.AvgCallCost != 0.2 {
		t.Errorf("expected avg cost 0.2 on Jan 15, got %v", jan15.AvgCallCost)
	}
	if jan15.UniqueAssistants != 2 {
		t.Errorf("expected 2 unique assistants on Jan 15, got %d", jan15.UniqueAssistants)
	}

	if resp.Summary.Totals.TotalCalls != 17 {
		t.Errorf("expected grand total 17 calls, got %d", resp.Summary.Totals.TotalCalls)
	}
	if resp.Summary.Totals.TotalCost != 17 {
		t.Errorf("expected grand total cost 17, got %v", resp.Summary.Totals.TotalCost)
	}
	if resp.Summary.DateRange.Start == nil || *resp.Summary.DateRange.Start != "2024-01-15" {
		t.Errorf("unexpected range start: %v", resp.Summary.DateRange.Start)
	}
	if resp.Summary.DateRange.End == nil || *resp.Summary.DateRange.End != "2024-01-16" {
		t.Errorf("unexpected range end: %v", resp.Summary.DateRange.End)
	}
}

func TestAggregator_WeeklyBucketsStartMonday(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	owner := createTestOwner(t, db)
	a := createOwnedAssistant(t, db, owner, "One")
	agg := newTestAggregator(db)
	ctx := context.Background()

	// 2024-01-14 is a Sunday, 2024-01-15 a Monday, 2024-01-17 a
	// Wednesday: the last two share a week, the Sunday closes the
	// previous one.
	for _, d := range []string{"2024-01-14", "2024-01-15", "2024-01-17"} {
		if err := store.Upsert(ctx, &Metric{AssistantID: a.ID, Date: day(d), OutboundCallCount: 1}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	resp, err := agg.Analytics(ctx, owner.ID, AnalyticsQuery{Bucket: TimeRangeWeekly})
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 weekly buckets, got %d", len(resp.Data))
	}
	if resp.Data[0].Period != "2024-01-15" {
		t.Errorf("expected newest week to start Monday Jan 15, got %s", resp.Data[0].Period)
	}
	if resp.Data[0].TotalCalls != 2 {
		t.Errorf("expected 2 calls in the newest week, got %d", resp.Data[0].TotalCalls)
	}
	if resp.Data[1].Period != "2024-01-08" {
		t.Errorf("expected previous week to start Jan 8, got %s", resp.Data[1].Period)
	}
}

func TestAggregator_AssistantFilterScopesToOwned(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	owner := createTestOwner(t, db)
	other := &user.User{Name: "Other", Email: "other@example.com", Password: "x", Role: "customer"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	mine := createOwnedAssistant(t, db, owner, "Mine")
	theirs := createOwnedAssistant(t, db, other, "Theirs")
	agg := newTestAggregator(db)
	ctx := context.Background()

	for _, m := range []*Metric{
		{AssistantID: mine.ID, Date: day("2024-01-15"), OutboundCallCount: 1},
		{AssistantID: theirs.ID, Date: day("2024-01-15"), OutboundCallCount: 100},
	} {
		if err := store.Upsert(ctx, m); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	// Asking for someone else's assistant yields the empty response,
	// not their data.
	resp, err := agg.Analytics(ctx, owner.ID, AnalyticsQuery{AssistantID: &theirs.ID})
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if resp.Summary.TotalAssistants != 0 || len(resp.Data) != 0 {
		t.Errorf("foreign assistant should be invisible, got %+v", resp.Summary)
	}

	resp, err = agg.Analytics(ctx, owner.ID, AnalyticsQuery{AssistantID: &mine.ID})
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if resp.Summary.Totals.TotalCalls != 1 {
		t.Errorf("expected only owned data, got %d calls", resp.Summary.Totals.TotalCalls)
	}
}

func TestAggregator_DateRangeFilter(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	owner := createTestOwner(t, db)
	a := createOwnedAssistant(t, db, owner, "One")
	agg := newTestAggregator(db)
	ctx := context.Background()

	for _, d := range []string{"2024-01-10", "2024-01-15", "2024-01-20"} {
		if err := store.Upsert(ctx, &Metric{AssistantID: a.ID, Date: day(d), OutboundCallCount: 1}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	start := day("2024-01-12")
	end := day("2024-01-15")
	resp, err := agg.Analytics(ctx, owner.ID, AnalyticsQuery{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 bucket in range, got %d", len(resp.Data))
	}
	// The end date itself is included.
	if resp.Data[0].Period != "2024-01-15" {
		t.Errorf("expected the Jan 15 bucket, got %s", resp.Data[0].Period)
	}
}
