package metric

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/callboard/callboard-backend/internal/assistant"
	"github.com/callboard/callboard-backend/internal/shared"
	"github.com/callboard/callboard-backend/internal/user"
)

func setupTestMetricDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	for _, model := range []any{&user.User{}, &assistant.Assistant{}, &Metric{}} {
		if err := db.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate: %v", err)
		}
	}
	return db
}

func createTestAssistant(t *testing.T, db *gorm.DB, vapiID string) *assistant.Assistant {
	a := &assistant.Assistant{Name: "Test Assistant", ModelType: "gpt-4o"}
	if vapiID != "" {
		a.VapiID = &vapiID
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to create assistant: %v", err)
	}
	return a
}

func day(s string) time.Time {
	t, err := shared.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStore_UpsertReplacesExistingDay(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	ctx := context.Background()
	a := createTestAssistant(t, db, "")

	first := &Metric{
		AssistantID:       a.ID,
		Date:              day("2024-01-15"),
		OutboundCallCount: 10,
		WebCallCount:      5,
		TotalMinutes:      42,
		TotalCost:         3.5,
	}
	if err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second := &Metric{
		AssistantID:       a.ID,
		Date:              day("2024-01-15"),
		OutboundCallCount: 3,
	}
	if err := store.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := store.GetByKey(ctx, a.ID, day("2024-01-15"))
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if got.OutboundCallCount != 3 {
		t.Errorf("expected outbound count 3, got %d", got.OutboundCallCount)
	}
	if got.WebCallCount != 0 {
		t.Errorf("web count should be replaced to 0, got %d", got.WebCallCount)
	}
	if got.TotalMinutes != 0 {
		t.Errorf("total minutes should be replaced to 0, got %v", got.TotalMinutes)
	}

	var count int64
	db.Model(&Metric{}).Where("assistant_id = ?", a.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single row per (assistant, day), got %d", count)
	}
}

func TestStore_ApplyPartialUpdate(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	ctx := context.Background()
	a := createTestAssistant(t, db, "")
	date := day("2024-02-01")

	created, err := store.Apply(ctx, a.ID, date, map[string]any{
		"outbound_call_count": int64(7),
		"total_minutes":       12.5,
	})
	if err != nil {
		t.Fatalf("Apply on missing row failed: %v", err)
	}
	if created.OutboundCallCount != 7 || created.TotalMinutes != 12.5 {
		t.Errorf("unexpected created row: %+v", created)
	}

	updated, err := store.Apply(ctx, a.ID, date, map[string]any{
		"web_call_count": int64(4),
	})
	if err != nil {
		t.Fatalf("Apply on existing row failed: %v", err)
	}
	if updated.WebCallCount != 4 {
		t.Errorf("expected web count 4, got %d", updated.WebCallCount)
	}
	if updated.OutboundCallCount != 7 {
		t.Errorf("untouched column should keep its value, got %d", updated.OutboundCallCount)
	}
}

func TestStore_GetByKeyNotFound(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)

	_, err := store.GetByKey(context.Background(), 999, day("2024-01-01"))
	if err != shared.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListByAssistantRange(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	ctx := context.Background()
	a := createTestAssistant(t, db, "")

	for _, d := range []string{"2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13"} {
		if err := store.Upsert(ctx, &Metric{AssistantID: a.ID, Date: day(d), OutboundCallCount: 1}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	start := day("2024-01-11")
	end := day("2024-01-12")
	metrics, err := store.ListByAssistant(ctx, a.ID, &start, &end)
	if err != nil {
		t.Fatalf("ListByAssistant failed: %v", err)
	}
	if len(metrics) != 2 {
		t.Fatalf("expected 2 rows in range, got %d", len(metrics))
	}
	if !metrics[0].Date.After(metrics[1].Date) {
		t.Error("rows should be ordered newest first")
	}
}

func TestStore_RollingAverages(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	ctx := context.Background()
	a := createTestAssistant(t, db, "")

	// Three days with 10, 20 and 30 total minutes.
	for i, minutes := range []float64{10, 20, 30} {
		m := &Metric{
			AssistantID:       a.ID,
			Date:              day("2024-03-01").AddDate(0, 0, i),
			TotalMinutes:      minutes,
			OutboundCallCount: int64(i + 1),
		}
		if err := store.Upsert(ctx, m); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	rows, err := store.RollingAverages(ctx, a.ID, 2)
	if err != nil {
		t.Fatalf("RollingAverages failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// Newest first: the 2024-03-03 row averages the trailing two days.
	if rows[0].TotalMinutes != 30 {
		t.Fatalf("expected newest row first, got minutes %v", rows[0].TotalMinutes)
	}
	if rows[0].RollingAvgMinutes != 25 {
		t.Errorf("expected rolling avg 25, got %v", rows[0].RollingAvgMinutes)
	}
	// The oldest row has only itself in the window.
	if rows[2].RollingAvgMinutes != 10 {
		t.Errorf("expected rolling avg 10 for first day, got %v", rows[2].RollingAvgMinutes)
	}
	if rows[0].RollingAvgTotalCalls != 2.5 {
		t.Errorf("expected rolling avg calls 2.5, got %v", rows[0].RollingAvgTotalCalls)
	}
}

func TestStore_AggregateEmpty(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)

	result, err := store.Aggregate(context.Background(), 42)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("expected count 0, got %d", result.Count)
	}
	if result.AvgCallCost != 0 || result.AvgTotalMinutes != 0 {
		t.Error("averages should be zero when no rows exist")
	}
}

func TestStore_Aggregate(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	ctx := context.Background()
	a := createTestAssistant(t, db, "")

	for i, m := range []*Metric{
		{TotalMinutes: 10, OutboundCallCount: 2, AvgCallCost: 0.1, TotalCost: 1},
		{TotalMinutes: 30, WebCallCount: 4, AvgCallCost: 0.3, TotalCost: 3},
	} {
		m.AssistantID = a.ID
		m.Date = day("2024-04-01").AddDate(0, 0, i)
		if err := store.Upsert(ctx, m); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	result, err := store.Aggregate(ctx, a.ID)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("expected count 2, got %d", result.Count)
	}
	if result.SumTotalMinutes != 40 {
		t.Errorf("expected total minutes 40, got %v", result.SumTotalMinutes)
	}
	if result.SumOutboundCallCount != 2 || result.SumWebCallCount != 4 {
		t.Errorf("unexpected call sums: %+v", result)
	}
	if result.AvgTotalMinutes != 20 {
		t.Errorf("expected avg minutes 20, got %v", result.AvgTotalMinutes)
	}
	if result.AvgCallCost != 0.2 {
		t.Errorf("expected avg call cost 0.2, got %v", result.AvgCallCost)
	}
}

func TestStore_Since(t *testing.T) {
	db := setupTestMetricDB(t)
	store := NewStore(db)
	ctx := context.Background()
	a := createTestAssistant(t, db, "")

	for _, d := range []string{"2024-05-01", "2024-05-05", "2024-05-10"} {
		if err := store.Upsert(ctx, &Metric{AssistantID: a.ID, Date: day(d)}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	rows, err := store.Since(ctx, a.ID, day("2024-05-05"))
	if err != nil {
		t.Fatalf("Since failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].Date.Before(rows[1].Date) {
		t.Error("rows should be ordered oldest first")
	}
}
