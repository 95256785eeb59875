package sketch

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/eleven-am/sketch-backend/internal/analytics"
	"github.com/eleven-am/sketch-backend/internal/concept"
	"github.com/eleven-am/sketch-backend/internal/imagegen"
	"github.com/eleven-am/sketch-backend/internal/prompt"
	"github.com/eleven-am/sketch-backend/internal/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) (*Service, *analytics.Aggregator, *session.Store) {
	logger := testLogger()
	store := session.NewStore(db, nil, time.Minute, logger)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	orchestrator := imagegen.NewOrchestrator(
		[]imagegen.Backend{imagegen.NewPlaceholderBackend()},
		time.Second,
		logger,
	)
	aggregator := analytics.NewAggregator(0)

	svc := NewService(
		concept.NewExtractor(concept.DefaultThresholds()),
		prompt.NewSynthesizer(),
		orchestrator,
		store,
		aggregator,
		logger,
	)
	return svc, aggregator, store
}

func TestService_Process(t *testing.T) {
	svc, aggregator, store := newTestService(t, setupTestDB(t))

	outcome, err := svc.Process(context.Background(), "A blue sky with stars and a moon", Options{})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if !outcome.Success {
		t.Error("outcome should report success")
	}
	if outcome.SessionID == "" || outcome.SessionID == session.SentinelID {
		t.Errorf("expected persisted session id, got %q", outcome.SessionID)
	}
	if outcome.EnhancedPrompt == "" {
		t.Error("enhanced prompt should not be empty")
	}
	if outcome.Image == nil || !outcome.Image.Success {
		t.Fatalf("expected successful image, got %+v", outcome.Image)
	}
	if outcome.Image.Service != "placeholder" {
		t.Errorf("service = %q, want placeholder", outcome.Image.Service)
	}

	found := false
	for _, color := range outcome.Extraction.Bag.Colors {
		if color == "blue" {
			found = true
		}
	}
	if !found {
		t.Error("extraction should detect the color blue")
	}

	// the run lands in both the store and the analytics
	saved, err := store.GetByID(context.Background(), outcome.SessionID)
	if err != nil {
		t.Fatalf("saved session not found: %v", err)
	}
	if saved.Transcript != "A blue sky with stars and a moon" {
		t.Errorf("saved transcript = %q", saved.Transcript)
	}

	report := aggregator.Snapshot()
	if report.TotalRequests != 1 {
		t.Errorf("analytics total = %d, want 1", report.TotalRequests)
	}
	if report.SuccessRate != 1 {
		t.Errorf("analytics success rate = %v, want 1", report.SuccessRate)
	}
}

func TestService_Process_EmptyText(t *testing.T) {
	svc, _, _ := newTestService(t, setupTestDB(t))

	if _, err := svc.Process(context.Background(), "   ", Options{}); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestService_Process_WithoutDatabase(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	outcome, err := svc.Process(context.Background(), "a quiet forest", Options{})
	if err != nil {
		t.Fatalf("process should succeed without a database: %v", err)
	}
	if outcome.SessionID != session.SentinelID {
		t.Errorf("session id = %q, want %q", outcome.SessionID, session.SentinelID)
	}
	if !outcome.Image.Success {
		t.Error("image generation should still succeed")
	}
}

func TestService_Process_StageCallbacks(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	var stages []Stage
	_, err := svc.Process(context.Background(), "a blue sky", Options{
		OnStage: func(s Stage) { stages = append(stages, s) },
	})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	want := []Stage{StageExtracting, StageSynthesizing, StageGenerating, StageSaving, StageComplete}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage[%d] = %q, want %q", i, stages[i], want[i])
		}
	}
}

func TestService_Backends(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	backends := svc.Backends()
	if len(backends) != 1 || backends[0] != "placeholder" {
		t.Errorf("backends = %v", backends)
	}
}
