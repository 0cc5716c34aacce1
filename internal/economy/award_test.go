package economy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/chidionyema/verdict-sub009/internal/reputation"
	"github.com/chidionyema/verdict-sub009/internal/storage"
)

var testBase = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

// newMemEngine wires an engine over the in-memory store.
func newMemEngine(t *testing.T) (*Engine, *memStore, *fakeClock) {
	t.Helper()
	store := newMemStore()
	clock := newFakeClock(testBase)
	return NewWithDeps(Deps{Store: store, Clock: clock}), store, clock
}

// newSQLiteEngine wires an engine over a real temp-dir SQLite store.
func newSQLiteEngine(t *testing.T) (*Engine, *storage.Store, *fakeClock) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "economy-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	st, err := storage.NewStore(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create store: %v", err)
	}

	t.Cleanup(func() {
		st.Close()
		os.RemoveAll(tmpDir)
	})

	clock := newFakeClock(testBase)
	engine := NewWithDeps(Deps{Store: sqliteStorage{store: st}, Clock: clock})
	return engine, st, clock
}

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestAward_FirstReview(t *testing.T) {
	engine, st, _ := newSQLiteEngine(t)
	ctx := context.Background()

	result, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-1", nil, nil)
	if err != nil {
		t.Fatalf("AwardCreditsForReview failed: %v", err)
	}

	if result.PointsAwarded != 1 {
		t.Errorf("PointsAwarded = %d, want 1", result.PointsAwarded)
	}
	if result.StreakDays != 1 || result.LongestStreakDays != 1 {
		t.Errorf("streak = %d/%d, want 1/1", result.StreakDays, result.LongestStreakDays)
	}
	if result.TotalJudgments != 1 {
		t.Errorf("TotalJudgments = %d, want 1", result.TotalJudgments)
	}
	if result.BonusCredits != 0 {
		t.Errorf("BonusCredits = %d, want 0", result.BonusCredits)
	}
	if result.NewBalance != 1 {
		t.Errorf("NewBalance = %d, want 1", result.NewBalance)
	}

	entries, err := st.Entries(ctx, "rev-1", 10)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(entries))
	}
	if entries[0].Type != storage.EntryEarn || entries[0].Amount != 1 {
		t.Errorf("entry = %s/%d, want earn/1", entries[0].Type, entries[0].Amount)
	}
	if entries[0].Description != "earned 1 point for judging" {
		t.Errorf("description = %q", entries[0].Description)
	}
	if entries[0].SourceID != "review-1" {
		t.Errorf("source = %q, want review-1", entries[0].SourceID)
	}

	rec, err := st.GetReviewer(ctx, "rev-1")
	if err != nil {
		t.Fatalf("GetReviewer failed: %v", err)
	}
	if rec.Status != reputation.StatusActive || rec.Tier != reputation.TierNew {
		t.Errorf("status/tier = %s/%s, want active/new", rec.Status, rec.Tier)
	}
}

func TestAward_SameDayDoesNotIncrementStreak(t *testing.T) {
	engine, _, clock := newSQLiteEngine(t)
	ctx := context.Background()

	first, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-1", nil, nil)
	if err != nil {
		t.Fatalf("first award failed: %v", err)
	}

	clock.Advance(2 * time.Hour) // still the same calendar day
	second, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-2", nil, nil)
	if err != nil {
		t.Fatalf("second award failed: %v", err)
	}

	if first.StreakDays != 1 || second.StreakDays != 1 {
		t.Errorf("streaks = %d then %d, want 1 then 1", first.StreakDays, second.StreakDays)
	}
	if second.TotalJudgments != 2 {
		t.Errorf("TotalJudgments = %d, want 2 (points still accrue same-day)", second.TotalJudgments)
	}
}

func TestAward_StreakTransitions(t *testing.T) {
	engine, _, clock := newSQLiteEngine(t)
	ctx := context.Background()

	// Day 1, 2, 3: consecutive days increment by exactly 1.
	for day := 1; day <= 3; day++ {
		result, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-d", nil, nil)
		if err != nil {
			t.Fatalf("award on day %d failed: %v", day, err)
		}
		if result.StreakDays != day {
			t.Errorf("day %d streak = %d, want %d", day, result.StreakDays, day)
		}
		clock.Advance(24 * time.Hour)
	}

	// Skip a day: streak resets to 1, longest is retained.
	clock.Advance(24 * time.Hour)
	result, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-gap", nil, nil)
	if err != nil {
		t.Fatalf("award after gap failed: %v", err)
	}
	if result.StreakDays != 1 {
		t.Errorf("streak after 2-day gap = %d, want 1", result.StreakDays)
	}
	if result.LongestStreakDays != 3 {
		t.Errorf("longest streak = %d, want 3", result.LongestStreakDays)
	}
}

func TestAward_StreakBonusAtMultiplesOfSeven(t *testing.T) {
	engine, st, clock := newSQLiteEngine(t)
	ctx := context.Background()

	bonusDays := map[int]bool{}
	for day := 1; day <= 14; day++ {
		result, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-d", nil, nil)
		if err != nil {
			t.Fatalf("award on day %d failed: %v", day, err)
		}
		if result.BonusCredits > 0 {
			bonusDays[day] = true
		}

		// A second award the same day must never re-trigger the bonus.
		again, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-d2", nil, nil)
		if err != nil {
			t.Fatalf("repeat award on day %d failed: %v", day, err)
		}
		if again.BonusCredits != 0 {
			t.Errorf("day %d repeat award granted bonus %d", day, again.BonusCredits)
		}

		clock.Advance(24 * time.Hour)
	}

	for day := 1; day <= 14; day++ {
		want := day == 7 || day == 14
		if bonusDays[day] != want {
			t.Errorf("day %d bonus = %v, want %v", day, bonusDays[day], want)
		}
	}

	entries, err := st.Entries(ctx, "rev-1", 100)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	var sevenDesc, fourteenDesc bool
	for _, e := range entries {
		if e.Type != storage.EntryBonus {
			continue
		}
		switch e.Description {
		case "7-day judging streak bonus":
			sevenDesc = true
		case "14-day judging streak bonus":
			fourteenDesc = true
		default:
			t.Errorf("unexpected bonus description %q", e.Description)
		}
	}
	if !sevenDesc || !fourteenDesc {
		t.Errorf("missing bonus descriptions: 7=%v 14=%v", sevenDesc, fourteenDesc)
	}
}

func TestAward_ConsensusAndHelpfulnessFold(t *testing.T) {
	engine, st, _ := newSQLiteEngine(t)
	ctx := context.Background()

	awards := []struct {
		match       *bool
		helpfulness *float64
	}{
		{boolPtr(true), floatPtr(5)},
		{boolPtr(true), nil},
		{boolPtr(false), floatPtr(3)},
		{nil, floatPtr(4)}, // no consensus data: excluded from the rate
	}
	for i, a := range awards {
		if _, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-x", a.match, a.helpfulness); err != nil {
			t.Fatalf("award %d failed: %v", i, err)
		}
	}

	rec, err := st.GetReviewer(ctx, "rev-1")
	if err != nil {
		t.Fatalf("GetReviewer failed: %v", err)
	}
	if rec.ConsensusTotal != 3 || rec.ConsensusMatches != 2 {
		t.Errorf("consensus = %d/%d, want 2/3", rec.ConsensusMatches, rec.ConsensusTotal)
	}
	if rate := rec.ConsensusRate(); rate < 66.6 || rate > 66.7 {
		t.Errorf("ConsensusRate = %.2f, want ~66.67", rate)
	}
	if avg := rec.AverageHelpfulness(); avg != 4 {
		t.Errorf("AverageHelpfulness = %.2f, want 4", avg)
	}
	if rec.TotalJudgments != 4 {
		t.Errorf("TotalJudgments = %d, want 4", rec.TotalJudgments)
	}
}

func TestAward_LedgerInvariantAfterMixedSequence(t *testing.T) {
	engine, st, clock := newSQLiteEngine(t)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		if _, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-a", nil, nil); err != nil {
			t.Fatalf("award %d failed: %v", i, err)
		}
		clock.Advance(24 * time.Hour)
	}
	if _, err := engine.SpendCredits(ctx, "rev-1", 4, "private submission", "sub-1"); err != nil {
		t.Fatalf("spend failed: %v", err)
	}
	if _, err := engine.RefundCredits(ctx, "rev-1", 1, "submission cancelled", "sub-1"); err != nil {
		t.Fatalf("refund failed: %v", err)
	}

	balance, err := st.Balance(ctx, "rev-1")
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	recomputed, err := st.RecomputeBalance(ctx, "rev-1")
	if err != nil {
		t.Fatalf("RecomputeBalance failed: %v", err)
	}
	if balance != recomputed {
		t.Errorf("materialized balance %d != ledger sum %d", balance, recomputed)
	}
	// 9 points + 1 bonus on day 7 - 4 spent + 1 refunded
	if balance != 7 {
		t.Errorf("balance = %d, want 7", balance)
	}
}

func TestAward_ConcurrentAwardsLoseNoUpdates(t *testing.T) {
	engine, st, _ := newSQLiteEngine(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-c", nil, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent award failed: %v", err)
		}
	}

	rec, err := st.GetReviewer(ctx, "rev-1")
	if err != nil {
		t.Fatalf("GetReviewer failed: %v", err)
	}
	if rec.TotalJudgments != n {
		t.Errorf("TotalJudgments = %d, want %d (lost updates)", rec.TotalJudgments, n)
	}

	balance, err := st.Balance(ctx, "rev-1")
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance != n {
		t.Errorf("balance = %d, want %d", balance, n)
	}
}

func TestAward_ValidationErrors(t *testing.T) {
	engine, _, _ := newMemEngine(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		reviewerID  string
		reviewID    string
		helpfulness *float64
	}{
		{"empty reviewer", "", "review-1", nil},
		{"empty review", "rev-1", "", nil},
		{"helpfulness below range", "rev-1", "review-1", floatPtr(0.5)},
		{"helpfulness above range", "rev-1", "review-1", floatPtr(5.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.AwardCreditsForReview(ctx, tt.reviewerID, tt.reviewID, nil, tt.helpfulness)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestAward_NoPartialApplicationOnFailure(t *testing.T) {
	engine, store, _ := newMemEngine(t)
	ctx := context.Background()

	// Reputation update failing must also roll back the point award.
	store.FailSaveReviewer = true
	_, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-1", nil, nil)
	if !errors.Is(err, ErrMockSave) {
		t.Fatalf("expected ErrMockSave, got %v", err)
	}

	balance, _ := store.Balance(ctx, "rev-1")
	if balance != 0 {
		t.Errorf("balance after failed award = %d, want 0", balance)
	}
	if len(store.entriesFor("rev-1")) != 0 {
		t.Errorf("ledger has entries after failed award")
	}
	if _, err := store.GetReviewer(ctx, "rev-1"); !errors.Is(err, storage.ErrReviewerNotFound) {
		t.Errorf("reviewer record exists after failed award, err = %v", err)
	}
}

func TestAward_StoreErrorPropagates(t *testing.T) {
	engine, store, _ := newMemEngine(t)
	store.FailTransact = true

	_, err := engine.AwardCreditsForReview(context.Background(), "rev-1", "review-1", nil, nil)
	if !errors.Is(err, ErrMockBegin) {
		t.Errorf("expected ErrMockBegin, got %v", err)
	}
}

func TestRecordResponseTime(t *testing.T) {
	engine, st, _ := newSQLiteEngine(t)
	ctx := context.Background()

	if _, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-1", nil, nil); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	for _, mins := range []float64{30, 90} {
		if err := engine.RecordResponseTime(ctx, "rev-1", mins); err != nil {
			t.Fatalf("RecordResponseTime(%.0f) failed: %v", mins, err)
		}
	}

	rec, err := st.GetReviewer(ctx, "rev-1")
	if err != nil {
		t.Fatalf("GetReviewer failed: %v", err)
	}
	if avg := rec.AverageResponseMinutes(); avg != 60 {
		t.Errorf("AverageResponseMinutes = %.2f, want 60", avg)
	}

	if err := engine.RecordResponseTime(ctx, "rev-1", -5); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("negative response time: expected ErrInvalidRequest, got %v", err)
	}
	if err := engine.RecordResponseTime(ctx, "ghost", 10); !errors.Is(err, storage.ErrReviewerNotFound) {
		t.Errorf("unknown reviewer: expected ErrReviewerNotFound, got %v", err)
	}
}

func TestReportReviewer(t *testing.T) {
	engine, st, _ := newSQLiteEngine(t)
	ctx := context.Background()

	if _, err := engine.AwardCreditsForReview(ctx, "rev-1", "review-1", nil, nil); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := engine.ReportReviewer(ctx, "rev-1"); err != nil {
			t.Fatalf("ReportReviewer failed: %v", err)
		}
	}

	rec, err := st.GetReviewer(ctx, "rev-1")
	if err != nil {
		t.Fatalf("GetReviewer failed: %v", err)
	}
	if rec.ReportCount != 2 {
		t.Errorf("ReportCount = %d, want 2", rec.ReportCount)
	}
}
