package models

import (
	"testing"

	"github.com/thenoetrevino/scope/internal/types"
)

// ============================================================================
// Risk Tests
// ============================================================================

func TestRisk_Recalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		impact, probability int
		wantFactor          int
		wantAppetite        string
	}{
		{1, 1, 1, AppetiteLow},
		{2, 2, 4, AppetiteLow},
		{2, 4, 8, AppetiteModerate},
		{3, 3, 9, AppetiteHigh},
		{3, 4, 12, AppetiteHigh},
		{4, 4, 16, AppetiteExtreme},
	}

	for _, tt := range tests {
		r := Risk{Impact: tt.impact, Probability: tt.probability}
		r.Recalculate()
		if r.RiskFactor != tt.wantFactor {
			t.Errorf("impact=%d probability=%d: factor %d, want %d", tt.impact, tt.probability, r.RiskFactor, tt.wantFactor)
		}
		if r.Appetite != tt.wantAppetite {
			t.Errorf("impact=%d probability=%d: appetite %q, want %q", tt.impact, tt.probability, r.Appetite, tt.wantAppetite)
		}
	}
}

func TestValidRiskScore(t *testing.T) {
	t.Parallel()

	for _, v := range []int{1, 2, 3, 4} {
		if !ValidRiskScore(v) {
			t.Errorf("expected %d to be valid", v)
		}
	}
	for _, v := range []int{0, 5, -1} {
		if ValidRiskScore(v) {
			t.Errorf("expected %d to be invalid", v)
		}
	}
}

// ============================================================================
// Column Tests
// ============================================================================

func TestDefaultColumns(t *testing.T) {
	t.Parallel()

	cols := DefaultColumns("P1")
	if len(cols) != 4 {
		t.Fatalf("expected 4 default columns, got %d", len(cols))
	}

	wantIDs := []types.ColumnID{"P1_todo", "P1_progress", "P1_blocked", "P1_done"}
	for i, c := range cols {
		if c.ID != wantIDs[i] {
			t.Errorf("column %d: ID %q, want %q", i, c.ID, wantIDs[i])
		}
		if c.OrderIndex != i {
			t.Errorf("column %d: order_index %d", i, c.OrderIndex)
		}
		if !c.IsDefault {
			t.Errorf("column %d should be default", i)
		}
	}
}

func TestColumn_StatusMapping(t *testing.T) {
	t.Parallel()

	cols := DefaultColumns("P1")
	want := []string{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}
	for i, c := range cols {
		if got := c.Status(); got != want[i] {
			t.Errorf("%s: status %q, want %q", c.ID, got, want[i])
		}
		key, ok := ColumnKeyForStatus(want[i])
		if !ok || key != c.Key() {
			t.Errorf("status %q maps to key %q, want %q", want[i], key, c.Key())
		}
	}

	custom := Column{ID: "P1_C1", ProjectID: "P1", Name: "Review"}
	if custom.Status() != "Review" {
		t.Errorf("custom column status = %q, want its name", custom.Status())
	}
	if custom.Key() != "" {
		t.Errorf("custom column should have no key, got %q", custom.Key())
	}
}

func TestComputeRiskStats(t *testing.T) {
	t.Parallel()

	stats := ComputeRiskStats([]Risk{
		{Impact: 1, Probability: 1, Status: RiskOpen, Strategy: StrategyAccept},
		{Impact: 4, Probability: 4, Status: RiskOpen, Strategy: StrategyMitigate},
		{Impact: 3, Probability: 4, Status: RiskClosed, Strategy: StrategyMitigate},
	})

	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	if stats.ByStatus[RiskOpen] != 2 || stats.ByStatus[RiskClosed] != 1 {
		t.Errorf("unexpected status counts: %v", stats.ByStatus)
	}
	if stats.ByAppetite[AppetiteExtreme] != 1 || stats.ByAppetite[AppetiteHigh] != 1 || stats.ByAppetite[AppetiteLow] != 1 {
		t.Errorf("unexpected appetite counts: %v", stats.ByAppetite)
	}
	if stats.ByStrategy[StrategyMitigate] != 2 {
		t.Errorf("unexpected strategy counts: %v", stats.ByStrategy)
	}
}
