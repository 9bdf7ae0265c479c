package model

import (
	"testing"
	"time"
)

func TestCurrentHackathonID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC), "virtual-2026-08"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "virtual-2026-01"},
		{time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC), "virtual-2026-12"},
	}

	for _, tt := range tests {
		if got := CurrentHackathonID(tt.now); got != tt.want {
			t.Errorf("CurrentHackathonID(%v) = %s, want %s", tt.now, got, tt.want)
		}
	}
}

func TestMonthEndFromHackathonID(t *testing.T) {
	t.Parallel()

	end, err := MonthEndFromHackathonID("virtual-2026-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2026 is not a leap year; February ends on the 28th
	if end.Day() != 28 || end.Month() != time.February {
		t.Errorf("expected end of February, got %v", end)
	}
	if !end.Before(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("cutoff must precede the next month")
	}
}

func TestMonthEndFromHackathonID_Invalid(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "virtual-", "virtual-2026", "2026-08", "virtual-2026-13"} {
		if _, err := MonthEndFromHackathonID(id); err == nil {
			t.Errorf("expected error for %q", id)
		}
	}
}

func TestTeamHasMember(t *testing.T) {
	t.Parallel()

	team := &Team{MemberIDs: []string{"a", "b"}}
	if !team.HasMember("a") {
		t.Error("a should be a member")
	}
	if team.HasMember("c") {
		t.Error("c should not be a member")
	}
}

func TestTeamIsFull(t *testing.T) {
	t.Parallel()

	team := &Team{MemberIDs: []string{"a", "b"}}
	if team.IsFull() {
		t.Error("2/3 team is not full")
	}
	team.MemberIDs = append(team.MemberIDs, "c")
	if !team.IsFull() {
		t.Error("3/3 team is full")
	}
}

func TestPoolEntryID(t *testing.T) {
	t.Parallel()

	if got := PoolEntryID("user-1", "virtual-2026-08"); got != "user-1_virtual-2026-08" {
		t.Errorf("unexpected pool entry id %q", got)
	}
}
