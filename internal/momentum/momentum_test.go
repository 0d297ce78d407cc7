package momentum

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/flashwiz/internal/progress"
)

func TestUpdateRolling_WindowAndAccuracy(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	p := progress.Default()

	for i := 0; i < 200; i++ {
		rolling := UpdateRolling(p, r.IntN(3) != 0)
		p.RecentAnswers = rolling.RecentAnswers
		p.RollingAccuracy = rolling.RollingAccuracy

		if len(p.RecentAnswers) > MaxRecentAnswers {
			t.Fatalf("step %d: window length %d exceeds %d", i, len(p.RecentAnswers), MaxRecentAnswers)
		}
		correct := 0
		for _, a := range p.RecentAnswers {
			if a {
				correct++
			}
		}
		want := 100 * float64(correct) / float64(len(p.RecentAnswers))
		if p.RollingAccuracy != want {
			t.Fatalf("step %d: accuracy = %v, want %v", i, p.RollingAccuracy, want)
		}
	}
}

func TestUpdateRolling_EvictsOldest(t *testing.T) {
	p := progress.Default()
	p.RecentAnswers = make([]bool, MaxRecentAnswers)
	p.RecentAnswers[0] = true

	rolling := UpdateRolling(p, false)
	if len(rolling.RecentAnswers) != MaxRecentAnswers {
		t.Fatalf("len = %d", len(rolling.RecentAnswers))
	}
	for i, a := range rolling.RecentAnswers {
		if a {
			t.Errorf("index %d still true; oldest entry was not evicted", i)
		}
	}
	if !p.RecentAnswers[0] {
		t.Error("input progress was modified")
	}
}

func TestAccuracy_Empty(t *testing.T) {
	if got := Accuracy(nil); got != 100 {
		t.Errorf("Accuracy(nil) = %v, want 100", got)
	}
}

func TestUpdateStreak(t *testing.T) {
	now := time.Date(2025, time.June, 12, 21, 30, 0, 0, time.Local)

	tests := []struct {
		name       string
		lastActive string
		streak     int
		want       int
	}{
		{"never active", "", 0, 1},
		{"same day", "2025-06-12", 3, 3},
		{"yesterday", "2025-06-11", 4, 5},
		{"three days ago", "2025-06-09", 4, 1},
		{"two days ago", "2025-06-10", 9, 1},
		{"malformed date", "06/11/2025", 4, 1},
		{"future date", "2025-06-13", 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := progress.Default()
			p.LastActiveDate = tt.lastActive
			p.CurrentStreak = tt.streak

			got := UpdateStreak(p, now)
			if got.CurrentStreak != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.want)
			}
			if got.LastActiveDate != "2025-06-12" {
				t.Errorf("LastActiveDate = %q, want 2025-06-12", got.LastActiveDate)
			}
		})
	}
}

func TestUpdateStreak_AcrossMonthBoundary(t *testing.T) {
	now := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	p := progress.Default()
	p.LastActiveDate = "2025-02-28"
	p.CurrentStreak = 2

	if got := UpdateStreak(p, now).CurrentStreak; got != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got)
	}
}

func TestApplyMissPenalty(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0},
		{1, 0},
		{2, 1},
		{10, 9},
	}
	for _, tt := range tests {
		if got := ApplyMissPenalty(tt.in); got != tt.want {
			t.Errorf("ApplyMissPenalty(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCompute_Bounds(t *testing.T) {
	w := DefaultWeights()
	for acc := -20.0; acc <= 140; acc += 5 {
		for streak := -3; streak <= 40; streak++ {
			p := progress.Progress{RollingAccuracy: acc, CurrentStreak: streak}
			got := Compute(p, w)
			if got < 0 || got > 100 {
				t.Fatalf("Compute(acc=%v, streak=%d) = %d, out of range", acc, streak, got)
			}
		}
	}
}

func TestCompute_Monotonic(t *testing.T) {
	w := DefaultWeights()
	for acc := 0.0; acc < 100; acc += 2.5 {
		for streak := 0; streak < 15; streak++ {
			lo := Compute(progress.Progress{RollingAccuracy: acc, CurrentStreak: streak}, w)
			hi := Compute(progress.Progress{RollingAccuracy: acc + 2.5, CurrentStreak: streak + 1}, w)
			if hi < lo {
				t.Fatalf("momentum decreased from %d to %d at acc=%v streak=%d", lo, hi, acc, streak)
			}
		}
	}
}

func TestCompute_Values(t *testing.T) {
	w := DefaultWeights()
	tests := []struct {
		acc    float64
		streak int
		want   int
	}{
		{100, 10, 100},
		{100, 0, 80},
		{0, 0, 0},
		{50, 5, 50},
		{75, 20, 80},
	}
	for _, tt := range tests {
		got := Compute(progress.Progress{RollingAccuracy: tt.acc, CurrentStreak: tt.streak}, w)
		if got != tt.want {
			t.Errorf("Compute(%v, %d) = %d, want %d", tt.acc, tt.streak, got, tt.want)
		}
	}
}

func TestStateFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{-5, "Cold"},
		{0, "Cold"},
		{25, "Cold"},
		{26, "Warming"},
		{50, "Warming"},
		{51, "Hot"},
		{75, "Hot"},
		{76, "On Fire"},
		{100, "On Fire"},
		{130, "On Fire"},
	}
	for _, tt := range tests {
		if got := StateFor(tt.score).Name; got != tt.want {
			t.Errorf("StateFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestStateFor_Idempotent(t *testing.T) {
	for x := -10; x <= 110; x++ {
		if StateFor(x).Name != StateFor(x).Name {
			t.Fatalf("StateFor(%d) not stable", x)
		}
	}
}

func TestApply(t *testing.T) {
	now := time.Date(2025, time.June, 12, 10, 0, 0, 0, time.UTC)
	p := progress.Default()
	p.XP = 40
	p.LastActiveDate = "2025-06-11"
	p.CurrentStreak = 4

	got := Apply(p, true, now, DefaultWeights())
	if got.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", got.CurrentStreak)
	}
	if got.RollingAccuracy != 100 || len(got.RecentAnswers) != 1 {
		t.Errorf("rolling = %v / %v", got.RollingAccuracy, got.RecentAnswers)
	}
	if got.MomentumScore != 90 {
		t.Errorf("MomentumScore = %d, want 90", got.MomentumScore)
	}
	if got.XP != 40 {
		t.Errorf("XP changed to %d", got.XP)
	}

	missed := Apply(got, false, now, DefaultWeights())
	if missed.CurrentStreak != 4 {
		t.Errorf("after miss CurrentStreak = %d, want 4", missed.CurrentStreak)
	}
	if missed.RollingAccuracy != 50 {
		t.Errorf("after miss RollingAccuracy = %v, want 50", missed.RollingAccuracy)
	}
	if missed.MomentumScore != 48 {
		t.Errorf("after miss MomentumScore = %d, want 48", missed.MomentumScore)
	}
}
