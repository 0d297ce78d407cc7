package progress

import "time"

// DateLayout is the calendar-date format used for LastActiveDate.
const DateLayout = "2006-01-02"

// XPPerLevel is the XP needed to advance one level.
const XPPerLevel = 100

// MaxRecentAnswers is the size of the rolling answer window.
const MaxRecentAnswers = 30

// Defaults for a learner who has never battled.
const (
	DefaultRollingAccuracy = 100.0
	DefaultMomentumScore   = 50
)

// Progress is the per-user Wizard state. It is a plain value: core functions
// take a Progress and return a new one, and the battle session owns the single
// authoritative copy.
type Progress struct {
	XP              int     `json:"xp"`
	Level           int     `json:"level"`
	CurrentStreak   int     `json:"currentStreak"`
	LastActiveDate  string  `json:"lastActiveDate"`
	RollingAccuracy float64 `json:"rollingAccuracy"`
	RecentAnswers   []bool  `json:"recentAnswers"`
	MomentumScore   int     `json:"momentumScore"`
}

// Default returns the progress record created for a user on first load.
func Default() Progress {
	return Progress{
		XP:              0,
		Level:           1,
		CurrentStreak:   0,
		RollingAccuracy: DefaultRollingAccuracy,
		RecentAnswers:   []bool{},
		MomentumScore:   DefaultMomentumScore,
	}
}

// Clone returns a copy that shares no memory with p.
func (p Progress) Clone() Progress {
	out := p
	out.RecentAnswers = make([]bool, len(p.RecentAnswers))
	copy(out.RecentAnswers, p.RecentAnswers)
	return out
}

// LevelFor derives the level from total XP: floor(xp/100)+1.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPIntoLevel returns how far into the current level the learner is.
func (p Progress) XPIntoLevel() int {
	if p.XP < 0 {
		return 0
	}
	return p.XP % XPPerLevel
}

// AddXP returns p with amount added to XP and the level recomputed.
// Negative amounts are ignored so XP never decreases.
func (p Progress) AddXP(amount int) Progress {
	if amount > 0 {
		p.XP += amount
	}
	p.Level = LevelFor(p.XP)
	return p
}

// LastActive parses LastActiveDate in loc. ok is false when the learner has
// never been active or the stored date is malformed.
func (p Progress) LastActive(loc *time.Location) (time.Time, bool) {
	if p.LastActiveDate == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, p.LastActiveDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Accuracy returns the percentage of true values in answers, or
// DefaultRollingAccuracy for an empty window.
func Accuracy(answers []bool) float64 {
	if len(answers) == 0 {
		return DefaultRollingAccuracy
	}
	correct := 0
	for _, a := range answers {
		if a {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(answers))
}

// Normalize repairs fields that are derived from others. Used when loading
// documents written by older versions or edited by hand.
func (p Progress) Normalize() Progress {
	if p.RecentAnswers == nil {
		p.RecentAnswers = []bool{}
	}
	if len(p.RecentAnswers) > MaxRecentAnswers {
		p.RecentAnswers = p.RecentAnswers[len(p.RecentAnswers)-MaxRecentAnswers:]
	}
	p.RollingAccuracy = Accuracy(p.RecentAnswers)
	p.MomentumScore = min(max(p.MomentumScore, 0), 100)
	if p.XP < 0 {
		p.XP = 0
	}
	if p.CurrentStreak < 0 {
		p.CurrentStreak = 0
	}
	p.Level = LevelFor(p.XP)
	return p
}
