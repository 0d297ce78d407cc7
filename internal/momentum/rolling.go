package momentum

import "github.com/abhisek/flashwiz/internal/progress"

// MaxRecentAnswers is the size of the rolling answer window.
const MaxRecentAnswers = progress.MaxRecentAnswers

// Rolling is the result of recording one answer in the rolling window.
type Rolling struct {
	RecentAnswers   []bool
	RollingAccuracy float64
}

// UpdateRolling appends isCorrect to the learner's recent answers, evicting the
// oldest entries once the window exceeds MaxRecentAnswers, and recomputes the
// rolling accuracy. The input progress is not modified.
func UpdateRolling(p progress.Progress, isCorrect bool) Rolling {
	answers := make([]bool, 0, len(p.RecentAnswers)+1)
	answers = append(answers, p.RecentAnswers...)
	answers = append(answers, isCorrect)
	if len(answers) > MaxRecentAnswers {
		answers = answers[len(answers)-MaxRecentAnswers:]
	}
	return Rolling{
		RecentAnswers:   answers,
		RollingAccuracy: Accuracy(answers),
	}
}

// Accuracy returns the percentage of true values in answers, or
// progress.DefaultRollingAccuracy for an empty window.
func Accuracy(answers []bool) float64 {
	return progress.Accuracy(answers)
}
