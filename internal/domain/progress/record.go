package progress

import "time"

// Outcome classifies a single answer attempt.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeDontKnow  Outcome = "dont_know"
)

// MasteryStreak is the number of consecutive correct answers after which a
// question counts as mastered.
const MasteryStreak = 3

// Record tracks one user's progress on one question.
//
// Mastered is sticky: once set it survives wrong answers and only goes away
// when cleared explicitly, which also resets the streak.
type Record struct {
	Attempts      int        `json:"attempts"`
	CorrectStreak int        `json:"correct_streak"`
	TotalCorrect  int        `json:"total_correct"`
	Mastered      bool       `json:"mastered"`
	LastAttempt   *time.Time `json:"last_attempt"`
}

// Apply records one attempt with the given outcome at time now.
func (r *Record) Apply(outcome Outcome, now time.Time) {
	r.Attempts++
	r.LastAttempt = &now

	switch outcome {
	case OutcomeCorrect:
		r.CorrectStreak++
		r.TotalCorrect++
		if r.CorrectStreak >= MasteryStreak {
			r.Mastered = true
		}
	default: // incorrect or dont_know
		r.CorrectStreak = 0
	}
}

// SetMastered sets or clears the mastered flag. Clearing resets the streak;
// attempts and total_correct are untouched either way.
func (r *Record) SetMastered(mastered bool) {
	r.Mastered = mastered
	if !mastered {
		r.CorrectStreak = 0
	}
}
