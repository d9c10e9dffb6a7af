package question

import "strings"

type QuestionType string

const (
	TypeSingle   QuestionType = "single"
	TypeMultiple QuestionType = "multiple"
)

type Status string

const (
	StatusPending   Status = "pending"   // no suggested and no verified answer yet
	StatusSuggested Status = "suggested" // has a suggested answer awaiting confirmation
	StatusVerified  Status = "verified"  // answer confirmed, visible to the trainer
)

// Answer is one option of a question.
type Answer struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	IsSuggested bool   `json:"is_suggested"`
}

// Question is an exam question with its answer options. Only verified
// questions are exposed through the trainer API.
type Question struct {
	ID                      string       `json:"id"`
	Text                    string       `json:"text"`
	Type                    QuestionType `json:"type"`
	Answers                 []Answer     `json:"answers"`
	Note                    *string      `json:"note"`
	SuggestedAnswerID       *string      `json:"suggested_answer_id"`
	IsVerified              bool         `json:"is_verified"`
	QuestionNumber          *string      `json:"question_number"`           // e.g. "1.16"
	SectionNumber           *int         `json:"section_number"`            // 1-based, nil = unsectioned
	QuestionNumberInSection *int         `json:"question_number_in_section"`
	SectionName             *string      `json:"section_name,omitempty"`
	ExamName                string       `json:"exam_name"`
}

// Status derives the editing status from the verified flag and the
// suggested answer.
func (q *Question) Status() Status {
	switch {
	case q.IsVerified:
		return StatusVerified
	case q.SuggestedAnswerID != nil && *q.SuggestedAnswerID != "":
		return StatusSuggested
	default:
		return StatusPending
	}
}

// RequiresConfirmation reports whether the question has a suggested answer
// that has not been verified yet.
func (q *Question) RequiresConfirmation() bool {
	return q.Status() == StatusSuggested
}

// RequiresAnswer reports whether the question has no answer at all yet.
func (q *Question) RequiresAnswer() bool {
	return q.Status() == StatusPending
}

// CorrectAnswerIDs returns the IDs of all answers marked correct.
func (q *Question) CorrectAnswerIDs() []string {
	var ids []string
	for _, a := range q.Answers {
		if a.IsCorrect {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// CheckSelection reports whether the selected answer IDs are exactly the
// correct ones. Order and duplicates do not matter; a partial selection of
// a multiple-answer question is wrong.
func (q *Question) CheckSelection(selected []string) bool {
	correct := make(map[string]bool)
	for _, a := range q.Answers {
		if a.IsCorrect {
			correct[a.ID] = true
		}
	}
	if len(correct) == 0 {
		return false
	}

	chosen := make(map[string]bool)
	for _, id := range selected {
		chosen[id] = true
	}
	if len(chosen) != len(correct) {
		return false
	}
	for id := range chosen {
		if !correct[id] {
			return false
		}
	}
	return true
}

// Matches reports whether the query occurs (case-insensitively) in the
// question text, any answer text, or the note.
func (q *Question) Matches(query string) bool {
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(q.Text), query) {
		return true
	}
	for _, a := range q.Answers {
		if strings.Contains(strings.ToLower(a.Text), query) {
			return true
		}
	}
	return q.Note != nil && strings.Contains(strings.ToLower(*q.Note), query)
}

// Section returns the section number, with nil mapping to bucket 0.
func (q *Question) Section() int {
	if q.SectionNumber == nil {
		return 0
	}
	return *q.SectionNumber
}
