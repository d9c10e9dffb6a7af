package progress

import (
	"math"
	"sort"

	"github.com/examtrainer/backend/internal/domain/question"
)

// ExamStats aggregates progress over the verified questions of one exam.
type ExamStats struct {
	TotalVerified    int     `json:"total_verified"`
	Mastered         int     `json:"mastered"`
	Attempted        int     `json:"attempted"`
	NotAttempted     int     `json:"not_attempted"`
	TotalAttempts    int     `json:"total_attempts"`
	TotalCorrect     int     `json:"total_correct"`
	MasteredPercent  float64 `json:"mastered_percent"`
	AttemptedPercent float64 `json:"attempted_percent"`
	Accuracy         float64 `json:"accuracy"`
}

// SectionStats aggregates progress over the verified questions of one
// section of an exam.
type SectionStats struct {
	SectionNumber    int     `json:"section_number"`
	Name             string  `json:"name,omitempty"`
	Total            int     `json:"total"`
	Mastered         int     `json:"mastered"`
	Attempted        int     `json:"attempted"`
	TotalAttempts    int     `json:"total_attempts"`
	TotalCorrect     int     `json:"total_correct"`
	MasteredPercent  float64 `json:"mastered_percent"`
	AttemptedPercent float64 `json:"attempted_percent"`
	Accuracy         float64 `json:"accuracy"`
}

// AggregateExam computes exam-level statistics for the given verified
// question IDs. Questions without a record count as not attempted.
func AggregateExam(records map[string]Record, verifiedIDs []string) ExamStats {
	stats := ExamStats{TotalVerified: len(verifiedIDs)}

	for _, id := range verifiedIDs {
		rec, ok := records[id]
		if !ok {
			continue
		}
		if rec.Mastered {
			stats.Mastered++
		}
		if rec.Attempts > 0 {
			stats.Attempted++
			stats.TotalAttempts += rec.Attempts
			stats.TotalCorrect += rec.TotalCorrect
		}
	}

	stats.NotAttempted = stats.TotalVerified - stats.Attempted
	stats.MasteredPercent = percent(stats.Mastered, stats.TotalVerified)
	stats.AttemptedPercent = percent(stats.Attempted, stats.TotalVerified)
	stats.Accuracy = percent(stats.TotalCorrect, stats.TotalAttempts)
	return stats
}

// AggregateBySection groups verified questions by section number (nil
// section → bucket 0) and computes per-section statistics, sorted by
// section number ascending. Unverified questions are skipped.
func AggregateBySection(records map[string]Record, questions []question.Question) []SectionStats {
	sections := make(map[int]*SectionStats)

	for i := range questions {
		q := &questions[i]
		if !q.IsVerified {
			continue
		}

		num := q.Section()
		sec, ok := sections[num]
		if !ok {
			sec = &SectionStats{SectionNumber: num}
			if q.SectionName != nil {
				sec.Name = *q.SectionName
			}
			sections[num] = sec
		}
		if sec.Name == "" && q.SectionName != nil {
			sec.Name = *q.SectionName
		}

		sec.Total++

		rec, ok := records[q.ID]
		if !ok {
			continue
		}
		if rec.Mastered {
			sec.Mastered++
		}
		if rec.Attempts > 0 {
			sec.Attempted++
			sec.TotalAttempts += rec.Attempts
			sec.TotalCorrect += rec.TotalCorrect
		}
	}

	nums := make([]int, 0, len(sections))
	for num := range sections {
		nums = append(nums, num)
	}
	sort.Ints(nums)

	result := make([]SectionStats, 0, len(nums))
	for _, num := range nums {
		sec := sections[num]
		sec.MasteredPercent = percent(sec.Mastered, sec.Total)
		sec.AttemptedPercent = percent(sec.Attempted, sec.Total)
		sec.Accuracy = percent(sec.TotalCorrect, sec.TotalAttempts)
		result = append(result, *sec)
	}
	return result
}

// percent returns part/whole as a percentage rounded to one decimal,
// or 0 when the denominator is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
