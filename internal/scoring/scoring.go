// Package scoring computes submission scores against a quiz's active
// question bank. It is pure: no I/O, no side effects.
package scoring

import (
	"math"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// AnswerDetail is the per-answer scoring outcome.
type AnswerDetail struct {
	QuestionID     int64
	SelectedAnswer model.AnswerLetter
	IsCorrect      bool
	MarksObtained  int
}

// Result is the score breakdown for one submission.
type Result struct {
	TotalMarks    int
	ObtainedMarks int
	Score         float64
	Details       []AnswerDetail
}

// Score grades the submitted answers against the quiz's active questions.
//
// TotalMarks sums the marks of every active question whether or not it
// was answered. Answers referencing questions outside the active set are
// silently dropped. Score is the obtained/total percentage rounded to
// two decimals, 0 when the quiz has no active questions.
func Score(questions []model.Question, answers []model.AnswerInput) Result {
	byID := make(map[int64]*model.Question, len(questions))
	totalMarks := 0
	for i := range questions {
		q := &questions[i]
		if !q.IsActive {
			continue
		}
		byID[q.ID] = q
		totalMarks += q.Marks
	}

	result := Result{TotalMarks: totalMarks}

	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}

		selected := model.AnswerLetter(a.SelectedAnswer)
		detail := AnswerDetail{
			QuestionID:     q.ID,
			SelectedAnswer: selected,
		}
		if selected == q.CorrectAnswer {
			detail.IsCorrect = true
			detail.MarksObtained = q.Marks
			result.ObtainedMarks += q.Marks
		}
		result.Details = append(result.Details, detail)
	}

	if totalMarks > 0 {
		result.Score = Round2(float64(result.ObtainedMarks) / float64(totalMarks) * 100)
	}
	return result
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
