package scoring

import (
	"testing"

	"github.com/quizforge/quizforge-backend/internal/model"
)

func question(id int64, correct model.AnswerLetter, marks int, active bool) model.Question {
	return model.Question{
		ID:            id,
		QuizID:        1,
		CorrectAnswer: correct,
		Marks:         marks,
		IsActive:      active,
	}
}

func answer(questionID int64, selected string) model.AnswerInput {
	return model.AnswerInput{QuestionID: questionID, SelectedAnswer: selected}
}

func TestScorePartiallyCorrect(t *testing.T) {
	questions := []model.Question{
		question(1, model.AnswerA, 1, true),
		question(2, model.AnswerB, 2, true),
	}

	// Correct on the 1-mark question, wrong on the 2-mark one.
	res := Score(questions, []model.AnswerInput{
		answer(1, "A"),
		answer(2, "C"),
	})

	if res.TotalMarks != 3 {
		t.Errorf("TotalMarks = %d, want 3", res.TotalMarks)
	}
	if res.ObtainedMarks != 1 {
		t.Errorf("ObtainedMarks = %d, want 1", res.ObtainedMarks)
	}
	if res.Score != 33.33 {
		t.Errorf("Score = %v, want 33.33", res.Score)
	}
	if len(res.Details) != 2 {
		t.Fatalf("Details len = %d, want 2", len(res.Details))
	}
	if !res.Details[0].IsCorrect || res.Details[0].MarksObtained != 1 {
		t.Errorf("detail[0] = %+v, want correct with 1 mark", res.Details[0])
	}
	if res.Details[1].IsCorrect || res.Details[1].MarksObtained != 0 {
		t.Errorf("detail[1] = %+v, want incorrect with 0 marks", res.Details[1])
	}
}

func TestScoreAllCorrect(t *testing.T) {
	questions := []model.Question{
		question(1, model.AnswerA, 1, true),
		question(2, model.AnswerB, 2, true),
	}

	res := Score(questions, []model.AnswerInput{
		answer(1, "A"),
		answer(2, "B"),
	})

	if res.ObtainedMarks != 3 {
		t.Errorf("ObtainedMarks = %d, want 3", res.ObtainedMarks)
	}
	if res.Score != 100.00 {
		t.Errorf("Score = %v, want 100.00", res.Score)
	}
}

func TestScoreUnansweredQuestionsStillCountInTotal(t *testing.T) {
	questions := []model.Question{
		question(1, model.AnswerA, 2, true),
		question(2, model.AnswerB, 2, true),
	}

	res := Score(questions, []model.AnswerInput{answer(1, "A")})

	if res.TotalMarks != 4 {
		t.Errorf("TotalMarks = %d, want 4", res.TotalMarks)
	}
	if res.Score != 50.00 {
		t.Errorf("Score = %v, want 50.00", res.Score)
	}
	if len(res.Details) != 1 {
		t.Errorf("Details len = %d, want 1", len(res.Details))
	}
}

func TestScoreNoActiveQuestions(t *testing.T) {
	res := Score(nil, []model.AnswerInput{answer(1, "A")})

	if res.TotalMarks != 0 || res.ObtainedMarks != 0 {
		t.Errorf("marks = %d/%d, want 0/0", res.ObtainedMarks, res.TotalMarks)
	}
	if res.Score != 0 {
		t.Errorf("Score = %v, want 0", res.Score)
	}
}

func TestScoreDropsForeignAndInactiveAnswers(t *testing.T) {
	questions := []model.Question{
		question(1, model.AnswerA, 1, true),
		question(2, model.AnswerB, 3, false), // inactive
	}

	res := Score(questions, []model.AnswerInput{
		answer(1, "A"),
		answer(2, "B"),  // inactive question
		answer(99, "C"), // belongs to another quiz
	})

	if res.TotalMarks != 1 {
		t.Errorf("TotalMarks = %d, want 1 (inactive question excluded)", res.TotalMarks)
	}
	if res.ObtainedMarks != 1 {
		t.Errorf("ObtainedMarks = %d, want 1", res.ObtainedMarks)
	}
	if len(res.Details) != 1 {
		t.Fatalf("Details len = %d, want 1 (foreign answers dropped)", len(res.Details))
	}
	if res.Details[0].QuestionID != 1 {
		t.Errorf("Details[0].QuestionID = %d, want 1", res.Details[0].QuestionID)
	}
	if res.Score != 100.00 {
		t.Errorf("Score = %v, want 100.00", res.Score)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.0 / 3.0 * 100, 33.33},
		{2.0 / 3.0 * 100, 66.67},
		{100, 100},
		{0, 0},
		{66.665, 66.67},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
