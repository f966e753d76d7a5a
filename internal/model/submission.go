package model

import "time"

// Submission is one finalized, immutable scoring event for one user on
// one quiz. Score is a percentage with two decimal places.
type Submission struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	QuizID        int64     `json:"quiz_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Score         float64   `json:"score"`
	TotalMarks    int       `json:"total_marks"`
	ObtainedMarks int       `json:"obtained_marks"`
}

// SubmissionDetail is a submission with its per-question answers.
type SubmissionDetail struct {
	Submission
	Answers []Answer `json:"answers"`
}

// Answer records the selected option for one question within a submission.
// At most one answer may exist per (user, question) across all of the
// user's submissions.
type Answer struct {
	ID             int64        `json:"id"`
	SubmissionID   int64        `json:"submission_id"`
	QuestionID     int64        `json:"question_id"`
	UserID         int64        `json:"user_id"`
	SelectedAnswer AnswerLetter `json:"selected_answer"`
	IsCorrect      bool         `json:"is_correct"`
	MarksObtained  int          `json:"marks_obtained"`
}

// AnswerInput is one submitted (question, selected option) pair.
type AnswerInput struct {
	QuestionID     int64  `json:"question_id" binding:"required,min=1"`
	SelectedAnswer string `json:"selected_answer" binding:"required,oneof=A B C D"`
}

// SubmitQuizRequest is the payload for submitting quiz answers.
type SubmitQuizRequest struct {
	QuizID  int64         `json:"quiz_id" binding:"required,min=1"`
	Answers []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}
