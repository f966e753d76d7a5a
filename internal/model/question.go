package model

import "time"

// AnswerLetter identifies one of the four options of a question.
type AnswerLetter string

const (
	AnswerA AnswerLetter = "A"
	AnswerB AnswerLetter = "B"
	AnswerC AnswerLetter = "C"
	AnswerD AnswerLetter = "D"
)

// Valid reports whether the letter is one of A, B, C or D.
func (a AnswerLetter) Valid() bool {
	switch a {
	case AnswerA, AnswerB, AnswerC, AnswerD:
		return true
	}
	return false
}

// Question is a four-option question belonging to a quiz. Only active
// questions participate in scoring and totals.
type Question struct {
	ID            int64        `json:"id"`
	QuizID        int64        `json:"quiz_id"`
	QuestionText  string       `json:"question_text"`
	OptionA       string       `json:"option_a"`
	OptionB       string       `json:"option_b"`
	OptionC       string       `json:"option_c"`
	OptionD       string       `json:"option_d"`
	CorrectAnswer AnswerLetter `json:"correct_answer"`
	Marks         int          `json:"marks"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// QuestionPublic is a question without the correct answer, served to takers.
type QuestionPublic struct {
	ID           int64  `json:"id"`
	QuizID       int64  `json:"quiz_id"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	Marks        int    `json:"marks"`
}

// CreateQuestionRequest is the payload for adding a question to a quiz.
type CreateQuestionRequest struct {
	QuestionText  string `json:"question_text" binding:"required,min=1,max=5000"`
	OptionA       string `json:"option_a" binding:"required,max=500"`
	OptionB       string `json:"option_b" binding:"required,max=500"`
	OptionC       string `json:"option_c" binding:"required,max=500"`
	OptionD       string `json:"option_d" binding:"required,max=500"`
	CorrectAnswer string `json:"correct_answer" binding:"required,oneof=A B C D"`
	Marks         int    `json:"marks" binding:"required,min=1"`
}

// UpdateQuestionRequest is the payload for updating a question.
type UpdateQuestionRequest struct {
	QuestionText  string  `json:"question_text" binding:"omitempty,min=1,max=5000"`
	OptionA       *string `json:"option_a" binding:"omitempty,max=500"`
	OptionB       *string `json:"option_b" binding:"omitempty,max=500"`
	OptionC       *string `json:"option_c" binding:"omitempty,max=500"`
	OptionD       *string `json:"option_d" binding:"omitempty,max=500"`
	CorrectAnswer string  `json:"correct_answer" binding:"omitempty,oneof=A B C D"`
	Marks         *int    `json:"marks" binding:"omitempty,min=1"`
	IsActive      *bool   `json:"is_active" binding:"omitempty"`
}
