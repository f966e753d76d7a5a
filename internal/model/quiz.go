package model

import "time"

// Quiz is a scored assessment belonging to a category.
type Quiz struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CategoryID   int64     `json:"category_id"`
	TimeLimit    int       `json:"time_limit"` // minutes
	PassingScore int       `json:"passing_score"`
	IsActive     bool      `json:"is_active"`
	CreatedBy    *int64    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// QuizDetail is a quiz with its nested active questions, as cached and
// served on the read path.
type QuizDetail struct {
	Quiz
	Questions []Question `json:"questions"`
}

// PublicView strips the correct answers from the nested questions so the
// detail can be served to quiz takers.
func (d *QuizDetail) PublicView() *QuizDetailPublic {
	questions := make([]QuestionPublic, len(d.Questions))
	for i, q := range d.Questions {
		questions[i] = QuestionPublic{
			ID:           q.ID,
			QuizID:       q.QuizID,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
			Marks:        q.Marks,
		}
	}
	return &QuizDetailPublic{Quiz: d.Quiz, Questions: questions}
}

// QuizDetailPublic is the taker-facing quiz detail without answer keys.
type QuizDetailPublic struct {
	Quiz
	Questions []QuestionPublic `json:"questions"`
}

// QuizListItem is the compact quiz representation used in listings.
type QuizListItem struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	CategoryID    int64     `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	TimeLimit     int       `json:"time_limit"`
	PassingScore  int       `json:"passing_score"`
	QuestionCount int       `json:"question_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateQuizRequest is the payload for creating a quiz.
type CreateQuizRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=200"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
	CategoryID   int64  `json:"category_id" binding:"required,min=1"`
	TimeLimit    int    `json:"time_limit" binding:"required,min=1"`
	PassingScore int    `json:"passing_score" binding:"min=0,max=100"`
}

// UpdateQuizRequest is the payload for updating a quiz.
type UpdateQuizRequest struct {
	Title        string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
	CategoryID   *int64  `json:"category_id" binding:"omitempty,min=1"`
	TimeLimit    *int    `json:"time_limit" binding:"omitempty,min=1"`
	PassingScore *int    `json:"passing_score" binding:"omitempty,min=0,max=100"`
	IsActive     *bool   `json:"is_active" binding:"omitempty"`
}
