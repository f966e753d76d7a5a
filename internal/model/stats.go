package model

// QuizStats is the aggregate view over all submissions of one quiz.
// Recomputed on demand, never incrementally maintained.
type QuizStats struct {
	QuizID        int64   `json:"quiz_id"`
	QuizTitle     string  `json:"quiz_title"`
	TotalAttempts int     `json:"total_attempts"`
	UniqueUsers   int     `json:"unique_users,omitempty"`
	AverageScore  float64 `json:"average_score,omitempty"`
	HighestScore  float64 `json:"highest_score,omitempty"`
	LowestScore   float64 `json:"lowest_score,omitempty"`
	PassedCount   int     `json:"passed_count,omitempty"`
	FailedCount   int     `json:"failed_count,omitempty"`
	PassRate      float64 `json:"pass_rate,omitempty"`
	Message       string  `json:"message,omitempty"`
}
