package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizKey returns the cache key for a single quiz with its active questions.
func (r *CacheKeyStruct) QuizKey(quizID int64) string {
	return fmt.Sprintf("quiz:%d", quizID)
}

// ActiveQuizListKey returns the cache key for the public active quiz list.
func (r *CacheKeyStruct) ActiveQuizListKey() string {
	return "quiz_list:active"
}

// ActiveCategoriesKey returns the cache key for the public active category list.
func (r *CacheKeyStruct) ActiveCategoriesKey() string {
	return "categories:active"
}

// UserSubmissionsKey returns the cache key for a user's submission list.
func (r *CacheKeyStruct) UserSubmissionsKey(userID int64) string {
	return fmt.Sprintf("user_submissions:%d", userID)
}

// QuizStatsKey returns the cache key for a quiz's aggregate statistics.
func (r *CacheKeyStruct) QuizStatsKey(quizID int64) string {
	return fmt.Sprintf("quiz_stats:%d", quizID)
}

var CacheKey = NewCacheKeyStruct()
