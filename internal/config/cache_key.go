package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key holding a student's active token ID
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// StudentAnalysisKey returns the cache key for a student's computed analysis
func (r *CacheKeyStruct) StudentAnalysisKey(studentID int) string {
	return fmt.Sprintf("student:%d:analysis", studentID)
}

// StudentAnalysisChannel returns the Redis PubSub channel for analysis updates
func (r *CacheKeyStruct) StudentAnalysisChannel(studentID int) string {
	return fmt.Sprintf("student:%d:analysis:events", studentID)
}

// AnalysisSettingsKey caches the analyzer thresholds read from app_settings.
func (r *CacheKeyStruct) AnalysisSettingsKey() string {
	return "settings:analysis"
}

// RateLimitKey returns the counter key for a client within a fixed window.
func (r *CacheKeyStruct) RateLimitKey(scope, clientIP string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, clientIP, window)
}

var CacheKey = NewCacheKeyStruct()
