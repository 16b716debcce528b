package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ClassDefinitionKey returns the cache key for a class definition.
func (r *CacheKeyStruct) ClassDefinitionKey(classID int) string {
	return fmt.Sprintf("class:%d:definition", classID)
}

// RosterChannel returns the Redis PubSub channel for a class session's
// live check-in/check-out events.
func (r *CacheKeyStruct) RosterChannel(classID int, date string) string {
	return fmt.Sprintf("class:%d:roster:%s", classID, date)
}

var CacheKey = NewCacheKeyStruct()
