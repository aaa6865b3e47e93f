package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// OAuthStateKey returns the cache key for a pending OAuth login state nonce.
func (r *CacheKeyStruct) OAuthStateKey(state string) string {
	return fmt.Sprintf("oauth:state:%s", state)
}

// PublicSettingsKey returns the cache key for the public site-settings map.
func (r *CacheKeyStruct) PublicSettingsKey() string {
	return "settings:public"
}

var CacheKey = NewCacheKeyStruct()
