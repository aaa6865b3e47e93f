package model

import "time"

// SiteSetting represents a key-value pair for site-wide configurable text
// (contact email, footer text, policy bodies).
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSettingsRequest is the payload for bulk upserting settings. Values
// may be strings or numbers; anything else is dropped before the store.
type UpdateSettingsRequest struct {
	Settings map[string]interface{} `json:"settings" binding:"required"`
}
