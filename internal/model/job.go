package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus enumerates the moderation states of a listing.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusPublished JobStatus = "published"
	JobStatusRejected  JobStatus = "rejected"
)

// JobKind enumerates the posting kinds.
type JobKind string

const (
	JobKindJob        JobKind = "job"
	JobKindInternship JobKind = "internship"
)

// NormalizeKind lower-cases a raw kind value and validates it against the
// enum. Unknown values yield (nil, false) so the field is dropped rather than
// stored verbatim.
func NormalizeKind(raw string) (*JobKind, bool) {
	k := JobKind(strings.ToLower(raw))
	if k == JobKindJob || k == JobKindInternship {
		return &k, true
	}
	return nil, false
}

// Job represents one job or internship listing.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	LogoURL     *string   `json:"logo_url"`
	Country     string    `json:"country"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	ApplyLink   string    `json:"apply_link"`
	Status      JobStatus `json:"status"`
	Passout     *int      `json:"passout,omitempty"`
	Kind        *JobKind  `json:"type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GradYear is a graduation-year field as submitted by clients, who may send
// it as a number, a numeric string, an empty string, or null. Anything that
// does not parse to an integer collapses to "absent" instead of an error.
type GradYear struct {
	Value int
	Valid bool
}

// UnmarshalJSON implements the lenient coercion. It never returns an error
// for unusable values; the field is simply treated as not supplied.
func (g *GradYear) UnmarshalJSON(data []byte) error {
	g.Value, g.Valid = 0, false

	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		g.Value, g.Valid = n, true
		return nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	g.Value, g.Valid = n, true
	return nil
}

// Ptr returns the year as a nullable pointer for persistence.
func (g GradYear) Ptr() *int {
	if !g.Valid {
		return nil
	}
	v := g.Value
	return &v
}

// CreateJobRequest is the payload for submitting a listing. Status is only
// honored for privileged callers; anonymous submissions are forced to
// pending regardless.
type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required,min=2,max=255"`
	Company     string   `json:"company" binding:"required,min=1,max=255"`
	LogoURL     *string  `json:"logo_url" binding:"omitempty,max=1024"`
	Country     string   `json:"country" binding:"required,max=128"`
	Location    string   `json:"location" binding:"required,max=255"`
	Description string   `json:"description" binding:"required"`
	ApplyLink   string   `json:"apply_link" binding:"required,url,max=1024"`
	Status      string   `json:"status" binding:"omitempty,oneof=pending published rejected"`
	Passout     GradYear `json:"passout"`
	Kind        string   `json:"type"`
}

// UpdateJobRequest is the payload for privileged listing edits, including
// moderation (status transitions). Absent fields are left unchanged.
type UpdateJobRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=2,max=255"`
	Company     *string  `json:"company" binding:"omitempty,min=1,max=255"`
	LogoURL     *string  `json:"logo_url" binding:"omitempty,max=1024"`
	Country     *string  `json:"country" binding:"omitempty,max=128"`
	Location    *string  `json:"location" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty"`
	ApplyLink   *string  `json:"apply_link" binding:"omitempty,url,max=1024"`
	Status      *string  `json:"status" binding:"omitempty,oneof=pending published rejected"`
	Passout     GradYear `json:"passout"`
	Kind        *string  `json:"type"`
}

// JobPatch is the normalized set of column updates derived from an
// UpdateJobRequest. Nil fields are not touched; updated_at always refreshes.
type JobPatch struct {
	Title       *string
	Company     *string
	LogoURL     *string
	Country     *string
	Location    *string
	Description *string
	ApplyLink   *string
	Status      *JobStatus
	Passout     *int
	Kind        *JobKind
}

// JobListQuery carries the optional search/filter parameters of a list call.
type JobListQuery struct {
	Q        string `form:"q"`
	Role     string `form:"role"`
	Location string `form:"location"`
	Kind     string `form:"type"`
	Passout  *int   `form:"passout"`
	Status   string `form:"status"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	Offset   *int   `form:"offset"`
}
