package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%golang%", likePattern("golang"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%snake\_case%`, likePattern("snake_case"))
	assert.Equal(t, `%back\\slash%`, likePattern(`back\slash`))
}

func TestBuildWherePinsPublicToPublished(t *testing.T) {
	where, args := buildWhere(JobFilter{})
	assert.Equal(t, " WHERE status = $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, "published", args[0])

	// A public caller's explicit status filter is ignored.
	where, args = buildWhere(JobFilter{Status: "pending"})
	assert.Equal(t, " WHERE status = $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, "published", args[0])
}

func TestBuildWherePrivilegedStatus(t *testing.T) {
	// No status filter: privileged callers see everything.
	where, args := buildWhere(JobFilter{Privileged: true})
	assert.Empty(t, where)
	assert.Empty(t, args)

	// Explicit status passes through.
	where, args = buildWhere(JobFilter{Privileged: true, Status: "pending"})
	assert.Equal(t, " WHERE status = $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, "pending", args[0])
}

func TestBuildWhereFreeTextSearch(t *testing.T) {
	where, args := buildWhere(JobFilter{Privileged: true, Query: "engineer"})

	// One placeholder reused across all five OR'd columns.
	assert.Contains(t, where, "title ILIKE $1")
	assert.Contains(t, where, "company ILIKE $1")
	assert.Contains(t, where, "location ILIKE $1")
	assert.Contains(t, where, "country ILIKE $1")
	assert.Contains(t, where, "description ILIKE $1")
	require.Len(t, args, 1)
	assert.Equal(t, "%engineer%", args[0])
}

func TestBuildWhereComposition(t *testing.T) {
	passout := 2026
	where, args := buildWhere(JobFilter{
		Role:     "backend",
		Location: "bengaluru",
		Kind:     "internship",
		Passout:  &passout,
	})

	assert.Equal(t,
		" WHERE status = $1 AND title ILIKE $2 AND location ILIKE $3 AND type = $4 AND passout = $5",
		where)
	require.Len(t, args, 5)
	assert.Equal(t, "published", args[0])
	assert.Equal(t, "%backend%", args[1])
	assert.Equal(t, "%bengaluru%", args[2])
	assert.Equal(t, "internship", args[3])
	assert.Equal(t, 2026, args[4])
}
