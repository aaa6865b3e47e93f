package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gradhunt/gradboard-backend/internal/model"
)

const jobColumns = `id, title, company, logo_url, country, location, description, apply_link, status, passout, type, created_at, updated_at`

// JobFilter is the set of optional constraints for a listing query.
// Privileged toggles the visibility rule: public callers are always pinned to
// published listings; privileged callers may filter by any status string.
type JobFilter struct {
	Query      string
	Role       string
	Location   string
	Kind       string
	Passout    *int
	Status     string
	Privileged bool
}

// JobRepository handles listing data access.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// likePattern escapes LIKE metacharacters and wraps the term so a
// case-insensitive literal substring match is always performed. Without the
// escaping a search for "50%" would turn into a wildcard.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// buildWhere translates a JobFilter into a WHERE clause with positional args.
// The free-text term is OR-composed across five columns; every other
// constraint is AND-composed.
func buildWhere(f JobFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !f.Privileged {
		conds = append(conds, "status = "+arg(string(model.JobStatusPublished)))
	} else if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}

	if f.Query != "" {
		p := arg(likePattern(f.Query))
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE %[1]s OR company ILIKE %[1]s OR location ILIKE %[1]s OR country ILIKE %[1]s OR description ILIKE %[1]s)", p))
	}
	if f.Role != "" {
		conds = append(conds, "title ILIKE "+arg(likePattern(f.Role)))
	}
	if f.Location != "" {
		conds = append(conds, "location ILIKE "+arg(likePattern(f.Location)))
	}
	if f.Kind != "" {
		conds = append(conds, "type = "+arg(f.Kind))
	}
	if f.Passout != nil {
		conds = append(conds, "passout = "+arg(*f.Passout))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListPaginated retrieves listings matching the filter, newest first, plus
// the total match count for pagination metadata.
func (r *JobRepository) ListPaginated(ctx context.Context, f JobFilter, limit, offset int) ([]model.Job, int, error) {
	where, args := buildWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.LogoURL, &j.Country, &j.Location,
			&j.Description, &j.ApplyLink, &j.Status, &j.Passout, &j.Kind, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

// GetByID retrieves a single listing.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	j := &model.Job{}
	err := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.Title, &j.Company, &j.LogoURL, &j.Country, &j.Location,
			&j.Description, &j.ApplyLink, &j.Status, &j.Passout, &j.Kind, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Create inserts a new listing. Timestamps are assigned by the database,
// never taken from the payload.
func (r *JobRepository) Create(ctx context.Context, j *model.Job) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, logo_url, country, location, description, apply_link, status, passout, type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		j.Title, j.Company, j.LogoURL, j.Country, j.Location, j.Description,
		j.ApplyLink, j.Status, j.Passout, j.Kind,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

// Update applies a partial column patch and refreshes updated_at. Returns
// pgx.ErrNoRows when the id does not exist.
func (r *JobRepository) Update(ctx context.Context, id uuid.UUID, p model.JobPatch) (*model.Job, error) {
	sets := []string{}
	args := []interface{}{}

	set := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Company != nil {
		set("company", *p.Company)
	}
	if p.LogoURL != nil {
		set("logo_url", *p.LogoURL)
	}
	if p.Country != nil {
		set("country", *p.Country)
	}
	if p.Location != nil {
		set("location", *p.Location)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.ApplyLink != nil {
		set("apply_link", *p.ApplyLink)
	}
	if p.Status != nil {
		set("status", *p.Status)
	}
	if p.Passout != nil {
		set("passout", *p.Passout)
	}
	if p.Kind != nil {
		set("type", *p.Kind)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := `UPDATE jobs SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + jobColumns

	j := &model.Job{}
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&j.ID, &j.Title, &j.Company, &j.LogoURL, &j.Country, &j.Location,
			&j.Description, &j.ApplyLink, &j.Status, &j.Passout, &j.Kind, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Delete removes a listing. The associated logo object is intentionally left
// in place; signed URLs for it simply stop being minted.
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return err
}
