package service

import (
	"context"

	"github.com/gradhunt/gradboard-backend/internal/model"
)

// AdminReader is the lookup surface for admin accounts.
type AdminReader interface {
	GetByID(ctx context.Context, id int) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// AdminService exposes admin account lookups to the auth handler.
type AdminService struct {
	admins AdminReader
}

// NewAdminService creates a new AdminService.
func NewAdminService(admins AdminReader) *AdminService {
	return &AdminService{admins: admins}
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.admins.GetByID(ctx, id)
}

// GetByEmail retrieves an admin by email.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return s.admins.GetByEmail(ctx, email)
}
