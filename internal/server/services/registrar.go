// Package services contains the server-side business logic: profile
// registration and the token-gated contact exchange.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/qrcontact/internal/common"
	"github.com/dmitrijs2005/qrcontact/internal/randx"
	"github.com/dmitrijs2005/qrcontact/internal/server/directory"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

// RegistrationForm is the field set accepted at profile creation. ID is
// optional; when empty an id is generated.
type RegistrationForm struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Company string
	Title   string
	Website string
}

// RegistrarService creates profiles: validates required fields, mints the
// id and the secret token, and persists the result in the directory.
type RegistrarService struct {
	store directory.Store
	now   func() time.Time
}

func NewRegistrarService(store directory.Store) *RegistrarService {
	return &RegistrarService{store: store, now: time.Now}
}

// Register validates the form, fills in generated fields and persists the
// profile. The returned Profile includes the secret token; this is the only
// point where the token is handed back to the owning caller.
func (s *RegistrarService) Register(ctx context.Context, form *RegistrationForm) (*models.Profile, error) {

	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}

	id := strings.TrimSpace(form.ID)
	if id == "" {
		generated, err := randx.MakeProfileID()
		if err != nil {
			return nil, fmt.Errorf("id generation error: %w", err)
		}
		id = generated
	}

	token, err := randx.MakeToken()
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	profile := &models.Profile{
		ID:        id,
		Token:     token,
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(form.Phone),
		Company:   strings.TrimSpace(form.Company),
		Title:     strings.TrimSpace(form.Title),
		Website:   strings.TrimSpace(form.Website),
		CreatedAt: s.now(),
		ScanCount: 0,
	}

	if err := s.store.Put(ctx, profile); err != nil {
		return nil, fmt.Errorf("error storing profile: %w", err)
	}

	return profile, nil
}
