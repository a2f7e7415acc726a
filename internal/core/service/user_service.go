package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// UserService manages operator accounts. Every call requires an admin actor.
type UserService struct {
	repo        ports.UserRepository
	activity    ports.ActivityPublisher
	defaultHash string
	log         zerolog.Logger
}

// NewUserService returns a UserService. defaultHash is assigned to accounts
// created without a password.
func NewUserService(repo ports.UserRepository, activity ports.ActivityPublisher, defaultHash string, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, activity: activity, defaultHash: defaultHash, log: log}
}

func (s *UserService) List(ctx context.Context, actor ports.Actor) ([]*domain.User, error) {
	if !actor.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.User, error) {
	if !actor.Role.CanManageUsers() && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor ports.Actor, in ports.UserInput) (*domain.User, error) {
	if !actor.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	if err := validateUser(in.Name, in.Role, in.Status); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	hash := s.defaultHash
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return nil, domain.Invalid("Password must be at least 6 characters")
		}
		h, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       in.Status,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("actor", actor.ID).Msg("user created")
	publish(s.activity, domain.ActivityEvent{
		Entity:   domain.EntityUser,
		EntityID: created.ID,
		Action:   "created",
		ActorID:  actor.ID,
		Summary:  fmt.Sprintf("User %s was added", created.Name),
	})
	return created, nil
}

// Update merges patch over the stored user. Email uniqueness is re-checked
// only when the email changes.
func (s *UserService) Update(ctx context.Context, actor ports.Actor, id string, patch ports.UserPatch) (*domain.User, error) {
	if !actor.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	if patch.Role != nil && actor.ID == id && actor.Role == domain.RoleAdmin && *patch.Role != domain.RoleAdmin {
		return nil, domain.ErrSelfDemote
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *patch.Email); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}
	if err := validateUser(user.Name, user.Role, user.Status); err != nil {
		return nil, err
	}
	if patch.Password != nil && *patch.Password != "" {
		if len(*patch.Password) < minPasswordLen {
			return nil, domain.Invalid("Password must be at least 6 characters")
		}
		h, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = h
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	publish(s.activity, domain.ActivityEvent{
		Entity:   domain.EntityUser,
		EntityID: updated.ID,
		Action:   "updated",
		ActorID:  actor.ID,
		Summary:  fmt.Sprintf("User %s was updated", updated.Name),
	})
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if !actor.Role.CanManageUsers() {
		return domain.ErrForbidden
	}
	if actor.ID == id {
		return domain.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("actor", actor.ID).Msg("user deleted")
	publish(s.activity, domain.ActivityEvent{
		Entity:   domain.EntityUser,
		EntityID: id,
		Action:   "deleted",
		ActorID:  actor.ID,
		Summary:  fmt.Sprintf("User %s was removed", id),
	})
	return nil
}

// UpdateProfile changes the actor's own display name. Role and email are
// not editable from the profile.
func (s *UserService) UpdateProfile(ctx context.Context, actor ports.Actor, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("Name is required")
	}
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	return s.repo.Update(ctx, user)
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrEmailInUse
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

func validateUser(name string, role domain.Role, status domain.UserStatus) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalid("Name is required")
	}
	if !role.Valid() {
		return domain.Invalid("Invalid role")
	}
	if !status.Valid() {
		return domain.Invalid("Invalid status")
	}
	return nil
}
