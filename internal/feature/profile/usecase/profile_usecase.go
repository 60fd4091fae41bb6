package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	authentity "devsocial_backend/internal/feature/auth/domain/entity"
	authusecase "devsocial_backend/internal/feature/auth/usecase"
	"devsocial_backend/internal/feature/profile/domain/entity"
	"devsocial_backend/internal/shared/apperror"
	"devsocial_backend/internal/shared/validation"
)

// ProfileRepository persists profiles.
// Following Go convention: interfaces are defined by the consumer.
type ProfileRepository interface {
	// FindByUserID returns ErrProfileNotFound when the user has no profile.
	FindByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	List(ctx context.Context) ([]entity.Profile, error)
	// Create inserts p and refreshes p.User from the users table.
	Create(ctx context.Context, p *entity.Profile) error
	// Save replaces an existing profile and refreshes p.User.
	// It returns ErrProfileNotFound if the profile was deleted meanwhile.
	Save(ctx context.Context, p *entity.Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// UserStore looks up and removes accounts.
type UserStore interface {
	// FindByID returns authusecase.ErrUserNotFound when the account is gone.
	FindByID(ctx context.Context, id string) (*authentity.User, error)
	Delete(ctx context.Context, id string) error
}

// RepoFinder lists the public repositories of a GitHub user.
type RepoFinder interface {
	GetRepos(ctx context.Context, username string) ([]entity.Repo, error)
}

type profileUsecase struct {
	profiles ProfileRepository
	users    UserStore
	repos    RepoFinder
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewProfileUsecase wires the profile operations to their stores.
func NewProfileUsecase(profiles ProfileRepository, users UserStore, repos RepoFinder) *profileUsecase {
	return &profileUsecase{
		profiles: profiles,
		users:    users,
		repos:    repos,
		validate: validation.NewValidator(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// GetOwn returns the profile of the authenticated user.
func (u *profileUsecase) GetOwn(ctx context.Context, userID string) (*entity.Profile, error) {
	return u.load(ctx, userID)
}

// GetByUser returns the profile of any user. A malformed id is reported as not found.
func (u *profileUsecase) GetByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrProfileNotFound
	}
	return u.load(ctx, userID)
}

// List returns every profile.
func (u *profileUsecase) List(ctx context.Context) ([]entity.Profile, error) {
	profiles, err := u.profiles.List(ctx)
	if err != nil {
		return nil, apperror.Storage(ctx, "profile.list", err)
	}
	return profiles, nil
}

// Upsert creates the user's profile if absent and overwrites only the supplied fields.
func (u *profileUsecase) Upsert(ctx context.Context, userID string, patch entity.ProfilePatch) (*entity.Profile, error) {
	p, err := u.load(ctx, userID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return u.create(ctx, userID, patch)
	case err != nil:
		return nil, err
	}

	patch.Apply(p)
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// create starts a profile for an existing account. A token for a deleted account is not authorized.
func (u *profileUsecase) create(ctx context.Context, userID string, patch entity.ProfilePatch) (*entity.Profile, error) {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, apperror.Storage(ctx, "user.find_by_id", err)
	}

	p := entity.NewProfile(u.newID(), userID, u.now())
	patch.Apply(p)
	if err := u.profiles.Create(ctx, p); err != nil {
		return nil, apperror.Storage(ctx, "profile.create", err)
	}
	return p, nil
}

// AddExperience validates in and prepends it to the user's experience.
func (u *profileUsecase) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*entity.Profile, error) {
	if err := validation.Struct(u.validate, in); err != nil {
		return nil, err
	}
	p, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.AddExperience(in.toEntity(u.newID()))
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience drops the entry with expID. The profile is saved even when nothing matched.
func (u *profileUsecase) RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error) {
	p, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.RemoveExperience(expID)
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddEducation validates in and prepends it to the user's education.
func (u *profileUsecase) AddEducation(ctx context.Context, userID string, in EducationInput) (*entity.Profile, error) {
	if err := validation.Struct(u.validate, in); err != nil {
		return nil, err
	}
	p, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.AddEducation(in.toEntity(u.newID()))
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveEducation drops the entry with eduID. The profile is saved even when nothing matched.
func (u *profileUsecase) RemoveEducation(ctx context.Context, userID, eduID string) (*entity.Profile, error) {
	p, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.RemoveEducation(eduID)
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteAccount removes the profile and then the user. Posts are left in place.
func (u *profileUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := u.profiles.DeleteByUserID(ctx, userID); err != nil {
		return apperror.Storage(ctx, "profile.delete", err)
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		return apperror.Storage(ctx, "user.delete", err)
	}
	return nil
}

// GitHubRepos returns the most recently created public repositories of username.
func (u *profileUsecase) GitHubRepos(ctx context.Context, username string) ([]entity.Repo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrGitHubUserNotFound
	}
	repos, err := u.repos.GetRepos(ctx, username)
	if err != nil {
		if errors.Is(err, ErrGitHubUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("github repos for %q: %w", username, err)
	}
	return repos, nil
}

func (u *profileUsecase) load(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		return nil, apperror.Storage(ctx, "profile.find", err)
	}
	return p, nil
}

func (u *profileUsecase) save(ctx context.Context, p *entity.Profile) error {
	if err := u.profiles.Save(ctx, p); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return err
		}
		return apperror.Storage(ctx, "profile.save", err)
	}
	return nil
}
