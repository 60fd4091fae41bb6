package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "devsocial_backend/internal/feature/auth/adapters"
	authentity "devsocial_backend/internal/feature/auth/domain/entity"
	"devsocial_backend/internal/feature/profile/adapters"
	"devsocial_backend/internal/feature/profile/domain/entity"
	"devsocial_backend/internal/feature/profile/usecase"
)

type noRepos struct{}

func (noRepos) GetRepos(context.Context, string) ([]entity.Repo, error) {
	return nil, usecase.ErrGitHubUserNotFound
}

// TestExperienceLifecycle は永続化を挟んだ経歴の追加と削除を検証します。
func TestExperienceLifecycle(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&authentity.User{}, &adapters.ProfileModel{}))

	users := authadapters.NewUserRepository(db)
	user := &authentity.User{ID: uuid.NewString(), Name: "Jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, users.Create(context.Background(), user))

	uc := usecase.NewProfileUsecase(adapters.NewProfileRepository(db), users, noRepos{})
	ctx := context.Background()

	_, err = uc.AddExperience(ctx, user.ID, usecase.ExperienceInput{Title: "Dev", Company: "Acme", From: "2020-01-01"})
	require.ErrorIs(t, err, usecase.ErrProfileNotFound)

	status := "Developer"
	_, err = uc.Upsert(ctx, user.ID, entity.ProfilePatch{Status: &status})
	require.NoError(t, err)

	_, err = uc.AddExperience(ctx, user.ID, usecase.ExperienceInput{Title: "Dev", Company: "Acme", From: "2020-01-01"})
	require.NoError(t, err)
	p, err := uc.AddExperience(ctx, user.ID, usecase.ExperienceInput{Title: "Lead", Company: "Acme", From: "2022-01-01", Current: true})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Jane", p.User.Name)

	stored, err := uc.GetOwn(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Experience, 2)
	assert.Equal(t, "Lead", stored.Experience[0].Title)
	assert.True(t, stored.Experience[1].From.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))

	leadID := stored.Experience[0].ID
	_, err = uc.RemoveExperience(ctx, user.ID, leadID)
	require.NoError(t, err)
	_, err = uc.RemoveExperience(ctx, user.ID, leadID)
	require.NoError(t, err)

	stored, err = uc.GetOwn(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Experience, 1)
	assert.Equal(t, "Dev", stored.Experience[0].Title)

	require.NoError(t, uc.DeleteAccount(ctx, user.ID))
	_, err = uc.GetOwn(ctx, user.ID)
	assert.ErrorIs(t, err, usecase.ErrProfileNotFound)
	_, err = users.FindByID(ctx, user.ID)
	assert.Error(t, err, "the user is removed with the profile")
}
