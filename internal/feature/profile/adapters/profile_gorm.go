// Package adapters persists profiles with gorm.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"devsocial_backend/internal/feature/profile/domain/entity"
	"devsocial_backend/internal/feature/profile/usecase"
)

// ProfileModel is the profiles table. Sub-collections are stored as JSON columns.
type ProfileModel struct {
	ID             string              `gorm:"primaryKey;size:36"`
	UserID         string              `gorm:"uniqueIndex;size:36;not null"`
	Company        string              `gorm:"size:255"`
	Website        string              `gorm:"size:255"`
	Location       string              `gorm:"size:255"`
	Bio            string              `gorm:"type:text"`
	Status         string              `gorm:"size:255"`
	GitHubUsername string              `gorm:"column:github_username;size:255"`
	Skills         []string            `gorm:"type:text;serializer:json"`
	Social         entity.Social       `gorm:"type:text;serializer:json"`
	Experience     []entity.Experience `gorm:"type:text;serializer:json"`
	Education      []entity.Education  `gorm:"type:text;serializer:json"`
	Date           time.Time           `gorm:"not null"`
	UpdatedAt      time.Time
}

// TableName pins the table name used by migrations and raw queries.
func (ProfileModel) TableName() string { return "profiles" }

// owner is the subset of a users row shown on a profile.
type owner struct {
	ID     string
	Name   string
	Avatar string
}

type profileGorm struct {
	db *gorm.DB
}

var _ usecase.ProfileRepository = (*profileGorm)(nil)

// NewProfileRepository returns a gorm-backed ProfileRepository.
func NewProfileRepository(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

// FindByUserID returns usecase.ErrProfileNotFound when the user has no profile.
func (r *profileGorm) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var m ProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, err
	}
	out, err := r.withOwners(ctx, []ProfileModel{m})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List returns all profiles, oldest first.
func (r *profileGorm) List(ctx context.Context) ([]entity.Profile, error) {
	var ms []ProfileModel
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.withOwners(ctx, ms)
}

// Create inserts a new profile and refreshes p.User.
func (r *profileGorm) Create(ctx context.Context, p *entity.Profile) error {
	m := toModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	return r.refreshOwner(ctx, p, m)
}

// Save replaces an existing document and refreshes p.User. It never inserts:
// a profile deleted since it was loaded yields usecase.ErrProfileNotFound.
func (r *profileGorm) Save(ctx context.Context, p *entity.Profile) error {
	m := toModel(p)
	res := r.db.WithContext(ctx).Model(&ProfileModel{}).Where("id = ?", m.ID).Select("*").Omit("id").Updates(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProfileNotFound
	}
	return r.refreshOwner(ctx, p, m)
}

func (r *profileGorm) refreshOwner(ctx context.Context, p *entity.Profile, m ProfileModel) error {
	out, err := r.withOwners(ctx, []ProfileModel{m})
	if err != nil {
		return err
	}
	p.User = out[0].User
	return nil
}

// DeleteByUserID removes the user's profile if it exists.
func (r *profileGorm) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&ProfileModel{}).Error
}

// withOwners converts models to entities and attaches each owner's name and avatar.
func (r *profileGorm) withOwners(ctx context.Context, ms []ProfileModel) ([]entity.Profile, error) {
	out := make([]entity.Profile, 0, len(ms))
	if len(ms) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.UserID)
	}
	var rows []owner
	if err := r.db.WithContext(ctx).Table("users").Select("id, name, avatar").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]owner, len(rows))
	for _, o := range rows {
		byID[o.ID] = o
	}

	for _, m := range ms {
		p := toEntity(m)
		if o, ok := byID[m.UserID]; ok {
			p.User.Name = o.Name
			p.User.Avatar = o.Avatar
		}
		out = append(out, p)
	}
	return out, nil
}

func toModel(p *entity.Profile) ProfileModel {
	return ProfileModel{
		ID:             p.ID,
		UserID:         p.User.ID,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GitHubUsername: p.GitHubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		Experience:     p.Experience,
		Education:      p.Education,
		Date:           p.Date,
	}
}

func toEntity(m ProfileModel) entity.Profile {
	p := entity.Profile{
		ID:             m.ID,
		User:           entity.Owner{ID: m.UserID},
		Company:        m.Company,
		Website:        m.Website,
		Location:       m.Location,
		Bio:            m.Bio,
		Status:         m.Status,
		GitHubUsername: m.GitHubUsername,
		Skills:         m.Skills,
		Social:         m.Social,
		Experience:     m.Experience,
		Education:      m.Education,
		Date:           m.Date,
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []entity.Experience{}
	}
	if p.Education == nil {
		p.Education = []entity.Education{}
	}
	return p
}
