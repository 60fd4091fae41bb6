// Package adapters persists posts with gorm.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"devsocial_backend/internal/feature/post/domain"
	"devsocial_backend/internal/feature/post/domain/entity"
	"devsocial_backend/internal/feature/post/usecase"
)

// PostModel is the posts table. Likes and comments are stored as JSON columns.
type PostModel struct {
	ID        string           `gorm:"primaryKey;size:36"`
	UserID    string           `gorm:"index;size:36;not null"`
	Text      string           `gorm:"type:text;not null"`
	Name      string           `gorm:"size:255"`
	Avatar    string           `gorm:"size:512"`
	Likes     []entity.Like    `gorm:"type:text;serializer:json"`
	Comments  []entity.Comment `gorm:"type:text;serializer:json"`
	Date      time.Time        `gorm:"index;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name used by migrations.
func (PostModel) TableName() string { return "posts" }

type postGorm struct {
	db *gorm.DB
}

var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostRepository returns a gorm-backed PostRepository.
func NewPostRepository(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

func (r *postGorm) Create(ctx context.Context, p *entity.Post) error {
	m := toModel(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

// FindByID returns domain.ErrPostNotFound when no post has the id.
func (r *postGorm) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	var m PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	p := toEntity(m)
	return &p, nil
}

// List returns every post, most recent first.
func (r *postGorm) List(ctx context.Context) ([]entity.Post, error) {
	var ms []PostModel
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Post, 0, len(ms))
	for _, m := range ms {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Save replaces the whole document. It never inserts: a post deleted since it
// was loaded yields domain.ErrPostNotFound.
func (r *postGorm) Save(ctx context.Context, p *entity.Post) error {
	m := toModel(p)
	res := r.db.WithContext(ctx).Model(&PostModel{}).Where("id = ?", m.ID).Select("*").Omit("id").Updates(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *postGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&PostModel{}).Error
}

func toModel(p *entity.Post) PostModel {
	return PostModel{
		ID:       p.ID,
		UserID:   p.User,
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    p.Likes,
		Comments: p.Comments,
		Date:     p.Date,
	}
}

func toEntity(m PostModel) entity.Post {
	p := entity.Post{
		ID:       m.ID,
		User:     m.UserID,
		Text:     m.Text,
		Name:     m.Name,
		Avatar:   m.Avatar,
		Likes:    m.Likes,
		Comments: m.Comments,
		Date:     m.Date,
	}
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	return p
}
