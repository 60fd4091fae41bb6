package usecase

import (
	"time"

	"devsocial_backend/internal/feature/profile/domain/entity"
	"devsocial_backend/internal/shared/validation"
)

// ExperienceInput is a job entry as submitted by a client.
type ExperienceInput struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required,date"`
	To          string `json:"to" validate:"omitempty,date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationInput is a schooling entry as submitted by a client.
type EducationInput struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required,date"`
	To           string `json:"to" validate:"omitempty,date"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// toEntity assumes in has passed validation.
func (in ExperienceInput) toEntity(id string) entity.Experience {
	from, _ := validation.ParseDate(in.From)
	return entity.Experience{
		ID:          id,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          entity.Period(optionalDate(in.To), in.Current),
		Current:     in.Current,
		Description: in.Description,
	}
}

// toEntity assumes in has passed validation.
func (in EducationInput) toEntity(id string) entity.Education {
	from, _ := validation.ParseDate(in.From)
	return entity.Education{
		ID:           id,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           entity.Period(optionalDate(in.To), in.Current),
		Current:      in.Current,
		Description:  in.Description,
	}
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}
