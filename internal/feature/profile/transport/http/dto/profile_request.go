// Package dto defines the request bodies of the profile endpoints.
package dto

import "devsocial_backend/internal/feature/profile/domain/entity"

// ProfileReq is the body of POST /api/profile. Absent fields are left unchanged.
type ProfileReq struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status"`
	GitHubUsername *string `json:"githubusername"`
	Skills         *string `json:"skills"`
	YouTube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	LinkedIn       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

// ToPatch copies the allow-listed fields into a ProfilePatch.
func (r ProfileReq) ToPatch() entity.ProfilePatch {
	return entity.ProfilePatch{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		GitHubUsername: r.GitHubUsername,
		Skills:         r.Skills,
		YouTube:        r.YouTube,
		Twitter:        r.Twitter,
		Facebook:       r.Facebook,
		LinkedIn:       r.LinkedIn,
		Instagram:      r.Instagram,
	}
}
