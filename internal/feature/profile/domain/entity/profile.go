// Package entity defines the profile aggregate and its sub-collections.
package entity

import (
	"strings"
	"time"
)

// Owner is the public view of the user a profile belongs to.
type Owner struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Social holds optional links to external accounts.
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the one-per-user document holding career history and links.
type Profile struct {
	ID             string       `json:"_id"`
	User           Owner        `json:"user"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status,omitempty"`
	GitHubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Date           time.Time    `json:"date"`
}

// NewProfile returns an empty profile owned by userID.
func NewProfile(id, userID string, now time.Time) *Profile {
	return &Profile{
		ID:         id,
		User:       Owner{ID: userID},
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		Date:       now,
	}
}

// ProfilePatch lists the fields a client may set on its profile.
// A nil field is left untouched.
type ProfilePatch struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GitHubUsername *string
	Skills         *string
	YouTube        *string
	Twitter        *string
	Facebook       *string
	LinkedIn       *string
	Instagram      *string
}

// Apply overwrites the supplied fields of p.
func (patch ProfilePatch) Apply(p *Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Company, patch.Company)
	set(&p.Website, patch.Website)
	set(&p.Location, patch.Location)
	set(&p.Bio, patch.Bio)
	set(&p.Status, patch.Status)
	set(&p.GitHubUsername, patch.GitHubUsername)
	set(&p.Social.YouTube, patch.YouTube)
	set(&p.Social.Twitter, patch.Twitter)
	set(&p.Social.Facebook, patch.Facebook)
	set(&p.Social.LinkedIn, patch.LinkedIn)
	set(&p.Social.Instagram, patch.Instagram)
	if patch.Skills != nil {
		p.Skills = SplitSkills(*patch.Skills)
	}
}

// SplitSkills splits a comma separated list and trims each element.
// Empty elements are kept and duplicates are not removed.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// AddExperience inserts e at the front of the experience list.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience drops every entry whose id equals id. Unknown ids are a no-op.
func (p *Profile) RemoveExperience(id string) {
	kept := make([]Experience, 0, len(p.Experience))
	for _, e := range p.Experience {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
}

// AddEducation inserts e at the front of the education list.
func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

// RemoveEducation drops every entry whose id equals id. Unknown ids are a no-op.
func (p *Profile) RemoveEducation(id string) {
	kept := make([]Education, 0, len(p.Education))
	for _, e := range p.Education {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	p.Education = kept
}
