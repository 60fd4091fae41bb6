package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestProfilePatch_Apply(t *testing.T) {
	p := NewProfile("p-1", "u-1", time.Now())
	p.Company = "Acme"
	p.Bio = "keep me"
	p.Social.Twitter = "old"

	ProfilePatch{
		Company: strPtr("Initech"),
		Status:  strPtr("Developer"),
		Skills:  strPtr(" go, sql ,, rust"),
		Twitter: strPtr("https://twitter.com/jane"),
	}.Apply(p)

	assert.Equal(t, "Initech", p.Company)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, "keep me", p.Bio, "unsupplied fields are untouched")
	assert.Equal(t, []string{"go", "sql", "", "rust"}, p.Skills)
	assert.Equal(t, "https://twitter.com/jane", p.Social.Twitter)
	assert.Equal(t, "u-1", p.User.ID)
}

func TestProfilePatch_ApplyEmptyPatchChangesNothing(t *testing.T) {
	p := NewProfile("p-1", "u-1", time.Now())
	p.Skills = []string{"go"}
	before := *p

	ProfilePatch{}.Apply(p)

	assert.Equal(t, before, *p)
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "go", want: []string{"go"}},
		{in: "go, go", want: []string{"go", "go"}},
		{in: "", want: []string{""}},
		{in: " a ,b,", want: []string{"a", "b", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSkills(tt.in))
		})
	}
}

func TestProfile_ExperienceOrderAndRemoval(t *testing.T) {
	p := NewProfile("p-1", "u-1", time.Now())

	p.AddExperience(Experience{ID: "e1", Title: "first"})
	p.AddExperience(Experience{ID: "e2", Title: "second"})

	assert.Equal(t, []string{"e2", "e1"}, experienceIDs(p), "new entries go to the front")

	p.RemoveExperience("e1")
	assert.Equal(t, []string{"e2"}, experienceIDs(p))

	p.RemoveExperience("e1")
	assert.Equal(t, []string{"e2"}, experienceIDs(p), "removing twice is a no-op")

	p.RemoveExperience("E2")
	assert.Equal(t, []string{"e2"}, experienceIDs(p), "ids compare strictly")
}

func TestProfile_EducationOrderAndRemoval(t *testing.T) {
	p := NewProfile("p-1", "u-1", time.Now())

	p.AddEducation(Education{ID: "d1"})
	p.AddEducation(Education{ID: "d2"})
	p.RemoveEducation("missing")

	assert.Len(t, p.Education, 2)
	assert.Equal(t, "d2", p.Education[0].ID)

	p.RemoveEducation("d2")
	assert.Len(t, p.Education, 1)
	assert.Equal(t, "d1", p.Education[0].ID)
}

func TestPeriod(t *testing.T) {
	end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, Period(&end, true), "current entries have no end date")
	assert.Equal(t, &end, Period(&end, false))
	assert.Nil(t, Period(nil, false))
}

func experienceIDs(p *Profile) []string {
	ids := make([]string, 0, len(p.Experience))
	for _, e := range p.Experience {
		ids = append(ids, e.ID)
	}
	return ids
}
