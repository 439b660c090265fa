package domain

import (
	"strings"
)

// ProfileURLBase is the canonical profile URL prefix a username maps back to.
const ProfileURLBase = "https://www.linkedin.com/in/"

// Position is one entry of a profile's work history.
type Position struct {
	Title   string
	Company string
}

// Profile is one normalized candidate record. It is assembled once at the
// fetch boundary and never mutated afterwards.
type Profile struct {
	ID        string
	URN       string
	Username  string
	FirstName string
	LastName  string
	Headline  string
	Summary   string
	// Experience is deduplicated by (Title, Company), first occurrence wins.
	Experience []Position
	Skills     []string
	// Education entries are pre-formatted as "degree in field from school".
	Education []string
}

// SourceURL derives the profile URL from the username.
func (p *Profile) SourceURL() string {
	return ProfileURLBase + p.Username
}

// ExperienceText renders the work history one position per line.
func (p *Profile) ExperienceText() string {
	lines := make([]string, len(p.Experience))
	for i, pos := range p.Experience {
		lines[i] = pos.Title + " at " + pos.Company
	}
	return strings.Join(lines, "\n")
}

// SkillsText renders skills as a comma-joined string.
func (p *Profile) SkillsText() string {
	return strings.Join(p.Skills, ", ")
}

// EducationText renders education entries one per line.
func (p *Profile) EducationText() string {
	return strings.Join(p.Education, "\n")
}

// MergePositions merges two possibly-overlapping position lists into one
// deduplicated list keyed by (Title, Company). Entries from primary are
// considered before entries from secondary; insertion order is preserved.
func MergePositions(primary, secondary []Position) []Position {
	type key struct{ title, company string }
	seen := make(map[key]struct{}, len(primary)+len(secondary))
	merged := make([]Position, 0, len(primary)+len(secondary))
	for _, pos := range append(append([]Position{}, primary...), secondary...) {
		k := key{pos.Title, pos.Company}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, pos)
	}
	return merged
}

// FormatEducation renders one education record in the storage format.
// Empty parts are kept so the shape stays stable across sparse records.
func FormatEducation(degree, field, school string) string {
	return degree + " in " + field + " from " + school
}
