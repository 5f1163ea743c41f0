package job

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// SalaryCaps are the salary filter values offered in the sidebar (thousands).
var SalaryCaps = []int{30, 50, 80, 100}

type Option struct {
	Label string    `json:"label"`
	Value Criterion `json:"value"`
}

// Sidebar lists the criterion values the listing page offers, grouped the
// way the UI renders its radio groups.
type Sidebar struct {
	Locations        []Option `json:"locations"`
	Salaries         []Option `json:"salaries"`
	SalaryTypes      []Option `json:"salaryTypes"`
	PostingDates     []Option `json:"postingDates"`
	ExperienceLevels []Option `json:"experienceLevels"`
	EmploymentTypes  []Option `json:"employmentTypes"`
}

// SidebarOptions builds the sidebar for the given jobs. Locations come from
// the jobs themselves; posting date cutoffs are relative to now.
func SidebarOptions(all []Listing, now time.Time) Sidebar {
	sb := Sidebar{
		Locations: locationOptions(all),
	}
	for _, c := range SalaryCaps {
		v := strconv.Itoa(c)
		sb.Salaries = append(sb.Salaries, Option{Label: "< " + v + "k", Value: Criterion(v)})
	}
	for _, t := range SalaryTypes {
		sb.SalaryTypes = append(sb.SalaryTypes, Option{Label: string(t), Value: Criterion(t)})
	}
	day := 24 * time.Hour
	for _, d := range []struct {
		label string
		ago   time.Duration
	}{
		{"Last 24 hours", day},
		{"Last 7 days", 7 * day},
		{"Last Month", 30 * day},
	} {
		sb.PostingDates = append(sb.PostingDates, Option{
			Label: d.label,
			Value: Criterion(now.Add(-d.ago).Format(time.DateOnly)),
		})
	}
	for _, l := range ExperienceLevels {
		sb.ExperienceLevels = append(sb.ExperienceLevels, Option{Label: experienceLabel(l), Value: Criterion(l)})
	}
	for _, t := range EmploymentTypes {
		sb.EmploymentTypes = append(sb.EmploymentTypes, Option{Label: string(t), Value: Criterion(t)})
	}
	return sb
}

func experienceLabel(l ExperienceLevel) string {
	switch l {
	case ExperienceNone:
		return "No experience"
	case ExperienceInternship:
		return "Internship"
	case ExperienceRemote:
		return "Work remotely"
	}
	return string(l)
}

// DefaultLocations are always offered, before locations found in the listing.
var DefaultLocations = []string{"London", "Seattle", "Madrid", "Boston", "New York"}

func locationOptions(all []Listing) []Option {
	seen := map[string]struct{}{}
	out := make([]Option, 0, len(DefaultLocations))
	for _, loc := range DefaultLocations {
		seen[strings.ToLower(loc)] = struct{}{}
		out = append(out, Option{Label: loc, Value: Criterion(strings.ToLower(loc))})
	}
	var extra []Option
	for _, j := range all {
		loc := strings.TrimSpace(j.JobLocation)
		key := strings.ToLower(loc)
		if loc == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		extra = append(extra, Option{Label: loc, Value: Criterion(key)})
	}
	sort.Slice(extra, func(i, k int) bool { return extra[i].Label < extra[k].Label })
	return append(out, extra...)
}
