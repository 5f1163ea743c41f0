package job

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Listing is a job posting as served by the job-board backend.
// The front tier only reads it; the backend owns every mutation.
type Listing struct {
	ID              string          `json:"_id"`
	JobTitle        string          `json:"jobTitle"`
	CompanyName     string          `json:"companyName"`
	CompanyLogo     string          `json:"companyLogo"`
	MinPrice        Price           `json:"minPrice"`
	MaxPrice        Price           `json:"maxPrice"`
	SalaryType      SalaryType      `json:"salaryType"`
	JobLocation     string          `json:"jobLocation"`
	EmploymentType  EmploymentType  `json:"employmentType"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	// PostingDate is an ISO date (YYYY-MM-DD); compared as a string.
	PostingDate string   `json:"postingDate"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	PostedBy    string   `json:"postedBy,omitempty"`
}

// Price is a salary bound. The posting form submits strings while older
// records carry numbers, so both JSON forms are accepted.
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = Price(n.String())
	return nil
}

// Int parses the leading integer of the price, the way a browser's
// parseInt does ("50000.5" -> 50000, "80k" -> 80).
func (p Price) Int() (int, bool) {
	return leadingInt(string(p))
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

type SalaryType string

const (
	SalaryHourly  SalaryType = "Hourly"
	SalaryMonthly SalaryType = "Monthly"
	SalaryYearly  SalaryType = "Yearly"
)

var SalaryTypes = []SalaryType{SalaryHourly, SalaryMonthly, SalaryYearly}

type EmploymentType string

const (
	EmploymentFullTime  EmploymentType = "Full-time"
	EmploymentPartTime  EmploymentType = "Part-time"
	EmploymentTemporary EmploymentType = "Temporary"
	EmploymentContract  EmploymentType = "Contract"
)

var EmploymentTypes = []EmploymentType{EmploymentFullTime, EmploymentPartTime, EmploymentTemporary, EmploymentContract}

type ExperienceLevel string

const (
	ExperienceNone       ExperienceLevel = "NoExperience"
	ExperienceInternship ExperienceLevel = "Internship"
	ExperienceRemote     ExperienceLevel = "Work remotely"
)

var ExperienceLevels = []ExperienceLevel{ExperienceNone, ExperienceInternship, ExperienceRemote}

// ParseSalaryType matches case-insensitively and returns the canonical value.
func ParseSalaryType(s string) (SalaryType, bool) {
	for _, v := range SalaryTypes {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}

func ParseEmploymentType(s string) (EmploymentType, bool) {
	for _, v := range EmploymentTypes {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}

func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	for _, v := range ExperienceLevels {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}

func (t SalaryType) Valid() bool {
	_, ok := ParseSalaryType(string(t))
	return ok && t != ""
}

func (t EmploymentType) Valid() bool {
	_, ok := ParseEmploymentType(string(t))
	return ok && t != ""
}

func (l ExperienceLevel) Valid() bool {
	_, ok := ParseExperienceLevel(string(l))
	return ok && l != ""
}
