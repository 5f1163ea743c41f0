package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginatorBounds(t *testing.T) {
	jobs := sampleJobs(13)
	p := NewPaginator(6)

	assert.False(t, p.Prev())
	assert.True(t, p.Next(jobs))
	assert.True(t, p.Next(jobs))
	assert.False(t, p.Next(jobs), "page 3 is the last one")
	assert.Equal(t, 3, p.Page())
	assert.Len(t, p.View(jobs).Items, 1)

	assert.True(t, p.Prev())
	assert.Equal(t, 2, p.Page())
}

func TestPaginatorResetsOnFilterChange(t *testing.T) {
	jobs := sampleJobs(13)
	p := NewPaginator(6)
	p.Next(jobs)
	p.Next(jobs)
	require.Equal(t, 3, p.Page())

	p.SetCriterion("madrid")
	assert.Equal(t, 1, p.Page())

	p.Next(jobs)
	p.SetQuery("engineer 1")
	assert.Equal(t, 1, p.Page())

	view := p.View(jobs)
	assert.LessOrEqual(t, len(view.Items), 6)
	assert.GreaterOrEqual(t, view.PageCount, p.Page())
}

func TestPaginatorNoResults(t *testing.T) {
	p := NewPaginator(6)
	p.SetQuery("nothing matches")
	assert.False(t, p.Next(sampleJobs(3)))
	assert.Equal(t, 1, p.Page())
}

func TestSidebarOptions(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	jobs := []Listing{{JobLocation: "Berlin"}, {JobLocation: "london"}, {JobLocation: ""}}

	sb := SidebarOptions(jobs, now)

	require.Len(t, sb.Locations, len(DefaultLocations)+1)
	assert.Equal(t, Criterion("london"), sb.Locations[0].Value)
	assert.Equal(t, "Berlin", sb.Locations[len(sb.Locations)-1].Label)

	require.Len(t, sb.PostingDates, 3)
	assert.Equal(t, Criterion("2024-06-14"), sb.PostingDates[0].Value)
	assert.Equal(t, Criterion("2024-06-08"), sb.PostingDates[1].Value)
	assert.Equal(t, Criterion("2024-05-16"), sb.PostingDates[2].Value)

	assert.Len(t, sb.Salaries, 4)
	assert.Equal(t, Criterion("30"), sb.Salaries[0].Value)
	assert.Len(t, sb.SalaryTypes, 3)
	assert.Len(t, sb.EmploymentTypes, 4)
	assert.Len(t, sb.ExperienceLevels, 3)
}
