package job

import "github.com/artem13815/jobboard/pkg/paging"

// Paginator держит состояние страницы списка вакансий: запрос, критерий и
// номер текущей страницы. Смена запроса или критерия сбрасывает страницу на 1.
type Paginator struct {
	pageSize  int
	query     string
	criterion Criterion
	page      int
}

func NewPaginator(pageSize int) *Paginator {
	return &Paginator{pageSize: pageSize, page: 1}
}

func (p *Paginator) Page() int            { return p.page }
func (p *Paginator) Query() string        { return p.query }
func (p *Paginator) Criterion() Criterion { return p.criterion }

func (p *Paginator) SetQuery(q string) {
	p.query = q
	p.page = 1
}

// SetCriterion replaces the active criterion; last selection wins.
func (p *Paginator) SetCriterion(c Criterion) {
	p.criterion = c
	p.page = 1
}

// Next advances one page unless the current page is the last one.
func (p *Paginator) Next(all []Listing) bool {
	total := len(FilterByCriterion(FilterByQuery(all, p.query), p.criterion))
	if p.page >= paging.PageCount(total, p.pageSize) {
		return false
	}
	p.page++
	return true
}

func (p *Paginator) Prev() bool {
	if p.page <= 1 {
		return false
	}
	p.page--
	return true
}

// View returns the current page of all.
func (p *Paginator) View(all []Listing) Page {
	return VisiblePage(all, p.query, p.criterion, p.page, p.pageSize)
}
