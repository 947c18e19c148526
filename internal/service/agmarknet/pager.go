package agmarknet

import "context"

// PageFunc fetches one page of raw rows.
type PageFunc func(ctx context.Context, limit, offset int) ([]RawRow, error)

// Pager walks the upstream resource page by page. It stops after an empty
// page, a short page (fewer rows than the page size), or once maxRecords rows
// were yielded; the last page is truncated to the cap.
//
//	p := NewPager(fetch, 500, 2000)
//	for p.Next(ctx) {
//		rows = append(rows, p.Page()...)
//	}
//	if err := p.Err(); err != nil { ... }
type Pager struct {
	fetch      PageFunc
	pageSize   int
	maxRecords int

	offset   int
	total    int
	requests int
	page     []RawRow
	err      error
	done     bool
}

func NewPager(fetch PageFunc, pageSize, maxRecords int) *Pager {
	return &Pager{fetch: fetch, pageSize: pageSize, maxRecords: maxRecords}
}

// Next fetches the next page. It returns false when iteration is over or failed.
func (p *Pager) Next(ctx context.Context) bool {
	if p.done {
		return false
	}
	if err := ctx.Err(); err != nil {
		p.fail(err)
		return false
	}

	p.requests++
	page, err := p.fetch(ctx, p.pageSize, p.offset)
	if err != nil {
		p.fail(err)
		return false
	}
	if len(page) == 0 {
		p.done = true
		p.page = nil
		return false
	}

	if remaining := p.maxRecords - p.total; len(page) > remaining {
		page = page[:remaining]
		p.done = true
	}
	if len(page) < p.pageSize {
		p.done = true
	}
	p.total += len(page)
	p.offset += p.pageSize
	if p.total >= p.maxRecords {
		p.done = true
	}
	p.page = page
	return true
}

// Page returns the rows fetched by the last successful Next.
func (p *Pager) Page() []RawRow { return p.page }

// Err returns the error that stopped iteration, if any.
func (p *Pager) Err() error { return p.err }

// Requests reports how many upstream calls were issued.
func (p *Pager) Requests() int { return p.requests }

func (p *Pager) fail(err error) {
	p.err = err
	p.done = true
	p.page = nil
}
