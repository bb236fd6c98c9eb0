package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/spectix11/ai-sdr/internal/entity"
)

// Query is the per-screen list state: free-text search, equality filters,
// one sort column with direction, and a 1-based page.
//
// The stages always run in the same order: search → filters → sort → paginate.
type Query struct {
	Search   string
	Filters  map[string]string // campo -> valor exato; valor vazio = sem filtro
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

type PageResult struct {
	Leads      []entity.Lead `json:"leads"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// Apply runs the full pipeline over an in-memory snapshot. Pure: the input
// slice is never mutated. An out-of-range page yields an empty slice, never
// an error — clamping is the caller's UI concern.
func Apply(leads []entity.Lead, q Query) PageResult {
	filtered := FilterLeads(leads, q.Search, q.Filters)
	SortLeads(filtered, q.SortBy, q.SortDesc)
	return Paginate(filtered, q.Page, q.PageSize)
}

// FilterLeads applies search then field filters and returns a fresh slice.
// Search is a case-insensitive substring match OR'd over fullname, email and
// company name; every non-empty field filter is AND'd on top.
func FilterLeads(leads []entity.Lead, search string, filters map[string]string) []entity.Lead {
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]entity.Lead, 0, len(leads))
	for i := range leads {
		l := &leads[i]
		if term != "" && !matchesSearch(l, term) {
			continue
		}
		if !matchesFilters(l, filters) {
			continue
		}
		out = append(out, *l)
	}
	return out
}

func matchesSearch(l *entity.Lead, term string) bool {
	return strings.Contains(strings.ToLower(l.FullName), term) ||
		strings.Contains(strings.ToLower(l.Email), term) ||
		strings.Contains(strings.ToLower(l.CompanyName), term)
}

func matchesFilters(l *entity.Lead, filters map[string]string) bool {
	for field, want := range filters {
		if want == "" {
			continue
		}
		if filterValue(l, field) != want {
			return false
		}
	}
	return true
}

func filterValue(l *entity.Lead, field string) string {
	switch field {
	case "stage":
		return l.Stage
	case "lead_source":
		return l.LeadSource
	case "industry":
		return l.Industry
	case "company_size":
		return l.CompanySize
	case "campaign_id":
		return l.CampaignID
	}
	return ""
}

// SortLeads sorts in place by a single column. Missing values (nil timestamps,
// empty strings) go last in BOTH directions — the direction flips the ordering
// of defined values only. Unknown columns leave the slice untouched, which
// preserves the repository's default last_updated_at DESC ordering.
func SortLeads(leads []entity.Lead, column string, desc bool) {
	if column == "" {
		return
	}

	sort.SliceStable(leads, func(i, j int) bool {
		a, aok := sortKey(&leads[i], column)
		b, bok := sortKey(&leads[j], column)

		// nulls-last independe da direção
		if !aok || !bok {
			return aok && !bok
		}

		less := compareKeys(a, b)
		if less == 0 {
			return false
		}
		if desc {
			return less > 0
		}
		return less < 0
	})
}

type sortValue struct {
	s   string
	t   time.Time
	n   int
	typ byte // 's', 't', 'n'
}

func sortKey(l *entity.Lead, column string) (sortValue, bool) {
	switch column {
	case "fullname":
		return strValue(l.FullName)
	case "email":
		return strValue(l.Email)
	case "company_name":
		return strValue(l.CompanyName)
	case "job_title":
		return strValue(l.JobTitle)
	case "industry":
		return strValue(l.Industry)
	case "stage":
		return strValue(l.Stage)
	case "lead_source":
		return strValue(l.LeadSource)
	case "days":
		return sortValue{n: l.Days, typ: 'n'}, true
	case "created_at":
		return sortValue{t: l.CreatedAt, typ: 't'}, true
	case "last_updated_at":
		return timeValue(l.LastUpdatedAt)
	case "booked_at":
		return timeValue(l.BookedAt)
	}
	return sortValue{}, false
}

func strValue(s string) (sortValue, bool) {
	if s == "" {
		return sortValue{}, false
	}
	return sortValue{s: strings.ToLower(s), typ: 's'}, true
}

func timeValue(t *time.Time) (sortValue, bool) {
	if t == nil {
		return sortValue{}, false
	}
	return sortValue{t: *t, typ: 't'}, true
}

func compareKeys(a, b sortValue) int {
	switch a.typ {
	case 's':
		return strings.Compare(a.s, b.s)
	case 't':
		if a.t.Before(b.t) {
			return -1
		}
		if a.t.After(b.t) {
			return 1
		}
		return 0
	case 'n':
		return a.n - b.n
	}
	return 0
}

// Paginate slices one 1-based page out of the filtered collection.
func Paginate(leads []entity.Lead, page, pageSize int) PageResult {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	total := len(leads)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return PageResult{Leads: []entity.Lead{}, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]entity.Lead, end-start)
	copy(out, leads[start:end])

	return PageResult{Leads: out, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}
