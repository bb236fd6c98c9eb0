package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spectix11/ai-sdr/internal/entity"
)

// LeadListView is one screen's session: a local snapshot of the leads matching
// the view predicate, the list query state, and the set of lead ids with an
// update in flight.
//
// The snapshot is a materialized copy of a server-side filter. Mutations keep
// it consistent without a re-fetch: update-then-mutate-local, never the other
// way around — a failed remote update must leave the list exactly as it was.
type LeadListView struct {
	repo entity.LeadRepositoryInterface
	view entity.ViewName

	mu       sync.Mutex
	leads    []entity.Lead
	loaded   bool
	query    Query
	inFlight map[string]bool

	now func() time.Time

	// OnBooked roda (em goroutine) após um toggle booked=true bem sucedido.
	// Usado para disparar a notificação por email; nunca bloqueia o caller.
	OnBooked func(lead entity.Lead)
}

func NewLeadListView(repo entity.LeadRepositoryInterface, view entity.ViewName, pageSize int) *LeadListView {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &LeadListView{
		repo:     repo,
		view:     view,
		query:    Query{Page: 1, PageSize: pageSize, Filters: map[string]string{}},
		inFlight: make(map[string]bool),
		now:      time.Now,
	}
}

func (v *LeadListView) View() entity.ViewName { return v.view }

// Load fetches the view's snapshot from the repository. On failure the old
// snapshot (if any) stays in place so the screen keeps rendering while the
// user retries.
func (v *LeadListView) Load(ctx context.Context) error {
	leads, err := v.repo.FindAll(ctx, v.view)
	if err != nil {
		return &TechnicalError{Code: "FETCH_FAILED", Message: "failed to fetch leads: " + err.Error()}
	}

	v.mu.Lock()
	v.leads = leads
	v.loaded = true
	v.mu.Unlock()
	return nil
}

// EnsureLoaded fetches only when nothing was loaded yet.
func (v *LeadListView) EnsureLoaded(ctx context.Context) error {
	v.mu.Lock()
	loaded := v.loaded
	v.mu.Unlock()
	if loaded {
		return nil
	}
	return v.Load(ctx)
}

// Page applies the current query over the snapshot and returns one page.
func (v *LeadListView) Page() PageResult {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Apply(v.leads, v.query)
}

// SetSearch updates the search term and resets to page 1.
func (v *LeadListView) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.Search != term {
		v.query.Search = term
		v.query.Page = 1
	}
}

// SetFilter updates one equality filter and resets to page 1. An empty value
// clears the constraint.
func (v *LeadListView) SetFilter(field, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.Filters[field] != value {
		v.query.Filters[field] = value
		v.query.Page = 1
	}
}

// SetSort toggles direction when the same column is picked twice, otherwise
// switches column ascending. Sorting does not reset the page.
func (v *LeadListView) SetSort(column string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.SortBy == column {
		v.query.SortDesc = !v.query.SortDesc
		return
	}
	v.query.SortBy = column
	v.query.SortDesc = false
}

// SetSortColumn sets column and direction explicitly (query-string callers).
func (v *LeadListView) SetSortColumn(column string, desc bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query.SortBy = column
	v.query.SortDesc = desc
}

func (v *LeadListView) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if page < 1 {
		page = 1
	}
	v.query.Page = page
}

func (v *LeadListView) Query() Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	q := v.query
	q.Filters = make(map[string]string, len(v.query.Filters))
	for k, val := range v.query.Filters {
		q.Filters[k] = val
	}
	return q
}

// InFlight reports whether a mutation for this lead is still pending, so the
// UI can disable the toggle.
func (v *LeadListView) InFlight(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight[id]
}

// ToggleReplied flips the replied flag through the optimistic-update contract.
func (v *LeadListView) ToggleReplied(ctx context.Context, id string, value bool) error {
	_, err := v.toggle(ctx, id, func(now time.Time) map[string]any {
		return map[string]any{"replied": value}
	}, func(l *entity.Lead, now time.Time) {
		l.Replied = value
	})
	return err
}

// ToggleBooked flips the booked flag. Setting it also stamps booked_at;
// clearing it nulls booked_at out.
func (v *LeadListView) ToggleBooked(ctx context.Context, id string, value bool) error {
	updated, err := v.toggle(ctx, id, func(now time.Time) map[string]any {
		if value {
			return map[string]any{"booked": true, "booked_at": now}
		}
		return map[string]any{"booked": false, "booked_at": nil}
	}, func(l *entity.Lead, now time.Time) {
		l.Booked = value
		if value {
			t := now
			l.BookedAt = &t
		} else {
			l.BookedAt = nil
		}
	})
	if err == nil && value && updated != nil && v.OnBooked != nil {
		go v.OnBooked(*updated)
	}
	return err
}

// toggle is the contract itself:
//  1. refuse a second concurrent mutation of the same lead;
//  2. issue the repository update (last_updated_at refresh included);
//  3. only on success mutate the snapshot — drop the lead when it left the
//     view's predicate, update in place when it stayed;
//  4. on failure the snapshot is untouched and the toggle is retryable.
func (v *LeadListView) toggle(
	ctx context.Context,
	id string,
	fields func(now time.Time) map[string]any,
	apply func(l *entity.Lead, now time.Time),
) (*entity.Lead, error) {
	v.mu.Lock()
	if v.inFlight[id] {
		v.mu.Unlock()
		return nil, ErrUpdateInFlight
	}
	v.inFlight[id] = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		delete(v.inFlight, id)
		v.mu.Unlock()
	}()

	now := v.now()
	if err := v.repo.UpdateFields(ctx, id, fields(now)); err != nil {
		return nil, &TechnicalError{Code: "UPDATE_FAILED", Message: "failed to update lead: " + err.Error()}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.leads {
		if v.leads[i].ID != id {
			continue
		}
		apply(&v.leads[i], now)
		t := now
		v.leads[i].LastUpdatedAt = &t

		updated := v.leads[i]
		if !v.view.Matches(&v.leads[i]) {
			// o lead saiu do predicado da tela: remove do snapshot local
			// em vez de refazer o fetch inteiro
			v.leads = append(v.leads[:i], v.leads[i+1:]...)
		}
		return &updated, nil
	}
	return nil, nil
}

// UpdateProfile persists detail-view edits (profile fields only) and patches
// the snapshot copy on success.
func (v *LeadListView) UpdateProfile(ctx context.Context, id string, fields map[string]any) error {
	v.mu.Lock()
	if v.inFlight[id] {
		v.mu.Unlock()
		return ErrUpdateInFlight
	}
	v.inFlight[id] = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		delete(v.inFlight, id)
		v.mu.Unlock()
	}()

	now := v.now()
	if err := v.repo.UpdateFields(ctx, id, fields); err != nil {
		// erros de domínio (email duplicado, lead inexistente) passam direto
		if errors.Is(err, entity.ErrEmailAlreadyExists) || errors.Is(err, entity.ErrLeadNotFound) {
			return err
		}
		return &TechnicalError{Code: "UPDATE_FAILED", Message: "failed to update lead: " + err.Error()}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.leads {
		if v.leads[i].ID != id {
			continue
		}
		applyProfileFields(&v.leads[i], fields)
		t := now
		v.leads[i].LastUpdatedAt = &t
		return nil
	}
	return nil
}

func applyProfileFields(l *entity.Lead, fields map[string]any) {
	for field, raw := range fields {
		val, ok := raw.(string)
		if !ok {
			continue
		}
		switch field {
		case "fullname":
			l.FullName = val
		case "job_title":
			l.JobTitle = val
		case "company_name":
			l.CompanyName = val
		case "industry":
			l.Industry = val
		case "company_size":
			l.CompanySize = val
		case "company_website":
			l.CompanyWebsite = val
		case "linkedin_url":
			l.LinkedinURL = val
		case "username":
			l.Username = val
		case "stage":
			l.Stage = val
		case "lead_source":
			l.LeadSource = val
		}
	}
}
