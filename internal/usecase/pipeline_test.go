package usecase

import (
	"testing"
	"time"

	"github.com/spectix11/ai-sdr/internal/entity"
	"github.com/stretchr/testify/assert"
)

func samplePipelineLeads() []entity.Lead {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	return []entity.Lead{
		{ID: "1", FullName: "Ana Souza", Email: "ana@acme.com", CompanyName: "Acme", Stage: "contacted", Industry: "SaaS", LastUpdatedAt: &t3},
		{ID: "2", FullName: "Bruno Lima", Email: "bruno@globex.com", CompanyName: "Globex", Stage: "imported", Industry: "Fintech", LastUpdatedAt: &t1},
		{ID: "3", FullName: "Carla Reis", Email: "carla@initech.io", CompanyName: "Initech", Stage: "contacted", Industry: "SaaS", LastUpdatedAt: &t2},
		{ID: "4", FullName: "Diego Alves", Email: "diego@acmecorp.com", CompanyName: "Acme Corp", Stage: "replied", Industry: "", LastUpdatedAt: nil},
	}
}

func ids(leads []entity.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.ID
	}
	return out
}

func TestSearchMatchesAnyOfThreeFields(t *testing.T) {
	leads := samplePipelineLeads()

	assert.Equal(t, []string{"1", "4"}, ids(FilterLeads(leads, "acme", nil)))   // company OU email
	assert.Equal(t, []string{"3"}, ids(FilterLeads(leads, "CARLA", nil)))       // case-insensitive
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(FilterLeads(leads, "", nil)))
	assert.Empty(t, FilterLeads(leads, "zzz", nil))
}

func TestFiltersAreANDed(t *testing.T) {
	leads := samplePipelineLeads()

	out := FilterLeads(leads, "", map[string]string{"stage": "contacted", "industry": "SaaS"})
	assert.Equal(t, []string{"1", "3"}, ids(out))

	out = FilterLeads(leads, "a", map[string]string{"stage": "contacted"})
	assert.Equal(t, []string{"1", "3"}, ids(out))

	// valor vazio = sem restrição
	out = FilterLeads(leads, "", map[string]string{"stage": ""})
	assert.Len(t, out, 4)
}

func TestSortNullsLastBothDirections(t *testing.T) {
	leads := samplePipelineLeads()

	asc := FilterLeads(leads, "", nil)
	SortLeads(asc, "last_updated_at", false)
	assert.Equal(t, []string{"2", "3", "1", "4"}, ids(asc))

	desc := FilterLeads(leads, "", nil)
	SortLeads(desc, "last_updated_at", true)
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(desc))
}

func TestSortStringColumnCaseInsensitive(t *testing.T) {
	leads := []entity.Lead{
		{ID: "1", FullName: "zoe"},
		{ID: "2", FullName: "Alice"},
		{ID: "3", FullName: ""},
	}

	SortLeads(leads, "fullname", false)
	assert.Equal(t, []string{"2", "1", "3"}, ids(leads)) // vazio vai pro fim

	SortLeads(leads, "fullname", true)
	assert.Equal(t, []string{"1", "2", "3"}, ids(leads))
}

func TestPaginateSlicing(t *testing.T) {
	leads := make([]entity.Lead, 45)
	for i := range leads {
		leads[i].ID = string(rune('a' + i%26))
	}

	page1 := Paginate(leads, 1, 20)
	assert.Len(t, page1.Leads, 20)
	assert.Equal(t, 45, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)

	page3 := Paginate(leads, 3, 20)
	assert.Len(t, page3.Leads, 5)

	// página fora do range não é erro: slice vazio
	page9 := Paginate(leads, 9, 20)
	assert.Empty(t, page9.Leads)
	assert.Equal(t, 3, page9.TotalPages)
}

func TestPipelineIdempotence(t *testing.T) {
	leads := samplePipelineLeads()
	q := Query{Search: "a", Filters: map[string]string{"stage": "contacted"}, SortBy: "fullname", Page: 1, PageSize: 20}

	once := Apply(leads, q)
	twice := Apply(once.Leads, q)

	assert.Equal(t, ids(once.Leads), ids(twice.Leads))
}

func TestPipelineCompositionNeutralStages(t *testing.T) {
	leads := samplePipelineLeads()

	full := Apply(leads, Query{Search: "", Filters: nil, SortBy: "email", Page: 1, PageSize: 2})

	sorted := FilterLeads(leads, "", nil)
	SortLeads(sorted, "email", false)
	direct := Paginate(sorted, 1, 2)

	assert.Equal(t, ids(direct.Leads), ids(full.Leads))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	leads := samplePipelineLeads()
	before := ids(leads)

	Apply(leads, Query{SortBy: "fullname", SortDesc: true, Page: 1, PageSize: 2})

	assert.Equal(t, before, ids(leads))
}
