package usecase

import (
	"testing"
	"time"

	"github.com/spectix11/ai-sdr/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestAggregateEmptyCollection(t *testing.T) {
	m := Aggregate(nil)

	assert.Equal(t, 0, m.TotalLeads)
	assert.Equal(t, 0, m.TotalEmailsSent)
	assert.Equal(t, 0, m.TotalReplied)
	assert.Equal(t, 0, m.TotalBooked)

	assert.Len(t, m.Funnel, 6)
	for _, step := range m.Funnel {
		assert.Equal(t, 0, step.Count)
		assert.Equal(t, 0.0, step.Percentage)
	}
}

func TestAggregateCounters(t *testing.T) {
	now := time.Now()
	leads := []entity.Lead{
		{Day1Sent: true, Day1SentAt: &now, Day2Sent: true, Day2SentAt: &now, Replied: true},
		{Day1Sent: true, Day1SentAt: &now, Booked: true},
		{},
	}

	m := Aggregate(leads)

	assert.Equal(t, 3, m.TotalLeads)
	assert.Equal(t, 3, m.TotalEmailsSent)
	assert.Equal(t, 1, m.TotalReplied)
	assert.Equal(t, 1, m.TotalBooked)
}

// O funil divide todos os checkpoints pelo MESMO denominador (o maior count),
// não pelo total de cada um.
func TestFunnelSharedDenominator(t *testing.T) {
	leads := []entity.Lead{
		{Day1Sent: true, Day2Sent: true},
		{Day1Sent: true, Day2Sent: true},
		{Day1Sent: true},
		{Day1Sent: true},
	}

	m := Aggregate(leads)

	assert.Equal(t, "Day 1 Sent", m.Funnel[0].Name)
	assert.Equal(t, 4, m.Funnel[0].Count)
	assert.Equal(t, 100.0, m.Funnel[0].Percentage)

	assert.Equal(t, "Day 2 Sent", m.Funnel[1].Name)
	assert.Equal(t, 2, m.Funnel[1].Count)
	assert.Equal(t, 50.0, m.Funnel[1].Percentage)

	// subir o count de replied não mexe no percentual do day 2
	// enquanto replied não virar o novo máximo
	leads = append(leads, entity.Lead{Replied: true})
	m = Aggregate(leads)
	assert.Equal(t, 50.0, m.Funnel[1].Percentage)
	assert.Equal(t, 25.0, m.Funnel[4].Percentage) // replied: 1/4
}

func TestFunnelDenominatorIsMaxCheckpoint(t *testing.T) {
	leads := []entity.Lead{
		{Day1Sent: true},
		{Day1Sent: true},
		{Replied: true},
	}

	m := Aggregate(leads)

	// máximo entre os seis checkpoints é 2 (day 1), não o total de leads (3)
	assert.Equal(t, 100.0, m.Funnel[0].Percentage)
	assert.Equal(t, 50.0, m.Funnel[4].Percentage) // replied: 1/2
}

func TestGroupBreakdownBucketsAndOrder(t *testing.T) {
	leads := []entity.Lead{
		{Industry: "SaaS"},
		{Industry: "SaaS"},
		{Industry: "Fintech"},
		{Industry: ""},
	}

	out := GroupBreakdown(leads, func(l *entity.Lead) string { return l.Industry })

	assert.Len(t, out, 3)
	assert.Equal(t, "SaaS", out[0].Name)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, 50.0, out[0].Percentage)

	names := []string{out[1].Name, out[2].Name}
	assert.Contains(t, names, "Fintech")
	assert.Contains(t, names, "Unknown")
	assert.Equal(t, 25.0, out[1].Percentage)
}

func TestGroupBreakdownEmptySubset(t *testing.T) {
	out := GroupBreakdown(nil, func(l *entity.Lead) string { return l.Industry })
	assert.Empty(t, out)
}

func TestAggregateBookedFiltersSubset(t *testing.T) {
	leads := []entity.Lead{
		{Booked: true, Industry: "SaaS", LeadSource: "cold-email"},
		{Booked: true, Industry: "", LeadSource: "linkedin"},
		{Booked: false, Industry: "SaaS"},
	}

	out := AggregateBooked(leads)

	assert.Equal(t, 2, out.TotalBooked)
	assert.Len(t, out.ByIndustry, 2)
	assert.Equal(t, 50.0, out.ByIndustry[0].Percentage)
	assert.Len(t, out.BySource, 2)
}
