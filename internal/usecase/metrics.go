package usecase

import (
	"sort"

	"github.com/spectix11/ai-sdr/internal/entity"
)

type FunnelStep struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type DashboardMetrics struct {
	TotalLeads      int          `json:"total_leads"`
	TotalEmailsSent int          `json:"total_emails_sent"`
	TotalReplied    int          `json:"total_replied"`
	TotalBooked     int          `json:"total_booked"`
	Funnel          []FunnelStep `json:"funnel"`
}

// Aggregate reduces a lead collection into the dashboard counters and the
// six-checkpoint funnel (day 1..4 sent, replied, booked).
//
// Funnel percentages share a single denominator — max over the six counts,
// floored at 1 — so the chart keeps its silhouette instead of every bar
// reading 100% of its own total. An empty collection yields zeros, never a
// division by zero.
func Aggregate(leads []entity.Lead) DashboardMetrics {
	m := DashboardMetrics{TotalLeads: len(leads)}

	stepCounts := make([]int, entity.SequenceSteps)
	for i := range leads {
		l := &leads[i]
		for n := 1; n <= entity.SequenceSteps; n++ {
			if l.DaySent(n) {
				stepCounts[n-1]++
			}
			if l.DaySentAt(n) != nil {
				m.TotalEmailsSent++
			}
		}
		if l.Replied {
			m.TotalReplied++
		}
		if l.Booked {
			m.TotalBooked++
		}
	}

	counts := append(stepCounts, m.TotalReplied, m.TotalBooked)
	names := []string{"Day 1 Sent", "Day 2 Sent", "Day 3 Sent", "Day 4 Sent", "Replied", "Booked"}

	denom := 1
	for _, c := range counts {
		if c > denom {
			denom = c
		}
	}

	m.Funnel = make([]FunnelStep, len(counts))
	for i, c := range counts {
		m.Funnel[i] = FunnelStep{
			Name:       names[i],
			Count:      c,
			Percentage: float64(c) / float64(denom) * 100,
		}
	}
	return m
}

type Breakdown struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GroupBreakdown groups a subset of leads by key (e.g. industry, lead source)
// and returns {name, count, percentage-of-subset} sorted by count descending.
// Leads with an empty key land in the "Unknown" bucket.
func GroupBreakdown(leads []entity.Lead, key func(*entity.Lead) string) []Breakdown {
	groups := make(map[string]int)
	for i := range leads {
		k := key(&leads[i])
		if k == "" {
			k = "Unknown"
		}
		groups[k]++
	}

	denom := len(leads)
	if denom == 0 {
		denom = 1
	}

	out := make([]Breakdown, 0, len(groups))
	for name, count := range groups {
		out = append(out, Breakdown{
			Name:       name,
			Count:      count,
			Percentage: float64(count) / float64(denom) * 100,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name // desempate estável para o front
	})
	return out
}

// BookedAnalytics é o payload da tela de reuniões marcadas: breakdown dos
// leads com booked=true por indústria e por origem.
type BookedAnalytics struct {
	TotalBooked int         `json:"total_booked"`
	ByIndustry  []Breakdown `json:"by_industry"`
	BySource    []Breakdown `json:"by_source"`
}

func AggregateBooked(leads []entity.Lead) BookedAnalytics {
	booked := make([]entity.Lead, 0, len(leads))
	for i := range leads {
		if leads[i].Booked {
			booked = append(booked, leads[i])
		}
	}

	return BookedAnalytics{
		TotalBooked: len(booked),
		ByIndustry:  GroupBreakdown(booked, func(l *entity.Lead) string { return l.Industry }),
		BySource:    GroupBreakdown(booked, func(l *entity.Lead) string { return l.LeadSource }),
	}
}
