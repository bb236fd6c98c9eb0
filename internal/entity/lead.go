package entity

import (
	"context"
	"errors"
	"time"
)

var ErrEmailAlreadyExists = errors.New("email already exists")
var ErrLeadNotFound = errors.New("lead not found")

// SequenceSteps é fixo: a cadência tem 4 emails (Day 1..4).
const SequenceSteps = 4

type Lead struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	FullName       string `json:"fullname,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	Industry       string `json:"industry,omitempty"`
	CompanySize    string `json:"company_size,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`
	LinkedinURL    string `json:"linkedin_url,omitempty"`
	Username       string `json:"username,omitempty"`

	Stage      string `json:"stage"` // imported, contacted, replied, booked, done
	LeadSource string `json:"lead_source,omitempty"`
	CampaignID string `json:"campaign_id,omitempty"`

	Day1Sent    bool       `json:"day_1_sent"`
	Day1SentAt  *time.Time `json:"day_1_sent_at,omitempty"`
	Day1Subject string     `json:"day_1_subject,omitempty"`
	Day1Body    string     `json:"day_1_body,omitempty"`

	Day2Sent    bool       `json:"day_2_sent"`
	Day2SentAt  *time.Time `json:"day_2_sent_at,omitempty"`
	Day2Subject string     `json:"day_2_subject,omitempty"`
	Day2Body    string     `json:"day_2_body,omitempty"`

	Day3Sent    bool       `json:"day_3_sent"`
	Day3SentAt  *time.Time `json:"day_3_sent_at,omitempty"`
	Day3Subject string     `json:"day_3_subject,omitempty"`
	Day3Body    string     `json:"day_3_body,omitempty"`

	Day4Sent    bool       `json:"day_4_sent"`
	Day4SentAt  *time.Time `json:"day_4_sent_at,omitempty"`
	Day4Subject string     `json:"day_4_subject,omitempty"`
	Day4Body    string     `json:"day_4_body,omitempty"`

	Replied  bool       `json:"replied"`
	Booked   bool       `json:"booked"`
	BookedAt *time.Time `json:"booked_at,omitempty"`

	CreatedAt     time.Time  `json:"created_at"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
	Days          int        `json:"days"`
}

// DaySent reports whether sequence step n (1..4) was sent.
// Out-of-range steps count as not sent.
func (l *Lead) DaySent(n int) bool {
	switch n {
	case 1:
		return l.Day1Sent
	case 2:
		return l.Day2Sent
	case 3:
		return l.Day3Sent
	case 4:
		return l.Day4Sent
	}
	return false
}

// DaySentAt returns the timestamp of sequence step n, nil if never sent.
func (l *Lead) DaySentAt(n int) *time.Time {
	switch n {
	case 1:
		return l.Day1SentAt
	case 2:
		return l.Day2SentAt
	case 3:
		return l.Day3SentAt
	case 4:
		return l.Day4SentAt
	}
	return nil
}

// ViewName identifica qual tela do dashboard está consumindo o repositório.
type ViewName string

const (
	ViewAll     ViewName = "all"
	ViewActive  ViewName = "active"  // em cadência: stage fora de (imported, done), sem reply e sem booking
	ViewReplies ViewName = "replies" // replied=true, booked=false
	ViewBooked  ViewName = "booked"  // booked=true
)

// Matches applies the view's membership predicate in memory. It must agree with
// the WHERE clause the repository uses on fetch, otherwise optimistic removal
// drifts from what a re-fetch would return.
func (v ViewName) Matches(l *Lead) bool {
	switch v {
	case ViewActive:
		return l.Stage != "imported" && l.Stage != "done" && !l.Replied && !l.Booked
	case ViewReplies:
		return l.Replied && !l.Booked
	case ViewBooked:
		return l.Booked
	default:
		return true
	}
}

type LeadRepositoryInterface interface {
	FindAll(ctx context.Context, view ViewName) ([]Lead, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Upsert(ctx context.Context, lead *Lead) error
}
