package usecase

import "context"

type GenerateLeadsInput struct {
	JobTitle    string `json:"jobTitle"`
	CompanySize string `json:"companySize"`
	Keywords    string `json:"keywords,omitempty"`
	Location    string `json:"location,omitempty"`
}

type GenerateLeadsOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LeadGenTrigger is the outbound webhook that kicks the external
// lead-generation flow. One-shot: no retry, no polling.
type LeadGenTrigger interface {
	Trigger(ctx context.Context, input GenerateLeadsInput) (string, error)
}

type NotificationSender interface {
	SendBookedNotification(to, leadName, company string) error
}
