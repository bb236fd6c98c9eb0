package leadgen

type triggerRequest struct {
	JobTitle    string `json:"jobTitle"`
	CompanySize string `json:"companySize"`
	Keywords    string `json:"keywords,omitempty"`
	Location    string `json:"location,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type triggerResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
