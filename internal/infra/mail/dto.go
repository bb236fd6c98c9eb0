package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

type BookedEmailData struct {
	LeadName string
	Company  string
}
