package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// NewWelcomeJob builds the job sent after a successful registration.
func NewWelcomeJob(to, name, appName string) EmailJob {
	return EmailJob{
		To:       to,
		Template: "welcome",
		Data: map[string]any{
			"Name":    name,
			"Email":   to,
			"AppName": appName,
		},
	}
}
