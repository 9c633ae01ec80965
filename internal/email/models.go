package email

// SendEmailRequest is a request to send an HTML email
type SendEmailRequest struct {
	FromAddress string
	ToAddress   string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Attachment is a file attached to an outgoing email
type Attachment struct {
	Filename string
	Content  []byte
}

// SendEmailResponse is the outcome of an email send
type SendEmailResponse struct {
	MessageID string `json:"message_id,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}
