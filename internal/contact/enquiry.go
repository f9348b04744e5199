package contact

import (
	"strings"
	"unicode/utf8"

	"helicharter-portal/internal/domain"
)

const maxMessageLength = 5000

// Enquiry is a contact form submission from the marketing pages
type Enquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Tour    string `json:"tour,omitempty"`
	Message string `json:"message"`
}

func (e *Enquiry) Validate() error {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(strings.ToLower(e.Email))
	e.Phone = strings.TrimSpace(e.Phone)
	e.Tour = strings.TrimSpace(e.Tour)
	e.Message = strings.TrimSpace(e.Message)

	if e.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if err := domain.ValidateEmail(e.Email); err != nil {
		return err
	}
	if e.Message == "" {
		return domain.ValidationError{Field: "message", Msg: "message is required"}
	}
	if utf8.RuneCountInString(e.Message) > maxMessageLength {
		return domain.ValidationError{Field: "message", Msg: "message is too long"}
	}
	return nil
}

func (e *Enquiry) subject() string {
	if e.Tour != "" {
		return "Charter enquiry: " + e.Tour
	}
	return "Charter enquiry from " + e.Name
}

func (e *Enquiry) body() string {
	var b strings.Builder
	b.WriteString("Name: " + e.Name + "\n")
	b.WriteString("Email: " + e.Email + "\n")
	if e.Phone != "" {
		b.WriteString("Phone: " + e.Phone + "\n")
	}
	if e.Tour != "" {
		b.WriteString("Tour: " + e.Tour + "\n")
	}
	b.WriteString("\n" + e.Message + "\n")
	return b.String()
}
