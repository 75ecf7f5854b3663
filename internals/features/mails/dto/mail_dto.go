package dto

import "strings"

type CreateInboxRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Birthdate    string `json:"birthdate" validate:"required"`
	EmailAddress string `json:"email_address" validate:"omitempty,email"`
}

func (r *CreateInboxRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Birthdate = strings.TrimSpace(r.Birthdate)
	r.EmailAddress = strings.ToLower(strings.TrimSpace(r.EmailAddress))
}

type CreateInboxResponse struct {
	Name             string `json:"name"`
	EmailAddress     string `json:"email_address"`
	MailSlurpInboxID string `json:"mailslurp_inbox_id"`
	MailSlurpEmail   string `json:"mailslurp_email"`
}

type VerifyDomainResponse struct {
	DomainVerified bool   `json:"domain_verified"`
	CustomDomain   string `json:"custom_domain"`
	DomainID       string `json:"domain_id"`
}
