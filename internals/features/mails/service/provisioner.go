package service

import (
	"context"

	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

type Inbox struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// MailboxProvisioner creates throwaway inboxes for students. It is built
// once at startup and handed to the mail controller.
type MailboxProvisioner interface {
	CreateInbox(ctx context.Context, nameHint, birthdate string) (Inbox, error)
	VerifyDomain(ctx context.Context) (bool, error)
	Health(ctx context.Context) error
	CustomDomain() string
	DomainID() string
}

// DisabledProvisioner stands in when no API key is configured.
type DisabledProvisioner struct {
	Domain string
	ID     string
}

func (d DisabledProvisioner) unavailable() error {
	return helper.Errorf(helper.ErrUnavailable, "Mailbox provisioning is not configured")
}

func (d DisabledProvisioner) CreateInbox(context.Context, string, string) (Inbox, error) {
	return Inbox{}, d.unavailable()
}

func (d DisabledProvisioner) VerifyDomain(context.Context) (bool, error) {
	return false, d.unavailable()
}

func (d DisabledProvisioner) Health(context.Context) error { return d.unavailable() }
func (d DisabledProvisioner) CustomDomain() string { return d.Domain }
func (d DisabledProvisioner) DomainID() string { return d.ID }
