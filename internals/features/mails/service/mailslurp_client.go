// file: internals/features/mails/service/mailslurp_client.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

type MailSlurpConfig struct {
	APIKey       string
	BaseURL      string
	CustomDomain string
	DomainID     string
	Timeout      time.Duration
}

type MailSlurpClient struct {
	cfg   MailSlurpConfig
	http  *http.Client
	randN func(int) int
}

func NewMailSlurpClient(cfg MailSlurpConfig) *MailSlurpClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &MailSlurpClient{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		randN: rand.Intn,
	}
}

// NewProvisioner returns a MailSlurp client, or a disabled provisioner when
// no API key is set.
func NewProvisioner(cfg MailSlurpConfig) MailboxProvisioner {
	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Println("[INFO] MAILSLURP_API_KEY not set, mailbox provisioning disabled")
		return DisabledProvisioner{Domain: cfg.CustomDomain, ID: cfg.DomainID}
	}
	return NewMailSlurpClient(cfg)
}

func (m *MailSlurpClient) CustomDomain() string { return m.cfg.CustomDomain }
func (m *MailSlurpClient) DomainID() string { return m.cfg.DomainID }

type inboxPayload struct {
	EmailAddress string `json:"emailAddress,omitempty"`
	DomainID     string `json:"domainId,omitempty"`
	Name         string `json:"name,omitempty"`
}

type inboxResult struct {
	ID           string `json:"id"`
	EmailAddress string `json:"emailAddress"`
}

// CreateInbox tries the name based address first, then birthdate variants,
// then a random suffix, and finally a plain inbox on MailSlurp's own domain.
func (m *MailSlurpClient) CreateInbox(ctx context.Context, nameHint, birthdate string) (Inbox, error) {
	prefix := LocalPartFromName(nameHint, m.randN)

	candidates := []string{}
	if prefix != "" {
		candidates = append(candidates, prefix)
		candidates = append(candidates, BirthdateCombos(prefix, birthdate)...)
		candidates = append(candidates, fmt.Sprintf("%s%d", prefix, m.randN(9999)+1))
	} else {
		candidates = append(candidates, fmt.Sprintf("user%d", m.randN(99999)+1))
	}

	for _, local := range candidates {
		if err := ctx.Err(); err != nil {
			return Inbox{}, err
		}
		addr := local + "@" + m.cfg.CustomDomain
		if in, ok := m.tryAddress(ctx, addr); ok {
			log.Printf("[INFO] mailslurp inbox created address=%s", in.EmailAddress)
			return in, nil
		}
	}

	log.Printf("[WARN] mailslurp custom domain rejected every candidate for %q, using default inbox", prefix)
	res, status, err := m.createInbox(ctx, inboxPayload{Name: "Student inbox"})
	if err != nil {
		return Inbox{}, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return Inbox{}, fmt.Errorf("mailslurp create inbox: status %d", status)
	}
	return Inbox{ID: res.ID, EmailAddress: res.EmailAddress}, nil
}

// tryAddress asks for addr with the domain id, then without it. MailSlurp
// sometimes answers 201 with a different address; that counts as a miss.
func (m *MailSlurpClient) tryAddress(ctx context.Context, addr string) (Inbox, bool) {
	for _, p := range []inboxPayload{
		{EmailAddress: addr, DomainID: m.cfg.DomainID},
		{EmailAddress: addr},
	} {
		res, status, err := m.createInbox(ctx, p)
		if err != nil {
			log.Printf("[WARN] mailslurp create %s: %v", addr, err)
			continue
		}
		if status == http.StatusCreated && strings.EqualFold(res.EmailAddress, addr) {
			return Inbox{ID: res.ID, EmailAddress: res.EmailAddress}, true
		}
	}
	return Inbox{}, false
}

func (m *MailSlurpClient) createInbox(ctx context.Context, p inboxPayload) (inboxResult, int, error) {
	body, err := sonic.Marshal(p)
	if err != nil {
		return inboxResult{}, 0, err
	}
	resp, err := m.do(ctx, http.MethodPost, "/inboxes", bytes.NewReader(body))
	if err != nil {
		return inboxResult{}, 0, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return inboxResult{}, resp.StatusCode, nil
	}
	var out inboxResult
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return inboxResult{}, resp.StatusCode, fmt.Errorf("mailslurp decode inbox: %w", err)
	}
	return out, resp.StatusCode, nil
}

// VerifyDomain reports whether the configured domain id resolves.
func (m *MailSlurpClient) VerifyDomain(ctx context.Context) (bool, error) {
	resp, err := m.do(ctx, http.MethodGet, "/domains/"+m.cfg.DomainID, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK, nil
}

func (m *MailSlurpClient) Health(ctx context.Context) error {
	resp, err := m.do(ctx, http.MethodGet, "/inboxes?size=1", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mailslurp health: status %d", resp.StatusCode)
	}
	return nil
}

func (m *MailSlurpClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, m.cfg.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", m.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return m.http.Do(req)
}
