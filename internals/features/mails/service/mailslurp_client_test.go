package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

// fakeMailSlurp accepts only the addresses in allowed; anything else gets a
// random address back, the way MailSlurp ignores unusable requests.
type fakeMailSlurp struct {
	mu      sync.Mutex
	allowed map[string]bool
	asked   []string
}

func (f *fakeMailSlurp) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/inboxes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"content":[]}`))
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var p inboxPayload
		require.NoError(t, sonic.Unmarshal(raw, &p))

		f.mu.Lock()
		f.asked = append(f.asked, p.EmailAddress)
		ok := f.allowed[p.EmailAddress]
		f.mu.Unlock()

		addr := "abc123@mailslurp.biz"
		if ok {
			addr = p.EmailAddress
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"inbox-1","emailAddress":"` + addr + `"}`))
	})
	mux.HandleFunc("/domains/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/good-domain") {
			_, _ = w.Write([]byte(`{"domain":"student-portal.in"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeMailSlurp, domainID string) *MailSlurpClient {
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	c := NewMailSlurpClient(MailSlurpConfig{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		CustomDomain: "student-portal.in",
		DomainID:     domainID,
	})
	c.randN = fixedRand(6)
	return c
}

func TestCreateInboxPrefersNameAddress(t *testing.T) {
	f := &fakeMailSlurp{allowed: map[string]bool{"asha7@student-portal.in": true}}
	c := newTestClient(t, f, "good-domain")

	in, err := c.CreateInbox(context.Background(), "Asha", "")
	require.NoError(t, err)
	assert.Equal(t, "asha7@student-portal.in", in.EmailAddress)
	assert.Equal(t, "inbox-1", in.ID)
	assert.Len(t, f.asked, 1)
}

func TestCreateInboxFallsBackToBirthdate(t *testing.T) {
	f := &fakeMailSlurp{allowed: map[string]bool{"asha70803@student-portal.in": true}}
	c := newTestClient(t, f, "good-domain")

	in, err := c.CreateInbox(context.Background(), "Asha", "15/08/2003")
	require.NoError(t, err)
	assert.Equal(t, "asha70803@student-portal.in", in.EmailAddress)
	// name address twice, first combo twice, then the hit
	assert.Equal(t, []string{
		"asha7@student-portal.in", "asha7@student-portal.in",
		"asha71503@student-portal.in", "asha71503@student-portal.in",
		"asha70803@student-portal.in",
	}, f.asked)
}

func TestCreateInboxDefaultInbox(t *testing.T) {
	f := &fakeMailSlurp{allowed: map[string]bool{}}
	c := newTestClient(t, f, "good-domain")

	in, err := c.CreateInbox(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "abc123@mailslurp.biz", in.EmailAddress)
	assert.Equal(t, "user7@student-portal.in", f.asked[0])
	assert.Equal(t, "", f.asked[len(f.asked)-1])
}

func TestVerifyDomainAndHealth(t *testing.T) {
	f := &fakeMailSlurp{}
	ok, err := newTestClient(t, f, "good-domain").VerifyDomain(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = newTestClient(t, f, "missing").VerifyDomain(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, newTestClient(t, f, "good-domain").Health(context.Background()))
}

func TestNewProvisionerWithoutKey(t *testing.T) {
	p := NewProvisioner(MailSlurpConfig{CustomDomain: "student-portal.in", DomainID: "d"})
	_, err := p.CreateInbox(context.Background(), "Asha", "")
	assert.ErrorIs(t, err, helper.ErrUnavailable)
	assert.Equal(t, "student-portal.in", p.CustomDomain())
}
