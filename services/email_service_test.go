package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"etkinlik-api/config"

	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m...)
	return nil
}

func newTestEmailService(sender Sender) (*EmailService, *time.Time) {
	es := NewEmailServiceWithSender(config.SMTPConfig{FromEmail: "noreply@example.com", FromName: "Etkinlik"}, 10*time.Minute, sender, quietLogger())
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	es.now = func() time.Time { return clock }
	return es, &clock
}

func TestAdminCodeIsSingleUse(t *testing.T) {
	sender := &recordingSender{}
	es, _ := newTestEmailService(sender)

	code, err := es.SendAdminCode("Admin@Example.com")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("code %q is not 6 digits", code)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if got := sender.sent[0].GetHeader("To"); len(got) != 1 || got[0] != "Admin@Example.com" {
		t.Errorf("To = %v", got)
	}

	if es.VerifyCode(PurposeEmailVerify, "admin@example.com", code) {
		t.Error("admin code verified for another purpose")
	}
	if !es.VerifyCode(PurposeAdminLogin, " admin@example.com ", code) {
		t.Fatal("valid code rejected")
	}
	if es.VerifyCode(PurposeAdminLogin, "admin@example.com", code) {
		t.Error("code verified twice")
	}
}

func TestCodeExpires(t *testing.T) {
	es, clock := newTestEmailService(nil)

	code, err := es.SendVerificationEmail("ayse@example.com", "Ayşe")
	if err != nil {
		t.Fatalf("send without SMTP: %v", err)
	}
	if es.PeekCode(PurposeEmailVerify, "ayse@example.com") != code {
		t.Fatal("code not stored")
	}

	*clock = clock.Add(11 * time.Minute)
	if es.PeekCode(PurposeEmailVerify, "ayse@example.com") != "" {
		t.Error("expired code still visible")
	}
	if es.VerifyCode(PurposeEmailVerify, "ayse@example.com", code) {
		t.Error("expired code verified")
	}
}

func TestWrongCodeKeepsOriginalValid(t *testing.T) {
	es, _ := newTestEmailService(nil)

	code, _ := es.SendVerificationEmail("ayse@example.com", "Ayşe")
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	if es.VerifyCode(PurposeEmailVerify, "ayse@example.com", wrong) {
		t.Fatal("wrong code accepted")
	}
	if !es.VerifyCode(PurposeEmailVerify, "ayse@example.com", code) {
		t.Error("original code no longer valid after a miss")
	}
}

func TestPurgeDropsUsedAndExpired(t *testing.T) {
	es, clock := newTestEmailService(nil)

	used, _ := es.SendAdminCode("a@example.com")
	es.VerifyCode(PurposeAdminLogin, "a@example.com", used)
	es.SendAdminCode("b@example.com")

	if n := es.purge(); n != 1 {
		t.Errorf("purged %d, want 1", n)
	}
	*clock = clock.Add(time.Hour)
	if n := es.purge(); n != 1 {
		t.Errorf("purged %d after expiry, want 1", n)
	}
}

func TestSendFailureIsReported(t *testing.T) {
	es, _ := newTestEmailService(&recordingSender{err: errors.New("smtp down")})

	if _, err := es.SendAdminCode("admin@example.com"); err == nil {
		t.Fatal("expected send error")
	}
}

// htmlPart returns the text/html alternative of m with quoted-printable
// soft breaks and "=3D" undone, which is enough to search markup in it.
func htmlPart(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	raw := strings.NewReplacer("=\r\n", "", "=3D", "=").Replace(buf.String())
	i := strings.Index(raw, "Content-Type: text/html")
	if i < 0 {
		t.Fatalf("no html part in %q", raw)
	}
	return raw[i:]
}

func TestUserNameIsEscapedInMail(t *testing.T) {
	sender := &recordingSender{}
	es, _ := newTestEmailService(sender)
	name := `<a href="https://evil.example/login">Giriş</a>`

	if _, err := es.SendVerificationEmail("kurban@example.com", name); err != nil {
		t.Fatalf("send verification: %v", err)
	}
	if err := es.SendWelcomeEmail("kurban@example.com", name); err != nil {
		t.Fatalf("send welcome: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.sent))
	}
	for i, m := range sender.sent {
		body := htmlPart(t, m)
		if strings.Contains(body, `<a href="https://evil.example`) {
			t.Errorf("message %d carries the raw link", i)
		}
		if !strings.Contains(body, "&lt;a href=&#34;https://evil.example/login&#34;&gt;") {
			t.Errorf("message %d does not show the escaped name", i)
		}
	}
}

func TestDelivers(t *testing.T) {
	if es, _ := newTestEmailService(nil); es.Delivers() {
		t.Error("nil sender reported as delivering")
	}
	if es, _ := newTestEmailService(&recordingSender{}); !es.Delivers() {
		t.Error("configured sender reported as not delivering")
	}
}
