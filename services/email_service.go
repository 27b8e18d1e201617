// File: /services/email_service.go
package services

import (
	"crypto/rand"
	"fmt"
	"html"
	"math/big"
	"strings"
	"sync"
	"time"

	"etkinlik-api/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Code purposes. A code issued for one purpose never verifies another.
const (
	PurposeAdminLogin  = "admin-login"
	PurposeEmailVerify = "email-verify"
)

const codeLength = 6

// Sender delivers a composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	cfg    config.SMTPConfig
	ttl    time.Duration
	sender Sender
	log    *logrus.Logger

	// In-memory storage for one-time codes, keyed by purpose and address
	codes map[string]VerificationCode
	mutex sync.RWMutex
	now   func() time.Time
}

type VerificationCode struct {
	Code      string
	Email     string
	ExpiresAt time.Time
	Used      bool
}

func NewEmailService(cfg config.SMTPConfig, codeTTL time.Duration, log *logrus.Logger) *EmailService {
	var sender Sender
	if cfg.Host != "" {
		sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return NewEmailServiceWithSender(cfg, codeTTL, sender, log)
}

// NewEmailServiceWithSender uses sender for delivery. A nil sender only logs
// outgoing mail, which is what local setups without SMTP get.
func NewEmailServiceWithSender(cfg config.SMTPConfig, codeTTL time.Duration, sender Sender, log *logrus.Logger) *EmailService {
	return &EmailService{
		cfg:    cfg,
		ttl:    codeTTL,
		sender: sender,
		log:    log,
		codes:  make(map[string]VerificationCode),
		now:    time.Now,
	}
}

func codeKey(purpose, email string) string {
	return purpose + ":" + strings.ToLower(strings.TrimSpace(email))
}

// Generate a random 6-digit code
func generateCode() (string, error) {
	const digits = "0123456789"
	code := make([]byte, codeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}
	return string(code), nil
}

// Delivers reports whether mail actually leaves the process.
func (es *EmailService) Delivers() bool {
	return es.sender != nil
}

// issueCode stores a fresh code for purpose/email, replacing any earlier one.
func (es *EmailService) issueCode(purpose, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	es.mutex.Lock()
	es.codes[codeKey(purpose, email)] = VerificationCode{
		Code:      code,
		Email:     email,
		ExpiresAt: es.now().Add(es.ttl),
	}
	es.mutex.Unlock()
	return code, nil
}

// VerifyCode consumes the code. A code verifies at most once.
func (es *EmailService) VerifyCode(purpose, email, inputCode string) bool {
	key := codeKey(purpose, email)

	es.mutex.Lock()
	defer es.mutex.Unlock()

	stored, exists := es.codes[key]
	entry := es.log.WithFields(logrus.Fields{"email": email, "purpose": purpose})
	switch {
	case !exists:
		entry.Debug("no verification code on record")
		return false
	case stored.Used:
		entry.Debug("verification code already used")
		return false
	case es.now().After(stored.ExpiresAt):
		delete(es.codes, key)
		entry.Debug("verification code expired")
		return false
	case stored.Code != strings.TrimSpace(inputCode):
		entry.Debug("verification code mismatch")
		return false
	}

	stored.Used = true
	es.codes[key] = stored
	return true
}

// PeekCode returns the live code for purpose/email, or "" when there is none.
func (es *EmailService) PeekCode(purpose, email string) string {
	es.mutex.RLock()
	defer es.mutex.RUnlock()

	if code, ok := es.codes[codeKey(purpose, email)]; ok && !code.Used && es.now().Before(code.ExpiresAt) {
		return code.Code
	}
	return ""
}

// CleanupExpiredCodes drops used and expired codes until stop is closed.
func (es *EmailService) CleanupExpiredCodes(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			es.purge()
		case <-stop:
			return
		}
	}
}

func (es *EmailService) purge() int {
	es.mutex.Lock()
	defer es.mutex.Unlock()

	now := es.now()
	removed := 0
	for key, code := range es.codes {
		if now.After(code.ExpiresAt) || code.Used {
			delete(es.codes, key)
			removed++
		}
	}
	if removed > 0 {
		es.log.WithField("removed", removed).Debug("cleaned up verification codes")
	}
	return removed
}

// SendAdminCode mails the one-time admin login code.
func (es *EmailService) SendAdminCode(email string) (string, error) {
	code, err := es.issueCode(PurposeAdminLogin, email)
	if err != nil {
		return "", err
	}

	minutes := int(es.ttl.Minutes())
	body := fmt.Sprintf(codeTemplate,
		"Yönetici Girişi",
		"Yönetim paneline giriş için doğrulama kodunuz:",
		code, minutes,
		"Bu girişi siz başlatmadıysanız bu e-postayı dikkate almayın ve şifrenizi değiştirin.")
	text := fmt.Sprintf("Yönetim paneli doğrulama kodunuz: %s\nKod %d dakika geçerlidir.\n", code, minutes)

	if err := es.send(email, "Etkinlik Rehberi - Yönetici Doğrulama Kodu", text, body); err != nil {
		return "", err
	}
	return code, nil
}

// SendVerificationEmail mails the code that confirms a user's address.
func (es *EmailService) SendVerificationEmail(email, name string) (string, error) {
	code, err := es.issueCode(PurposeEmailVerify, email)
	if err != nil {
		return "", err
	}

	minutes := int(es.ttl.Minutes())
	body := fmt.Sprintf(codeTemplate,
		"E-posta Doğrulama",
		fmt.Sprintf("Merhaba %s, hesabınızı tamamlamak için doğrulama kodunuz:", html.EscapeString(name)),
		code, minutes,
		"Bu hesabı siz oluşturmadıysanız bu e-postayı dikkate almayın.")
	text := fmt.Sprintf("Merhaba %s,\n\nDoğrulama kodunuz: %s\nKod %d dakika geçerlidir.\n", name, code, minutes)

	if err := es.send(email, "Etkinlik Rehberi - E-posta Doğrulama", text, body); err != nil {
		return "", err
	}
	return code, nil
}

// SendWelcomeEmail is sent once the address is verified.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	text := fmt.Sprintf("Merhaba %s,\n\nHesabınız doğrulandı. Şehrimizdeki etkinlikleri takip etmeye hemen başlayabilirsiniz.\n", name)
	body := fmt.Sprintf(welcomeTemplate, html.EscapeString(name))
	return es.send(email, "Etkinlik Rehberi'ne Hoş Geldiniz", text, body)
}

func (es *EmailService) send(to, subject, text, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.cfg.FromEmail, es.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", body)

	if es.sender == nil {
		es.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Warn("SMTP not configured, mail not sent")
		return nil
	}
	if err := es.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	es.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("email sent")
	return nil
}

const codeTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #c0392b; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .code { font-size: 32px; font-weight: bold; color: #c0392b; letter-spacing: 8px; text-align: center; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Etkinlik Rehberi</h1><p>%s</p></div>
        <div class="content">
            <p>%s</p>
            <div class="code">%s</div>
            <p><small>Kod %d dakika geçerlidir ve yalnızca bir kez kullanılabilir.</small></p>
            <p>%s</p>
        </div>
    </div>
</body>
</html>`

const welcomeTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hoş geldiniz, %s!</h2>
    <p>Hesabınız doğrulandı. Konserler, sergiler ve atölyeler artık bir dokunuş uzağınızda.</p>
    <p>Bu otomatik bir e-postadır, lütfen yanıtlamayın.</p>
</body>
</html>`
