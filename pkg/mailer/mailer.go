package mailer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quickbite/pkg/logger"

	"go.uber.org/zap"
)

// Mailer posts transactional mail to an HTTP mail API. Sends are single-shot:
// no retry, no queue. Callers on the register/approve/reject paths swallow the
// returned error so the primary action still succeeds.
type Mailer struct {
	APIKey   string
	Endpoint string
	From     string
	Client   *http.Client
}

func New(apiKey, endpoint, from string) *Mailer {
	return &Mailer{
		APIKey:   apiKey,
		Endpoint: endpoint,
		From:     from,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type payload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Mailer) Send(to, subject, html string) error {
	if m.APIKey == "" {
		return errors.New("mail api key not configured")
	}

	body, err := json.Marshal(payload{From: m.From, To: []string{to}, Subject: subject, HTML: html})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("mail api returned %d", res.StatusCode)
	}
	return nil
}

// SendBestEffort logs a failed send and moves on.
func (m *Mailer) SendBestEffort(to, subject, html string) {
	if err := m.Send(to, subject, html); err != nil {
		logger.L().Warn("mail send failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
	}
}

func (m *Mailer) SendWelcome(to string) {
	m.SendBestEffort(to, "Welcome to QuickBite",
		"<p>Your QuickBite account is ready. Order ahead, skip the line.</p>")
}

func (m *Mailer) SendApproval(to, storeName string) {
	m.SendBestEffort(to, "Your QuickBite store is approved",
		fmt.Sprintf("<p>Your application for <b>%s</b> was approved. Sign in with the staff login to set up your menu.</p>", storeName))
}

func (m *Mailer) SendRejection(to, storeName, reason string) {
	m.SendBestEffort(to, "About your QuickBite application",
		fmt.Sprintf("<p>Your application for <b>%s</b> was not approved.</p><p>Reason: %s</p>", storeName, reason))
}
