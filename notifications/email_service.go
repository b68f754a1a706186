package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/anjiri1684/stackfit/configs"
	"github.com/anjiri1684/stackfit/models"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

var EmailClient *BrevoService

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Running in log-only mode.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
	}
	log.Println("✅ Email service initialized successfully.")
}

func (s *BrevoService) send(toEmail, toName, subject, htmlContent string) error {
	url := "https://api.brevo.com/v3/smtp/email"

	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("failed to send email via Brevo: %s", string(bodyBytes))
	}

	return nil
}

func SendEmail(toName, toEmail, subject, htmlContent string) {
	if EmailClient == nil {
		log.Printf("Email would be sent to %s: %s", toEmail, subject)
		return
	}

	err := EmailClient.send(toEmail, toName, subject, htmlContent)
	if err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
		return
	}

	log.Printf("✅ Email sent successfully to %s", toEmail)
}

// EmailSender implements services.DueNotificationSender on top of the Brevo
// client. When the email service is unconfigured it degrades to log-only
// sends that still count as delivered.
type EmailSender struct{}

func (EmailSender) SendOverdueNotification(member models.Member, endDate time.Time, daysOverdue int) error {
	subject := "Your Gym Membership Has Expired"
	body := fmt.Sprintf(
		"<h1>Membership Expired</h1><p>Hi %s,</p><p>Your membership expired %d day(s) ago on %s. Please renew to keep access to the gym.</p>",
		member.Name, daysOverdue, endDate.Format("January 2, 2006"),
	)

	if EmailClient == nil {
		log.Printf("Would send overdue notification to %s (%s): expired %d days ago", member.Name, member.Email, daysOverdue)
		return nil
	}
	return EmailClient.send(member.Email, member.Name, subject, body)
}

func (EmailSender) SendRenewalNotification(member models.Member, endDate time.Time, daysUntilRenewal int) error {
	subject := fmt.Sprintf("Your Gym Membership Expires in %d Days", daysUntilRenewal)
	body := fmt.Sprintf(
		"<h1>Renewal Reminder</h1><p>Hi %s,</p><p>Your membership expires in %d day(s) on %s. Renew early so you don't lose any time.</p>",
		member.Name, daysUntilRenewal, endDate.Format("January 2, 2006"),
	)

	if EmailClient == nil {
		log.Printf("Would send renewal notification to %s (%s): expires in %d days", member.Name, member.Email, daysUntilRenewal)
		return nil
	}
	return EmailClient.send(member.Email, member.Name, subject, body)
}
