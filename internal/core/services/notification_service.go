package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// NotificationService pushes short event messages to an office chat webhook.
// Disabled (no-op) unless NOTIFY_WEBHOOK_URL is set. Callers invoke the
// Notify* helpers in a goroutine; a failed push is logged and dropped, it
// never affects the triggering write.
type NotificationService struct {
	webhookURL string
	client     *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{
		webhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a webhook is configured
func (s *NotificationService) Enabled() bool {
	return s.webhookURL != ""
}

// Send posts a text message to the configured webhook
func (s *NotificationService) Send(message string) error {
	if !s.Enabled() {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// NotifyCheckIn announces a successful check-in
func (s *NotificationService) NotifyCheckIn(fullName string, at time.Time) {
	msg := fmt.Sprintf("🟢 %s checked in at %s", fullName, at.Format("15:04"))
	if err := s.Send(msg); err != nil {
		log.Printf("❌ Failed to send check-in notification: %v", err)
	}
}

// NotifyCheckOut announces a successful check-out
func (s *NotificationService) NotifyCheckOut(fullName string, at time.Time) {
	msg := fmt.Sprintf("🔵 %s checked out at %s", fullName, at.Format("15:04"))
	if err := s.Send(msg); err != nil {
		log.Printf("❌ Failed to send check-out notification: %v", err)
	}
}

// NotifyRequestResolved announces an attendance correction decision
func (s *NotificationService) NotifyRequestResolved(fullName string, targetDate time.Time, status string) {
	msg := fmt.Sprintf("📋 Attendance request of %s for %s was %s", fullName, targetDate.Format("2006-01-02"), status)
	if err := s.Send(msg); err != nil {
		log.Printf("❌ Failed to send request notification: %v", err)
	}
}

// NotifyMissingCheckOut reminds an employee who never checked out today
func (s *NotificationService) NotifyMissingCheckOut(fullName string, workDate time.Time) {
	msg := fmt.Sprintf("⏰ %s has not checked out for %s yet", fullName, workDate.Format("2006-01-02"))
	if err := s.Send(msg); err != nil {
		log.Printf("❌ Failed to send missing check-out reminder: %v", err)
	}
}
