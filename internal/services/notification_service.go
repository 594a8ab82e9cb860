// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"gorm.io/gorm"

	"github.com/couturehub/couture-backend/internal/config"
	"github.com/couturehub/couture-backend/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// Order notifications

func (s *NotificationService) SendOrderConfirmation(order *models.Order) error {
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	data := map[string]interface{}{
		"Username":          user.Username,
		"ModelName":         order.Model.Name,
		"WorkshopName":      order.Workshop.Name,
		"TotalPrice":        order.TotalPrice,
		"EstimatedDelivery": order.EstimatedDelivery.Format("2 January 2006"),
		"OrderURL":          fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
	}

	subject := "Order Confirmation - " + order.Model.Name
	tmpl := s.getEmailTemplate("order_confirmation")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

func (s *NotificationService) SendOrderStatusUpdate(order *models.Order) error {
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	data := map[string]interface{}{
		"Username":  user.Username,
		"ModelName": order.Model.Name,
		"Status":    order.Status,
		"OrderURL":  fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
	}

	subject := fmt.Sprintf("Order Update - %s", order.Model.Name)
	tmpl := s.getEmailTemplate("order_status_update")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// Inventory notifications

func (s *NotificationService) SendLowStockAlert(material *models.Material) error {
	// Low stock alerts go to every admin account
	var admins []models.User
	if err := s.db.Where("user_type = ? AND status = ?", models.UserTypeAdmin, models.UserStatusActive).
		Find(&admins).Error; err != nil {
		return fmt.Errorf("failed to fetch admins: %w", err)
	}

	data := map[string]interface{}{
		"MaterialName": material.Name,
		"SKU":          material.SKU,
		"CurrentStock": material.CurrentStock,
		"MinLevel":     material.MinStockLevel,
		"Unit":         material.Unit,
	}

	subject := "Low Stock Alert - " + material.Name
	tmpl := s.getEmailTemplate("low_stock_alert")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	for _, admin := range admins {
		if err := s.sendEmail(admin.Email, subject, body); err != nil {
			return err
		}
	}

	return nil
}

// Helper methods

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		fmt.Printf("Email would be sent to %s: %s\n", to, subject)
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(name string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"order_confirmation": {
			Subject: "Order Confirmation",
			Body: `<h2>Thank you for your order, {{.Username}}!</h2>
<p>Your order for <strong>{{.ModelName}}</strong> has been placed with {{.WorkshopName}}.</p>
<p>Total: {{.TotalPrice}} &middot; Estimated delivery: {{.EstimatedDelivery}}</p>
<p><a href="{{.OrderURL}}">View your order</a></p>`,
		},
		"order_status_update": {
			Subject: "Order Update",
			Body: `<h2>Hello {{.Username}},</h2>
<p>Your order for <strong>{{.ModelName}}</strong> is now <strong>{{.Status}}</strong>.</p>
<p><a href="{{.OrderURL}}">View your order</a></p>`,
		},
		"low_stock_alert": {
			Subject: "Low Stock Alert",
			Body: `<h2>Low stock: {{.MaterialName}} ({{.SKU}})</h2>
<p>Current stock is {{.CurrentStock}} {{.Unit}}, at or below the minimum of {{.MinLevel}} {{.Unit}}.</p>`,
		},
	}

	if tmpl, ok := templates[name]; ok {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
