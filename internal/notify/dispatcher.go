// Package notify delivers the order notification emails. Dispatch is
// fire-and-forget: jobs run on a worker pool after the triggering transaction
// commits, and every failure is logged and swallowed so it can never affect
// the response already returned to the caller.
package notify

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/gustavopprado/ecommerce-fgv/config"
	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
	"github.com/gustavopprado/ecommerce-fgv/internal/report"
	"github.com/gustavopprado/ecommerce-fgv/pkg/common"
)

// Event topics published after the creating/editing transaction commits.
const (
	TopicOrderCreated = "order.created"
	TopicOrderEdited  = "order.edited"
)

// ErrNoRecipient is returned by SendFullReport when no report recipient is
// configured. Order notifications log and drop in the same situation.
var ErrNoRecipient = errors.New("report recipient not configured")

// Sender delivers a composed message. The production implementation dials
// SMTP; tests substitute a capture fake.
type Sender interface {
	Send(m *gomail.Message) error
}

// SettingsReader exposes the runtime settings consulted per delivery, so the
// report.RecipientOverride knob takes effect without a restart.
type SettingsReader interface {
	GetSettingsStringValue(category, key string) string
}

type smtpSender struct {
	dialer *gomail.Dialer
}

func (s *smtpSender) Send(m *gomail.Message) error {
	return s.dialer.DialAndSend(m)
}

type Dispatcher struct {
	cfg      *config.AppConfig
	repo     *ordering.Repository
	builder  *report.Builder
	pool     *ants.Pool
	sender   Sender
	settings SettingsReader
}

func NewDispatcher(cfg *config.AppConfig, repo *ordering.Repository, builder *report.Builder, pool *ants.Pool, settings SettingsReader) *Dispatcher {
	smtp := cfg.Smtp
	return &Dispatcher{
		cfg:      cfg,
		repo:     repo,
		builder:  builder,
		pool:     pool,
		sender:   &smtpSender{dialer: gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)},
		settings: settings,
	}
}

// OverrideSender replaces the mail transport (used in tests).
func (d *Dispatcher) OverrideSender(s Sender) {
	d.sender = s
}

// Subscribe registers the dispatcher on the application event bus.
func (d *Dispatcher) Subscribe(bus EventBus.Bus) error {
	if err := bus.SubscribeAsync(TopicOrderCreated, d.OrderCreated, false); err != nil {
		return err
	}
	return bus.SubscribeAsync(TopicOrderEdited, d.OrderEdited, false)
}

// OrderCreated queues the order-created notification.
func (d *Dispatcher) OrderCreated(orderID int64) {
	d.submit(func() { d.sendOrderCreated(orderID) })
}

// OrderEdited queues the order-edited notification.
func (d *Dispatcher) OrderEdited(orderID int64, editNote string) {
	d.submit(func() { d.sendOrderEdited(orderID, editNote) })
}

func (d *Dispatcher) submit(task func()) {
	if err := d.pool.Submit(task); err != nil {
		zap.L().Error("notification task rejected", zap.Error(err))
	}
}

// recipient resolves the delivery address: the RecipientOverride setting
// first, then the configured report recipient, then the SMTP username.
func (d *Dispatcher) recipient() string {
	if d.settings != nil {
		if v := strings.TrimSpace(d.settings.GetSettingsStringValue("report", "RecipientOverride")); v != "" {
			return v
		}
	}
	return common.IfEmptyStr(d.cfg.Report.Recipient, d.cfg.Smtp.Username)
}

func (d *Dispatcher) from() string {
	return common.IfEmptyStr(d.cfg.Smtp.From, d.cfg.Smtp.Username)
}

func (d *Dispatcher) sendOrderCreated(orderID int64) {
	detail, _, err := d.repo.GetOrderDetail(orderID)
	if err != nil {
		zap.L().Error("order-created mail: load order failed", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	buf, err := d.builder.OrderForm(orderID)
	if err != nil {
		zap.L().Error("order-created mail: build form failed", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	to := d.recipient()
	if to == "" {
		zap.L().Warn("order-created mail skipped: no recipient configured", zap.Int64("order_id", orderID))
		return
	}

	var body strings.Builder
	body.WriteString("<p><strong>New order received on the internal e-commerce.</strong></p>")
	body.WriteString("<p>")
	fmt.Fprintf(&body, "<strong>Order:</strong> #%d<br/>", detail.ID)
	fmt.Fprintf(&body, "<strong>Date:</strong> %s<br/>", detail.OrderDate.Format("02/01/2006 15:04"))
	fmt.Fprintf(&body, "<strong>Employee:</strong> %s (%s)<br/>", detail.EmployeeName, detail.Badge)
	fmt.Fprintf(&body, "<strong>Sector:</strong> %s<br/>", detail.Sector)
	fmt.Fprintf(&body, "<strong>Installments:</strong> %d<br/>", detail.Installments)
	fmt.Fprintf(&body, "<strong>Payroll deduction accepted:</strong> %s<br/>", yesNo(detail.Consent))
	fmt.Fprintf(&body, "<strong>Total:</strong> %s", formatCurrency(detail.Total))
	body.WriteString("</p><p>The order form is attached as xlsx.</p>")

	m := d.newMessage(to, fmt.Sprintf("New order #%d - %s", detail.ID, detail.EmployeeName), body.String())
	attach(m, fmt.Sprintf("order_form_%d.xlsx", detail.ID), buf.Bytes())

	if err := d.sender.Send(m); err != nil {
		zap.L().Error("order-created mail: send failed", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	zap.L().Info("order-created mail sent", zap.Int64("order_id", orderID), zap.String("to", to))
}

func (d *Dispatcher) sendOrderEdited(orderID int64, editNote string) {
	detail, _, err := d.repo.GetOrderDetail(orderID)
	if err != nil {
		zap.L().Error("order-edited mail: load order failed", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	buf, err := d.builder.OrderForm(orderID)
	if err != nil {
		zap.L().Error("order-edited mail: build form failed", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	to := d.recipient()
	if to == "" {
		zap.L().Warn("order-edited mail skipped: no recipient configured", zap.Int64("order_id", orderID))
		return
	}

	var body strings.Builder
	body.WriteString("<p><strong>Order ALTERED on the internal e-commerce.</strong></p>")
	body.WriteString("<p>")
	fmt.Fprintf(&body, "<strong>Order:</strong> #%d<br/>", detail.ID)
	fmt.Fprintf(&body, "<strong>Order date:</strong> %s<br/>", detail.OrderDate.Format("02/01/2006 15:04"))
	fmt.Fprintf(&body, "<strong>Employee:</strong> %s (%s)<br/>", detail.EmployeeName, detail.Badge)
	fmt.Fprintf(&body, "<strong>Sector:</strong> %s<br/>", detail.Sector)
	fmt.Fprintf(&body, "<strong>Current total:</strong> %s<br/>", formatCurrency(detail.Total))
	body.WriteString("</p>")
	if strings.TrimSpace(editNote) != "" {
		note := strings.ReplaceAll(editNote, "\n", "<br/>")
		fmt.Fprintf(&body, "<p><strong>Edit notes:</strong><br/>%s</p>", note)
	} else {
		body.WriteString("<p><em>Edit notes: (not provided)</em></p>")
	}
	body.WriteString("<p>The updated order form is attached as xlsx.</p>")

	m := d.newMessage(to, fmt.Sprintf("Order #%d altered - %s", detail.ID, detail.EmployeeName), body.String())
	attach(m, fmt.Sprintf("order_form_%d_ALTERED.xlsx", detail.ID), buf.Bytes())

	if err := d.sender.Send(m); err != nil {
		zap.L().Error("order-edited mail: send failed", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	zap.L().Info("order-edited mail sent", zap.Int64("order_id", orderID), zap.String("to", to))
}

// SendFullReport builds the full orders report and mails it to the configured
// recipient. Unlike the order notifications this is a synchronous operation
// triggered by an admin, so errors are returned to the caller.
func (d *Dispatcher) SendFullReport() error {
	to := d.recipient()
	if to == "" {
		return ErrNoRecipient
	}
	buf, err := d.builder.FullOrdersReport()
	if err != nil {
		return err
	}

	body := "<p>The full orders report of the internal e-commerce is attached as xlsx.</p>" +
		"<p>This email was generated automatically.</p>"
	m := d.newMessage(to, "Orders report - internal e-commerce", body)
	attach(m, "orders_report.xlsx", buf.Bytes())
	return d.sender.Send(m)
}

func (d *Dispatcher) newMessage(to, subject, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", d.from(), d.cfg.Smtp.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return m
}

func attach(m *gomail.Message, filename string, content []byte) {
	m.Attach(filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {report.ContentType}}),
	)
}

func formatCurrency(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
