package notify

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gustavopprado/ecommerce-fgv/config"
	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
	"github.com/gustavopprado/ecommerce-fgv/internal/report"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []*gomail.Message
	err      error
}

func (f *fakeSender) Send(m *gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeSender) sent() []*gomail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages
}

func newTestDispatcher(t *testing.T, cfg *config.AppConfig) (*Dispatcher, *ordering.Repository, *fakeSender) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	repo := ordering.NewRepository(db)
	builder := report.NewBuilder(repo)
	d := NewDispatcher(cfg, repo, builder, nil, nil)
	sender := &fakeSender{}
	d.OverrideSender(sender)
	return d, repo, sender
}

type fakeSettings map[string]string

func (f fakeSettings) GetSettingsStringValue(category, key string) string {
	return f[category+"."+key]
}

func testConfig() *config.AppConfig {
	cfg := *config.DefaultAppConfig
	cfg.Report.Recipient = "purchasing@example.com"
	cfg.Smtp.Username = "noreply@example.com"
	return &cfg
}

func seedOrder(t *testing.T, repo *ordering.Repository) int64 {
	t.Helper()
	id, _, err := repo.CreateOrder(ordering.CreateOrderInput{
		Name: "Maria Souza", Sector: "Finance", Badge: "12345",
		Consent: true, Installments: 2,
		Items: []ordering.LineItem{
			{Code: "P1", Description: "Notebook stand", Quantity: 2, UnitPrice: 75},
		},
	})
	require.NoError(t, err)
	return id
}

func TestSendOrderCreated(t *testing.T) {
	d, repo, sender := newTestDispatcher(t, testConfig())
	id := seedOrder(t, repo)

	d.sendOrderCreated(id)

	msgs := sender.sent()
	require.Len(t, msgs, 1)
	subject := msgs[0].GetHeader("Subject")
	require.Len(t, subject, 1)
	assert.Contains(t, subject[0], fmt.Sprintf("#%d", id))
	assert.Contains(t, subject[0], "Maria Souza")
	assert.Equal(t, []string{"purchasing@example.com"}, msgs[0].GetHeader("To"))
}

func TestSendOrderEdited(t *testing.T) {
	d, repo, sender := newTestDispatcher(t, testConfig())
	id := seedOrder(t, repo)

	d.sendOrderEdited(id, "swapped out-of-stock item")

	msgs := sender.sent()
	require.Len(t, msgs, 1)
	subject := msgs[0].GetHeader("Subject")
	require.Len(t, subject, 1)
	assert.Contains(t, subject[0], "altered")
}

func TestSendFailuresAreSwallowed(t *testing.T) {
	d, repo, sender := newTestDispatcher(t, testConfig())
	id := seedOrder(t, repo)
	sender.err = errors.New("smtp unreachable")

	// must not panic nor propagate anything
	d.sendOrderCreated(id)
	d.sendOrderEdited(id, "")
	assert.Empty(t, sender.sent())
}

func TestNoRecipientSkipsOrderMail(t *testing.T) {
	cfg := testConfig()
	cfg.Report.Recipient = ""
	cfg.Smtp.Username = ""
	d, repo, sender := newTestDispatcher(t, cfg)
	id := seedOrder(t, repo)

	d.sendOrderCreated(id)
	assert.Empty(t, sender.sent())
}

func TestRecipientFallsBackToSmtpUsername(t *testing.T) {
	cfg := testConfig()
	cfg.Report.Recipient = ""
	d, repo, sender := newTestDispatcher(t, cfg)
	id := seedOrder(t, repo)

	d.sendOrderCreated(id)
	msgs := sender.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"noreply@example.com"}, msgs[0].GetHeader("To"))
}

func TestRecipientOverrideSettingWins(t *testing.T) {
	d, repo, sender := newTestDispatcher(t, testConfig())
	d.settings = fakeSettings{"report.RecipientOverride": "override@example.com"}
	id := seedOrder(t, repo)

	d.sendOrderCreated(id)
	msgs := sender.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"override@example.com"}, msgs[0].GetHeader("To"))

	// blank override falls through to the configured recipient
	d.settings = fakeSettings{"report.RecipientOverride": "  "}
	require.NoError(t, d.SendFullReport())
	msgs = sender.sent()
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{"purchasing@example.com"}, msgs[1].GetHeader("To"))
}

func TestSendFullReport(t *testing.T) {
	d, repo, sender := newTestDispatcher(t, testConfig())
	seedOrder(t, repo)

	require.NoError(t, d.SendFullReport())
	require.Len(t, sender.sent(), 1)
}

func TestSendFullReportNoRecipient(t *testing.T) {
	cfg := testConfig()
	cfg.Report.Recipient = ""
	cfg.Smtp.Username = ""
	d, _, sender := newTestDispatcher(t, cfg)

	assert.ErrorIs(t, d.SendFullReport(), ErrNoRecipient)
	assert.Empty(t, sender.sent())
}
