package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err := a.sched.AddFunc("@daily", func() {
		a.SchedClearExpireData()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	// Optional periodic full orders report email
	if expr := a.configManager.GetString("report", "ScheduledReportCron"); expr != "" {
		_, err = a.sched.AddFunc(expr, func() {
			a.SchedSendOrdersReport()
		})
		if err != nil {
			zap.S().Errorf("scheduled report cron %q rejected: %s", expr, err.Error())
		} else {
			zap.L().Info("scheduled orders report enabled", zap.String("cron", expr))
		}
	}

	a.sched.Start()
}

// SchedClearExpireData prunes operator audit log entries past retention.
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	idays := a.configManager.GetInt("system", "OprLogRetentionDays")
	if idays == 0 {
		idays = 365
	}
	a.gormDB.
		Where("opt_time < ? ", time.Now().
			Add(-time.Hour*24*time.Duration(idays))).Delete(domain.SysOprLog{})
}

// SchedSendOrdersReport emails the full orders report to the configured
// recipient. Failures are logged; the next scheduled run tries again.
func (a *Application) SchedSendOrdersReport() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if err := a.dispatcher.SendFullReport(); err != nil {
		zap.L().Error("scheduled orders report failed", zap.Error(err))
	}
}
