package jobs

import (
	"quickbite/configs"
	"quickbite/pkg/logger"
	"quickbite/pkg/metrics"
	"quickbite/repository"

	"github.com/robfig/cron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Start wires the background jobs. Only one today: orders that sit in
// pending_payment beyond the configured TTL get cancelled, freeing their
// pickup-slot capacity.
func Start(db *gorm.DB, cfg *configs.Config) (*cron.Cron, error) {
	orders := repository.NewOrderRepository(db)

	c := cron.New()
	err := c.AddFunc("@every 1m", func() {
		n, err := orders.CancelStale(cfg.OrderPaymentTTL)
		if err != nil {
			logger.L().Error("stale-order sweep failed", zap.Error(err))
			return
		}
		if n > 0 {
			metrics.OrdersCancelledStale.Add(float64(n))
			logger.L().Info("cancelled stale orders", zap.Int64("count", n))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
