package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartExpiredSecretCleaner purges secrets past their expiry with interval
func StartExpiredSecretCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    DELETE FROM secrets
                     WHERE expires_at IS NOT NULL
                       AND expires_at < now()
                `)
				if err != nil {
					log.Error("failed to clean expired secrets", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned expired secrets", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
