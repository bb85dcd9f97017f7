package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
)

type BlacklistPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// StartBlacklistCleanup: job cron yang membersihkan token_blacklist dari
// token yang sudah kedaluwarsa.
func StartBlacklistCleanup(c *cron.Cron, repo BlacklistPurger, schedule string) error {
	log := configs.Component("blacklist-cleanup")
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := repo.PurgeExpired(ctx, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("purge token_blacklist gagal")
			return
		}
		left, _ := repo.Count(ctx)
		log.Info().Int64("purged", n).Int64("remaining", left).Msg("purge token_blacklist selesai")
	})
	if err != nil {
		return err
	}
	log.Info().Str("schedule", schedule).Msg("blacklist cleanup started")
	return nil
}
