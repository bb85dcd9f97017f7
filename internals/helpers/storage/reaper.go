package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
)

type ReaperConfig struct {
	Dir          string
	Retention    time.Duration
	CronSchedule string
	DryRun       bool
}

// StartRetentionReaper mendaftarkan job yang menghapus file di Dir yang lebih
// tua dari Retention. Dipakai untuk hasil export laporan.
func StartRetentionReaper(c *cron.Cron, cfg ReaperConfig) error {
	log := configs.Component("export-reaper")
	_, err := c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		n, err := ReapOlderThan(ctx, cfg.Dir, time.Now().Add(-cfg.Retention), cfg.DryRun)
		if err != nil {
			log.Error().Err(err).Str("dir", cfg.Dir).Msg("reaper gagal")
			return
		}
		log.Info().Int("deleted", n).Str("dir", cfg.Dir).Bool("dry_run", cfg.DryRun).Msg("reaper selesai")
	})
	if err != nil {
		return err
	}
	log.Info().
		Str("schedule", cfg.CronSchedule).
		Str("dir", cfg.Dir).
		Dur("retention", cfg.Retention).
		Msg("reaper started")
	return nil
}

// ReapOlderThan menghapus file biasa di dir (tidak rekursif) dengan mtime < cutoff.
func ReapOlderThan(ctx context.Context, dir string, cutoff time.Time, dryRun bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			return deleted, ctx.Err()
		}
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if dryRun {
			deleted++
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
			deleted++
		}
	}
	return deleted, nil
}
