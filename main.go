package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/robfig/cron/v3"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	attendanceModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/model"
	qrModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/model"
	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	scheduleModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/model"
	selectionModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
	settingModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
	studentModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	authModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/model"
	authRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/repository"
	authService "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/service"
	userModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/model"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
	middlewares "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares"
	routes "github.com/naufaladysaputro/be-absensi-qrcode/internals/route"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/seeds"
)

func main() {
	seed := flag.Bool("seed", false, "jalankan seeder (admin + pengaturan default) lalu keluar")
	migrate := flag.Bool("migrate", false, "paksa auto-migrate tabel saat start")
	flag.Parse()

	configs.LoadEnv()
	log := configs.Component("main")

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	defer database.Close()

	if *migrate || configs.AutoMigrate || *seed {
		if err := database.Migrate(
			&userModel.UserModel{},
			&authModel.TokenBlacklist{},
			&selectionModel.SelectionModel{},
			&classModel.ClassModel{},
			&studentModel.StudentModel{},
			&scheduleModel.ScheduleModel{},
			&settingModel.SettingModel{},
			&qrModel.QRCodeModel{},
			&attendanceModel.AttendanceModel{},
		); err != nil {
			log.Fatal().Err(err).Msg("Auto-migrate gagal")
		}
		log.Info().Msg("Auto-migrate selesai")
	}

	if *seed {
		seeds.RunAllSeeds(database.DB)
		return
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             10 << 20,
		ErrorHandler:          helper.ErrorHandler,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app)

	// ⏱ scheduler setelah DB siap
	scheduler := cron.New(cron.WithLocation(dbtime.SchoolLocation()))
	if err := authService.StartBlacklistCleanup(scheduler, authRepo.NewBlacklistRepository(database.DB), configs.BlacklistCron); err != nil {
		log.Error().Err(err).Msg("Gagal menjadwalkan cleanup blacklist")
	}
	if err := storage.StartRetentionReaper(scheduler, storage.ReaperConfig{
		Dir:          configs.ExportDir,
		Retention:    time.Duration(configs.ExportRetentionDays) * 24 * time.Hour,
		CronSchedule: configs.ExportCron,
	}); err != nil {
		log.Error().Err(err).Msg("Gagal menjadwalkan reaper export")
	}
	scheduler.Start()

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routes.NewStores())

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Info().Str("port", configs.Port).Msg("✅ Listening")
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown: stop cron, tutup server, lalu pool DB (defer)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down...")

	<-scheduler.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}
}
