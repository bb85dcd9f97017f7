package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	attendanceRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
)

type fixedCount int64

func (f fixedCount) Count(context.Context) (int64, error) { return int64(f), nil }

type fakeUsers struct{ n int64 }

func (f fakeUsers) Count(context.Context, map[string]any) (int64, error) { return f.n, nil }

type fakeStats struct {
	byStatus []attendanceRepo.StatusCount
	daily    []attendanceRepo.DailyCount
	from, to datatypes.Date
	err      error
}

func (f *fakeStats) CountByStatus(context.Context, datatypes.Date) ([]attendanceRepo.StatusCount, error) {
	return f.byStatus, f.err
}

func (f *fakeStats) CountHadirBetween(_ context.Context, from, to datatypes.Date) ([]attendanceRepo.DailyCount, error) {
	f.from, f.to = from, to
	return f.daily, nil
}

func date(s string) datatypes.Date {
	d, _ := dbtime.ParseDate(s)
	return d
}

func TestDashboard(t *testing.T) {
	stats := &fakeStats{
		byStatus: []attendanceRepo.StatusCount{
			{Kehadiran: constants.KehadiranHadir, Total: 20},
			{Kehadiran: constants.KehadiranSakit, Total: 2},
			{Kehadiran: constants.KehadiranIzin, Total: 1},
			{Kehadiran: constants.KehadiranAlfa, Total: 3},
		},
		daily: []attendanceRepo.DailyCount{
			{Tanggal: date("2024-03-10"), Total: 18},
			{Tanggal: date("2024-03-14"), Total: 20},
		},
	}
	svc := NewDashboardService(fixedCount(30), fixedCount(4), fakeUsers{n: 3}, stats)
	svc.Now = func() time.Time { return time.Date(2024, 3, 14, 7, 30, 0, 0, time.UTC) }

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Tanggal != "2024-03-14" || got.Siswa.Jumlah != 30 || got.Kelas.Jumlah != 4 || got.Petugas.Jumlah != 3 {
		t.Fatalf("dashboard = %+v", got)
	}
	// baris Alfa dari DB tidak dipakai, alfa = 30 - (20+2+1)
	s := got.Siswa.AbsensiHariIni
	if s.Hadir != 20 || s.Sakit != 2 || s.Izin != 1 || s.Alfa != 7 {
		t.Fatalf("summary = %+v", s)
	}

	chart := got.Siswa.GrafikMingguan
	if len(chart) != ChartDays {
		t.Fatalf("chart len = %d", len(chart))
	}
	if chart[0].Tanggal != "2024-03-08" || chart[6].Tanggal != "2024-03-14" {
		t.Fatalf("chart range = %s..%s", chart[0].Tanggal, chart[6].Tanggal)
	}
	if chart[2].Hadir != 18 || chart[6].Hadir != 20 || chart[3].Hadir != 0 {
		t.Fatalf("chart = %+v", chart)
	}
	if dbtime.FormatDate(stats.from) != "2024-03-08" || dbtime.FormatDate(stats.to) != "2024-03-14" {
		t.Fatalf("range queried = %s..%s", dbtime.FormatDate(stats.from), dbtime.FormatDate(stats.to))
	}
}

func TestDashboardAlfaNeverNegative(t *testing.T) {
	stats := &fakeStats{byStatus: []attendanceRepo.StatusCount{{Kehadiran: constants.KehadiranHadir, Total: 5}}}
	svc := NewDashboardService(fixedCount(2), fixedCount(1), fakeUsers{}, stats)

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Siswa.AbsensiHariIni.Alfa != 0 {
		t.Fatalf("alfa = %d", got.Siswa.AbsensiHariIni.Alfa)
	}
}

func TestDashboardPropagatesError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewDashboardService(fixedCount(1), fixedCount(1), fakeUsers{}, &fakeStats{err: boom})
	if _, err := svc.Get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
