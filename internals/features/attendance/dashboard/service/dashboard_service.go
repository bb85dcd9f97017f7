package service

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	attendanceRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/dashboard/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
)

const ChartDays = 7

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type UserCounter interface {
	Count(ctx context.Context, filters map[string]any) (int64, error)
}

type AttendanceStats interface {
	CountByStatus(ctx context.Context, date datatypes.Date) ([]attendanceRepo.StatusCount, error)
	CountHadirBetween(ctx context.Context, from, to datatypes.Date) ([]attendanceRepo.DailyCount, error)
}

type DashboardService struct {
	Students   Counter
	Classes    Counter
	Users      UserCounter
	Attendance AttendanceStats
	Now        func() time.Time
}

func NewDashboardService(students, classes Counter, users UserCounter, attendance AttendanceStats) *DashboardService {
	return &DashboardService{
		Students:   students,
		Classes:    classes,
		Users:      users,
		Attendance: attendance,
		Now:        dbtime.NowInSchool,
	}
}

func (s *DashboardService) Get(ctx context.Context) (*dto.DashboardResponse, error) {
	today := dbtime.DateOf(s.Now())

	students, err := s.Students.Count(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := s.Classes.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.Count(ctx, nil)
	if err != nil {
		return nil, err
	}

	summary, err := s.summary(ctx, today, students)
	if err != nil {
		return nil, err
	}
	chart, err := s.weekly(ctx, today)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Tanggal: dbtime.FormatDate(today),
		Siswa: dto.StudentStats{
			Jumlah:         students,
			AbsensiHariIni: summary,
			GrafikMingguan: chart,
		},
		Kelas:   dto.Counter{Jumlah: classes},
		Petugas: dto.Counter{Jumlah: users},
	}, nil
}

// alfa = siswa aktif yang belum tercatat Hadir/Sakit/Izin hari ini
func (s *DashboardService) summary(ctx context.Context, today datatypes.Date, students int64) (dto.AttendanceSummary, error) {
	counts, err := s.Attendance.CountByStatus(ctx, today)
	if err != nil {
		return dto.AttendanceSummary{}, err
	}
	out := dto.AttendanceSummary{}
	for _, c := range counts {
		switch c.Kehadiran {
		case constants.KehadiranHadir:
			out.Hadir = c.Total
		case constants.KehadiranSakit:
			out.Sakit = c.Total
		case constants.KehadiranIzin:
			out.Izin = c.Total
		}
	}
	out.Alfa = students - (out.Hadir + out.Sakit + out.Izin)
	if out.Alfa < 0 {
		out.Alfa = 0
	}
	return out, nil
}

// weekly: 7 hari terakhir termasuk hari ini, hari tanpa data bernilai 0
func (s *DashboardService) weekly(ctx context.Context, today datatypes.Date) ([]dto.DailyHadir, error) {
	end := time.Time(today)
	start := end.AddDate(0, 0, -(ChartDays - 1))
	counts, err := s.Attendance.CountHadirBetween(ctx, datatypes.Date(start), today)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDate[dbtime.FormatDate(c.Tanggal)] = c.Total
	}

	out := make([]dto.DailyHadir, 0, ChartDays)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := dbtime.FormatDate(datatypes.Date(d))
		out = append(out, dto.DailyHadir{Tanggal: key, Hadir: byDate[key]})
	}
	return out, nil
}
