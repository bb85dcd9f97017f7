package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
)

var conflictCols = []clause.Column{{Name: "students_id"}, {Name: "tanggal"}}

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

func wrap(err error) error {
	return apperror.FromDB(err, apperror.KindAttendanceNotFound, nil)
}

func (r *AttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceModel, error) {
	row, err := database.First[model.AttendanceModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"id": id},
	})
	return row, wrap(err)
}

func (r *AttendanceRepository) FindByStudentDate(ctx context.Context, studentID uuid.UUID, date datatypes.Date) (*model.AttendanceModel, error) {
	row, err := database.First[model.AttendanceModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"students_id": studentID, "tanggal": date},
	})
	return row, wrap(err)
}

func (r *AttendanceRepository) ListByStudentDate(ctx context.Context, studentID uuid.UUID, date datatypes.Date) ([]model.AttendanceModel, error) {
	rows, err := database.Select[model.AttendanceModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"students_id": studentID, "tanggal": date},
	})
	return rows, wrap(err)
}

// ListByStudentsDate: absensi tanggal tertentu untuk sekumpulan siswa
func (r *AttendanceRepository) ListByStudentsDate(ctx context.Context, studentIDs []uuid.UUID, date datatypes.Date) ([]model.AttendanceModel, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var rows []model.AttendanceModel
	err := r.DB.WithContext(ctx).
		Where("students_id IN ? AND tanggal = ?", studentIDs, date).
		Find(&rows).Error
	return rows, wrap(err)
}

// ListInRange: absensi [from, to] inklusif, dipakai laporan bulanan
func (r *AttendanceRepository) ListInRange(ctx context.Context, studentIDs []uuid.UUID, from, to datatypes.Date) ([]model.AttendanceModel, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var rows []model.AttendanceModel
	err := r.DB.WithContext(ctx).
		Where("students_id IN ? AND tanggal BETWEEN ? AND ?", studentIDs, from, to).
		Order("tanggal ASC").
		Find(&rows).Error
	return rows, wrap(err)
}

// InsertIfAbsent: INSERT … ON CONFLICT (students_id, tanggal) DO NOTHING.
// false berarti baris hari itu sudah ada.
func (r *AttendanceRepository) InsertIfAbsent(ctx context.Context, m *model.AttendanceModel) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: conflictCols, DoNothing: true}).
		Create(m)
	if res.Error != nil {
		return false, wrap(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SetCheckOut hanya mengisi jam_pulang yang masih kosong
func (r *AttendanceRepository) SetCheckOut(ctx context.Context, id uuid.UUID, at dbtime.Tod) (bool, error) {
	n, err := database.Update[model.AttendanceModel](ctx, r.DB,
		map[string]any{"id": id, "jam_pulang": nil},
		map[string]any{"jam_pulang": at},
	)
	return n > 0, wrap(err)
}

func (r *AttendanceRepository) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	n, err := database.Update[model.AttendanceModel](ctx, r.DB, map[string]any{"id": id}, values)
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindAttendanceNotFound)
	}
	return nil
}

// Upsert: INSERT … ON CONFLICT (students_id, tanggal) DO UPDATE
func (r *AttendanceRepository) Upsert(ctx context.Context, m *model.AttendanceModel) (*model.AttendanceModel, error) {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: conflictCols,
			DoUpdates: clause.Assignments(map[string]any{
				"classes_id": gorm.Expr("EXCLUDED.classes_id"),
				"kehadiran":  gorm.Expr("EXCLUDED.kehadiran"),
				"keterangan": gorm.Expr("EXCLUDED.keterangan"),
				"jam_masuk":  gorm.Expr("EXCLUDED.jam_masuk"),
				"jam_pulang": gorm.Expr("EXCLUDED.jam_pulang"),
				"updated_at": time.Now(),
			}),
		}).
		Create(m).Error
	if err != nil {
		return nil, wrap(err)
	}
	return r.FindByStudentDate(ctx, m.StudentsID, m.Tanggal)
}

type StatusCount struct {
	Kehadiran string
	Total     int64
}

// CountByStatus: rekap kehadiran satu tanggal, hanya siswa aktif
func (r *AttendanceRepository) CountByStatus(ctx context.Context, date datatypes.Date) ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.WithContext(ctx).
		Table("attendences AS a").
		Select("a.kehadiran AS kehadiran, COUNT(*) AS total").
		Joins("JOIN students s ON s.id = a.students_id AND s.deleted_at IS NULL").
		Where("a.tanggal = ?", date).
		Group("a.kehadiran").
		Scan(&out).Error
	return out, wrap(err)
}

type DailyCount struct {
	Tanggal datatypes.Date
	Total   int64
}

// CountHadirBetween: jumlah "Hadir" per tanggal dalam rentang
func (r *AttendanceRepository) CountHadirBetween(ctx context.Context, from, to datatypes.Date) ([]DailyCount, error) {
	var out []DailyCount
	err := r.DB.WithContext(ctx).
		Table("attendences AS a").
		Select("a.tanggal AS tanggal, COUNT(*) AS total").
		Joins("JOIN students s ON s.id = a.students_id AND s.deleted_at IS NULL").
		Where("a.kehadiran = ? AND a.tanggal BETWEEN ? AND ?", constants.KehadiranHadir, from, to).
		Group("a.tanggal").
		Scan(&out).Error
	return out, wrap(err)
}
