package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/model"
	studentModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

var uniqueKinds = map[string]apperror.Kind{
	model.UniqueStudent: apperror.KindQRCodeExists,
	model.UniqueCode:    apperror.KindConflict,
}

// QRCodeWithStudent: baris qr_codes_students plus siswa (→ kelas → rombel)
type QRCodeWithStudent struct {
	model.QRCodeModel
	Student *studentModel.StudentModel `gorm:"foreignKey:StudentsID;references:ID"`
}

func (QRCodeWithStudent) TableName() string {
	return "qr_codes_students"
}

type QRCodeRepository struct {
	DB *gorm.DB
}

func NewQRCodeRepository(db *gorm.DB) *QRCodeRepository {
	return &QRCodeRepository{DB: db}
}

func wrap(err error) error {
	return apperror.FromDB(err, apperror.KindQRCodeNotFound, uniqueKinds)
}

func (r *QRCodeRepository) Create(ctx context.Context, m *model.QRCodeModel) error {
	return wrap(database.Insert(ctx, r.DB, m))
}

func (r *QRCodeRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) (*model.QRCodeModel, error) {
	row, err := database.First[model.QRCodeModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"students_id": studentID},
	})
	return row, wrap(err)
}

// FindByCode dipakai saat scan absensi
func (r *QRCodeRepository) FindByCode(ctx context.Context, code string) (*model.QRCodeModel, error) {
	row, err := database.First[model.QRCodeModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"unique_code": code},
	})
	return row, wrap(err)
}

func (r *QRCodeRepository) DeleteByStudent(ctx context.Context, studentID uuid.UUID) error {
	n, err := database.Delete[model.QRCodeModel](ctx, r.DB, map[string]any{"students_id": studentID}, nil)
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindQRCodeNotFound)
	}
	return nil
}

func (r *QRCodeRepository) List(ctx context.Context) ([]QRCodeWithStudent, error) {
	rows, err := database.Select[QRCodeWithStudent](ctx, r.DB, database.QueryOptions{
		Preloads: []string{"Student.Class.Selection"},
		OrderBy:  &database.OrderBy{Column: "created_at"},
	})
	return rows, wrap(err)
}

// ListByClass: QR code milik siswa aktif di kelas classID
func (r *QRCodeRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]QRCodeWithStudent, error) {
	rows := make([]QRCodeWithStudent, 0)
	err := r.DB.WithContext(ctx).
		Model(&QRCodeWithStudent{}).
		Joins("JOIN students ON students.id = qr_codes_students.students_id AND students.deleted_at IS NULL").
		Where("students.classes_id = ?", classID).
		Preload("Student.Class").
		Order("students.nama_siswa ASC").
		Find(&rows).Error
	return rows, wrap(err)
}
