package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/repository"
	studentModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

const (
	ImageDir        = "qrcodes"
	ReasonHasQRCode = "Already has QR code"
)

type Repository interface {
	Create(ctx context.Context, m *model.QRCodeModel) error
	FindByStudent(ctx context.Context, studentID uuid.UUID) (*model.QRCodeModel, error)
	DeleteByStudent(ctx context.Context, studentID uuid.UUID) error
	List(ctx context.Context) ([]repository.QRCodeWithStudent, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]repository.QRCodeWithStudent, error)
}

type StudentLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*studentModel.StudentModel, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]studentModel.StudentModel, error)
}

type QRCodeService struct {
	Repo     Repository
	Students StudentLookup
	Store    storage.Store
	Render   func(code, caption string) ([]byte, error)
	Now      func() time.Time
}

func NewQRCodeService(repo Repository, students StudentLookup, store storage.Store) *QRCodeService {
	return &QRCodeService{
		Repo:     repo,
		Students: students,
		Store:    store,
		Render:   RenderPNG,
		Now:      time.Now,
	}
}

// ImageName: {nama_siswa}_{nis}.png dengan karakter aman untuk filesystem
func ImageName(st *studentModel.StudentModel) string {
	return storage.SafeName(st.NamaSiswa) + "_" + storage.SafeName(st.NIS) + ".png"
}

func (s *QRCodeService) lookupStudent(ctx context.Context, id uuid.UUID) (*studentModel.StudentModel, error) {
	st, err := s.Students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *QRCodeService) Generate(ctx context.Context, studentID uuid.UUID, by *uuid.UUID) (*dto.QRCodeResponse, error) {
	st, err := s.lookupStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, st, by)
}

// IssueFor dipanggil setelah siswa baru dibuat
func (s *QRCodeService) IssueFor(ctx context.Context, st *studentModel.StudentModel, by *uuid.UUID) error {
	_, err := s.generate(ctx, st, by)
	return err
}

func (s *QRCodeService) writeImage(ctx context.Context, code string, st *studentModel.StudentModel) (string, error) {
	png, err := s.Render(code, st.NamaSiswa)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, err)
	}
	path, err := s.Store.SaveBytes(ctx, ImageDir, ImageName(st), png)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, err)
	}
	return path, nil
}

// generate: satu QR per siswa dijaga unique index students_id. Cek di awal
// hanya supaya file milik QR lama tidak tertimpa pada kasus normal.
func (s *QRCodeService) generate(ctx context.Context, st *studentModel.StudentModel, by *uuid.UUID) (*dto.QRCodeResponse, error) {
	if _, err := s.Repo.FindByStudent(ctx, st.ID); err == nil {
		return nil, apperror.New(apperror.KindQRCodeExists)
	} else if !apperror.Is(err, apperror.KindQRCodeNotFound) {
		return nil, err
	}

	code := fmt.Sprintf("%s_%d", st.NIS, s.Now().UnixMilli())
	path, err := s.writeImage(ctx, code, st)
	if err != nil {
		return nil, err
	}

	row := &model.QRCodeModel{
		StudentsID:  st.ID,
		UniqueCode:  code,
		QRPath:      path,
		GeneratedBy: by,
	}
	if err := s.Repo.Create(ctx, row); err != nil {
		s.rollbackImage(ctx, st, path, err)
		return nil, err
	}
	out := dto.FromModel(*row)
	return &out, nil
}

// rollbackImage: kalau kalah balapan, gambar milik pemenang digambar ulang
// (namanya sama); selain itu file baru dihapus.
func (s *QRCodeService) rollbackImage(ctx context.Context, st *studentModel.StudentModel, path string, cause error) {
	log := configs.Component("qrcodes")
	if apperror.Is(cause, apperror.KindQRCodeExists) {
		if winner, err := s.Repo.FindByStudent(ctx, st.ID); err == nil {
			if _, err := s.writeImage(ctx, winner.UniqueCode, st); err != nil {
				log.Error().Err(err).Str("student_id", st.ID.String()).Msg("gagal memulihkan gambar QR")
			}
			return
		}
	}
	if err := s.Store.Remove(ctx, path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("gagal menghapus gambar QR")
	}
}

func (s *QRCodeService) Lookup(ctx context.Context, studentID uuid.UUID) (*dto.QRCodeResponse, error) {
	row, err := s.Repo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := dto.FromModel(*row)
	return &out, nil
}

// Delete menghapus baris lalu file gambarnya. File yang gagal dihapus hanya dicatat.
func (s *QRCodeService) Delete(ctx context.Context, studentID uuid.UUID) error {
	row, err := s.Repo.FindByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteByStudent(ctx, studentID); err != nil {
		return err
	}
	s.removeImage(ctx, row.QRPath)
	return nil
}

func (s *QRCodeService) removeImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.Store.Remove(ctx, path); err != nil {
		configs.Component("qrcodes").Warn().Err(err).Str("path", path).Msg("gagal menghapus gambar QR")
	}
}

// Regenerate: hapus QR lama (kalau ada) lalu buat kode baru
func (s *QRCodeService) Regenerate(ctx context.Context, studentID uuid.UUID, by *uuid.UUID) (*dto.QRCodeResponse, error) {
	st, err := s.lookupStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var oldPath string
	if old, err := s.Repo.FindByStudent(ctx, studentID); err == nil {
		oldPath = old.QRPath
		if err := s.Repo.DeleteByStudent(ctx, studentID); err != nil && !apperror.Is(err, apperror.KindQRCodeNotFound) {
			return nil, err
		}
	} else if !apperror.Is(err, apperror.KindQRCodeNotFound) {
		return nil, err
	}

	out, err := s.generate(ctx, st, by)
	if err != nil {
		return nil, err
	}
	// nama siswa berubah → nama file berubah, file lama dibuang
	if oldPath != "" && oldPath != out.QRPath {
		s.removeImage(ctx, oldPath)
	}
	return out, nil
}

func withStudents(rows []repository.QRCodeWithStudent) []dto.QRCodeResponse {
	out := make([]dto.QRCodeResponse, 0, len(rows))
	for _, r := range rows {
		item := dto.FromModel(r.QRCodeModel)
		if r.Student != nil {
			b := dto.StudentFromModel(*r.Student)
			item.Student = &b
		}
		out = append(out, item)
	}
	return out
}

func (s *QRCodeService) List(ctx context.Context) ([]dto.QRCodeResponse, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return withStudents(rows), nil
}

func (s *QRCodeService) ListByClass(ctx context.Context, classID uuid.UUID) ([]dto.QRCodeResponse, error) {
	rows, err := s.Repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return withStudents(rows), nil
}

// BulkGenerate membuat QR untuk semua siswa aktif di kelas. Kegagalan per
// siswa dicatat di Failed dan tidak menghentikan batch.
func (s *QRCodeService) BulkGenerate(ctx context.Context, classID uuid.UUID, by *uuid.UUID) (*dto.BulkResult, error) {
	students, err := s.Students.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	res := &dto.BulkResult{
		Generated: []dto.QRCodeResponse{},
		Skipped:   []dto.BulkItem{},
		Failed:    []dto.BulkItem{},
	}
	for i := range students {
		if err := ctx.Err(); err != nil {
			return nil, apperror.Wrap(apperror.KindTimeout, err)
		}
		st := &students[i]
		qr, err := s.generate(ctx, st, by)
		switch {
		case err == nil:
			res.Generated = append(res.Generated, *qr)
		case apperror.Is(err, apperror.KindQRCodeExists):
			res.Skipped = append(res.Skipped, dto.BulkItem{Student: dto.StudentFromModel(*st), Reason: ReasonHasQRCode})
		default:
			res.Failed = append(res.Failed, dto.BulkItem{Student: dto.StudentFromModel(*st), Reason: err.Error()})
		}
	}
	return res, nil
}
