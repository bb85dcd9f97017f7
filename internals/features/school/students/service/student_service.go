package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

type Repository interface {
	List(ctx context.Context, q dto.ListQuery) ([]model.StudentModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.StudentModel, error)
	Create(ctx context.Context, m *model.StudentModel) error
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error
}

type ClassLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*classModel.ClassModel, error)
}

// QRIssuer membuat QR code untuk siswa baru
type QRIssuer interface {
	IssueFor(ctx context.Context, st *model.StudentModel, by *uuid.UUID) error
}

type StudentService struct {
	Repo    Repository
	Classes ClassLookup
	QR      QRIssuer
}

func NewStudentService(repo Repository, classes ClassLookup, qr QRIssuer) *StudentService {
	return &StudentService{Repo: repo, Classes: classes, QR: qr}
}

func (s *StudentService) List(ctx context.Context, q dto.ListQuery) ([]dto.StudentResponse, int64, error) {
	rows, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return dto.FromModels(rows), total, nil
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*dto.StudentResponse, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromModel(*m)
	return &out, nil
}

// resolveClass memvalidasi body dan mengembalikan kelas tujuan (rombel ikut kelas)
func (s *StudentService) resolveClass(ctx context.Context, req *dto.StudentRequest) (*classModel.ClassModel, error) {
	req.Normalize()
	if err := helper.Validator().Struct(req); err != nil {
		return nil, &apperror.Error{Kind: apperror.KindValidation, Message: "Semua field harus diisi", Err: err}
	}
	if !constants.IsValidGender(req.JenisKelamin) {
		return nil, apperror.Newf(apperror.KindValidation, "Jenis kelamin harus Laki-laki atau Perempuan")
	}
	classID, err := uuid.Parse(req.ClassesID)
	if err != nil {
		return nil, apperror.New(apperror.KindInvalidClass)
	}
	class, err := s.Classes.FindByID(ctx, classID)
	if err != nil {
		if apperror.Is(err, apperror.KindClassNotFound) {
			return nil, apperror.New(apperror.KindInvalidClass)
		}
		return nil, err
	}
	return class, nil
}

func invalidRef(err error) error {
	if apperror.Is(err, apperror.KindInvalidReference) {
		return apperror.Wrap(apperror.KindInvalidClass, err)
	}
	return err
}

// Create menyimpan siswa lalu membuat QR code-nya. Gagal bikin QR tidak
// membatalkan siswa; QR bisa dibuat ulang lewat /qrcodes.
func (s *StudentService) Create(ctx context.Context, req dto.StudentRequest, by *uuid.UUID) (*dto.StudentResponse, error) {
	class, err := s.resolveClass(ctx, &req)
	if err != nil {
		return nil, err
	}
	m := &model.StudentModel{
		NIS:          req.NIS,
		NamaSiswa:    req.NamaSiswa,
		JenisKelamin: req.JenisKelamin,
		ClassesID:    class.ID,
		SelectionsID: class.SelectionsID,
		ModifiedBy:   by,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, invalidRef(err)
	}

	if s.QR != nil {
		if err := s.QR.IssueFor(ctx, m, by); err != nil {
			configs.Component("students").Warn().
				Err(err).
				Str("student_id", m.ID.String()).
				Str("nis", m.NIS).
				Msg("QR code siswa baru gagal dibuat")
		}
	}
	return s.Get(ctx, m.ID)
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req dto.StudentRequest, by *uuid.UUID) (*dto.StudentResponse, error) {
	class, err := s.resolveClass(ctx, &req)
	if err != nil {
		return nil, err
	}
	err = s.Repo.Update(ctx, id, map[string]any{
		"nis":           req.NIS,
		"nama_siswa":    req.NamaSiswa,
		"jenis_kelamin": req.JenisKelamin,
		"classes_id":    class.ID,
		"selections_id": class.SelectionsID,
		"modified_by":   by,
	})
	if err != nil {
		if apperror.Is(err, apperror.KindNISTaken) {
			return nil, &apperror.Error{Kind: apperror.KindNISTaken, Message: "NIS sudah terdaftar oleh siswa lain", Err: err}
		}
		return nil, invalidRef(err)
	}
	return s.Get(ctx, id)
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error {
	return s.Repo.SoftDelete(ctx, id, by)
}
