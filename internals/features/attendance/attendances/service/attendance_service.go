package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/model"
	qrModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/model"
	settingModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
	studentModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
)

const (
	ActionMasuk  = "masuk"
	ActionPulang = "pulang"
)

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceModel, error)
	FindByStudentDate(ctx context.Context, studentID uuid.UUID, date datatypes.Date) (*model.AttendanceModel, error)
	ListByStudentDate(ctx context.Context, studentID uuid.UUID, date datatypes.Date) ([]model.AttendanceModel, error)
	ListByStudentsDate(ctx context.Context, studentIDs []uuid.UUID, date datatypes.Date) ([]model.AttendanceModel, error)
	InsertIfAbsent(ctx context.Context, m *model.AttendanceModel) (bool, error)
	SetCheckOut(ctx context.Context, id uuid.UUID, at dbtime.Tod) (bool, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	Upsert(ctx context.Context, m *model.AttendanceModel) (*model.AttendanceModel, error)
}

type CodeLookup interface {
	FindByCode(ctx context.Context, code string) (*qrModel.QRCodeModel, error)
}

type StudentLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*studentModel.StudentModel, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]studentModel.StudentModel, error)
}

type SettingsLookup interface {
	Current(ctx context.Context) (*settingModel.SettingModel, error)
}

type AttendanceService struct {
	Repo     Repository
	Codes    CodeLookup
	Students StudentLookup
	Settings SettingsLookup
	// Now harus mengembalikan waktu di zona sekolah
	Now func() time.Time
}

func NewAttendanceService(repo Repository, codes CodeLookup, students StudentLookup, settings SettingsLookup) *AttendanceService {
	return &AttendanceService{
		Repo:     repo,
		Codes:    codes,
		Students: students,
		Settings: settings,
		Now:      dbtime.NowInSchool,
	}
}

// resolveCode: kode tidak dikenal atau siswanya sudah dihapus → InvalidCode
func (s *AttendanceService) resolveCode(ctx context.Context, code string) (*studentModel.StudentModel, error) {
	if code == "" {
		return nil, apperror.New(apperror.KindInvalidCode)
	}
	qr, err := s.Codes.FindByCode(ctx, code)
	if err != nil {
		if apperror.Is(err, apperror.KindQRCodeNotFound) {
			return nil, apperror.New(apperror.KindInvalidCode)
		}
		return nil, err
	}
	st, err := s.Students.FindByID(ctx, qr.StudentsID)
	if err != nil {
		if apperror.Is(err, apperror.KindStudentNotFound) {
			return nil, apperror.New(apperror.KindInvalidCode)
		}
		return nil, err
	}
	return st, nil
}

func (s *AttendanceService) today(ctx context.Context, studentID uuid.UUID, date datatypes.Date) (*model.AttendanceModel, error) {
	rec, err := s.Repo.FindByStudentDate(ctx, studentID, date)
	if apperror.Is(err, apperror.KindAttendanceNotFound) {
		return nil, nil
	}
	return rec, err
}

func result(action string, st *studentModel.StudentModel, rec *model.AttendanceModel) *dto.ScanResult {
	return &dto.ScanResult{
		Action:     action,
		Student:    dto.StudentBrief{ID: st.ID, NIS: st.NIS, NamaSiswa: st.NamaSiswa},
		Attendance: dto.FromModel(*rec),
	}
}

// checkInState: error yang cocok untuk catatan yang sudah ada
func checkInState(rec *model.AttendanceModel) error {
	if rec.JamPulang != nil {
		return apperror.New(apperror.KindAlreadyCheckedOut)
	}
	return apperror.New(apperror.KindAlreadyCheckedIn)
}

func (s *AttendanceService) checkIn(ctx context.Context, st *studentModel.StudentModel, now time.Time) (*model.AttendanceModel, error) {
	jam := dbtime.From(now)
	rec := &model.AttendanceModel{
		StudentsID: st.ID,
		ClassesID:  st.ClassesID,
		Tanggal:    dbtime.DateOf(now),
		JamMasuk:   &jam,
		Kehadiran:  constants.KehadiranHadir,
	}
	inserted, err := s.Repo.InsertIfAbsent(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// kalah balapan dengan scan lain di hari yang sama
		existing, err := s.Repo.FindByStudentDate(ctx, st.ID, rec.Tanggal)
		if err != nil {
			return nil, err
		}
		return nil, checkInState(existing)
	}
	return rec, nil
}

func (s *AttendanceService) checkOut(ctx context.Context, rec *model.AttendanceModel, now time.Time) (*model.AttendanceModel, error) {
	jam := dbtime.From(now)
	ok, err := s.Repo.SetCheckOut(ctx, rec.ID, jam)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.New(apperror.KindAlreadyCheckedOut)
	}
	rec.JamPulang = &jam
	return rec, nil
}

// ScanIn: scan masuk, ditolak kalau sudah lewat jam_masuk di pengaturan
func (s *AttendanceService) ScanIn(ctx context.Context, code string) (*dto.ScanResult, error) {
	st, err := s.resolveCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	set, err := s.Settings.Current(ctx)
	switch {
	case err == nil:
		if set.JamMasuk != nil && dbtime.From(now).After(*set.JamMasuk) {
			return nil, apperror.New(apperror.KindScanClosed)
		}
	case !apperror.Is(err, apperror.KindSettingsNotFound):
		return nil, err
	}

	existing, err := s.today(ctx, st.ID, dbtime.DateOf(now))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, checkInState(existing)
	}

	rec, err := s.checkIn(ctx, st, now)
	if err != nil {
		return nil, err
	}
	return result(ActionMasuk, st, rec), nil
}

func (s *AttendanceService) ScanOut(ctx context.Context, code string) (*dto.ScanResult, error) {
	st, err := s.resolveCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	existing, err := s.today(ctx, st.ID, dbtime.DateOf(now))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.New(apperror.KindNotCheckedIn)
	}
	if existing.JamPulang != nil {
		return nil, apperror.New(apperror.KindAlreadyCheckedOut)
	}

	rec, err := s.checkOut(ctx, existing, now)
	if err != nil {
		return nil, err
	}
	return result(ActionPulang, st, rec), nil
}

// Scan: satu endpoint, belum ada catatan → masuk, sudah masuk → pulang
func (s *AttendanceService) Scan(ctx context.Context, code string) (*dto.ScanResult, error) {
	st, err := s.resolveCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	existing, err := s.today(ctx, st.ID, dbtime.DateOf(now))
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		rec, err := s.checkIn(ctx, st, now)
		if err != nil {
			if apperror.Is(err, apperror.KindAlreadyCheckedOut) {
				return nil, apperror.New(apperror.KindAlreadyComplete)
			}
			return nil, err
		}
		return result(ActionMasuk, st, rec), nil
	case existing.JamPulang == nil:
		rec, err := s.checkOut(ctx, existing, now)
		if err != nil {
			if apperror.Is(err, apperror.KindAlreadyCheckedOut) {
				return nil, apperror.New(apperror.KindAlreadyComplete)
			}
			return nil, err
		}
		return result(ActionPulang, st, rec), nil
	default:
		return nil, apperror.New(apperror.KindAlreadyComplete)
	}
}

// validateManual: status wajib dan valid, jam opsional
func validateManual(req *dto.UpdateRequest) (masuk, pulang *dbtime.Tod, err error) {
	req.Normalize()
	if !constants.IsValidKehadiran(req.Kehadiran) {
		return nil, nil, apperror.New(apperror.KindInvalidStatus)
	}
	if masuk, err = dbtime.ParsePtr(req.JamMasuk); err != nil {
		return nil, nil, &apperror.Error{Kind: apperror.KindInvalidTime, Message: "Format jam masuk tidak valid", Err: err}
	}
	if pulang, err = dbtime.ParsePtr(req.JamPulang); err != nil {
		return nil, nil, &apperror.Error{Kind: apperror.KindInvalidTime, Message: "Format jam keluar tidak valid", Err: err}
	}
	return masuk, pulang, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Update menimpa catatan apa adanya; field kosong jadi NULL
func (s *AttendanceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRequest) (*dto.AttendanceResponse, error) {
	masuk, pulang, err := validateManual(&req)
	if err != nil {
		return nil, err
	}
	values := map[string]any{
		"kehadiran":  req.Kehadiran,
		"jam_masuk":  masuk,
		"jam_pulang": pulang,
		"keterangan": optional(req.Keterangan),
	}
	if err := s.Repo.Update(ctx, id, values); err != nil {
		return nil, err
	}
	rec, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromModel(*rec)
	return &out, nil
}

// UpsertByDate: koreksi admin untuk siswa + tanggal, baris dibuat kalau belum ada
func (s *AttendanceService) UpsertByDate(ctx context.Context, studentID uuid.UUID, date string, req dto.UpdateRequest) (*dto.AttendanceResponse, error) {
	tanggal, err := dbtime.ParseDate(date)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindValidation, Message: "Format tanggal tidak valid (YYYY-MM-DD)", Err: err}
	}
	masuk, pulang, err := validateManual(&req)
	if err != nil {
		return nil, err
	}
	st, err := s.Students.FindByID(ctx, studentID)
	if err != nil {
		if apperror.Is(err, apperror.KindStudentNotFound) {
			return nil, apperror.Newf(apperror.KindStudentNotFound, "Data siswa tidak ditemukan")
		}
		return nil, err
	}

	rec, err := s.Repo.Upsert(ctx, &model.AttendanceModel{
		StudentsID: st.ID,
		ClassesID:  st.ClassesID,
		Tanggal:    tanggal,
		JamMasuk:   masuk,
		JamPulang:  pulang,
		Kehadiran:  req.Kehadiran,
		Keterangan: optional(req.Keterangan),
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromModel(*rec)
	return &out, nil
}

// resolveDate: kosong → hari ini di zona sekolah
func (s *AttendanceService) resolveDate(raw string) (datatypes.Date, error) {
	if raw == "" {
		return dbtime.DateOf(s.Now()), nil
	}
	d, err := dbtime.ParseDate(raw)
	if err != nil {
		return d, &apperror.Error{Kind: apperror.KindValidation, Message: "Format tanggal tidak valid (YYYY-MM-DD)", Err: err}
	}
	return d, nil
}

func (s *AttendanceService) StudentDay(ctx context.Context, studentID uuid.UUID, date string) ([]dto.AttendanceResponse, error) {
	d, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.ListByStudentDate(ctx, studentID, d)
	if err != nil {
		return nil, err
	}
	return dto.FromModels(rows), nil
}

// ClassDay: semua siswa aktif kelas (urut nama) dengan absensinya hari itu.
// Siswa tanpa catatan ditampilkan sebagai "Tanpa Keterangan".
func (s *AttendanceService) ClassDay(ctx context.Context, classID uuid.UUID, date string) (*dto.ClassDayResponse, error) {
	d, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	students, err := s.Students.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	rows, err := s.Repo.ListByStudentsDate(ctx, ids, d)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[uuid.UUID]model.AttendanceModel, len(rows))
	for _, r := range rows {
		byStudent[r.StudentsID] = r
	}

	out := &dto.ClassDayResponse{
		Tanggal:    dbtime.FormatDate(d),
		ClassID:    classID,
		Attendance: make([]dto.ClassDayStudent, 0, len(students)),
	}
	for _, st := range students {
		item := dto.ClassDayStudent{
			ID:           st.ID,
			NIS:          st.NIS,
			NamaSiswa:    st.NamaSiswa,
			JenisKelamin: st.JenisKelamin,
			Attendance:   dto.DayStatus{Kehadiran: constants.KehadiranTanpaKeterangan},
		}
		if r, ok := byStudent[st.ID]; ok {
			id := r.ID
			item.Attendance = dto.DayStatus{
				ID:         &id,
				Tanggal:    dbtime.FormatDate(r.Tanggal),
				JamMasuk:   r.JamMasuk,
				JamPulang:  r.JamPulang,
				Kehadiran:  r.Kehadiran,
				Keterangan: r.Keterangan,
			}
		}
		out.Attendance = append(out.Attendance, item)
	}
	return out, nil
}
