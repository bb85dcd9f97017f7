package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	attendanceModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/reports/dto"
	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	settingModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
	studentModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

type SettingsLookup interface {
	Current(ctx context.Context) (*settingModel.SettingModel, error)
}

type ClassLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*classModel.ClassModel, error)
}

type StudentLookup interface {
	ListByClass(ctx context.Context, classID uuid.UUID) ([]studentModel.StudentModel, error)
}

type AttendanceLookup interface {
	ListInRange(ctx context.Context, studentIDs []uuid.UUID, from, to datatypes.Date) ([]attendanceModel.AttendanceModel, error)
}

type ReportService struct {
	Settings   SettingsLookup
	Classes    ClassLookup
	Students   StudentLookup
	Attendance AttendanceLookup
	// Exports: tujuan file laporan, Logos: sumber logo sekolah
	Exports storage.Store
	Logos   storage.Reader
}

// Collect menyusun dataset satu kelas untuk satu bulan.
func (s *ReportService) Collect(ctx context.Context, p Params) (*Dataset, error) {
	setting, err := s.Settings.Current(ctx)
	if err != nil {
		if apperror.Is(err, apperror.KindSettingsNotFound) {
			return nil, apperror.New(apperror.KindSettingsMissing)
		}
		return nil, err
	}
	class, err := s.Classes.FindByID(ctx, p.ClassID)
	if err != nil {
		return nil, err
	}
	students, err := s.Students.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, apperror.New(apperror.KindNoStudents)
	}

	first, last, days := dbtime.MonthRange(p.Year, p.Month)
	ids := make([]uuid.UUID, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	records, err := s.Attendance.ListInRange(ctx, ids, first, last)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		SchoolName:   setting.NamaSekolah,
		AcademicYear: setting.TahunAjaran,
		ClassName:    class.NamaKelas,
		Month:        p.Month,
		Year:         p.Year,
		Days:         days,
		Rows:         BuildRows(students, records, days),
	}
	if class.Selection != nil {
		ds.SelectionName = class.Selection.NamaRombel
	}
	ds.Male, ds.Female = CountGender(students)
	ds.Logo = s.loadLogo(ctx, setting.LogoPath)
	return ds, nil
}

// logo hilang tidak menggagalkan laporan
func (s *ReportService) loadLogo(ctx context.Context, path *string) []byte {
	if s.Logos == nil || path == nil || *path == "" {
		return nil
	}
	data, err := s.Logos.ReadFile(ctx, *path)
	if err != nil {
		configs.Component("reports").Warn().Err(err).Str("path", *path).Msg("logo sekolah tidak terbaca")
		return nil
	}
	return data
}

func (s *ReportService) Generate(ctx context.Context, p Params) (*dto.ReportResult, error) {
	ds, err := s.Collect(ctx, p)
	if err != nil {
		return nil, err
	}

	var (
		data     []byte
		filename string
	)
	switch p.Format {
	case FormatDOCX:
		data, err = RenderDOCX(ds)
		filename = DOCXName(ds)
	default:
		data, err = RenderPDF(ds)
		filename = PDFName(ds)
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err)
	}

	url, err := s.Exports.SaveBytes(ctx, "", filename, data)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err)
	}
	configs.Component("reports").Info().
		Str("class", ds.ClassName).Str("format", p.Format).Int("bytes", len(data)).
		Msg("laporan absensi dibuat")
	return &dto.ReportResult{Filename: filename, Format: p.Format, URL: url}, nil
}

// absensi-<bulan>-<kelas>.pdf
func PDFName(ds *Dataset) string {
	class := strings.ToLower(strings.ReplaceAll(ds.ClassName, " ", ""))
	return fmt.Sprintf("absensi-%s-%s.pdf", strings.ToLower(ds.MonthLabel()), storage.SafeName(class))
}

// attendance_<kelas>_<bulan>_<tahun>.docx
func DOCXName(ds *Dataset) string {
	return fmt.Sprintf("attendance_%s_%d_%d.docx", storage.SafeName(ds.ClassName), int(ds.Month), ds.Year)
}
