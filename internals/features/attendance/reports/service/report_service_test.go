package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	attendanceModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/reports/dto"
	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	selectionModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
	settingModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
	studentModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

type fakeSettings struct{ row *settingModel.SettingModel }

func (f fakeSettings) Current(context.Context) (*settingModel.SettingModel, error) {
	if f.row == nil {
		return nil, apperror.New(apperror.KindSettingsNotFound)
	}
	return f.row, nil
}

type fakeClasses map[uuid.UUID]*classModel.ClassModel

func (f fakeClasses) FindByID(_ context.Context, id uuid.UUID) (*classModel.ClassModel, error) {
	c, ok := f[id]
	if !ok {
		return nil, apperror.New(apperror.KindClassNotFound)
	}
	return c, nil
}

type fakeStudents []studentModel.StudentModel

func (f fakeStudents) ListByClass(_ context.Context, classID uuid.UUID) ([]studentModel.StudentModel, error) {
	var out []studentModel.StudentModel
	for _, st := range f {
		if st.ClassesID == classID {
			out = append(out, st)
		}
	}
	return out, nil
}

type fakeAttendance []attendanceModel.AttendanceModel

func (f fakeAttendance) ListInRange(_ context.Context, ids []uuid.UUID, from, to datatypes.Date) ([]attendanceModel.AttendanceModel, error) {
	var out []attendanceModel.AttendanceModel
	for _, r := range f {
		d := time.Time(r.Tanggal)
		if d.Before(time.Time(from)) || d.After(time.Time(to)) {
			continue
		}
		for _, id := range ids {
			if id == r.StudentsID {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

var (
	classID = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	andiID  = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	sitiID  = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
)

func day(d int) datatypes.Date {
	return datatypes.Date(time.Date(2024, time.February, d, 0, 0, 0, 0, time.UTC))
}

func newReportService(exports *storage.MockStore) *ReportService {
	return &ReportService{
		Settings: fakeSettings{row: &settingModel.SettingModel{NamaSekolah: "SMK Negeri 1", TahunAjaran: "2023/2024"}},
		Classes: fakeClasses{classID: {
			ID: classID, NamaKelas: "X RPL 1",
			Selection: &selectionModel.SelectionModel{NamaRombel: "Rombel A"},
		}},
		Students: fakeStudents{
			{ID: andiID, NIS: "1001", NamaSiswa: "Andi", JenisKelamin: constants.GenderMale, ClassesID: classID},
			{ID: sitiID, NIS: "1002", NamaSiswa: "Siti", JenisKelamin: constants.GenderFemale, ClassesID: classID},
		},
		Attendance: fakeAttendance{
			{StudentsID: andiID, Tanggal: day(1), Kehadiran: constants.KehadiranHadir},
			{StudentsID: andiID, Tanggal: day(2), Kehadiran: constants.KehadiranSakit},
			{StudentsID: andiID, Tanggal: day(5), Kehadiran: constants.KehadiranAlfa},
			{StudentsID: sitiID, Tanggal: day(1), Kehadiran: constants.KehadiranIzin},
			// bulan lain, harus diabaikan
			{StudentsID: sitiID, Tanggal: datatypes.Date(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)), Kehadiran: constants.KehadiranHadir},
		},
		Exports: exports,
		Logos:   storage.NewMockStore(),
	}
}

func params(format string) Params {
	return Params{Month: time.February, Year: 2024, ClassID: classID, Format: format}
}

func TestParseParams(t *testing.T) {
	id := classID.String()
	tests := []struct {
		name    string
		q       dto.ReportQuery
		kind    apperror.Kind
		message string
		format  string
	}{
		{"ok default pdf", dto.ReportQuery{Month: "2", Year: "2024", ClassID: id}, 0, "", FormatPDF},
		{"doc alias", dto.ReportQuery{Month: "2", Year: "2024", ClassID: id, Format: "DOC"}, 0, "", FormatDOCX},
		{"missing", dto.ReportQuery{Month: "2", ClassID: id}, apperror.KindValidation, "Bulan, tahun, dan kelas harus diisi", ""},
		{"month 13", dto.ReportQuery{Month: "13", Year: "2024", ClassID: id}, apperror.KindInvalidPeriod, "Format bulan tidak valid (1-12)", ""},
		{"month text", dto.ReportQuery{Month: "feb", Year: "2024", ClassID: id}, apperror.KindInvalidPeriod, "Format bulan tidak valid (1-12)", ""},
		{"year", dto.ReportQuery{Month: "2", Year: "1999", ClassID: id}, apperror.KindInvalidPeriod, "Format tahun tidak valid", ""},
		{"class id", dto.ReportQuery{Month: "2", Year: "2024", ClassID: "x"}, apperror.KindValidation, "ID kelas tidak valid", ""},
		{"format", dto.ReportQuery{Month: "2", Year: "2024", ClassID: id, Format: "xls"}, apperror.KindValidation, "Format laporan harus pdf atau doc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseParams(tt.q)
			if tt.message == "" {
				if err != nil {
					t.Fatal(err)
				}
				if p.Format != tt.format {
					t.Fatalf("format = %q", p.Format)
				}
				return
			}
			if apperror.KindOf(err) != tt.kind {
				t.Fatalf("kind = %v, want %v", apperror.KindOf(err), tt.kind)
			}
			if err.(*apperror.Error).Message != tt.message {
				t.Fatalf("message = %q", err.(*apperror.Error).Message)
			}
		})
	}
}

func TestCollectBuildsRowsAndTotals(t *testing.T) {
	svc := newReportService(storage.NewMockStore())
	ds, err := svc.Collect(context.Background(), params(FormatPDF))
	if err != nil {
		t.Fatal(err)
	}
	if ds.Days != 29 {
		t.Fatalf("days = %d, want 29 (2024 kabisat)", ds.Days)
	}
	if ds.SelectionName != "Rombel A" || ds.Male != 1 || ds.Female != 1 {
		t.Fatalf("dataset = %+v", ds)
	}

	andi := ds.Rows[0]
	if andi.Nama != "Andi" || andi.Daily[0] != "H" || andi.Daily[1] != "S" || andi.Daily[4] != "A" || andi.Daily[2] != "-" {
		t.Fatalf("andi daily = %v", andi.Daily)
	}
	// A = hari - (H+S+I), bukan jumlah kode A
	if andi.Totals != (Totals{H: 1, S: 1, I: 0, A: 27}) {
		t.Fatalf("andi totals = %+v", andi.Totals)
	}
	siti := ds.Rows[1]
	if siti.Totals != (Totals{I: 1, A: 28}) {
		t.Fatalf("siti totals = %+v", siti.Totals)
	}
}

func TestCollectErrors(t *testing.T) {
	ctx := context.Background()

	svc := newReportService(storage.NewMockStore())
	svc.Settings = fakeSettings{}
	if _, err := svc.Collect(ctx, params(FormatPDF)); !apperror.Is(err, apperror.KindSettingsMissing) {
		t.Fatalf("no settings: %v", err)
	}

	svc = newReportService(storage.NewMockStore())
	p := params(FormatPDF)
	p.ClassID = uuid.New()
	if _, err := svc.Collect(ctx, p); !apperror.Is(err, apperror.KindClassNotFound) {
		t.Fatalf("unknown class: %v", err)
	}

	svc.Students = fakeStudents{}
	if _, err := svc.Collect(ctx, params(FormatPDF)); !apperror.Is(err, apperror.KindNoStudents) {
		t.Fatalf("empty class: %v", err)
	}
}

func TestGeneratePDF(t *testing.T) {
	exports := storage.NewMockStore()
	svc := newReportService(exports)
	res, err := svc.Generate(context.Background(), params(FormatPDF))
	if err != nil {
		t.Fatal(err)
	}
	if res.Filename != "absensi-februari-xrpl1.pdf" {
		t.Fatalf("filename = %q", res.Filename)
	}
	data := exports.Files[res.URL]
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (%d bytes)", len(data))
	}
}

func TestGeneratePDFIgnoresBrokenLogo(t *testing.T) {
	svc := newReportService(storage.NewMockStore())
	logos := storage.NewMockStore()
	logoPath, _ := logos.SaveBytes(context.Background(), "logo", "logo.png", []byte("bukan png"))
	svc.Logos = logos
	svc.Settings = fakeSettings{row: &settingModel.SettingModel{NamaSekolah: "SMK", TahunAjaran: "2023/2024", LogoPath: &logoPath}}

	if _, err := svc.Generate(context.Background(), params(FormatPDF)); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateDOCX(t *testing.T) {
	exports := storage.NewMockStore()
	svc := newReportService(exports)
	res, err := svc.Generate(context.Background(), params(FormatDOCX))
	if err != nil {
		t.Fatal(err)
	}
	if res.Filename != "attendance_X_RPL_1_2_2024.docx" {
		t.Fatalf("filename = %q", res.Filename)
	}

	doc := docxPart(t, exports.Files[res.URL], "word/document.xml")
	for _, want := range []string{"DAFTAR HADIR SISWA", "SMK Negeri 1", "Februari 2024", "X RPL 1 Rombel A", `w:w="16838" w:h="11906"`, `w:fill="FF4D4D"`, `<w:vMerge w:val="restart">`} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document.xml missing %q", want)
		}
	}
}

func TestDocxEscapesText(t *testing.T) {
	ds := &Dataset{SchoolName: "SD <Harapan> & Bangsa", AcademicYear: "2024/2025", Month: time.January, Year: 2024, Days: 31}
	data, err := RenderDOCX(ds)
	if err != nil {
		t.Fatal(err)
	}
	doc := docxPart(t, data, "word/document.xml")
	if strings.Contains(doc, "<Harapan>") || !strings.Contains(doc, "SD &lt;Harapan&gt; &amp; Bangsa") {
		t.Fatal("school name must be xml-escaped")
	}
}

func docxPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}
	t.Fatalf("%s not found in docx", name)
	return ""
}

func pdfPages(data []byte) int {
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func datasetWithRows(n int) *Dataset {
	ds := &Dataset{SchoolName: "SMK Negeri 1", AcademicYear: "2023/2024", ClassName: "X RPL 1", SelectionName: "Rombel A", Month: time.February, Year: 2024, Days: 29}
	for i := 1; i <= n; i++ {
		daily := make([]string, ds.Days)
		for d := range daily {
			daily[d] = "-"
		}
		ds.Rows = append(ds.Rows, StudentRow{No: i, Nama: "Siswa " + strconv.Itoa(i), Daily: daily, Totals: Totals{A: ds.Days}})
	}
	return ds
}

func TestRenderPDFPagination(t *testing.T) {
	tests := []struct {
		rows  int
		pages int
	}{
		{rows: 5, pages: 1},
		// 23 baris di halaman 1, 30 di halaman 2, sisanya + footer di halaman 3
		{rows: 60, pages: 3},
	}
	for _, tt := range tests {
		data, err := RenderPDF(datasetWithRows(tt.rows))
		if err != nil {
			t.Fatalf("%d rows: %v", tt.rows, err)
		}
		if got := pdfPages(data); got != tt.pages {
			t.Errorf("%d rows: pages = %d, want %d", tt.rows, got, tt.pages)
		}
	}
}
