package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	attendanceModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/reports/dto"
	studentModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Senin..Minggu disingkat, indeks = time.Weekday
var dayNames = [...]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

func MonthName(m time.Month) string { return monthNames[m-1] }

type Params struct {
	Month   time.Month
	Year    int
	ClassID uuid.UUID
	Format  string
}

// ParseParams memvalidasi query laporan. Format kosong = pdf, "doc" = docx.
func ParseParams(q dto.ReportQuery) (Params, error) {
	q.Month, q.Year, q.ClassID = strings.TrimSpace(q.Month), strings.TrimSpace(q.Year), strings.TrimSpace(q.ClassID)
	if q.Month == "" || q.Year == "" || q.ClassID == "" {
		return Params{}, apperror.Newf(apperror.KindValidation, "Bulan, tahun, dan kelas harus diisi")
	}
	month, err := strconv.Atoi(q.Month)
	if err != nil || month < 1 || month > 12 {
		return Params{}, apperror.Newf(apperror.KindInvalidPeriod, "Format bulan tidak valid (1-12)")
	}
	year, err := strconv.Atoi(q.Year)
	if err != nil || year < 2000 || year > 3000 {
		return Params{}, apperror.Newf(apperror.KindInvalidPeriod, "Format tahun tidak valid")
	}
	classID, err := uuid.Parse(q.ClassID)
	if err != nil {
		return Params{}, apperror.Newf(apperror.KindValidation, "ID kelas tidak valid")
	}

	p := Params{Month: time.Month(month), Year: year, ClassID: classID}
	switch strings.ToLower(strings.TrimSpace(q.Format)) {
	case "", "pdf":
		p.Format = FormatPDF
	case "doc", "docx":
		p.Format = FormatDOCX
	default:
		return Params{}, apperror.Newf(apperror.KindValidation, "Format laporan harus pdf atau doc")
	}
	return p, nil
}

type Totals struct {
	H, S, I, A int
}

type StudentRow struct {
	No           int
	NIS          string
	Nama         string
	JenisKelamin string
	Daily        []string
	Totals       Totals
}

// Dataset: semua yang dibutuhkan renderer PDF maupun DOCX
type Dataset struct {
	SchoolName    string
	AcademicYear  string
	Logo          []byte
	ClassName     string
	SelectionName string
	Month         time.Month
	Year          int
	Days          int
	Rows          []StudentRow
	Male          int
	Female        int
}

func (d *Dataset) MonthLabel() string { return MonthName(d.Month) }

// DayLabel: singkatan hari untuk tanggal ke-day (1-based)
func (d *Dataset) DayLabel(day int) string {
	return dayNames[time.Date(d.Year, d.Month, day, 0, 0, 0, 0, time.UTC).Weekday()]
}

func (d *Dataset) IsWeekend(day int) bool {
	wd := time.Date(d.Year, d.Month, day, 0, 0, 0, 0, time.UTC).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// BuildRows mengisi kode harian per siswa. Hari tanpa catatan bernilai "-",
// tetapi A dihitung sebagai sisa hari: A = days - (H+S+I).
func BuildRows(students []studentModel.StudentModel, records []attendanceModel.AttendanceModel, days int) []StudentRow {
	index := make(map[uuid.UUID]int, len(students))
	rows := make([]StudentRow, len(students))
	for i, st := range students {
		daily := make([]string, days)
		for d := range daily {
			daily[d] = constants.CodeEmpty
		}
		rows[i] = StudentRow{No: i + 1, NIS: st.NIS, Nama: st.NamaSiswa, JenisKelamin: st.JenisKelamin, Daily: daily}
		index[st.ID] = i
	}

	for _, r := range records {
		i, ok := index[r.StudentsID]
		if !ok {
			continue
		}
		day := time.Time(r.Tanggal).Day()
		if day < 1 || day > days {
			continue
		}
		rows[i].Daily[day-1] = constants.KehadiranCode(r.Kehadiran)
	}

	for i := range rows {
		t := Totals{}
		for _, code := range rows[i].Daily {
			switch code {
			case constants.CodeHadir:
				t.H++
			case constants.CodeSakit:
				t.S++
			case constants.CodeIzin:
				t.I++
			}
		}
		t.A = days - (t.H + t.S + t.I)
		rows[i].Totals = t
	}
	return rows
}

func CountGender(students []studentModel.StudentModel) (male, female int) {
	for _, st := range students {
		switch st.JenisKelamin {
		case constants.GenderMale:
			male++
		case constants.GenderFemale:
			female++
		}
	}
	return male, female
}
