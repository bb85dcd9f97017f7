// Package apperror defines the error kinds surfaced by services. Each kind
// carries a stable machine code, an HTTP status and a default display message,
// so handlers never have to inspect message text.
package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindInvalidReference
	KindTimeout
	KindUnauthorized
	KindForbidden
	KindNotFound

	// auth & users
	KindInvalidCredentials
	KindTokenMissing
	KindTokenExpired
	KindTokenInvalid
	KindUsernameTaken
	KindEmailTaken
	KindUserNotFound

	// school data
	KindSelectionNotFound
	KindSelectionNameTaken
	KindClassNotFound
	KindClassNameTaken
	KindInvalidSelection
	KindStudentNotFound
	KindInvalidClass
	KindNISTaken
	KindScheduleNotFound
	KindFileRequired
	KindInvalidFile
	KindSettingsNotFound
	KindSettingsExists
	KindInvalidAcademicYear

	// qr codes
	KindQRCodeNotFound
	KindQRCodeExists

	// attendance
	KindInvalidCode
	KindAlreadyCheckedIn
	KindAlreadyCheckedOut
	KindAlreadyComplete
	KindNotCheckedIn
	KindScanClosed
	KindInvalidStatus
	KindInvalidTime
	KindAttendanceNotFound

	// reports
	KindSettingsMissing
	KindNoStudents
	KindInvalidPeriod
)

type kindInfo struct {
	code    string
	status  int
	message string
}

var kinds = map[Kind]kindInfo{
	KindInternal:         {"INTERNAL_ERROR", http.StatusInternalServerError, "Terjadi kesalahan pada server"},
	KindValidation:       {"VALIDATION_ERROR", http.StatusBadRequest, "Data yang dikirim tidak valid"},
	KindConflict:         {"CONFLICT", http.StatusBadRequest, "Data sudah ada"},
	KindInvalidReference: {"INVALID_REFERENCE", http.StatusBadRequest, "Data referensi tidak ditemukan"},
	KindTimeout:          {"TIMEOUT", http.StatusGatewayTimeout, "Permintaan melebihi batas waktu"},
	KindUnauthorized:     {"UNAUTHORIZED", http.StatusUnauthorized, "Akses ditolak"},
	KindForbidden:        {"FORBIDDEN", http.StatusForbidden, "Akses ditolak. Anda tidak memiliki izin yang cukup"},
	KindNotFound:         {"NOT_FOUND", http.StatusNotFound, "Data tidak ditemukan"},

	KindInvalidCredentials: {"AUTH_INVALID_CREDENTIALS", http.StatusUnauthorized, "Username atau password salah"},
	KindTokenMissing:       {"AUTH_TOKEN_MISSING", http.StatusUnauthorized, "Akses ditolak. Token tidak ditemukan"},
	KindTokenExpired:       {"AUTH_TOKEN_EXPIRED", http.StatusUnauthorized, "Akses ditolak. Token sudah kedaluwarsa"},
	KindTokenInvalid:       {"AUTH_TOKEN_INVALID", http.StatusUnauthorized, "Akses ditolak. Token tidak valid"},
	KindUsernameTaken:      {"USER_USERNAME_TAKEN", http.StatusBadRequest, "Username sudah terdaftar"},
	KindEmailTaken:         {"USER_EMAIL_TAKEN", http.StatusBadRequest, "Email sudah terdaftar"},
	KindUserNotFound:       {"USER_NOT_FOUND", http.StatusNotFound, "User tidak ditemukan"},

	KindSelectionNotFound:   {"SELECTION_NOT_FOUND", http.StatusNotFound, "Rombel tidak ditemukan"},
	KindSelectionNameTaken:  {"SELECTION_NAME_TAKEN", http.StatusBadRequest, "Nama rombel sudah ada"},
	KindClassNotFound:       {"CLASS_NOT_FOUND", http.StatusNotFound, "Kelas tidak ditemukan"},
	KindClassNameTaken:      {"CLASS_NAME_TAKEN", http.StatusBadRequest, "Nama kelas sudah ada dalam rombel yang sama"},
	KindInvalidSelection:    {"CLASS_INVALID_SELECTION", http.StatusBadRequest, "Rombel yang dipilih tidak valid"},
	KindStudentNotFound:     {"STUDENT_NOT_FOUND", http.StatusNotFound, "Siswa tidak ditemukan"},
	KindInvalidClass:        {"STUDENT_INVALID_CLASS", http.StatusBadRequest, "Kelas yang dipilih tidak valid"},
	KindNISTaken:            {"STUDENT_NIS_TAKEN", http.StatusBadRequest, "NIS sudah terdaftar"},
	KindScheduleNotFound:    {"SCHEDULE_NOT_FOUND", http.StatusNotFound, "Jadwal tidak ditemukan"},
	KindFileRequired:        {"FILE_REQUIRED", http.StatusBadRequest, "File wajib diunggah"},
	KindInvalidFile:         {"FILE_INVALID", http.StatusBadRequest, "Hanya file gambar yang diperbolehkan"},
	KindSettingsNotFound:    {"SETTINGS_NOT_FOUND", http.StatusNotFound, "Pengaturan belum dibuat"},
	KindSettingsExists:      {"SETTINGS_EXISTS", http.StatusConflict, "Pengaturan sudah ada, gunakan update"},
	KindInvalidAcademicYear: {"SETTINGS_INVALID_ACADEMIC_YEAR", http.StatusBadRequest, "Format tahun ajaran tidak valid (contoh: 2024/2025)"},

	KindQRCodeNotFound: {"QRCODE_NOT_FOUND", http.StatusNotFound, "QR Code tidak ditemukan"},
	KindQRCodeExists:   {"QRCODE_EXISTS", http.StatusBadRequest, "QR Code untuk siswa ini sudah ada"},

	KindInvalidCode:        {"ATTENDANCE_INVALID_CODE", http.StatusBadRequest, "QR Code tidak valid"},
	KindAlreadyCheckedIn:   {"ATTENDANCE_ALREADY_CHECKED_IN", http.StatusBadRequest, "Siswa telah melakukan scan masuk hari ini"},
	KindAlreadyCheckedOut:  {"ATTENDANCE_ALREADY_CHECKED_OUT", http.StatusBadRequest, "Siswa sudah melakukan absensi masuk dan pulang hari ini"},
	KindAlreadyComplete:    {"ATTENDANCE_ALREADY_COMPLETE", http.StatusBadRequest, "Siswa sudah melakukan absensi masuk dan pulang hari ini"},
	KindNotCheckedIn:       {"ATTENDANCE_NOT_CHECKED_IN", http.StatusBadRequest, "Siswa belum melakukan scan masuk hari ini"},
	KindScanClosed:         {"ATTENDANCE_SCAN_CLOSED", http.StatusBadRequest, "Jam scan sudah lewat"},
	KindInvalidStatus:      {"ATTENDANCE_INVALID_STATUS", http.StatusBadRequest, "Status kehadiran tidak valid"},
	KindInvalidTime:        {"ATTENDANCE_INVALID_TIME", http.StatusBadRequest, "Format jam tidak valid"},
	KindAttendanceNotFound: {"ATTENDANCE_NOT_FOUND", http.StatusNotFound, "Data absensi tidak ditemukan"},

	KindSettingsMissing: {"REPORT_SETTINGS_MISSING", http.StatusBadRequest, "Pengaturan sekolah belum dibuat"},
	KindNoStudents:      {"REPORT_NO_STUDENTS", http.StatusBadRequest, "Tidak ada siswa di kelas ini"},
	KindInvalidPeriod:   {"REPORT_INVALID_PERIOD", http.StatusBadRequest, "Periode laporan tidak valid"},
}

func (k Kind) info() kindInfo {
	if i, ok := kinds[k]; ok {
		return i
	}
	return kinds[KindInternal]
}

func (k Kind) Code() string    { return k.info().code }
func (k Kind) Status() int     { return k.info().status }
func (k Kind) Message() string { return k.info().message }
func (k Kind) String() string  { return k.Code() }

// Error is a kind plus the message shown to API consumers. Err keeps the
// underlying cause for logs and is never rendered.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(k Kind) *Error {
	return &Error{Kind: k, Message: k.Message()}
}

func Newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func Wrap(k Kind, err error) *Error {
	return &Error{Kind: k, Message: k.Message(), Err: err}
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// FromDB classifies a database error. Record-not-found becomes notFound,
// unique violations are looked up by constraint name in unique.
func FromDB(err error, notFound Kind, unique map[string]Kind) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(notFound, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(KindTimeout, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if k, ok := unique[pgErr.ConstraintName]; ok {
				return Wrap(k, err)
			}
			return Wrap(KindConflict, err)
		case "23503":
			return Wrap(KindInvalidReference, err)
		case "22P02", "22007", "22008":
			return Wrap(KindValidation, err)
		case "57014":
			return Wrap(KindTimeout, err)
		}
	}
	return Wrap(KindInternal, err)
}
