// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
)

const DateLayout = "2006-01-02"

var (
	locOnce  sync.Once
	location *time.Location
)

// SchoolLocation: zona waktu sekolah dari SCHOOL_TIMEZONE.
// Fallback Asia/Jakarta, lalu UTC kalau tzdata tidak tersedia.
func SchoolLocation() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(configs.SchoolTimezone)
		if name == "" {
			name = "Asia/Jakarta"
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			configs.Component("dbtime").Warn().Err(err).Str("tz", name).Msg("timezone tidak dikenal, pakai UTC")
			loc = time.UTC
		}
		location = loc
	})
	return location
}

// NowInSchool: "sekarang" di timezone sekolah
func NowInSchool() time.Time {
	return time.Now().In(SchoolLocation())
}

// ToSchoolTime mengonversi waktu (biasanya dari DB = UTC) ke timezone sekolah.
func ToSchoolTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(SchoolLocation())
}

// DateOf: tanggal sipil (tanpa jam) dari t, di lokasi t sendiri.
func DateOf(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// ParseDate: "YYYY-MM-DD" → datatypes.Date
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// MonthRange: hari pertama & terakhir bulan, plus jumlah harinya
func MonthRange(year int, month time.Month) (first, last datatypes.Date, days int) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return datatypes.Date(start), datatypes.Date(end), end.Day()
}
