// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const TodLayout = "15:04:05"

var reTod = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9]))?$`)

// Tod: kolom TIME postgres (jam saja, tanpa tanggal & zona)
type Tod struct{ time.Time }

// From: bikin Tod dari time.Time (ambil HH:mm:ss, buang tanggal & zona)
func From(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// Parse: "H:MM", "HH:MM" atau "HH:MM:SS"
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// ValidTime: true kalau s format jam yang diterima Parse
func ValidTime(s string) bool {
	return reTod.MatchString(strings.TrimSpace(s))
}

// ParsePtr: string kosong → nil
func ParsePtr(s string) (*Tod, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (t Tod) String() string { return t.Format(TodLayout) }

// After membandingkan jam saja
func (t Tod) After(o Tod) bool {
	return secondsOf(t.Time) > secondsOf(o.Time)
}

func secondsOf(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// Scan: terima time.Time atau string ("HH:MM[:SS]")
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = From(x)
		return nil
	case []byte:
		return t.scanString(string(x))
	case string:
		return t.scanString(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

// postgres bisa kirim "07:05:00.123456"
func (t *Tod) scanString(s string) error {
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	return t.parse(s)
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	m := reTod.FindStringSubmatch(s)
	if m == nil {
		return fmt.Errorf("tod: format jam tidak valid %q", s)
	}
	hour, sec := m[1], m[3]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	if sec == "" {
		sec = "00"
	}
	tt, err := time.Parse(TodLayout, hour+":"+m[2]+":"+sec)
	if err != nil {
		return err
	}
	*t = From(tt)
	return nil
}

// Value: kirim "HH:MM:SS" agar Postgres TIME paham
func (t Tod) Value() (driver.Value, error) {
	return t.Format(TodLayout), nil
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TodLayout))
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}

// GormDataType supaya AutoMigrate membuat kolom TIME
func (Tod) GormDataType() string { return "time" }
