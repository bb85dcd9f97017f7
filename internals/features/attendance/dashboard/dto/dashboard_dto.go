package dto

type AttendanceSummary struct {
	Hadir int64 `json:"hadir"`
	Sakit int64 `json:"sakit"`
	Izin  int64 `json:"izin"`
	Alfa  int64 `json:"alfa"`
}

type DailyHadir struct {
	Tanggal string `json:"tanggal"`
	Hadir   int64  `json:"hadir"`
}

type StudentStats struct {
	Jumlah         int64             `json:"jumlah"`
	AbsensiHariIni AttendanceSummary `json:"absensi_hari_ini"`
	GrafikMingguan []DailyHadir      `json:"grafik_mingguan"`
}

type Counter struct {
	Jumlah int64 `json:"jumlah"`
}

type DashboardResponse struct {
	Tanggal string       `json:"tanggal"`
	Siswa   StudentStats `json:"siswa"`
	Kelas   Counter      `json:"kelas"`
	Petugas Counter      `json:"petugas"`
}
