package constants

// Status kehadiran seperti yang disimpan di kolom attendences.kehadiran
const (
	KehadiranHadir           = "Hadir"
	KehadiranSakit           = "Sakit"
	KehadiranIzin            = "Izin"
	KehadiranAlfa            = "Alfa"
	KehadiranTanpaKeterangan = "Tanpa Keterangan"
)

var KehadiranValues = []string{
	KehadiranHadir,
	KehadiranSakit,
	KehadiranIzin,
	KehadiranAlfa,
	KehadiranTanpaKeterangan,
}

func IsValidKehadiran(s string) bool {
	for _, v := range KehadiranValues {
		if v == s {
			return true
		}
	}
	return false
}

// Kode satu huruf di laporan bulanan
const (
	CodeHadir = "H"
	CodeSakit = "S"
	CodeIzin  = "I"
	CodeAlfa  = "A"
	CodeEmpty = "-"
)

// KehadiranCode: Hadir→H, Sakit→S, Izin→I, selain itu A
func KehadiranCode(kehadiran string) string {
	switch kehadiran {
	case KehadiranHadir:
		return CodeHadir
	case KehadiranSakit:
		return CodeSakit
	case KehadiranIzin:
		return CodeIzin
	default:
		return CodeAlfa
	}
}

const (
	GenderMale   = "Laki-laki"
	GenderFemale = "Perempuan"
)

func IsValidGender(s string) bool {
	return s == GenderMale || s == GenderFemale
}
