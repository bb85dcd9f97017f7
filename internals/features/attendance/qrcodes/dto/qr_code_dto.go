package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/model"
	studentModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
)

type SelectionBrief struct {
	ID         uuid.UUID `json:"id"`
	NamaRombel string    `json:"nama_rombel"`
}

type ClassBrief struct {
	ID        uuid.UUID       `json:"id"`
	NamaKelas string          `json:"nama_kelas"`
	Selection *SelectionBrief `json:"selection,omitempty"`
}

type StudentBrief struct {
	ID           uuid.UUID   `json:"id"`
	NIS          string      `json:"nis"`
	NamaSiswa    string      `json:"nama_siswa"`
	JenisKelamin string      `json:"jenis_kelamin"`
	Class        *ClassBrief `json:"classes,omitempty"`
}

func StudentFromModel(m studentModel.StudentModel) StudentBrief {
	b := StudentBrief{
		ID:           m.ID,
		NIS:          m.NIS,
		NamaSiswa:    m.NamaSiswa,
		JenisKelamin: m.JenisKelamin,
	}
	if m.Class != nil {
		b.Class = &ClassBrief{ID: m.Class.ID, NamaKelas: m.Class.NamaKelas}
		if m.Class.Selection != nil {
			b.Class.Selection = &SelectionBrief{ID: m.Class.Selection.ID, NamaRombel: m.Class.Selection.NamaRombel}
		}
	}
	return b
}

type QRCodeResponse struct {
	ID          uuid.UUID     `json:"id"`
	StudentsID  uuid.UUID     `json:"students_id"`
	UniqueCode  string        `json:"unique_code"`
	QRPath      string        `json:"qr_path"`
	GeneratedBy *uuid.UUID    `json:"generated_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Student     *StudentBrief `json:"students,omitempty"`
}

func FromModel(m model.QRCodeModel) QRCodeResponse {
	return QRCodeResponse{
		ID:          m.ID,
		StudentsID:  m.StudentsID,
		UniqueCode:  m.UniqueCode,
		QRPath:      m.QRPath,
		GeneratedBy: m.GeneratedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// BulkItem: siswa yang dilewati / gagal saat generate satu kelas
type BulkItem struct {
	Student StudentBrief `json:"student"`
	Reason  string       `json:"reason"`
}

type BulkResult struct {
	Generated []QRCodeResponse `json:"generated"`
	Skipped   []BulkItem       `json:"skipped"`
	Failed    []BulkItem       `json:"failed"`
}
