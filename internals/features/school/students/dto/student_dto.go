package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
)

type StudentRequest struct {
	NIS          string `json:"nis" validate:"required,max=30"`
	NamaSiswa    string `json:"nama_siswa" validate:"required,max=150"`
	JenisKelamin string `json:"jenis_kelamin" validate:"required"`
	ClassesID    string `json:"classes_id" validate:"required"`
}

func (r *StudentRequest) Normalize() {
	r.NIS = strings.TrimSpace(r.NIS)
	r.NamaSiswa = strings.TrimSpace(r.NamaSiswa)
	r.JenisKelamin = strings.TrimSpace(r.JenisKelamin)
	r.ClassesID = strings.TrimSpace(r.ClassesID)
}

// ListQuery: ?kelasId=&include_deleted=&page=&per_page=
type ListQuery struct {
	ClassID        *uuid.UUID
	IncludeDeleted bool
	Limit          int
	Offset         int
}

type ClassBrief struct {
	ID        uuid.UUID `json:"id"`
	NamaKelas string    `json:"nama_kelas"`
}

type SelectionBrief struct {
	ID         uuid.UUID `json:"id"`
	NamaRombel string    `json:"nama_rombel"`
}

type StudentResponse struct {
	ID           uuid.UUID       `json:"id"`
	NIS          string          `json:"nis"`
	NamaSiswa    string          `json:"nama_siswa"`
	JenisKelamin string          `json:"jenis_kelamin"`
	ClassesID    uuid.UUID       `json:"classes_id"`
	SelectionsID uuid.UUID       `json:"selections_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    *time.Time      `json:"deleted_at,omitempty"`
	Class        *ClassBrief     `json:"class"`
	Selection    *SelectionBrief `json:"selection"`
	QRPath       *string         `json:"qr_path"`
}

func FromModel(m model.StudentModel) StudentResponse {
	r := StudentResponse{
		ID:           m.ID,
		NIS:          m.NIS,
		NamaSiswa:    m.NamaSiswa,
		JenisKelamin: m.JenisKelamin,
		ClassesID:    m.ClassesID,
		SelectionsID: m.SelectionsID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		r.DeletedAt = &t
	}
	if m.Class != nil {
		r.Class = &ClassBrief{ID: m.Class.ID, NamaKelas: m.Class.NamaKelas}
	}
	if m.Selection != nil {
		r.Selection = &SelectionBrief{ID: m.Selection.ID, NamaRombel: m.Selection.NamaRombel}
	}
	if m.QRCode != nil && m.QRCode.QRPath != "" {
		p := m.QRCode.QRPath
		r.QRPath = &p
	}
	return r
}

func FromModels(rows []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
