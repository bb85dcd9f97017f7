package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
)

type ClassRequest struct {
	NamaKelas    string `json:"nama_kelas" validate:"required,max=100"`
	SelectionsID string `json:"selections_id" validate:"required"`
}

func (r *ClassRequest) Normalize() {
	r.NamaKelas = strings.TrimSpace(r.NamaKelas)
	r.SelectionsID = strings.TrimSpace(r.SelectionsID)
}

type SelectionBrief struct {
	ID         uuid.UUID `json:"id"`
	NamaRombel string    `json:"nama_rombel"`
}

type ScheduleBrief struct {
	ID           uuid.UUID `json:"id"`
	SchedulePath string    `json:"schedule_path"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ClassResponse struct {
	ID           uuid.UUID       `json:"id"`
	NamaKelas    string          `json:"nama_kelas"`
	SelectionsID uuid.UUID       `json:"selections_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Selection    *SelectionBrief `json:"selection"`
	Schedule     []ScheduleBrief `json:"schedule,omitempty"`
}

func FromModel(m model.ClassModel) ClassResponse {
	r := ClassResponse{
		ID:           m.ID,
		NamaKelas:    m.NamaKelas,
		SelectionsID: m.SelectionsID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Selection != nil {
		r.Selection = &SelectionBrief{ID: m.Selection.ID, NamaRombel: m.Selection.NamaRombel}
	}
	if m.Schedules != nil {
		r.Schedule = make([]ScheduleBrief, 0, len(m.Schedules))
		for _, s := range m.Schedules {
			r.Schedule = append(r.Schedule, ScheduleBrief{
				ID:           s.ID,
				SchedulePath: s.SchedulePath,
				CreatedAt:    s.CreatedAt,
				UpdatedAt:    s.UpdatedAt,
			})
		}
	}
	return r
}

func FromModels(rows []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
