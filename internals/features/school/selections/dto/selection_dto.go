package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
)

type SelectionRequest struct {
	NamaRombel string `json:"nama_rombel" validate:"required,max=100"`
}

func (r *SelectionRequest) Normalize() {
	r.NamaRombel = strings.TrimSpace(r.NamaRombel)
}

type SelectionResponse struct {
	ID         uuid.UUID `json:"id"`
	NamaRombel string    `json:"nama_rombel"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromModel(m model.SelectionModel) SelectionResponse {
	return SelectionResponse{
		ID:         m.ID,
		NamaRombel: m.NamaRombel,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func FromModels(rows []model.SelectionModel) []SelectionResponse {
	out := make([]SelectionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
