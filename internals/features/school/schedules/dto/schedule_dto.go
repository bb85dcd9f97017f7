package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/model"
)

// ScheduleRequest dikirim sebagai multipart form bersama file "schedule"
type ScheduleRequest struct {
	ClassesID string `form:"classes_id" json:"classes_id"`
}

func (r *ScheduleRequest) Normalize() {
	r.ClassesID = strings.TrimSpace(r.ClassesID)
}

type ClassBrief struct {
	ID        uuid.UUID `json:"id"`
	NamaKelas string    `json:"nama_kelas"`
}

type ScheduleResponse struct {
	ID           uuid.UUID   `json:"id"`
	ClassesID    uuid.UUID   `json:"classes_id"`
	SchedulePath string      `json:"schedule_path"`
	ModifiedBy   *uuid.UUID  `json:"modified_by,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Class        *ClassBrief `json:"classes,omitempty"`
}

func FromModel(m model.ScheduleModel) ScheduleResponse {
	return ScheduleResponse{
		ID:           m.ID,
		ClassesID:    m.ClassesID,
		SchedulePath: m.SchedulePath,
		ModifiedBy:   m.ModifiedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func FromModels(rows []model.ScheduleModel) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
