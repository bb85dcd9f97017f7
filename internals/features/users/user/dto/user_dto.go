package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/model"
)

/* =========================================================
   RESPONSE
========================================================= */

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func FromModel(m model.UserModel) UserResponse {
	r := UserResponse{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		r.DeletedAt = &t
	}
	return r
}

func FromModels(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

/* =========================================================
   UPDATE (semua opsional, "" = tidak diubah)
========================================================= */

type UpdateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
}

func (r *UpdateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.TrimSpace(r.Role)
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.Username == "" && r.Email == "" && r.Role == "" && r.Password == ""
}
