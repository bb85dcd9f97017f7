package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

type Repository interface {
	List(ctx context.Context) ([]model.SelectionModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.SelectionModel, error)
	Create(ctx context.Context, m *model.SelectionModel) error
	Update(ctx context.Context, id uuid.UUID, values map[string]any) (*model.SelectionModel, error)
	SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error
}

type SelectionService struct {
	Repo Repository
}

func NewSelectionService(repo Repository) *SelectionService {
	return &SelectionService{Repo: repo}
}

func validate(req *dto.SelectionRequest) error {
	req.Normalize()
	if err := helper.Validator().Struct(req); err != nil {
		return &apperror.Error{Kind: apperror.KindValidation, Message: "Nama rombel harus diisi", Err: err}
	}
	return nil
}

func (s *SelectionService) List(ctx context.Context) ([]dto.SelectionResponse, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromModels(rows), nil
}

func (s *SelectionService) Get(ctx context.Context, id uuid.UUID) (*dto.SelectionResponse, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromModel(*m)
	return &out, nil
}

// Create: nama duplikat ditolak oleh unique index, bukan dicek dulu
func (s *SelectionService) Create(ctx context.Context, req dto.SelectionRequest, by *uuid.UUID) (*dto.SelectionResponse, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	m := &model.SelectionModel{NamaRombel: req.NamaRombel, ModifiedBy: by}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	out := dto.FromModel(*m)
	return &out, nil
}

func (s *SelectionService) Update(ctx context.Context, id uuid.UUID, req dto.SelectionRequest, by *uuid.UUID) (*dto.SelectionResponse, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	m, err := s.Repo.Update(ctx, id, map[string]any{
		"nama_rombel": req.NamaRombel,
		"modified_by": by,
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromModel(*m)
	return &out, nil
}

func (s *SelectionService) Delete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error {
	return s.Repo.SoftDelete(ctx, id, by)
}
