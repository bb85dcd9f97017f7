package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	selectionModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

type Repository interface {
	List(ctx context.Context) ([]model.ClassModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ClassModel, error)
	Create(ctx context.Context, m *model.ClassModel) error
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error
}

type SelectionLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*selectionModel.SelectionModel, error)
}

type ClassService struct {
	Repo       Repository
	Selections SelectionLookup
}

func NewClassService(repo Repository, selections SelectionLookup) *ClassService {
	return &ClassService{Repo: repo, Selections: selections}
}

func (s *ClassService) List(ctx context.Context) ([]dto.ClassResponse, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromModels(rows), nil
}

func (s *ClassService) Get(ctx context.Context, id uuid.UUID) (*dto.ClassResponse, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromModel(*m)
	return &out, nil
}

// resolveSelection: validasi body lalu pastikan rombel masih aktif
func (s *ClassService) resolveSelection(ctx context.Context, req *dto.ClassRequest) (uuid.UUID, error) {
	req.Normalize()
	if err := helper.Validator().Struct(req); err != nil {
		return uuid.Nil, &apperror.Error{Kind: apperror.KindValidation, Message: "Nama kelas dan rombel harus diisi", Err: err}
	}
	selID, err := uuid.Parse(req.SelectionsID)
	if err != nil {
		return uuid.Nil, apperror.New(apperror.KindInvalidSelection)
	}
	if _, err := s.Selections.FindByID(ctx, selID); err != nil {
		if apperror.Is(err, apperror.KindSelectionNotFound) {
			return uuid.Nil, apperror.New(apperror.KindInvalidSelection)
		}
		return uuid.Nil, err
	}
	return selID, nil
}

// FK selections_id bisa gagal kalau rombel dihapus di antara cek dan insert
func invalidRef(err error) error {
	if apperror.Is(err, apperror.KindInvalidReference) {
		return apperror.Wrap(apperror.KindInvalidSelection, err)
	}
	return err
}

func (s *ClassService) Create(ctx context.Context, req dto.ClassRequest, by *uuid.UUID) (*dto.ClassResponse, error) {
	selID, err := s.resolveSelection(ctx, &req)
	if err != nil {
		return nil, err
	}
	m := &model.ClassModel{NamaKelas: req.NamaKelas, SelectionsID: selID, ModifiedBy: by}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, invalidRef(err)
	}
	return s.Get(ctx, m.ID)
}

func (s *ClassService) Update(ctx context.Context, id uuid.UUID, req dto.ClassRequest, by *uuid.UUID) (*dto.ClassResponse, error) {
	selID, err := s.resolveSelection(ctx, &req)
	if err != nil {
		return nil, err
	}
	err = s.Repo.Update(ctx, id, map[string]any{
		"nama_kelas":    req.NamaKelas,
		"selections_id": selID,
		"modified_by":   by,
	})
	if err != nil {
		return nil, invalidRef(err)
	}
	return s.Get(ctx, id)
}

func (s *ClassService) Delete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error {
	return s.Repo.SoftDelete(ctx, id, by)
}
