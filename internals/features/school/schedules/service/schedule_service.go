package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

const FileDir = "schedules"

type Repository interface {
	List(ctx context.Context) ([]repository.ScheduleWithClass, error)
	FindByID(ctx context.Context, id uuid.UUID) (*repository.ScheduleWithClass, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]model.ScheduleModel, error)
	Create(ctx context.Context, m *model.ScheduleModel) error
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
	UpdateByClass(ctx context.Context, classID uuid.UUID, values map[string]any) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClassLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*classModel.ClassModel, error)
}

type ScheduleService struct {
	Repo    Repository
	Classes ClassLookup
	Store   storage.Store
	Now     func() time.Time
}

func NewScheduleService(repo Repository, classes ClassLookup, store storage.Store) *ScheduleService {
	return &ScheduleService{Repo: repo, Classes: classes, Store: store, Now: time.Now}
}

func withClass(r repository.ScheduleWithClass) dto.ScheduleResponse {
	out := dto.FromModel(r.ScheduleModel)
	if r.Class != nil {
		out.Class = &dto.ClassBrief{ID: r.Class.ID, NamaKelas: r.Class.NamaKelas}
	}
	return out
}

func (s *ScheduleService) List(ctx context.Context) ([]dto.ScheduleResponse, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, withClass(r))
	}
	return out, nil
}

func (s *ScheduleService) Get(ctx context.Context, id uuid.UUID) (*dto.ScheduleResponse, error) {
	row, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := withClass(*row)
	return &out, nil
}

func (s *ScheduleService) resolveClass(ctx context.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, apperror.Newf(apperror.KindValidation, "Kelas harus diisi")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.New(apperror.KindInvalidClass)
	}
	if _, err := s.Classes.FindByID(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindClassNotFound) {
			return uuid.Nil, apperror.New(apperror.KindInvalidClass)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func fileRequired() error {
	return apperror.Newf(apperror.KindFileRequired, "File jadwal wajib diunggah")
}

// saveFile: schedules_<unix-ms><ext>
func (s *ScheduleService) saveFile(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("schedules_%d%s", s.Now().UnixMilli(), strings.ToLower(filepath.Ext(fh.Filename)))
	path, err := s.Store.SaveUpload(ctx, FileDir, name, fh)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, err)
	}
	return path, nil
}

func (s *ScheduleService) removeFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.Store.Remove(ctx, path); err != nil {
		configs.Component("schedules").Warn().Err(err).Str("path", path).Msg("gagal menghapus file jadwal")
	}
}

func (s *ScheduleService) Create(ctx context.Context, req dto.ScheduleRequest, fh *multipart.FileHeader, by *uuid.UUID) (*dto.ScheduleResponse, error) {
	req.Normalize()
	if fh == nil {
		return nil, fileRequired()
	}
	classID, err := s.resolveClass(ctx, req.ClassesID)
	if err != nil {
		return nil, err
	}
	path, err := s.saveFile(ctx, fh)
	if err != nil {
		return nil, err
	}
	m := &model.ScheduleModel{ClassesID: classID, SchedulePath: path, ModifiedBy: by}
	if err := s.Repo.Create(ctx, m); err != nil {
		s.removeFile(ctx, path)
		return nil, err
	}
	return s.Get(ctx, m.ID)
}

// Update: kelas dan file sama-sama opsional; file baru menggantikan file lama
func (s *ScheduleService) Update(ctx context.Context, id uuid.UUID, req dto.ScheduleRequest, fh *multipart.FileHeader, by *uuid.UUID) (*dto.ScheduleResponse, error) {
	req.Normalize()
	if req.ClassesID == "" && fh == nil {
		return nil, apperror.Newf(apperror.KindValidation, "Tidak ada data yang diupdate")
	}
	old, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	values := map[string]any{"modified_by": by}
	if req.ClassesID != "" {
		classID, err := s.resolveClass(ctx, req.ClassesID)
		if err != nil {
			return nil, err
		}
		values["classes_id"] = classID
	}
	var newPath string
	if fh != nil {
		if newPath, err = s.saveFile(ctx, fh); err != nil {
			return nil, err
		}
		values["schedule_path"] = newPath
	}

	if err := s.Repo.Update(ctx, id, values); err != nil {
		s.removeFile(ctx, newPath)
		return nil, err
	}
	if newPath != "" && old.SchedulePath != newPath {
		s.removeFile(ctx, old.SchedulePath)
	}
	return s.Get(ctx, id)
}

// Upsert: semua jadwal milik kelas diganti file baru, kalau belum ada dibuat.
// created = true kalau baris baru dibuat.
func (s *ScheduleService) Upsert(ctx context.Context, req dto.ScheduleRequest, fh *multipart.FileHeader, by *uuid.UUID) ([]dto.ScheduleResponse, bool, error) {
	req.Normalize()
	if fh == nil {
		return nil, false, fileRequired()
	}
	classID, err := s.resolveClass(ctx, req.ClassesID)
	if err != nil {
		return nil, false, err
	}
	existing, err := s.Repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, false, err
	}

	path, err := s.saveFile(ctx, fh)
	if err != nil {
		return nil, false, err
	}

	if len(existing) == 0 {
		m := &model.ScheduleModel{ClassesID: classID, SchedulePath: path, ModifiedBy: by}
		if err := s.Repo.Create(ctx, m); err != nil {
			s.removeFile(ctx, path)
			return nil, false, err
		}
		return []dto.ScheduleResponse{dto.FromModel(*m)}, true, nil
	}

	if _, err := s.Repo.UpdateByClass(ctx, classID, map[string]any{"schedule_path": path, "modified_by": by}); err != nil {
		s.removeFile(ctx, path)
		return nil, false, err
	}
	for _, e := range existing {
		if e.SchedulePath != path {
			s.removeFile(ctx, e.SchedulePath)
		}
	}
	rows, err := s.Repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, false, err
	}
	return dto.FromModels(rows), false, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(ctx, row.SchedulePath)
	return nil
}
