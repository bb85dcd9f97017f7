package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

const (
	LogoDir     = "logo"
	LogoMaxSide = 512
)

var reTahunAjaran = regexp.MustCompile(`^\d{4}/\d{4}$`)

type Repository interface {
	Current(ctx context.Context) (*model.SettingModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.SettingModel, error)
	Create(ctx context.Context, m *model.SettingModel) error
	Update(ctx context.Context, id uuid.UUID, values map[string]any) error
}

type SettingService struct {
	Repo  Repository
	Store storage.Store
	Now   func() time.Time
}

func NewSettingService(repo Repository, store storage.Store) *SettingService {
	return &SettingService{Repo: repo, Store: store, Now: time.Now}
}

func (s *SettingService) Get(ctx context.Context) (*dto.SettingResponse, error) {
	return s.Repo.Current(ctx)
}

func parseJamMasuk(raw string) (*dbtime.Tod, error) {
	t, err := dbtime.ParsePtr(raw)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindInvalidTime, Message: "Format jam masuk tidak valid", Err: err}
	}
	return t, nil
}

func (s *SettingService) Create(ctx context.Context, req dto.SettingRequest, by *uuid.UUID) (*dto.SettingResponse, error) {
	req.Normalize()
	if req.NamaSekolah == "" || req.TahunAjaran == "" {
		return nil, apperror.Newf(apperror.KindValidation, "Nama sekolah dan tahun ajaran harus diisi")
	}
	if !reTahunAjaran.MatchString(req.TahunAjaran) {
		return nil, apperror.New(apperror.KindInvalidAcademicYear)
	}
	jam, err := parseJamMasuk(req.JamMasuk)
	if err != nil {
		return nil, err
	}

	// pengaturan hanya satu baris
	switch _, err := s.Repo.Current(ctx); {
	case err == nil:
		return nil, apperror.New(apperror.KindSettingsExists)
	case !apperror.Is(err, apperror.KindSettingsNotFound):
		return nil, err
	}

	m := &model.SettingModel{
		NamaSekolah: req.NamaSekolah,
		TahunAjaran: req.TahunAjaran,
		JamMasuk:    jam,
		ModifiedBy:  by,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SettingService) Update(ctx context.Context, id uuid.UUID, req dto.SettingRequest, by *uuid.UUID) (*dto.SettingResponse, error) {
	req.Normalize()
	if req.IsEmpty() {
		return nil, apperror.Newf(apperror.KindValidation, "Tidak ada data yang diupdate")
	}

	values := map[string]any{"modified_by": by}
	if req.NamaSekolah != "" {
		values["nama_sekolah"] = req.NamaSekolah
	}
	if req.TahunAjaran != "" {
		if !reTahunAjaran.MatchString(req.TahunAjaran) {
			return nil, apperror.New(apperror.KindInvalidAcademicYear)
		}
		values["tahun_ajaran"] = req.TahunAjaran
	}
	if req.JamMasuk != "" {
		jam, err := parseJamMasuk(req.JamMasuk)
		if err != nil {
			return nil, err
		}
		values["jam_masuk"] = *jam
	}

	if err := s.Repo.Update(ctx, id, values); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, id)
}

// UpdateLogo: gambar diperkecil ke 512px dan selalu disimpan sebagai PNG.
// Logo lama dihapus setelah baris berhasil diupdate.
func (s *SettingService) UpdateLogo(ctx context.Context, id uuid.UUID, data []byte, filename string, by *uuid.UUID) (*dto.SettingResponse, error) {
	if len(data) == 0 {
		return nil, apperror.Newf(apperror.KindFileRequired, "File logo harus diunggah")
	}
	old, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	img, err := storage.DecodeImage(data, filename)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindInvalidFile, Message: "File logo bukan gambar yang valid", Err: err}
	}
	png, err := storage.FitPNG(img, LogoMaxSide, LogoMaxSide)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err)
	}
	path, err := s.Store.SaveBytes(ctx, LogoDir, fmt.Sprintf("logo_%d.png", s.Now().UnixMilli()), png)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err)
	}

	if err := s.Repo.Update(ctx, id, map[string]any{"logo_path": path, "modified_by": by}); err != nil {
		s.remove(ctx, path)
		return nil, err
	}
	if old.LogoPath != nil && *old.LogoPath != path {
		s.remove(ctx, *old.LogoPath)
	}
	return s.Repo.FindByID(ctx, id)
}

func (s *SettingService) remove(ctx context.Context, path string) {
	if err := s.Store.Remove(ctx, path); err != nil {
		configs.Component("settings").Warn().Err(err).Str("path", path).Msg("gagal menghapus logo")
	}
}
