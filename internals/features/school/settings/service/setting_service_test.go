package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

type fakeRepo struct {
	rows []*model.SettingModel
}

func (f *fakeRepo) Current(context.Context) (*model.SettingModel, error) {
	if len(f.rows) == 0 {
		return nil, apperror.New(apperror.KindSettingsNotFound)
	}
	cp := *f.rows[0]
	return &cp, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SettingModel, error) {
	for _, r := range f.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperror.New(apperror.KindSettingsNotFound)
}

func (f *fakeRepo) Create(_ context.Context, m *model.SettingModel) error {
	m.ID = uuid.New()
	cp := *m
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, values map[string]any) error {
	for _, r := range f.rows {
		if r.ID != id {
			continue
		}
		if v, ok := values["nama_sekolah"].(string); ok {
			r.NamaSekolah = v
		}
		if v, ok := values["tahun_ajaran"].(string); ok {
			r.TahunAjaran = v
		}
		if v, ok := values["jam_masuk"].(dbtime.Tod); ok {
			r.JamMasuk = &v
		}
		if v, ok := values["logo_path"].(string); ok {
			r.LogoPath = &v
		}
		return nil
	}
	return apperror.New(apperror.KindSettingsNotFound)
}

func TestGetBeforeCreate(t *testing.T) {
	svc := NewSettingService(&fakeRepo{}, storage.NewMockStore())
	_, err := svc.Get(context.Background())
	if !apperror.Is(err, apperror.KindSettingsNotFound) {
		t.Fatalf("err = %v", err)
	}
	if err.(*apperror.Error).Error() != "Pengaturan belum dibuat" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewSettingService(&fakeRepo{}, storage.NewMockStore())
	tests := []struct {
		name string
		req  dto.SettingRequest
		kind apperror.Kind
	}{
		{"missing name", dto.SettingRequest{TahunAjaran: "2024/2025"}, apperror.KindValidation},
		{"bad year", dto.SettingRequest{NamaSekolah: "SMA 1", TahunAjaran: "2024-2025"}, apperror.KindInvalidAcademicYear},
		{"bad jam", dto.SettingRequest{NamaSekolah: "SMA 1", TahunAjaran: "2024/2025", JamMasuk: "25:00"}, apperror.KindInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.req, nil); apperror.KindOf(err) != tt.kind {
				t.Fatalf("kind = %v, want %v", apperror.KindOf(err), tt.kind)
			}
		})
	}
}

func TestCreateAndUpdate(t *testing.T) {
	svc := NewSettingService(&fakeRepo{}, storage.NewMockStore())
	ctx := context.Background()

	s, err := svc.Create(ctx, dto.SettingRequest{NamaSekolah: " SMA Negeri 1 ", TahunAjaran: "2024/2025", JamMasuk: "7:15"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.NamaSekolah != "SMA Negeri 1" || s.JamMasuk.String() != "07:15:00" {
		t.Fatalf("got %+v", s)
	}

	u, err := svc.Update(ctx, s.ID, dto.SettingRequest{JamMasuk: "07:30:00"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if u.JamMasuk.String() != "07:30:00" || u.TahunAjaran != "2024/2025" {
		t.Fatalf("got %+v", u)
	}
	if _, err := svc.Update(ctx, uuid.New(), dto.SettingRequest{NamaSekolah: "x"}, nil); !apperror.Is(err, apperror.KindSettingsNotFound) {
		t.Fatalf("missing row: %v", err)
	}
}

func TestCreateRejectsSecondRow(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewSettingService(repo, storage.NewMockStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.SettingRequest{NamaSekolah: "SMA 1", TahunAjaran: "2024/2025"}, nil); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Create(ctx, dto.SettingRequest{NamaSekolah: "SMA 2", TahunAjaran: "2025/2026"}, nil)
	if !apperror.Is(err, apperror.KindSettingsExists) {
		t.Fatalf("second create: %v", err)
	}
	if len(repo.rows) != 1 || repo.rows[0].NamaSekolah != "SMA 1" {
		t.Fatalf("rows = %d", len(repo.rows))
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUpdateLogoResizesAndReplaces(t *testing.T) {
	store := storage.NewMockStore()
	svc := NewSettingService(&fakeRepo{}, store)
	ms := int64(1700000000000)
	svc.Now = func() time.Time { ms++; return time.UnixMilli(ms) }
	ctx := context.Background()

	s, err := svc.Create(ctx, dto.SettingRequest{NamaSekolah: "SMA 1", TahunAjaran: "2024/2025"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	first, err := svc.UpdateLogo(ctx, s.ID, pngBytes(t, 1024, 256), "logo.png", nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(store.Files[*first.LogoPath]))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != LogoMaxSide || b.Dy() != 128 {
		t.Fatalf("logo size = %dx%d", b.Dx(), b.Dy())
	}

	second, err := svc.UpdateLogo(ctx, s.ID, pngBytes(t, 64, 64), "baru.png", nil)
	if err != nil {
		t.Fatal(err)
	}
	if store.Has(*first.LogoPath) || !store.Has(*second.LogoPath) {
		t.Fatal("old logo should be replaced")
	}

	if _, err := svc.UpdateLogo(ctx, s.ID, []byte("bukan gambar"), "x.txt", nil); !apperror.Is(err, apperror.KindInvalidFile) {
		t.Fatalf("invalid image: %v", err)
	}
	if _, err := svc.UpdateLogo(ctx, s.ID, nil, "", nil); !apperror.Is(err, apperror.KindFileRequired) {
		t.Fatalf("missing file: %v", err)
	}
}
