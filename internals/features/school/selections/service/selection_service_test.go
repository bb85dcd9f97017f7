package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

// fakeRepo meniru unique index parsial pada nama_rombel
type fakeRepo struct {
	rows    []*model.SelectionModel
	deleted map[uuid.UUID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{deleted: map[uuid.UUID]bool{}}
}

func (f *fakeRepo) live(id uuid.UUID) *model.SelectionModel {
	for _, r := range f.rows {
		if r.ID == id && !f.deleted[id] {
			return r
		}
	}
	return nil
}

func (f *fakeRepo) taken(name string, except uuid.UUID) bool {
	for _, r := range f.rows {
		if r.NamaRombel == name && r.ID != except && !f.deleted[r.ID] {
			return true
		}
	}
	return false
}

func (f *fakeRepo) List(context.Context) ([]model.SelectionModel, error) {
	var out []model.SelectionModel
	for _, r := range f.rows {
		if !f.deleted[r.ID] {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SelectionModel, error) {
	if r := f.live(id); r != nil {
		cp := *r
		return &cp, nil
	}
	return nil, apperror.New(apperror.KindSelectionNotFound)
}

func (f *fakeRepo) Create(_ context.Context, m *model.SelectionModel) error {
	if f.taken(m.NamaRombel, uuid.Nil) {
		return apperror.New(apperror.KindSelectionNameTaken)
	}
	m.ID = uuid.New()
	f.rows = append(f.rows, m)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, values map[string]any) (*model.SelectionModel, error) {
	r := f.live(id)
	if r == nil {
		return nil, apperror.New(apperror.KindSelectionNotFound)
	}
	name := values["nama_rombel"].(string)
	if f.taken(name, id) {
		return nil, apperror.New(apperror.KindSelectionNameTaken)
	}
	r.NamaRombel = name
	return f.FindByID(ctx, id)
}

func (f *fakeRepo) SoftDelete(_ context.Context, id uuid.UUID, _ *uuid.UUID) error {
	if f.live(id) == nil {
		return apperror.New(apperror.KindSelectionNotFound)
	}
	f.deleted[id] = true
	return nil
}

func TestSelectionLifecycle(t *testing.T) {
	svc := NewSelectionService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.SelectionRequest{NamaRombel: "   "}, nil); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("blank name: %v", err)
	}

	ipa, err := svc.Create(ctx, dto.SelectionRequest{NamaRombel: " IPA "}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ipa.NamaRombel != "IPA" {
		t.Fatalf("name not trimmed: %q", ipa.NamaRombel)
	}
	ips, _ := svc.Create(ctx, dto.SelectionRequest{NamaRombel: "IPS"}, nil)

	_, err = svc.Create(ctx, dto.SelectionRequest{NamaRombel: "IPA"}, nil)
	if !apperror.Is(err, apperror.KindSelectionNameTaken) || err.Error() != "Nama rombel sudah ada" {
		t.Fatalf("duplicate create: %v", err)
	}
	if _, err := svc.Update(ctx, ips.ID, dto.SelectionRequest{NamaRombel: "IPA"}, nil); !apperror.Is(err, apperror.KindSelectionNameTaken) {
		t.Fatalf("duplicate update: %v", err)
	}
	if _, err := svc.Update(ctx, ipa.ID, dto.SelectionRequest{NamaRombel: "IPA"}, nil); err != nil {
		t.Fatalf("renaming to own name: %v", err)
	}

	if err := svc.Delete(ctx, ipa.ID, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, ipa.ID); !apperror.Is(err, apperror.KindSelectionNotFound) {
		t.Fatalf("deleted selection visible: %v", err)
	}
	// nama boleh dipakai lagi setelah soft delete
	if _, err := svc.Create(ctx, dto.SelectionRequest{NamaRombel: "IPA"}, nil); err != nil {
		t.Fatalf("reuse after delete: %v", err)
	}
	rows, _ := svc.List(ctx)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
}
