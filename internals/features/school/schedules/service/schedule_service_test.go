package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"

	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

type fakeRepo struct {
	rows      []model.ScheduleModel
	createErr error
}

func (f *fakeRepo) List(context.Context) ([]repository.ScheduleWithClass, error) {
	var out []repository.ScheduleWithClass
	for _, r := range f.rows {
		out = append(out, repository.ScheduleWithClass{ScheduleModel: r})
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.ScheduleWithClass, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return &repository.ScheduleWithClass{ScheduleModel: r}, nil
		}
	}
	return nil, apperror.New(apperror.KindScheduleNotFound)
}

func (f *fakeRepo) ListByClass(_ context.Context, classID uuid.UUID) ([]model.ScheduleModel, error) {
	var out []model.ScheduleModel
	for _, r := range f.rows {
		if r.ClassesID == classID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, m *model.ScheduleModel) error {
	if f.createErr != nil {
		return f.createErr
	}
	m.ID = uuid.New()
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeRepo) apply(r *model.ScheduleModel, values map[string]any) {
	if v, ok := values["schedule_path"].(string); ok {
		r.SchedulePath = v
	}
	if v, ok := values["classes_id"].(uuid.UUID); ok {
		r.ClassesID = v
	}
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, values map[string]any) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.apply(&f.rows[i], values)
			return nil
		}
	}
	return apperror.New(apperror.KindScheduleNotFound)
}

func (f *fakeRepo) UpdateByClass(_ context.Context, classID uuid.UUID, values map[string]any) (int64, error) {
	var n int64
	for i := range f.rows {
		if f.rows[i].ClassesID == classID {
			f.apply(&f.rows[i], values)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return apperror.New(apperror.KindScheduleNotFound)
}

type fakeClasses map[uuid.UUID]bool

func (f fakeClasses) FindByID(_ context.Context, id uuid.UUID) (*classModel.ClassModel, error) {
	if !f[id] {
		return nil, apperror.New(apperror.KindClassNotFound)
	}
	return &classModel.ClassModel{ID: id, NamaKelas: "X IPA 1"}, nil
}

var classA = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")

func newTestService() (*ScheduleService, *fakeRepo, *storage.MockStore) {
	repo := &fakeRepo{}
	store := storage.NewMockStore()
	svc := NewScheduleService(repo, fakeClasses{classA: true}, store)
	ms := int64(1700000000000)
	svc.Now = func() time.Time {
		ms++
		return time.UnixMilli(ms)
	}
	return svc, repo, store
}

func upload(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func TestCreateSchedule(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()
	req := dto.ScheduleRequest{ClassesID: classA.String()}

	if _, err := svc.Create(ctx, req, nil, nil); !apperror.Is(err, apperror.KindFileRequired) {
		t.Fatalf("missing file: %v", err)
	}
	if _, err := svc.Create(ctx, dto.ScheduleRequest{ClassesID: uuid.NewString()}, upload("a.png"), nil); !apperror.Is(err, apperror.KindInvalidClass) {
		t.Fatalf("unknown class: %v", err)
	}

	got, err := svc.Create(ctx, req, upload("Jadwal.PNG"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.SchedulePath != "/uploads/schedules/schedules_1700000000001.png" {
		t.Fatalf("path = %q", got.SchedulePath)
	}
	if !store.Has(got.SchedulePath) {
		t.Fatal("file not stored")
	}
}

func TestCreateRemovesFileWhenInsertFails(t *testing.T) {
	svc, repo, store := newTestService()
	repo.createErr = errors.New("db down")

	if _, err := svc.Create(context.Background(), dto.ScheduleRequest{ClassesID: classA.String()}, upload("a.jpg"), nil); err == nil {
		t.Fatal("expected error")
	}
	if len(store.Files) != 0 {
		t.Fatalf("orphan files: %v", store.Files)
	}
}

func TestUpsertReplacesEveryScheduleOfClass(t *testing.T) {
	svc, repo, store := newTestService()
	ctx := context.Background()
	req := dto.ScheduleRequest{ClassesID: classA.String()}

	first, created, err := svc.Upsert(ctx, req, upload("a.png"), nil)
	if err != nil || !created || len(first) != 1 {
		t.Fatalf("first upsert: %v created=%v n=%d", err, created, len(first))
	}
	// baris kedua untuk kelas yang sama
	if _, err := svc.Create(ctx, req, upload("b.png"), nil); err != nil {
		t.Fatal(err)
	}

	rows, created, err := svc.Upsert(ctx, req, upload("c.png"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if created || len(rows) != 2 {
		t.Fatalf("created=%v rows=%d", created, len(rows))
	}
	for _, r := range repo.rows {
		if r.SchedulePath != rows[0].SchedulePath {
			t.Fatalf("row %s not updated", r.ID)
		}
	}
	if len(store.Files) != 1 {
		t.Fatalf("old files should be removed, have %v", store.Files)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	s, err := svc.Create(ctx, dto.ScheduleRequest{ClassesID: classA.String()}, upload("a.png"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, s.ID, dto.ScheduleRequest{}, nil, nil); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("empty update: %v", err)
	}
	u, err := svc.Update(ctx, s.ID, dto.ScheduleRequest{}, upload("b.webp"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if store.Has(s.SchedulePath) || !store.Has(u.SchedulePath) {
		t.Fatal("new file should replace the old one")
	}

	if err := svc.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if len(store.Files) != 0 {
		t.Fatal("file should be removed with the row")
	}
	if _, err := svc.Get(ctx, s.ID); !apperror.Is(err, apperror.KindScheduleNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
}
