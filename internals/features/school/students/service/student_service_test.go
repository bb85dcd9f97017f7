package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

var (
	classX1 = uuid.MustParse("cccccccc-0000-0000-0000-000000000001")
	classX2 = uuid.MustParse("cccccccc-0000-0000-0000-000000000002")
	selIPA  = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
)

type fakeClasses map[uuid.UUID]uuid.UUID // class → selection

func (f fakeClasses) FindByID(_ context.Context, id uuid.UUID) (*classModel.ClassModel, error) {
	sel, ok := f[id]
	if !ok {
		return nil, apperror.New(apperror.KindClassNotFound)
	}
	return &classModel.ClassModel{ID: id, NamaKelas: "X", SelectionsID: sel}, nil
}

type fakeRepo struct {
	rows map[uuid.UUID]*model.StudentModel
}

func (f *fakeRepo) List(_ context.Context, q dto.ListQuery) ([]model.StudentModel, int64, error) {
	var out []model.StudentModel
	for _, r := range f.rows {
		if r.DeletedAt.Valid && !q.IncludeDeleted {
			continue
		}
		if q.ClassID != nil && r.ClassesID != *q.ClassID {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NamaSiswa < out[j].NamaSiswa })
	return out, int64(len(out)), nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.StudentModel, error) {
	r, ok := f.rows[id]
	if !ok || r.DeletedAt.Valid {
		return nil, apperror.New(apperror.KindStudentNotFound)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) nisTaken(nis string, except uuid.UUID) bool {
	for _, r := range f.rows {
		if r.ID != except && !r.DeletedAt.Valid && r.NIS == nis {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Create(_ context.Context, m *model.StudentModel) error {
	if f.nisTaken(m.NIS, uuid.Nil) {
		return apperror.New(apperror.KindNISTaken)
	}
	m.ID = uuid.New()
	f.rows[m.ID] = m
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, values map[string]any) error {
	r, ok := f.rows[id]
	if !ok || r.DeletedAt.Valid {
		return apperror.New(apperror.KindStudentNotFound)
	}
	if f.nisTaken(values["nis"].(string), id) {
		return apperror.New(apperror.KindNISTaken)
	}
	r.NIS = values["nis"].(string)
	r.NamaSiswa = values["nama_siswa"].(string)
	r.ClassesID = values["classes_id"].(uuid.UUID)
	r.SelectionsID = values["selections_id"].(uuid.UUID)
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id uuid.UUID, _ *uuid.UUID) error {
	r, ok := f.rows[id]
	if !ok || r.DeletedAt.Valid {
		return apperror.New(apperror.KindStudentNotFound)
	}
	r.DeletedAt = gorm.DeletedAt{Valid: true}
	return nil
}

type fakeQR struct {
	issued []string
	err    error
}

func (f *fakeQR) IssueFor(_ context.Context, st *model.StudentModel, _ *uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.issued = append(f.issued, st.NIS)
	return nil
}

func newService(qr *fakeQR) (*StudentService, *fakeRepo) {
	repo := &fakeRepo{rows: map[uuid.UUID]*model.StudentModel{}}
	return NewStudentService(repo, fakeClasses{classX1: selIPA, classX2: selIPA}, qr), repo
}

func req(nis, name, class string) dto.StudentRequest {
	return dto.StudentRequest{NIS: nis, NamaSiswa: name, JenisKelamin: "Perempuan", ClassesID: class}
}

func TestCreateCopiesSelectionAndIssuesQR(t *testing.T) {
	qr := &fakeQR{}
	svc, _ := newService(qr)

	st, err := svc.Create(context.Background(), req("12345", "Siti Nurhaliza", classX1.String()), nil)
	if err != nil {
		t.Fatal(err)
	}
	if st.SelectionsID != selIPA {
		t.Fatalf("selections_id = %v, want class selection", st.SelectionsID)
	}
	if len(qr.issued) != 1 || qr.issued[0] != "12345" {
		t.Fatalf("qr issued = %v", qr.issued)
	}
}

func TestCreateSurvivesQRFailure(t *testing.T) {
	svc, repo := newService(&fakeQR{err: errors.New("disk full")})
	if _, err := svc.Create(context.Background(), req("1", "Budi", classX1.String()), nil); err != nil {
		t.Fatalf("qr failure must not fail create: %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatal("student should be stored")
	}
}

func TestStudentValidation(t *testing.T) {
	svc, _ := newService(&fakeQR{})
	ctx := context.Background()
	if _, err := svc.Create(ctx, req("777", "Ani", classX1.String()), nil); err != nil {
		t.Fatal(err)
	}

	bad := req("1", "Budi", classX1.String())
	bad.JenisKelamin = "L"

	tests := []struct {
		name    string
		req     dto.StudentRequest
		kind    apperror.Kind
		message string
	}{
		{"missing field", req("", "Budi", classX1.String()), apperror.KindValidation, "Semua field harus diisi"},
		{"bad gender", bad, apperror.KindValidation, "Jenis kelamin harus Laki-laki atau Perempuan"},
		{"unknown class", req("2", "Budi", uuid.NewString()), apperror.KindInvalidClass, "Kelas yang dipilih tidak valid"},
		{"malformed class", req("2", "Budi", "7"), apperror.KindInvalidClass, "Kelas yang dipilih tidak valid"},
		{"duplicate nis", req("777", "Budi", classX2.String()), apperror.KindNISTaken, "NIS sudah terdaftar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req, nil)
			if !apperror.Is(err, tt.kind) {
				t.Fatalf("got %v", err)
			}
			if err.(*apperror.Error).Message != tt.message {
				t.Fatalf("message = %q", err.(*apperror.Error).Message)
			}
		})
	}
}

func TestSoftDeletedStudentHiddenByDefault(t *testing.T) {
	svc, _ := newService(&fakeQR{})
	ctx := context.Background()

	a, _ := svc.Create(ctx, req("1", "Andi", classX1.String()), nil)
	if _, err := svc.Create(ctx, req("2", "Budi", classX2.String()), nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, a.ID, nil); err != nil {
		t.Fatal(err)
	}

	live, _, _ := svc.List(ctx, dto.ListQuery{})
	if len(live) != 1 || live[0].NamaSiswa != "Budi" {
		t.Fatalf("default list = %+v", live)
	}
	all, _, _ := svc.List(ctx, dto.ListQuery{IncludeDeleted: true})
	if len(all) != 2 {
		t.Fatalf("include-deleted list = %d rows", len(all))
	}

	byClass, _, _ := svc.List(ctx, dto.ListQuery{ClassID: &classX2})
	if len(byClass) != 1 {
		t.Fatalf("kelasId filter = %d rows", len(byClass))
	}

	// NIS siswa yang sudah dihapus boleh dipakai lagi
	if _, err := svc.Create(ctx, req("1", "Andi Baru", classX1.String()), nil); err != nil {
		t.Fatalf("reuse nis: %v", err)
	}
}
