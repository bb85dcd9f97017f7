package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

type fakeRepo struct {
	rows map[uuid.UUID]*model.UserModel
}

func newFakeRepo(users ...model.UserModel) *fakeRepo {
	f := &fakeRepo{rows: map[uuid.UUID]*model.UserModel{}}
	for i := range users {
		u := users[i]
		f.rows[u.ID] = &u
	}
	return f
}

func (f *fakeRepo) List(_ context.Context, includeDeleted bool) ([]model.UserModel, error) {
	var out []model.UserModel
	for _, u := range f.rows {
		if u.DeletedAt.Valid && !includeDeleted {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.UserModel, error) {
	u, ok := f.rows[id]
	if !ok || u.DeletedAt.Valid {
		return nil, apperror.New(apperror.KindUserNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, values map[string]any) (*model.UserModel, error) {
	u, ok := f.rows[id]
	if !ok || u.DeletedAt.Valid {
		return nil, apperror.New(apperror.KindUserNotFound)
	}
	for _, other := range f.rows {
		if other.ID == id || other.DeletedAt.Valid {
			continue
		}
		if v, ok := values["username"]; ok && other.Username == v {
			return nil, apperror.New(apperror.KindUsernameTaken)
		}
		if v, ok := values["email"]; ok && other.Email == v {
			return nil, apperror.New(apperror.KindEmailTaken)
		}
	}
	if v, ok := values["username"].(string); ok {
		u.Username = v
	}
	if v, ok := values["email"].(string); ok {
		u.Email = v
	}
	if v, ok := values["role"].(string); ok {
		u.Role = v
	}
	if v, ok := values["password"].(string); ok {
		u.Password = v
	}
	return f.FindByID(ctx, id)
}

func (f *fakeRepo) SoftDelete(_ context.Context, id uuid.UUID, _ *uuid.UUID) error {
	u, ok := f.rows[id]
	if !ok || u.DeletedAt.Valid {
		return apperror.New(apperror.KindUserNotFound)
	}
	u.DeletedAt = gorm.DeletedAt{Valid: true}
	return nil
}

var (
	adminID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	guruID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	admin   = Actor{ID: adminID, Role: "admin"}
	guru    = Actor{ID: guruID, Role: "guru"}
)

func seed() *fakeRepo {
	return newFakeRepo(
		model.UserModel{ID: adminID, Username: "admin", Email: "admin@sekolah.id", Role: "admin"},
		model.UserModel{ID: guruID, Username: "budi", Email: "budi@sekolah.id", Role: "guru"},
	)
}

func TestUpdateValidation(t *testing.T) {
	svc := NewUserService(seed())
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   Actor
		id      uuid.UUID
		req     dto.UpdateUserRequest
		kind    apperror.Kind
		message string
	}{
		{"empty", admin, guruID, dto.UpdateUserRequest{}, apperror.KindValidation, "Tidak ada data yang diupdate"},
		{"bad email", admin, guruID, dto.UpdateUserRequest{Email: "nope"}, apperror.KindValidation, "Format email tidak valid"},
		{"email with display name", admin, guruID, dto.UpdateUserRequest{Email: "Budi <budi@sekolah.id>"}, apperror.KindValidation, "Format email tidak valid"},
		{"short password", guru, guruID, dto.UpdateUserRequest{Password: "123"}, apperror.KindValidation, "Password harus minimal 6 karakter"},
		{"password mismatch", guru, guruID, dto.UpdateUserRequest{Password: "123456", RepeatPassword: "654321"}, apperror.KindValidation, "Password dan konfirmasi password tidak cocok"},
		{"bad role", admin, guruID, dto.UpdateUserRequest{Role: "owner"}, apperror.KindValidation, "Role harus admin atau guru"},
		{"guru promotes self", guru, guruID, dto.UpdateUserRequest{Role: "admin"}, apperror.KindForbidden, ""},
		{"guru edits other", guru, adminID, dto.UpdateUserRequest{Username: "x"}, apperror.KindForbidden, ""},
		{"username taken", admin, guruID, dto.UpdateUserRequest{Username: "admin"}, apperror.KindUsernameTaken, "Username sudah digunakan"},
		{"email taken", guru, guruID, dto.UpdateUserRequest{Email: "ADMIN@sekolah.id"}, apperror.KindEmailTaken, "Email sudah digunakan"},
		{"missing user", admin, uuid.New(), dto.UpdateUserRequest{Username: "x"}, apperror.KindUserNotFound, "User tidak ditemukan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.actor, tt.id, tt.req)
			if apperror.KindOf(err) != tt.kind {
				t.Fatalf("kind = %v, want %v (err %v)", apperror.KindOf(err), tt.kind, err)
			}
			if tt.message != "" && err.(*apperror.Error).Message != tt.message {
				t.Fatalf("message = %q", err.(*apperror.Error).Message)
			}
		})
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	repo := seed()
	svc := NewUserService(repo)

	got, err := svc.Update(context.Background(), guru, guruID, dto.UpdateUserRequest{Username: " budi2 ", Password: "rahasia1", RepeatPassword: "rahasia1"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "budi2" {
		t.Fatalf("username = %q", got.Username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.rows[guruID].Password), []byte("rahasia1")); err != nil {
		t.Fatal("password must be stored as bcrypt hash")
	}
}

func TestDeleteIsSoft(t *testing.T) {
	svc := NewUserService(seed())
	ctx := context.Background()

	if err := svc.Delete(ctx, admin, guruID); err != nil {
		t.Fatal(err)
	}
	live, _ := svc.List(ctx, false)
	all, _ := svc.List(ctx, true)
	if len(live) != 1 || len(all) != 2 {
		t.Fatalf("live=%d all=%d", len(live), len(all))
	}
	if _, err := svc.Get(ctx, admin, guruID); !apperror.Is(err, apperror.KindUserNotFound) {
		t.Fatalf("deleted user should be hidden, got %v", err)
	}
	if err := svc.Delete(ctx, admin, guruID); !apperror.Is(err, apperror.KindUserNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"budi@sekolah.id":         true,
		"guru.bk@sma1.sch.id":     true,
		"Budi <budi@sekolah.id>":  false,
		"budi@localhost":          false,
		`"budi"@sekolah.id`:       false,
		"budi sekolah@sekolah.id": false,
		"":                        false,
	}
	for in, want := range cases {
		if got := ValidEmail(in); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", in, got, want)
		}
	}
}
