package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/dto"
	userModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
)

type fakeUsers struct {
	byName map[string]*userModel.UserModel
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*userModel.UserModel, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, apperror.New(apperror.KindUserNotFound)
	}
	return u, nil
}

func (f *fakeUsers) Create(_ context.Context, u *userModel.UserModel) error {
	if _, ok := f.byName[u.Username]; ok {
		return apperror.New(apperror.KindUsernameTaken)
	}
	for _, other := range f.byName {
		if other.Email == u.Email {
			return apperror.New(apperror.KindEmailTaken)
		}
	}
	u.ID = uuid.New()
	f.byName[u.Username] = u
	return nil
}

type fakeBlacklist struct {
	rows map[string]time.Time
}

func (f *fakeBlacklist) Add(_ context.Context, hash string, exp time.Time) error {
	if _, ok := f.rows[hash]; !ok {
		f.rows[hash] = exp
	}
	return nil
}

func (f *fakeBlacklist) IsListed(_ context.Context, hash string, now time.Time) (bool, error) {
	exp, ok := f.rows[hash]
	return ok && exp.After(now), nil
}

var fixedNow = time.Date(2024, 8, 1, 7, 0, 0, 0, time.UTC)

func newService() (*AuthService, *fakeUsers, *fakeBlacklist) {
	users := &fakeUsers{byName: map[string]*userModel.UserModel{}}
	bl := &fakeBlacklist{rows: map[string]time.Time{}}
	svc := NewAuthService(users, bl, "test-secret", 7*24*time.Hour)
	svc.Now = func() time.Time { return fixedNow }
	return svc, users, bl
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, dto.RegisterRequest{Username: "budi", Email: "budi@sekolah.id", Password: "rahasia", RepeatPassword: "rahasia"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		req     dto.RegisterRequest
		kind    apperror.Kind
		message string
	}{
		{"missing field", dto.RegisterRequest{Username: "a", Email: "a@b.id", Password: "rahasia"}, apperror.KindValidation, "Semua field harus diisi"},
		{"mismatch", dto.RegisterRequest{Username: "a", Email: "a@b.id", Password: "rahasia", RepeatPassword: "rahasib"}, apperror.KindValidation, "Password dan konfirmasi password tidak cocok"},
		{"bad email", dto.RegisterRequest{Username: "a", Email: "a.b.id", Password: "rahasia", RepeatPassword: "rahasia"}, apperror.KindValidation, "Format email tidak valid"},
		{"email with display name", dto.RegisterRequest{Username: "a", Email: "Budi <budi@sekolah.id>", Password: "rahasia", RepeatPassword: "rahasia"}, apperror.KindValidation, "Format email tidak valid"},
		{"email without tld", dto.RegisterRequest{Username: "a", Email: "budi@localhost", Password: "rahasia", RepeatPassword: "rahasia"}, apperror.KindValidation, "Format email tidak valid"},
		{"quoted local part", dto.RegisterRequest{Username: "a", Email: `"budi"@sekolah.id`, Password: "rahasia", RepeatPassword: "rahasia"}, apperror.KindValidation, "Format email tidak valid"},
		{"short", dto.RegisterRequest{Username: "a", Email: "a@b.id", Password: "12345", RepeatPassword: "12345"}, apperror.KindValidation, "Password harus minimal 6 karakter"},
		{"bad role", dto.RegisterRequest{Username: "a", Email: "a@b.id", Password: "rahasia", RepeatPassword: "rahasia", Role: "kepsek"}, apperror.KindValidation, "Role harus admin atau guru"},
		{"username taken", dto.RegisterRequest{Username: "budi", Email: "x@b.id", Password: "rahasia", RepeatPassword: "rahasia"}, apperror.KindUsernameTaken, "Username sudah terdaftar"},
		{"email taken", dto.RegisterRequest{Username: "andi", Email: "BUDI@sekolah.id", Password: "rahasia", RepeatPassword: "rahasia"}, apperror.KindEmailTaken, "Email sudah terdaftar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			if !apperror.Is(err, tt.kind) {
				t.Fatalf("got %v, want kind %v", err, tt.kind)
			}
			if err.(*apperror.Error).Message != tt.message {
				t.Fatalf("message = %q", err.(*apperror.Error).Message)
			}
		})
	}
}

func TestRegisterDefaultsToGuru(t *testing.T) {
	svc, users, _ := newService()
	got, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "siti", Email: "siti@sekolah.id", Password: "rahasia", RepeatPassword: "rahasia"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Role != "guru" {
		t.Fatalf("role = %q", got.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(users.byName["siti"].Password), []byte("rahasia")) != nil {
		t.Fatal("password not hashed with bcrypt")
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, dto.RegisterRequest{Username: "budi", Email: "budi@sekolah.id", Password: "rahasia", RepeatPassword: "rahasia", Role: "admin"}); err != nil {
		t.Fatal(err)
	}

	for _, req := range []dto.LoginRequest{
		{Username: "budi", Password: "salah123"},
		{Username: "nobody", Password: "rahasia"},
	} {
		if _, _, err := svc.Login(ctx, req); !apperror.Is(err, apperror.KindInvalidCredentials) {
			t.Fatalf("login %q: got %v", req.Username, err)
		}
	}

	res, exp, err := svc.Login(ctx, dto.LoginRequest{Username: "budi", Password: "rahasia"})
	if err != nil {
		t.Fatal(err)
	}
	if !exp.Equal(fixedNow.Add(7 * 24 * time.Hour)) {
		t.Fatalf("exp = %v", exp)
	}
	if res.User.Username != "budi" || res.Token == "" {
		t.Fatalf("unexpected response %+v", res)
	}

	listed, _ := svc.IsBlacklisted(ctx, res.Token)
	if listed {
		t.Fatal("fresh token must not be blacklisted")
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, _, bl := newService()
	svc.Now = time.Now
	ctx := context.Background()

	raw, exp, err := helperAuth.SignToken(helperAuth.Claims{ID: uuid.NewString(), Role: "guru"}, svc.Secret, time.Now(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, raw); err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, raw); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if len(bl.rows) != 1 {
		t.Fatalf("rows = %d", len(bl.rows))
	}
	stored := bl.rows[helperAuth.HashToken(raw, svc.Secret)]
	if !stored.Equal(exp.Truncate(time.Second)) {
		t.Fatalf("expiry = %v, want %v", stored, exp)
	}
	listed, _ := svc.IsBlacklisted(ctx, raw)
	if !listed {
		t.Fatal("token should be blacklisted after logout")
	}
	if err := svc.Logout(ctx, ""); !apperror.Is(err, apperror.KindTokenMissing) {
		t.Fatalf("empty token: %v", err)
	}
}
