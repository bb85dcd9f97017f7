package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/model"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

const (
	MinPasswordLength = 6
	BcryptCost        = 10
	emailRule         = "email,max=255"
)

// ValidEmail: alamat polos user@domain.tld, tanpa display name atau local-part berkutip.
func ValidEmail(email string) bool {
	if strings.ContainsRune(email, '"') {
		return false
	}
	return helper.Validator().Var(email, emailRule) == nil
}

type Repository interface {
	List(ctx context.Context, includeDeleted bool) ([]model.UserModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]any) (*model.UserModel, error)
	SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error
}

// Actor: user yang sedang login
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == constants.RoleAdmin }

type UserService struct {
	Repo Repository
}

func NewUserService(repo Repository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) List(ctx context.Context, includeDeleted bool) ([]dto.UserResponse, error) {
	rows, err := s.Repo.List(ctx, includeDeleted)
	if err != nil {
		return nil, err
	}
	return dto.FromModels(rows), nil
}

// Get: admin boleh lihat siapa saja, selain admin hanya dirinya sendiri
func (s *UserService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, apperror.New(apperror.KindForbidden)
	}
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromModel(*u)
	return &out, nil
}

func (s *UserService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, apperror.New(apperror.KindForbidden)
	}
	req.Normalize()
	if req.IsEmpty() {
		return nil, apperror.Newf(apperror.KindValidation, "Tidak ada data yang diupdate")
	}

	values := map[string]any{"modified_by": actor.ID}
	if req.Username != "" {
		values["username"] = req.Username
	}
	if req.Email != "" {
		if !ValidEmail(req.Email) {
			return nil, apperror.Newf(apperror.KindValidation, "Format email tidak valid")
		}
		values["email"] = req.Email
	}
	if req.Role != "" {
		if !constants.IsValidRole(req.Role) {
			return nil, apperror.Newf(apperror.KindValidation, "Role harus admin atau guru")
		}
		if !actor.IsAdmin() {
			return nil, apperror.New(apperror.KindForbidden)
		}
		values["role"] = req.Role
	}
	if req.Password != "" {
		if len(req.Password) < MinPasswordLength {
			return nil, apperror.Newf(apperror.KindValidation, "Password harus minimal 6 karakter")
		}
		if req.RepeatPassword != "" && req.Password != req.RepeatPassword {
			return nil, apperror.Newf(apperror.KindValidation, "Password dan konfirmasi password tidak cocok")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, err)
		}
		values["password"] = string(hash)
	}

	u, err := s.Repo.Update(ctx, id, values)
	if err != nil {
		return nil, renameTaken(err)
	}
	out := dto.FromModel(*u)
	return &out, nil
}

// Pesan update sedikit beda dari register: "sudah digunakan"
func renameTaken(err error) error {
	switch apperror.KindOf(err) {
	case apperror.KindUsernameTaken:
		return &apperror.Error{Kind: apperror.KindUsernameTaken, Message: "Username sudah digunakan", Err: err}
	case apperror.KindEmailTaken:
		return &apperror.Error{Kind: apperror.KindEmailTaken, Message: "Email sudah digunakan", Err: err}
	}
	return err
}

func (s *UserService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	by := actor.ID
	return s.Repo.SoftDelete(ctx, id, &by)
}
