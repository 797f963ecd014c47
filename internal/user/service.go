package user

import (
	"log"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
)

type UserService struct {
	repo  UserRepository
	codes CodeStore
}

func NewUserService(repo UserRepository, codes CodeStore) *UserService {
	return &UserService{repo: repo, codes: codes}
}

func (u *UserService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}

	created, err := u.repo.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return u.buildAuthResponse(created)
}

// Login deliberately returns the same message for an unknown username and a
// wrong password.
func (u *UserService) Login(req *LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Username and password are required")
	}

	retrieved, err := u.repo.ValidateUser(req.Username, req.Password)
	if err != nil {
		return nil, apperrors.NewAuthError("Invalid username or password")
	}

	return u.buildAuthResponse(retrieved)
}

func (u *UserService) Verify(req *VerifyRequest) error {
	if req.Username == "" || req.Code == "" {
		return apperrors.NewValidationError("Username and code are required")
	}

	ok, err := u.codes.ConsumeCode(req.Username, req.Code)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewAuthError("Invalid or expired verification code")
	}

	return nil
}

func (u *UserService) GetProfile(id int) (*UserInfo, error) {
	retrieved, err := u.repo.GetUser(id)
	if err != nil {
		return nil, err
	}
	if retrieved == nil {
		return nil, apperrors.NewAppError(404, "user not found", nil)
	}

	return &UserInfo{ID: retrieved.ID, Username: retrieved.Username}, nil
}

func (u *UserService) buildAuthResponse(account *User) (*AuthResponse, error) {
	token, err := GenerateJWT(account.ID, account.Username)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error creating jwt token", err)
	}

	code := GenerateCode()
	if err := u.codes.SaveCode(account.Username, code); err != nil {
		// The player can still log in again; losing the code is not fatal.
		log.Println("Error saving verification code:", err)
		code = ""
	}

	return &AuthResponse{
		User:  UserInfo{ID: account.ID, Username: account.Username},
		Token: token,
		Code:  code,
	}, nil
}
