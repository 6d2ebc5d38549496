// Package impl contains the implementations of the application's use cases.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"talentgate/internal/domain/entity"
	domainerrors "talentgate/internal/domain/errors"
	"talentgate/internal/domain/repository"
	"talentgate/internal/domain/service"
	"talentgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	users         repository.UserRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	resumeStorage service.ResumeStorage
	logger        *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	users repository.UserRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	resumeStorage service.ResumeStorage,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		users:         users,
		hasher:        hasher,
		tokenService:  tokenService,
		resumeStorage: resumeStorage,
		logger:        logger,
	}
}

// Signup orchestrates the complete registration process. The steps run
// strictly in order for a given request: resume presence, duplicate check,
// hash, upload, persist. The first failure terminates the flow, so no
// partial user record (hash without resume URL) can ever reach the store.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	email := normalizeEmail(input.Email)
	srv.logger.Info("Starting signup", "email", email)

	// Rejecting a file-less request here keeps the hash work from being
	// wasted on a request that is guaranteed to fail.
	if len(input.Resume) == 0 {
		return nil, domainerrors.ErrMissingResume.WrapMessage("signup failed")
	}

	_, err := srv.users.FindByEmail(ctx, email)
	if err == nil {
		// If no error, a user with this email was found.
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("signup failed")
	}
	// We expect a 'not found' error. If it's a different error, something went wrong.
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing user")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during signup", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("signup failed")
	}

	// The upload is the only suspension point of the flow; persistence must
	// not begin until the store has acknowledged the object.
	resumeURL, err := srv.resumeStorage.Upload(ctx, input.Resume, input.ResumeContentType)
	if err != nil {
		srv.logger.Error("Resume upload failed during signup", "error", err, "email", email)

		return nil, errors.Wrap(err, "signup failed")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		ResumeURL:    resumeURL,
	}

	if err := srv.users.Create(ctx, newUser); err != nil {
		srv.logger.Error("Failed to persist user during signup", "error", err, "email", email)

		return nil, errors.Wrap(err, "signup failed")
	}
	srv.logger.Debug("User signed up successfully", "userID", newUser.ID)

	return &usecase.SignupOutput{User: newUser}, nil
}

// Login orchestrates the authentication process: lookup, hash verification
// and token issuance. A missing user and a wrong password yield the same
// error so the response cannot reveal which factor failed.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)
	srv.logger.Debug("Starting login", "email", email)

	user, err := srv.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Login for unknown email", "email", email)

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Warn("Login with wrong password", "userID", user.ID)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		srv.logger.Error("Failed to issue token during login", "error", err, "userID", user.ID)

		return nil, domainerrors.ErrTokenSignFailed.WrapMessage("login failed")
	}
	srv.logger.Debug("User logged in successfully", "userID", user.ID)

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// GetProfile fetches the identity record of an authenticated subject.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// normalizeEmail lower-cases and trims an email so lookups and the unique
// index agree on one canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
