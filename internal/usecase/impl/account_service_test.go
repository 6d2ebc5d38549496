package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentgate/internal/domain/entity"
	domainerrors "talentgate/internal/domain/errors"
	"talentgate/internal/domain/repository"
	"talentgate/internal/domain/service"
	"talentgate/internal/usecase"
)

// fakeUserRepo is an in-memory UserRepository keyed by normalized email.
type fakeUserRepo struct {
	byID      map[uuid.UUID]*entity.User
	byEmail   map[string]*entity.User
	createErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return domainerrors.ErrUserAlreadyExists
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user

	return nil
}

// fakeHasher produces a reversible marker instead of a real digest.
type fakeHasher struct {
	hashErr   error
	hashCalls int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	h.hashCalls++
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues deterministic tokens derived from the user ID.
type fakeTokenService struct {
	issueErr error
}

func (s *fakeTokenService) Issue(userID uuid.UUID) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}

	return "token-for-" + userID.String(), nil
}

func (s *fakeTokenService) Verify(string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeTokenService) AccessTokenDuration() time.Duration {
	return time.Hour
}

// fakeResumeStorage records uploads and returns a stable URL per call.
type fakeResumeStorage struct {
	uploadErr error
	uploads   int
}

func (s *fakeResumeStorage) Upload(_ context.Context, data []byte, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads++

	return fmt.Sprintf("https://cdn.example.com/resumes/%d", s.uploads), nil
}

type accountFixture struct {
	repo    *fakeUserRepo
	hasher  *fakeHasher
	tokens  *fakeTokenService
	storage *fakeResumeStorage
	svc     usecase.AccountUsecase
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		repo:    newFakeUserRepo(),
		hasher:  &fakeHasher{},
		tokens:  &fakeTokenService{},
		storage: &fakeResumeStorage{},
	}
	f.svc = NewAccountService(
		f.repo, f.hasher, f.tokens, f.storage,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return f
}

func validSignupInput() *usecase.SignupInput {
	return &usecase.SignupInput{
		Name:              "Ann Example",
		Email:             "ann@example.com",
		Password:          "secret123",
		Resume:            []byte("%PDF-1.4 fake resume"),
		ResumeContentType: "application/pdf",
	}
}

func TestAccountService_Signup(t *testing.T) {
	f := newAccountFixture()

	output, err := f.svc.Signup(context.Background(), validSignupInput())
	require.NoError(t, err)
	require.NotNil(t, output.User)

	user := output.User
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Ann Example", user.Name)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "hashed:secret123", user.PasswordHash)
	assert.Equal(t, "https://cdn.example.com/resumes/1", user.ResumeURL)
	assert.Equal(t, 1, f.storage.uploads)

	// The record is retrievable through both lookup paths.
	found, err := f.repo.FindByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestAccountService_SignupDuplicateEmail(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.Signup(context.Background(), validSignupInput())
	require.NoError(t, err)

	output, err := f.svc.Signup(context.Background(), validSignupInput())
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)

	// The duplicate attempt must not reach the object store.
	assert.Equal(t, 1, f.storage.uploads)
}

func TestAccountService_SignupNormalizesEmail(t *testing.T) {
	f := newAccountFixture()

	input := validSignupInput()
	input.Email = "  Ann@Example.COM "
	output, err := f.svc.Signup(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", output.User.Email)

	// A differently-cased retry collides with the stored form.
	_, err = f.svc.Signup(context.Background(), validSignupInput())
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_SignupMissingResume(t *testing.T) {
	f := newAccountFixture()

	input := validSignupInput()
	input.Resume = nil
	output, err := f.svc.Signup(context.Background(), input)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrMissingResume)

	// Zero side effects: no hash computed, no upload, no record.
	assert.Equal(t, 0, f.hasher.hashCalls)
	assert.Equal(t, 0, f.storage.uploads)
	assert.Empty(t, f.repo.byEmail)
}

func TestAccountService_SignupHashFailure(t *testing.T) {
	f := newAccountFixture()
	f.hasher.hashErr = errors.New("bcrypt exploded")

	output, err := f.svc.Signup(context.Background(), validSignupInput())
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	assert.Equal(t, 0, f.storage.uploads)
	assert.Empty(t, f.repo.byEmail)
}

func TestAccountService_SignupUploadFailure(t *testing.T) {
	f := newAccountFixture()
	f.storage.uploadErr = domainerrors.ErrUploadFailed

	output, err := f.svc.Signup(context.Background(), validSignupInput())
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUploadFailed)

	// No user record without a stored resume.
	assert.Empty(t, f.repo.byEmail)
}

func TestAccountService_SignupPersistFailure(t *testing.T) {
	f := newAccountFixture()
	f.repo.createErr = errors.New("connection reset")

	output, err := f.svc.Signup(context.Background(), validSignupInput())
	assert.Nil(t, output)
	assert.Error(t, err)
}

func TestAccountService_Login(t *testing.T) {
	f := newAccountFixture()

	signup, err := f.svc.Signup(context.Background(), validSignupInput())
	require.NoError(t, err)

	output, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "ann@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-for-"+signup.User.ID.String(), output.Token)
	assert.Equal(t, signup.User.ID, output.User.ID)
}

func TestAccountService_LoginNormalizesEmail(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.Signup(context.Background(), validSignupInput())
	require.NoError(t, err)

	output, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    " ANN@example.com ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, output.Token)
}

func TestAccountService_LoginInvalidCredentials(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.Signup(context.Background(), validSignupInput())
	require.NoError(t, err)

	// Wrong password and unknown email fail with the same error.
	_, wrongPassErr := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "ann@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)

	_, unknownErr := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_LoginTokenFailure(t *testing.T) {
	f := newAccountFixture()
	f.tokens.issueErr = errors.New("signing broke")

	_, err := f.svc.Signup(context.Background(), validSignupInput())
	require.NoError(t, err)

	output, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "ann@example.com",
		Password: "secret123",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrTokenSignFailed)
}

func TestAccountService_GetProfile(t *testing.T) {
	f := newAccountFixture()

	signup, err := f.svc.Signup(context.Background(), validSignupInput())
	require.NoError(t, err)

	user, err := f.svc.GetProfile(context.Background(), signup.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, signup.User.ResumeURL, user.ResumeURL)
}

func TestAccountService_GetProfileUnknownUser(t *testing.T) {
	f := newAccountFixture()

	user, err := f.svc.GetProfile(context.Background(), uuid.New())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
