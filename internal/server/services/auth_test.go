package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwdelite/notesvc/internal/common"
	"github.com/hwdelite/notesvc/internal/dbx"
	"github.com/hwdelite/notesvc/internal/server/auth"
	"github.com/hwdelite/notesvc/internal/server/config"
	"github.com/hwdelite/notesvc/internal/server/models"
	notesrepo "github.com/hwdelite/notesvc/internal/server/repositories/notes"
	usersrepo "github.com/hwdelite/notesvc/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
	getErr    error
	updateErr error

	updated []*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func (f *fakeUsersRepo) add(u *models.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.add(u)
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, u)
	f.add(u)
	return nil
}

type fakeSender struct {
	sent    []string // recipient emails
	codes   []string
	sendErr error
}

func (f *fakeSender) SendOTP(ctx context.Context, toEmail, toName, code string, validity time.Duration) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, toEmail)
	f.codes = append(f.codes, code)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n notesrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository      { return m.n }

func newAuthService(t *testing.T, db *sql.DB, u *fakeUsersRepo, sender *fakeSender) *AuthService {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:                   "k",
		AccessTokenValidityDuration: time.Hour,
		OTPValidityDuration:         5 * time.Minute,
	}
	return NewAuthService(db, &fakeRepoManager{u: u}, sender, cfg)
}

// --- RequestOTP ---

func TestRequestOTP_NewUser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeUsersRepo()
	sender := &fakeSender{}
	s := newAuthService(t, db, repo, sender)

	res, err := s.RequestOTP(context.Background(), "A@B.com", "Alice")
	require.NoError(t, err)
	assert.True(t, res.Created)

	user, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	require.NotNil(t, user.OTP)
	assert.Len(t, user.OTP.Code, 6)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@b.com", sender.sent[0])
	assert.Equal(t, user.OTP.Code, sender.codes[0])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestOTP_ExistingUserReplacesCode(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeUsersRepo()
	sender := &fakeSender{}
	s := newAuthService(t, db, repo, sender)

	_, err := s.RequestOTP(context.Background(), "a@b.com", "")
	require.NoError(t, err)
	first := repo.byEmail["a@b.com"].OTP.Code

	res, err := s.RequestOTP(context.Background(), "a@b.com", "")
	require.NoError(t, err)
	assert.False(t, res.Created)

	second := repo.byEmail["a@b.com"].OTP.Code
	// replace-on-reissue: only the latest code is live
	assert.NotEqual(t, first, second)
	assert.Len(t, sender.sent, 2)
}

func TestRequestOTP_MailFailure(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeUsersRepo()
	sender := &fakeSender{sendErr: errors.New("smtp down")}
	s := newAuthService(t, db, repo, sender)

	_, err := s.RequestOTP(context.Background(), "a@b.com", "")
	assert.Error(t, err)
}

func TestRequestOTP_DBFailureRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeUsersRepo()
	repo.updateErr = errors.New("boom")
	sender := &fakeSender{}
	s := newAuthService(t, db, repo, sender)

	_, err := s.RequestOTP(context.Background(), "a@b.com", "")
	assert.Error(t, err)
	assert.Empty(t, sender.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- VerifyOTP ---

func issueOTP(t *testing.T, repo *fakeUsersRepo, email string, validity time.Duration) *models.User {
	t.Helper()
	otp, err := auth.GenerateOTP(validity)
	require.NoError(t, err)
	u := &models.User{ID: "11111111-1111-1111-1111-111111111111", Email: email, SignupMethod: models.SignupMethodEmail, OTP: otp}
	repo.add(u)
	return u
}

func TestVerifyOTP_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	u := issueOTP(t, repo, "a@b.com", 5*time.Minute)
	s := newAuthService(t, db, repo, &fakeSender{})

	res, err := s.VerifyOTP(context.Background(), "a@b.com", u.OTP.Code)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "a@b.com", res.User.Email)
	assert.Nil(t, res.User.OTP)
	assert.True(t, res.User.EmailVerified)
}

func TestVerifyOTP_ConsumedCodeFailsSecondTime(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	u := issueOTP(t, repo, "a@b.com", 5*time.Minute)
	code := u.OTP.Code
	s := newAuthService(t, db, repo, &fakeSender{})

	_, err := s.VerifyOTP(context.Background(), "a@b.com", code)
	require.NoError(t, err)

	_, err = s.VerifyOTP(context.Background(), "a@b.com", code)
	assert.ErrorIs(t, err, common.ErrOTPNotRequested)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	u := issueOTP(t, repo, "a@b.com", 5*time.Minute)
	wrong := "000000"
	if u.OTP.Code == wrong {
		wrong = "000001"
	}
	s := newAuthService(t, db, repo, &fakeSender{})

	_, err := s.VerifyOTP(context.Background(), "a@b.com", wrong)
	assert.ErrorIs(t, err, common.ErrOTPInvalid)

	// the stored code stays live after a failed attempt
	assert.NotNil(t, repo.byEmail["a@b.com"].OTP)
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	u := issueOTP(t, repo, "a@b.com", -time.Minute)
	s := newAuthService(t, db, repo, &fakeSender{})

	_, err := s.VerifyOTP(context.Background(), "a@b.com", u.OTP.Code)
	assert.ErrorIs(t, err, common.ErrOTPInvalid)
}

func TestVerifyOTP_NeverRequested(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	repo.add(&models.User{ID: "22222222-2222-2222-2222-222222222222", Email: "a@b.com"})
	s := newAuthService(t, db, repo, &fakeSender{})

	_, err := s.VerifyOTP(context.Background(), "a@b.com", "123456")
	assert.ErrorIs(t, err, common.ErrOTPNotRequested)
}

func TestVerifyOTP_UnknownUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newAuthService(t, db, newFakeUsersRepo(), &fakeSender{})

	_, err := s.VerifyOTP(context.Background(), "nobody@b.com", "123456")
	assert.ErrorIs(t, err, common.ErrOTPNotRequested)
}

// --- password path ---

func TestRegisterWithPassword_AndLogin(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	s := newAuthService(t, db, repo, &fakeSender{})

	res, err := s.RegisterWithPassword(context.Background(), "A@B.com", "Alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "a@b.com", res.User.Email)
	assert.NotEqual(t, "s3cret", res.User.PasswordHash)

	res, err = s.LoginWithPassword(context.Background(), "a@b.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = s.LoginWithPassword(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRegisterWithPassword_DuplicateEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	s := newAuthService(t, db, repo, &fakeSender{})

	_, err := s.RegisterWithPassword(context.Background(), "a@b.com", "Alice", "s3cret")
	require.NoError(t, err)

	_, err = s.RegisterWithPassword(context.Background(), "a@b.com", "Alice", "s3cret")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestLoginWithPassword_OTPOnlyAccount(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	repo.add(&models.User{ID: "33333333-3333-3333-3333-333333333333", Email: "a@b.com"})
	s := newAuthService(t, db, repo, &fakeSender{})

	_, err := s.LoginWithPassword(context.Background(), "a@b.com", "anything")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLoginWithPassword_ClearsLiveOTP(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	otp, err := auth.GenerateOTP(5 * time.Minute)
	require.NoError(t, err)
	repo.add(&models.User{
		ID: "44444444-4444-4444-4444-444444444444", Email: "a@b.com",
		PasswordHash: hash, OTP: otp,
	})
	s := newAuthService(t, db, repo, &fakeSender{})

	_, err = s.LoginWithPassword(context.Background(), "a@b.com", "s3cret")
	require.NoError(t, err)
	assert.Nil(t, repo.byEmail["a@b.com"].OTP)
}

// --- GetUserByID ---

func TestGetUserByID(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := newFakeUsersRepo()
	repo.add(&models.User{ID: "55555555-5555-5555-5555-555555555555", Email: "a@b.com"})
	s := newAuthService(t, db, repo, &fakeSender{})

	u, err := s.GetUserByID(context.Background(), "55555555-5555-5555-5555-555555555555")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)

	_, err = s.GetUserByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
