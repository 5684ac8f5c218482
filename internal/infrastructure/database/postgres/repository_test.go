package postgres

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	domainProfile "scholarship-portal/internal/domain/profile"
	domainScholarship "scholarship-portal/internal/domain/scholarship"
	domainUser "scholarship-portal/internal/domain/user"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.AutoMigrateModels())
	return db
}

func strPtr(s string) *string { return &s }

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domainUser.User{Email: "student@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &domainUser.User{Email: "student@example.com", PasswordHash: "other"})
		assert.True(t, errors.Is(err, domainUser.ErrDuplicateEmail))
	})

	t.Run("get by email and id", func(t *testing.T) {
		byEmail, err := repo.GetByEmail(ctx, "student@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.PasswordHash)
		assert.Equal(t, domainUser.RoleUnset, byEmail.Role)
		assert.False(t, byEmail.HasSelectedRole)

		byID, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "student@example.com", byID.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.True(t, errors.Is(err, domainUser.ErrUserNotFound))

		_, err = repo.GetByID(ctx, uuid.New())
		assert.True(t, errors.Is(err, domainUser.ErrUserNotFound))
	})

	t.Run("save", func(t *testing.T) {
		u.PasswordHash = "new-hash"
		u.Role = domainUser.RoleStudent
		u.HasSelectedRole = true
		u.ProfileImageKey = strPtr("profiles/a.png")
		require.NoError(t, repo.Save(ctx, u))

		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", got.PasswordHash)
		assert.Equal(t, domainUser.RoleStudent, got.Role)
		assert.True(t, got.HasSelectedRole)
		require.NotNil(t, got.ProfileImageKey)
		assert.Equal(t, "profiles/a.png", *got.ProfileImageKey)

		u.ProfileImageKey = nil
		require.NoError(t, repo.Save(ctx, u))
		got, err = repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ProfileImageKey)
	})

	t.Run("save unknown user", func(t *testing.T) {
		err := repo.Save(ctx, &domainUser.User{ID: uuid.New()})
		assert.True(t, errors.Is(err, domainUser.ErrUserNotFound))
	})
}

func TestProfileRepository(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	owner := &domainUser.User{Email: "owner@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, owner))

	t.Run("student", func(t *testing.T) {
		_, err := repo.GetStudentByUserID(ctx, owner.ID)
		assert.True(t, errors.Is(err, domainProfile.ErrStudentNotFound))

		dob := time.Date(2004, 3, 15, 0, 0, 0, 0, time.UTC)
		student := &domainProfile.Student{UserID: owner.ID, FullName: "Ana Cruz", Gender: "female", DateOfBirth: &dob}
		require.NoError(t, repo.SaveStudent(ctx, student))
		assert.NotEqual(t, uuid.Nil, student.ID)

		student.ContactNumber = "+639171234567"
		student.HasCompletedProfile = true
		require.NoError(t, repo.SaveStudent(ctx, student))

		got, err := repo.GetStudentByUserID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, student.ID, got.ID)
		assert.Equal(t, "Ana Cruz", got.FullName)
		assert.Equal(t, "+639171234567", got.ContactNumber)
		assert.True(t, got.HasCompletedProfile)
		require.NotNil(t, got.DateOfBirth)
		assert.Equal(t, "2004-03-15", got.DateOfBirth.Format("2006-01-02"))
	})

	t.Run("sponsor", func(t *testing.T) {
		_, err := repo.GetSponsorByUserID(ctx, owner.ID)
		assert.True(t, errors.Is(err, domainProfile.ErrSponsorNotFound))

		sponsor := &domainProfile.Sponsor{UserID: owner.ID, OrganizationName: "Acme Foundation", OrganizationType: "NGO"}
		require.NoError(t, repo.SaveSponsor(ctx, sponsor))

		sponsor.OfficialEmail = "grants@acme.org"
		require.NoError(t, repo.SaveSponsor(ctx, sponsor))

		got, err := repo.GetSponsorByUserID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Foundation", got.OrganizationName)
		assert.Equal(t, "grants@acme.org", got.OfficialEmail)
	})

	t.Run("update missing profile", func(t *testing.T) {
		err := repo.SaveSponsor(ctx, &domainProfile.Sponsor{ID: uuid.New(), UserID: owner.ID})
		assert.True(t, errors.Is(err, domainProfile.ErrSponsorNotFound))
	})
}

func TestScholarshipRepository(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	repo := NewScholarshipRepository(db)
	ctx := context.Background()

	newSponsor := func(email, org string) *domainProfile.Sponsor {
		u := &domainUser.User{Email: email, PasswordHash: "hash"}
		require.NoError(t, users.Create(ctx, u))
		s := &domainProfile.Sponsor{UserID: u.ID, OrganizationName: org}
		require.NoError(t, profiles.SaveSponsor(ctx, s))
		return s
	}

	acme := newSponsor("acme@example.com", "Acme Foundation")
	globex := newSponsor("globex@example.com", "Globex Trust")

	first := &domainScholarship.Scholarship{
		SponsorID:         acme.ID,
		Title:             "STEM Grant",
		TotalAmount:       50000,
		TotalSlot:         10,
		Criteria:          []string{"GWA 1.75 or better"},
		RequiredDocuments: []string{"Transcript", "ID"},
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, domainScholarship.StatusActive, first.Status)

	time.Sleep(5 * time.Millisecond)
	second := &domainScholarship.Scholarship{SponsorID: globex.ID, Title: "Arts Grant", Purpose: strPtr("arts")}
	require.NoError(t, repo.Create(ctx, second))

	t.Run("get by id with sponsor", func(t *testing.T) {
		got, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "STEM Grant", got.Title)
		assert.Equal(t, []string{"GWA 1.75 or better"}, got.Criteria)
		assert.Equal(t, []string{"Transcript", "ID"}, got.RequiredDocuments)
		require.NotNil(t, got.Sponsor)
		assert.Equal(t, "Acme Foundation", got.Sponsor.OrganizationName)

		got, err = repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got.Criteria)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.True(t, errors.Is(err, domainScholarship.ErrScholarshipNotFound))

		err = repo.Update(ctx, &domainScholarship.Scholarship{ID: uuid.New(), Title: "x"})
		assert.True(t, errors.Is(err, domainScholarship.ErrScholarshipNotFound))
	})

	t.Run("list newest first", func(t *testing.T) {
		all, total, err := repo.List(ctx, &domainScholarship.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, all, 2)
		assert.Equal(t, second.ID, all[0].ID)
		assert.Equal(t, "Globex Trust", all[0].Sponsor.OrganizationName)
	})

	t.Run("list by sponsor and page", func(t *testing.T) {
		mine, total, err := repo.List(ctx, &domainScholarship.Filter{SponsorID: &acme.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, mine, 1)
		assert.Equal(t, first.ID, mine[0].ID)

		page, total, err := repo.List(ctx, &domainScholarship.Filter{Page: 2, PageSize: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, page, 1)
		assert.Equal(t, first.ID, page[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		first.Status = domainScholarship.StatusClosed
		first.ImageKey = strPtr("scholarships/x.png")
		first.Criteria = []string{"Resident"}
		first.TotalSlot = 0
		require.NoError(t, repo.Update(ctx, first))

		got, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, domainScholarship.StatusClosed, got.Status)
		assert.Equal(t, []string{"Resident"}, got.Criteria)
		assert.Equal(t, 0, got.TotalSlot)
		require.NotNil(t, got.ImageKey)
		assert.Equal(t, "scholarships/x.png", *got.ImageKey)

		closed := domainScholarship.StatusClosed
		list, total, err := repo.List(ctx, &domainScholarship.Filter{Status: &closed})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)
	})
}

func TestMigrate_UsesEmbeddedMigrations(t *testing.T) {
	db := newTestDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, db.Migrate(context.Background()))
	assert.Equal(t, ".", gotDir)

	boom := errors.New("boom")
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return boom }
	assert.ErrorIs(t, db.Migrate(context.Background()), boom)
}

func TestHealth(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Health(context.Background()))
}
