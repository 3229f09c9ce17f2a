package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"esitemart.com/app/internal/mailer"
	"esitemart.com/app/internal/users"
)

func openUsersDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}))
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	db := openUsersDB(t)
	ctx := context.Background()
	svc := users.NewService(db)

	u, err := svc.Register(ctx, users.RegisterInput{
		Name:     "Asha",
		Email:    "  Asha@Example.COM ",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email, "email is normalized")
	assert.Equal(t, users.RoleUser, u.Role)
	assert.True(t, u.Approved)

	got, err := svc.Login(ctx, "asha@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := openUsersDB(t)
	ctx := context.Background()
	svc := users.NewService(db)

	_, err := svc.Register(ctx, users.RegisterInput{Name: "A", Email: "a@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, users.RegisterInput{Name: "B", Email: "a@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestRegister_RoleCoercion(t *testing.T) {
	db := openUsersDB(t)
	ctx := context.Background()
	svc := users.NewService(db)

	// arbitrary roles collapse to user; nobody self-registers as admin
	u, err := svc.Register(ctx, users.RegisterInput{Name: "A", Email: "a@example.com", Password: "s3cretpass", Role: users.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, users.RoleUser, u.Role)
}

func TestClientApprovalFlow(t *testing.T) {
	db := openUsersDB(t)
	ctx := context.Background()
	svc := users.NewService(db)
	mock := &mailer.Mock{}
	approval := users.NewApprovalService(db, mock, "no-reply@esitemart.com")

	u, err := svc.Register(ctx, users.RegisterInput{
		Name: "Wholesale Co", Email: "buyer@example.com", Password: "s3cretpass", Role: users.RoleClient,
	})
	require.NoError(t, err)
	assert.False(t, u.Approved)

	// unapproved clients cannot sign in
	_, err = svc.Login(ctx, "buyer@example.com", "s3cretpass")
	assert.ErrorIs(t, err, users.ErrNotApproved)

	pending, err := approval.ListPendingClients(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, u.ID, pending[0].ID)

	require.NoError(t, approval.Approve(ctx, u.ID))
	assert.Equal(t, 1, mock.Count(), "approval email sent")

	got, err := svc.Login(ctx, "buyer@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.True(t, got.Approved)

	pending, err = approval.ListPendingClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRejectDeletesClient(t *testing.T) {
	db := openUsersDB(t)
	ctx := context.Background()
	svc := users.NewService(db)
	mock := &mailer.Mock{}
	approval := users.NewApprovalService(db, mock, "no-reply@esitemart.com")

	u, err := svc.Register(ctx, users.RegisterInput{
		Name: "Wholesale Co", Email: "buyer@example.com", Password: "s3cretpass", Role: users.RoleClient,
	})
	require.NoError(t, err)

	require.NoError(t, approval.Reject(ctx, u.ID))
	assert.Equal(t, 1, mock.Count())

	_, err = svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := openUsersDB(t)
	ctx := context.Background()
	svc := users.NewService(db)

	u, err := svc.Register(ctx, users.RegisterInput{Name: "A", Email: "a@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(ctx, u.ID, users.UpdateProfileInput{
		Name: " New Name ", Phone: "12345678", Address: "12 Hill Rd",
	}))

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "12345678", got.Phone)
}
