package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/shared/constants"
	"eventhub/internal/storage"
	"eventhub/pkg/logger"
)

type fakeRemover struct {
	calls []int64
	n     int
	err   error
}

func (f *fakeRemover) DeleteUserBookings(_ context.Context, userID int64) (int, error) {
	f.calls = append(f.calls, userID)
	return f.n, f.err
}

func seed(t *testing.T) (Repository, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	repo := NewRepository(store, logger.Nop())
	for _, u := range []User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Password: "password123", Role: constants.RoleUser},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Password: "password123", Role: constants.RoleUser},
		{ID: 3, Name: "Admin User", Email: "admin@example.com", Password: "admin123", Role: constants.RoleAdmin},
	} {
		u := u
		require.NoError(t, repo.Save(context.Background(), &u))
	}
	return repo, store
}

func TestRepository(t *testing.T) {
	repo, _ := seed(t)
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)

	_, err = repo.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrUserNotFound)

	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)

	u.Phone = "09177654321"
	require.NoError(t, repo.Save(ctx, u))
	got, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "09177654321", got.Phone)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestCurrentUserSlot(t *testing.T) {
	repo, store := seed(t)
	ctx := context.Background()

	_, err := repo.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)

	john, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, repo.SetCurrentUser(ctx, john))

	current, err := repo.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", current.Name)

	require.NoError(t, repo.ClearCurrentUser(ctx))
	_, err = repo.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, store.Set(ctx, storage.KeyCurrentUser, []byte(`{"id":0}`)))
	_, err = repo.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserRemovesBookings(t *testing.T) {
	repo, _ := seed(t)
	ctx := context.Background()
	john, _ := repo.Get(ctx, 1)
	require.NoError(t, repo.SetCurrentUser(ctx, john))

	remover := &fakeRemover{n: 2}
	svc := NewService(repo, remover, logger.Nop())

	removed, err := svc.DeleteUser(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []int64{1}, remover.calls)

	_, err = repo.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.DeleteUser(ctx, 1, 3)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.DeleteUser(ctx, 3, 3)
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)
}

func TestDeleteUserSurfacesBookingFailure(t *testing.T) {
	repo, _ := seed(t)
	boom := errors.New("store unavailable")
	svc := NewService(repo, &fakeRemover{err: boom}, logger.Nop())

	_, err := svc.DeleteUser(context.Background(), 2, 3)
	assert.ErrorIs(t, err, boom)
}

func TestListUsersHidesPasswords(t *testing.T) {
	repo, _ := seed(t)
	svc := NewService(repo, nil, logger.Nop())

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, Profile{ID: 3, Name: "Admin User", Email: "admin@example.com", Role: constants.RoleAdmin}, list[2])

	names, err := svc.DisplayNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", names[2])

	n, err := svc.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUserRoutesRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo, _ := seed(t)
	r := gin.New()
	role := constants.RoleUser
	auth := func(c *gin.Context) {
		c.Set(constants.CtxUserID, int64(3))
		c.Set(constants.CtxUserRole, role)
		c.Next()
	}
	SetupUserRoutes(r.Group("/api/v1"), NewController(NewService(repo, &fakeRemover{}, logger.Nop())), auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	role = constants.RoleAdmin
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password123")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/users/2", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/users/2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
