package service

import (
	"context"
	"testing"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/system/user/internal/dao"
	"relman/system/user/internal/model"
	"relman/system/user/internal/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newUserService(t *testing.T) *UserService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Role{}, &model.User{}, &model.UserProject{}))

	log := logger.GetLogger().WithEntryName("UserServiceTest")
	return NewUserService(db, dao.NewUserDao(db, log), dao.NewUserProjectDao(db), log)
}

func TestUserService_CreateAndLogin(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, &dto.CreateUserReq{
		Username:   "alice",
		Password:   "secret1",
		Email:      "alice@example.com",
		RoleID:     model.RoleDeveloper,
		ProjectIDs: []int64{3, 1, 3},
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	ids, err := s.ProjectIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)

	got, err := s.ValidateLogin(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.ValidateLogin(ctx, "alice", "wrong")
	assert.Equal(t, errorc.ErrorCodeNoAuth, errorc.ParseError(err).ErrorCode)
	_, err = s.ValidateLogin(ctx, "bob", "secret1")
	assert.Equal(t, errorc.ErrorCodeNoAuth, errorc.ParseError(err).ErrorCode)

	_, err = s.CreateUser(ctx, &dto.CreateUserReq{Username: "alice", Password: "secret2", RoleID: 2})
	assert.Equal(t, errorc.ErrorCodeValid, errorc.ParseError(err).ErrorCode)
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, &dto.CreateUserReq{Username: "carol", Password: "secret1", RoleID: model.RoleDeveloper, ProjectIDs: []int64{5}})
	require.NoError(t, err)

	email := "carol@example.com"
	role := model.RoleAdmin
	pwd := "another1"
	updated, err := s.UpdateUser(ctx, user.ID, &dto.UpdateUserReq{Email: &email, RoleID: &role, Password: &pwd})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.True(t, updated.IsAdmin())
	_, err = s.ValidateLogin(ctx, "carol", "another1")
	require.NoError(t, err)

	require.NoError(t, s.SetProjects(ctx, user.ID, []int64{7, 8}))
	ids, _ := s.ProjectIDs(ctx, user.ID)
	assert.Equal(t, []int64{7, 8}, ids)

	require.NoError(t, s.DeleteUser(ctx, user.ID))
	_, err = s.FindById(ctx, user.ID)
	assert.True(t, errorc.IsNotFound(err))
	ids, _ = s.ProjectIDs(ctx, user.ID)
	assert.Empty(t, ids)

	_, err = s.UpdateUser(ctx, 99, &dto.UpdateUserReq{})
	assert.True(t, errorc.IsNotFound(err))
	assert.True(t, errorc.IsNotFound(s.SetProjects(ctx, 99, nil)))
}
