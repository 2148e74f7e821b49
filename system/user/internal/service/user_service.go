package service

import (
	"context"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/core/mvc"
	"relman/system/user/internal/dao"
	"relman/system/user/internal/model"
	"relman/system/user/internal/model/dto"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户服务
type UserService struct {
	mvc.IBaseService[model.User]
	dao        *dao.UserDao
	projectDao *dao.UserProjectDao
	db         *gorm.DB
	log        *logger.Log
	err        *errorc.ErrorBuilder
}

func NewUserService(db *gorm.DB, userDao *dao.UserDao, projectDao *dao.UserProjectDao, log *logger.Log) *UserService {
	return &UserService{
		IBaseService: mvc.NewBaseService[model.User](userDao.IBaseDao),
		dao:          userDao,
		projectDao:   projectDao,
		db:           db,
		log:          log,
		err:          errorc.NewErrorBuilder("UserService"),
	}
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.dao.FindByUsername(ctx, username)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.dao.Count(ctx)
}

// CreateUser 创建用户并设置参与项目
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserReq) (*model.User, error) {
	exists, err := s.dao.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, s.err.New("用户名已存在", nil).ValidWithCtx()
	}

	passwordHash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Email:        req.Email,
		RoleID:       req.RoleID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.dao.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.projectDao.WithTx(tx).Replace(ctx, user.ID, req.ProjectIDs)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("userId", user.ID).WithField("username", user.Username).Info("创建用户")
	return user, nil
}

// UpdateUser 修改邮箱、角色或密码
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserReq) (*model.User, error) {
	if _, err := s.FindById(ctx, id); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if req.Email != nil {
		values["email"] = *req.Email
	}
	if req.RoleID != nil {
		values["role_id"] = *req.RoleID
	}
	if req.Password != nil {
		hash, err := s.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		values["password_hash"] = hash
	}
	if len(values) > 0 {
		if _, err := s.dao.UpdateColumnsById(ctx, id, values); err != nil {
			return nil, err
		}
	}
	return s.FindById(ctx, id)
}

// DeleteUser 删除用户及其项目关联
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.dao.WithTx(tx).DeleteById(ctx, id); err != nil {
			return err
		}
		return s.projectDao.WithTx(tx).Replace(ctx, id, nil)
	})
}

func (s *UserService) ProjectIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.projectDao.FindProjectIDs(ctx, userID)
}

func (s *UserService) SetProjects(ctx context.Context, userID int64, projectIDs []int64) error {
	if _, err := s.FindById(ctx, userID); err != nil {
		return err
	}
	return s.projectDao.Replace(ctx, userID, projectIDs)
}

// ValidateLogin 校验用户名密码
func (s *UserService) ValidateLogin(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.dao.FindByUsername(ctx, username)
	if err != nil {
		if errorc.IsNotFound(err) {
			return nil, s.err.New("用户名或密码错误", nil).NoAuth()
		}
		return nil, err
	}
	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, s.err.New("用户名或密码错误", nil).NoAuth()
	}
	return user, nil
}

// HashPassword 散列密码
func (s *UserService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", s.err.New("密码散列失败", err)
	}
	return string(hash), nil
}

func (s *UserService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
