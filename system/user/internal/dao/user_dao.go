package dao

import (
	"context"
	"errors"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/core/mvc"
	"relman/system/user/internal/model"

	"gorm.io/gorm"
)

// UserDao 用户数据访问层
type UserDao struct {
	mvc.IBaseDao[model.User]
	log *logger.Log
	err *errorc.ErrorBuilder
	db  *gorm.DB
}

func NewUserDao(db *gorm.DB, log *logger.Log) *UserDao {
	return &UserDao{
		IBaseDao: mvc.NewGormDao[model.User](db),
		log:      log,
		err:      errorc.NewErrorBuilder("UserDao"),
		db:       db,
	}
}

// FindByUsername 根据用户名查询
func (d *UserDao) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, d.err.New("用户不存在", err).WithCode(errorc.ErrorCodeNotFound)
		}
		return nil, d.err.New("查询用户失败", err).DB()
	}
	return &user, nil
}

func (d *UserDao) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return d.ExistsByMap(ctx, map[string]interface{}{"username": username})
}

func (d *UserDao) Count(ctx context.Context) (int64, error) {
	return d.CountByMap(ctx, map[string]interface{}{})
}

// WithTx 使用事务
func (d *UserDao) WithTx(tx *gorm.DB) *UserDao {
	return &UserDao{
		IBaseDao: mvc.NewGormDao[model.User](tx),
		log:      d.log,
		err:      d.err,
		db:       tx,
	}
}

// RoleDao 角色数据访问层
type RoleDao struct {
	mvc.IBaseDao[model.Role]
}

func NewRoleDao(db *gorm.DB) *RoleDao {
	return &RoleDao{IBaseDao: mvc.NewGormDao[model.Role](db)}
}

// UserProjectDao 用户与项目的关联
type UserProjectDao struct {
	err *errorc.ErrorBuilder
	db  *gorm.DB
}

func NewUserProjectDao(db *gorm.DB) *UserProjectDao {
	return &UserProjectDao{
		err: errorc.NewErrorBuilder("UserProjectDao"),
		db:  db,
	}
}

// FindProjectIDs 用户参与的项目ID
func (d *UserProjectDao) FindProjectIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := d.db.WithContext(ctx).Model(&model.UserProject{}).
		Where("user_id = ?", userID).
		Order("project_id").
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, d.err.New("查询用户项目失败", err).DB()
	}
	return ids, nil
}

// Replace 覆盖用户参与的项目
func (d *UserProjectDao) Replace(ctx context.Context, userID int64, projectIDs []int64) error {
	db := d.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&model.UserProject{}).Error; err != nil {
		return d.err.New("清除用户项目失败", err).DB()
	}
	seen := make(map[int64]struct{}, len(projectIDs))
	rows := make([]model.UserProject, 0, len(projectIDs))
	for _, pid := range projectIDs {
		if _, ok := seen[pid]; ok || pid <= 0 {
			continue
		}
		seen[pid] = struct{}{}
		rows = append(rows, model.UserProject{UserID: userID, ProjectID: pid})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return d.err.New("保存用户项目失败", err).DB()
	}
	return nil
}

func (d *UserProjectDao) WithTx(tx *gorm.DB) *UserProjectDao {
	return &UserProjectDao{err: d.err, db: tx}
}
