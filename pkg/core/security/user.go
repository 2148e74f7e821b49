package security

import (
	"context"
	"strings"
	"time"

	errorc "relman/pkg/core/err"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type UserAuth struct {
	jwtClient *JwtClient
}

const (
	UserKey = "user"
	// RoleAdmin 管理员角色ID
	RoleAdmin int64 = 1
)

type UserClaims struct {
	jwt.RegisteredClaims
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	RoleID   int64  `json:"role_id,omitempty"`
}

func (c *UserClaims) IsAdmin() bool {
	return c != nil && c.RoleID == RoleAdmin
}

func NewUserAuth(secret []byte, expireTime time.Duration) *UserAuth {
	return &UserAuth{
		jwtClient: NewJwtClient(secret, expireTime),
	}
}

func (a *UserAuth) CreateToken(claims *UserClaims) (string, int64, error) {
	return a.jwtClient.CreateUserToken(claims)
}

// NoAuthRequired 无需校验权限，直接放行
func (a *UserAuth) NoAuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}

// RequireAuth 必须通过校验，并保存用户信息
func (a *UserAuth) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			return errorc.New("authorization header is required", nil).NoAuth()
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		claims, err := a.jwtClient.ParseUserToken(token)
		if err != nil {
			return errorc.New("invalid token", err).NoAuth()
		}

		a.jwtClient.SaveUserToContext(c, claims)
		return c.Next()
	}
}

// RequireAdmin 要求管理员角色
func (a *UserAuth) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := GetUserClaimsByCtx(c.UserContext())
		if err != nil {
			return err
		}
		if !claims.IsAdmin() {
			return errorc.New("permission denied", nil).Forbidden()
		}
		return c.Next()
	}
}

// GetUserID 从上下文中获取用户ID
func GetUserID(c *fiber.Ctx) (int64, error) {
	if c == nil {
		return 0, errorc.New("fiber context is nil", nil).WithCode(errorc.ErrorCodeInternal)
	}
	id, ok := c.Locals("user_id").(int64)
	if !ok || id == 0 {
		return 0, errorc.New("user id not found or invalid", nil).NoAuth()
	}
	return id, nil
}

func GetUserClaims(c *fiber.Ctx) (*UserClaims, error) {
	if c == nil {
		return nil, errorc.New("fiber context is nil", nil).WithCode(errorc.ErrorCodeInternal)
	}
	return GetUserClaimsByCtx(c.UserContext())
}

func GetUserClaimsByCtx(ctx context.Context) (*UserClaims, error) {
	claims, ok := ctx.Value(UserKey).(*UserClaims)
	if !ok {
		return nil, errorc.New("user claims not found or invalid", nil).NoAuth()
	}
	return claims, nil
}

// ParseToken 解析用户令牌（供外部使用）
func (a *UserAuth) ParseToken(token string) (*UserClaims, error) {
	return a.jwtClient.ParseUserToken(token)
}
