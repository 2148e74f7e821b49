package security

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type JwtClient struct {
	secret     []byte
	expireTime time.Duration
}

func NewJwtClient(secret []byte, expireTime time.Duration) *JwtClient {
	if expireTime <= 0 {
		expireTime = 24 * time.Hour
	}
	return &JwtClient{
		secret:     secret,
		expireTime: expireTime,
	}
}

func (c *JwtClient) CreateUserToken(claims *UserClaims) (string, int64, error) {
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(c.expireTime))
	claims.IssuedAt = jwt.NewNumericDate(time.Now())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString(c.secret)
	return signedString, claims.ExpiresAt.Unix(), err
}

func (c *JwtClient) ParseUserToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func (c *JwtClient) SaveUserToContext(ctx *fiber.Ctx, claims *UserClaims) {
	ctx.Locals("user_id", claims.ID)
	ctx.Locals("role_id", claims.RoleID)
	userCtx := ctx.UserContext()
	userCtx = context.WithValue(userCtx, UserKey, claims)
	ctx.SetUserContext(userCtx)
}
