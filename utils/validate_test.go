package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loginReq struct {
	Username string `json:"username" validate:"required" comment:"用户名"`
	Password string `json:"password" validate:"required,min=6" comment:"密码"`
}

type dateReq struct {
	Rlsdate string `json:"rlsdate" validate:"omitempty,reldate"`
}

func TestValidate(t *testing.T) {
	msg, err := Validate(&loginReq{Username: "alice", Password: "secret1"})
	assert.NoError(t, err)
	assert.Empty(t, msg)

	msg, err = Validate(&loginReq{Password: "secret1"})
	assert.Error(t, err)
	assert.Contains(t, msg, "用户名")
}

func TestReleaseDate(t *testing.T) {
	assert.True(t, IsReleaseDate("2024-03-01"))
	assert.True(t, IsReleaseDate("20240301"))
	assert.False(t, IsReleaseDate("2024/03/01"))

	_, err := Validate(&dateReq{Rlsdate: "20240301"})
	assert.NoError(t, err)
	_, err = Validate(&dateReq{})
	assert.NoError(t, err)
	msg, err := Validate(&dateReq{Rlsdate: "yesterday"})
	assert.Error(t, err)
	assert.Contains(t, msg, "rlsdate")
}

func TestNormalizeReleaseDate(t *testing.T) {
	assert.Equal(t, "2024-03-01", NormalizeReleaseDate("20240301"))
	assert.Equal(t, "2024-03-01", NormalizeReleaseDate("2024-03-01"))
}
