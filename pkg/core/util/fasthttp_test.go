package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	s, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = Encode(map[string]string{"pkg": "demo_20240101_01"})
	require.NoError(t, err)
	assert.Equal(t, "pkg=demo_20240101_01", s)

	s, err = Encode(struct {
		B string `json:"b"`
		A int    `json:"a"`
	}{B: "x,y", A: 3})
	require.NoError(t, err)
	assert.Equal(t, "a=3&b=x%2Cy", s)
}

func TestBasicAuth(t *testing.T) {
	h := BasicAuth("admin", "secret")
	assert.Equal(t, "Authorization", h.Key)
	assert.Equal(t, "Basic YWRtaW46c2VjcmV0", h.Value)
}
