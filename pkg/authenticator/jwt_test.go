package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type tokenObj struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func Test_jwtTokenEngine_GenerateAndVerify(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(time.Minute, tokenObj{ID: "user1", Role: "admin"})
	require.NoError(t, err)

	var got tokenObj
	require.NoError(t, engine.Verify(token, &got))
	require.Equal(t, "user1", got.ID)
	require.Equal(t, "admin", got.Role)
}

func Test_jwtTokenEngine_VerifyExpired(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(-time.Minute, tokenObj{ID: "user1"})
	require.NoError(t, err)

	var got tokenObj
	require.Error(t, engine.Verify(token, &got))
}

func Test_jwtTokenEngine_VerifyWrongSecret(t *testing.T) {
	token, err := NewTokenEngine("secret").Generate(time.Minute, tokenObj{ID: "user1"})
	require.NoError(t, err)

	var got tokenObj
	require.Error(t, NewTokenEngine("another-secret").Verify(token, &got))
}
