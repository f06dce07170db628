package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_UnmarshalAcceptsBothIDKeys(t *testing.T) {
	for _, body := range []string{
		`{"id":"u1","name":"Cara","role":"customer"}`,
		`{"_id":"u1","name":"Cara","role":"customer"}`,
	} {
		var u User
		require.NoError(t, json.Unmarshal([]byte(body), &u))
		assert.Equal(t, "u1", u.ID, body)
		assert.Equal(t, RoleCustomer, u.Role)
	}
}

func TestProvider_UnmarshalAcceptsBothIDKeys(t *testing.T) {
	var providers []Provider
	require.NoError(t, json.Unmarshal([]byte(`[
		{"_id":"p1","name":"Pat","active":true,"services":["s1"]},
		{"id":"p2","name":"Sam","active":false}
	]`), &providers))

	require.Len(t, providers, 2)
	assert.Equal(t, "p1", providers[0].ID)
	assert.True(t, providers[0].Active)
	assert.Equal(t, "s1", providers[0].Services[0].ID)
	assert.Equal(t, "p2", providers[1].ID)
	assert.Equal(t, "Sam", providers[1].Name)
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, ok := ParseRole(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
	_, ok := ParseRole("superuser")
	assert.False(t, ok)
}
