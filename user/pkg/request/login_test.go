package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/grocery/internal/validate"
)

func TestLogin(t *testing.T) {
	expectedMap := map[string]string{"email": "email", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "email", Password: "password"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "password", loginReq.Password)
}

func TestRegister(t *testing.T) {
	registerReq := Register{Username: "shopper", Email: "shopper@mail.com", Password: "secret-password"}

	actual, err := json.Marshal(registerReq)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"shopper","email":"shopper@mail.com","password":"***"}`, string(actual))

	testCases := []struct {
		name    string
		request Register
		valid   bool
	}{
		{name: "valid", request: registerReq, valid: true},
		{name: "short password", request: Register{Username: "shopper", Email: "shopper@mail.com", Password: "short"}},
		{name: "invalid email", request: Register{Username: "shopper", Email: "shopper", Password: "secret-password"}},
		{name: "missing username", request: Register{Email: "shopper@mail.com", Password: "secret-password"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.New().Struct(tc.request)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}
