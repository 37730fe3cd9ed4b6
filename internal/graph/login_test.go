package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginRequest(email, password string) Request {
	return Request{
		Operation: "login",
		Variables: Variables{"email": email, "password": password},
	}
}

func TestLoginSuccessful(t *testing.T) {
	h := newTestHarness(t)
	userID := h.seedUser(t)

	h.execute(t, loginRequest("a@b.com", "secret"), func(data any) {
		payload, ok := data.(*LoginPayload)
		require.True(t, ok)

		require.Empty(t, payload.Errors)
		require.NotNil(t, payload.User)
		assert.Equal(t, userID, payload.User.ID)
		assert.Equal(t, "a@b.com", payload.User.Email)
		assert.Equal(t, "Ada", payload.User.FirstName)
		assert.Equal(t, "Burke", payload.User.LastName)

		subject, err := h.issuer.Parse(payload.Token)
		require.NoError(t, err)
		assert.Equal(t, userID, subject)
	})
}

func TestLoginWrongPassword(t *testing.T) {
	h := newTestHarness(t)
	h.seedUser(t)

	h.execute(t, loginRequest("a@b.com", "wrong"), func(data any) {
		payload, ok := data.(*LoginPayload)
		require.True(t, ok)

		assert.Nil(t, payload.User)
		assert.Empty(t, payload.Token)
		require.Len(t, payload.Errors, 1)
		assert.Equal(t, ErrTypeInvalidCredentials, payload.Errors[0].Typename)
	})
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	h := newTestHarness(t)
	h.seedUser(t)

	var wrongPassword, unknownEmail []ErrorDescriptor

	h.execute(t, loginRequest("a@b.com", "wrong"), func(data any) {
		wrongPassword = data.(*LoginPayload).Errors
	})
	h.execute(t, loginRequest("nobody@x.com", "x"), func(data any) {
		payload := data.(*LoginPayload)
		assert.Nil(t, payload.User)
		unknownEmail = payload.Errors
	})

	require.Len(t, wrongPassword, 1)
	require.Len(t, unknownEmail, 1)
	// Byte-for-byte identical: the response must not reveal which half of the
	// credentials was wrong.
	assert.Equal(t, wrongPassword[0], unknownEmail[0])
}

func TestLoginValidationShortCircuits(t *testing.T) {
	h := newTestHarness(t)
	h.seedUser(t)

	cases := []struct {
		name string
		vars Variables
	}{
		{"malformed email", Variables{"email": "not-an-email", "password": "secret"}},
		{"empty email", Variables{"email": "", "password": "secret"}},
		{"empty password", Variables{"email": "a@b.com", "password": ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h.execute(t, Request{Operation: "login", Variables: tc.vars}, func(data any) {
				payload := data.(*LoginPayload)
				assert.Nil(t, payload.User)
				require.Len(t, payload.Errors, 1)
				assert.Equal(t, ErrTypeValidation, payload.Errors[0].Typename)
			})
		})
	}
}

func TestLoginLeavesCredentialRecordUntouched(t *testing.T) {
	h := newTestHarness(t)
	h.seedUser(t)

	// A failed and a successful login later, the original password still works.
	h.execute(t, loginRequest("a@b.com", "wrong"), func(any) {})
	h.execute(t, loginRequest("a@b.com", "secret"), func(data any) {
		require.Empty(t, data.(*LoginPayload).Errors)
	})
	h.execute(t, loginRequest("a@b.com", "secret"), func(data any) {
		require.Empty(t, data.(*LoginPayload).Errors)
	})
}

func TestAddUserConflict(t *testing.T) {
	h := newTestHarness(t)
	h.seedUser(t)

	req := Request{
		Operation: "addUser",
		Variables: Variables{
			"email":     "a@b.com",
			"password":  "password123",
			"firstName": "Someone",
			"lastName":  "Else",
		},
	}
	h.execute(t, req, func(data any) {
		payload := data.(*UserMutationPayload)
		assert.Nil(t, payload.User)
		require.Len(t, payload.Errors, 1)
		assert.Equal(t, ErrTypeEmailTaken, payload.Errors[0].Typename)
	})
}

func TestAddUserThenLogin(t *testing.T) {
	h := newTestHarness(t)

	h.execute(t, Request{
		Operation: "addUser",
		Variables: Variables{
			"email":     "new@user.com",
			"password":  "password123",
			"firstName": "New",
			"lastName":  "User",
		},
	}, func(data any) {
		payload := data.(*UserMutationPayload)
		require.Empty(t, payload.Errors)
		require.NotNil(t, payload.User)
	})

	h.execute(t, loginRequest("new@user.com", "password123"), func(data any) {
		payload := data.(*LoginPayload)
		require.Empty(t, payload.Errors)
		require.NotNil(t, payload.User)
	})
}
