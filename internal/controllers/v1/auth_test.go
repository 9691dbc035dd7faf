package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fintrack/backend/internal/auth"
	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRegister() {
	tests := []struct {
		name   string
		body   v1.Credentials
		status int
	}{
		{
			"Success",
			v1.Credentials{Email: "jane@example.com", Password: "correct horse battery staple", Name: "Jane"},
			http.StatusCreated,
		},
		{
			"Email without @",
			v1.Credentials{Email: "jane.example.com", Password: "correct horse battery staple"},
			http.StatusBadRequest,
		},
		{
			"Password too short",
			v1.Credentials{Email: "short@example.com", Password: "hunter2"},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/auth/register", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusCreated {
				var response v1.AuthResponse
				test.DecodeResponse(t, &r, &response)

				assert.Equal(t, tt.body.Email, response.Data.Email)
				assert.Equal(t, tt.body.Name, response.Data.Name)
				assert.NotEmpty(t, response.Token)

				// The session cookie is set on registration
				var found bool
				for _, cookie := range r.Result().Cookies() {
					if cookie.Name == auth.CookieName {
						found = true
						assert.True(t, cookie.HttpOnly)
						assert.NotEmpty(t, cookie.Value)
					}
				}
				assert.True(t, found, "session cookie is not set")
			}
		})
	}
}

func (suite *TestSuiteStandard) TestRegisterDuplicateEmail() {
	body := v1.Credentials{Email: "dup@example.com", Password: "correct horse battery staple"}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	var response v1.AuthResponse
	test.DecodeResponse(suite.T(), &r, &response)
}

func (suite *TestSuiteStandard) TestRegisterNormalizesEmail() {
	body := v1.Credentials{Email: " Jane@Example.com ", Password: "correct horse battery staple"}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.AuthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "jane@example.com", response.Data.Email)
}

func (suite *TestSuiteStandard) TestLogin() {
	email := fmt.Sprintf("%s@example.com", uuid.NewString())
	register := v1.Credentials{Email: email, Password: "correct horse battery staple"}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", register)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	tests := []struct {
		name   string
		body   v1.Credentials
		status int
	}{
		{"Success", v1.Credentials{Email: email, Password: "correct horse battery staple"}, http.StatusOK},
		{"Wrong password", v1.Credentials{Email: email, Password: "incorrect donkey battery staple"}, http.StatusUnauthorized},
		{"Unknown account", v1.Credentials{Email: "nobody@example.com", Password: "correct horse battery staple"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/auth/login", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusOK {
				var response v1.AuthResponse
				test.DecodeResponse(t, &r, &response)
				assert.NotEmpty(t, response.Token)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMe() {
	headers := registerTestUser(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/me", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), response.Data.Email, "@example.com")
}

func (suite *TestSuiteStandard) TestMeUnauthenticated() {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"No token", nil},
		{"Garbage token", map[string]string{"Authorization": "Bearer notatoken"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/auth/me", "", tt.headers)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}
}

func (suite *TestSuiteStandard) TestLogout() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/logout", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	cookies := r.Result().Cookies()
	require.NotEmpty(suite.T(), cookies)

	for _, cookie := range cookies {
		if cookie.Name == auth.CookieName {
			assert.Empty(suite.T(), cookie.Value)
			assert.Negative(suite.T(), cookie.MaxAge)
		}
	}
}
