/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package security

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct horse battery staple"

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		os.Exit(1)
	}

	config.OverrideCMPRuntime(config.Config{
		Admin: config.AdminConfig{
			AdminUsername:     "admin",
			AdminPasswordHash: string(hash),
			JWTSecret:         "test-secret",
			TokenTTLSeconds:   60,
		},
	})
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Admin credentials and bearer tokens
// ---------------------------------------------------------------------------

func TestAuthnWithAdminCredentials_ValidBasicAuth(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	r.SetBasicAuth("admin", testPassword)

	username, err := AuthnWithAdminCredentials(r)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestAuthnWithAdminCredentials_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"missing header", func(r *http.Request) {}},
		{"wrong password", func(r *http.Request) { r.SetBasicAuth("admin", "nope") }},
		{"wrong username", func(r *http.Request) { r.SetBasicAuth("root", testPassword) }},
		{"bearer instead of basic", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
			tc.setup(r)

			_, err := AuthnWithAdminCredentials(r)
			require.Error(t, err)

			clientErr, ok := err.(*errors.ClientError)
			require.True(t, ok, "expected a ClientError")
			assert.Equal(t, http.StatusUnauthorized, clientErr.StatusCode)
		})
	}
}

func TestIssueAdminToken_RoundTrip(t *testing.T) {
	token, ttl, err := IssueAdminToken("admin")
	require.NoError(t, err)
	assert.Equal(t, 60, ttl)

	r := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	assert.NoError(t, RequireAdmin(r))
}

func TestAdminFromRequest_ReturnsUsernameForValidToken(t *testing.T) {
	token, _, err := IssueAdminToken("admin")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/consent", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	username, ok := AdminFromRequest(r)
	assert.True(t, ok)
	assert.Equal(t, "admin", username)
}

func TestAdminFromRequest_AnonymousRequests(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"garbage token", "Bearer not.a.jwt"},
		{"basic auth", "Basic YWRtaW46cHc="},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/consent", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			username, ok := AdminFromRequest(r)
			assert.False(t, ok)
			assert.Empty(t, username)
		})
	}
}

func TestRequireAdmin_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage token", "Bearer not.a.jwt"},
		{"basic instead of bearer", "Basic YWRtaW46cHc="},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			assert.Error(t, RequireAdmin(r))
		})
	}
}

// ---------------------------------------------------------------------------
// CSRF double-submit
// ---------------------------------------------------------------------------

func TestCSRF_TokenRoundTrip(t *testing.T) {
	recorder := httptest.NewRecorder()
	token, err := GenerateCSRFToken(recorder)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.CSRFCookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodPost, "/consent", nil)
	r.AddCookie(cookies[0])
	r.Header.Set(constants.CSRFHeaderName, token)
	assert.NoError(t, ValidateCSRF(r))
}

func TestValidateCSRF_Rejections(t *testing.T) {
	recorder := httptest.NewRecorder()
	token, err := GenerateCSRFToken(recorder)
	require.NoError(t, err)
	cookie := recorder.Result().Cookies()[0]

	cases := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"missing header", func(r *http.Request) { r.AddCookie(cookie) }},
		{"missing cookie", func(r *http.Request) { r.Header.Set(constants.CSRFHeaderName, token) }},
		{"mismatched token", func(r *http.Request) {
			r.AddCookie(cookie)
			r.Header.Set(constants.CSRFHeaderName, "0000")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/consent", nil)
			tc.setup(r)

			err := ValidateCSRF(r)
			require.Error(t, err)

			clientErr, ok := err.(*errors.ClientError)
			require.True(t, ok, "expected a ClientError")
			assert.Equal(t, http.StatusForbidden, clientErr.StatusCode)
		})
	}
}
