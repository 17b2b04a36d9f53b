/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
)

const csrfTokenTTL = 30 * time.Minute

// GenerateCSRFToken mints a random double-submit token and sets its cookie.
// The caller returns the token in the response body so the client can echo
// it back in the X-CSRF-Token header.
func GenerateCSRFToken(w http.ResponseWriter) (string, error) {

	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", errors.NewServerError(errors.ErrorMessage{
			Code:        errors.ISSUE_ADMIN_TOKEN.Code,
			Message:     errors.ISSUE_ADMIN_TOKEN.Message,
			Description: "Failed to generate anti-forgery token.",
		}, err)
	}

	token := hex.EncodeToString(b[:])
	cookieConfig := config.GetCMPRuntime().Config.Cookie

	http.SetCookie(w, &http.Cookie{
		Name:     constants.CSRFCookieName,
		Value:    token,
		Path:     cookiePathOrDefault(cookieConfig.Path),
		Domain:   cookieConfig.Domain,
		Expires:  time.Now().Add(csrfTokenTTL),
		Secure:   cookieConfig.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return token, nil
}

// ValidateCSRF enforces the double-submit check: the X-CSRF-Token header must
// match the token cookie. Rejection means no state mutation and no log entry.
func ValidateCSRF(r *http.Request) error {

	header := strings.TrimSpace(r.Header.Get(constants.CSRFHeaderName))
	cookie, err := r.Cookie(constants.CSRFCookieName)

	if header == "" || err != nil || strings.TrimSpace(cookie.Value) == "" ||
		!constantTimeEqual(header, cookie.Value) {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.INVALID_CSRF_TOKEN.Code,
			Message:     errors.INVALID_CSRF_TOKEN.Message,
			Description: "Anti-forgery token missing or mismatched.",
		}, http.StatusForbidden)
	}

	return nil
}

// constantTimeEqual compares two strings without leaking timing information.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func cookiePathOrDefault(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
