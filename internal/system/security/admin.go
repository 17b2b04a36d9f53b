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
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTLSeconds = 3600

// AuthnWithAdminCredentials authenticates a Basic Authorization header against
// the configured admin credentials. Returns the admin username on success.
func AuthnWithAdminCredentials(r *http.Request) (string, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Basic ") {
		return "", unauthorizedError("Missing or invalid Authorization header")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Basic "))

	username, isValidAdmin := validateAdminCredentials(token)
	if !isValidAdmin {
		return "", unauthorizedError("Invalid admin credentials")
	}

	return username, nil
}

func validateAdminCredentials(token string) (string, bool) {

	adminConfig := config.GetCMPRuntime().Config.Admin
	username := strings.TrimSpace(adminConfig.AdminUsername)
	passwordHash := strings.TrimSpace(adminConfig.AdminPasswordHash)
	if username == "" || passwordHash == "" || token == "" {
		return "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", false
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return "", false
	}

	if subtle.ConstantTimeCompare([]byte(parts[0]), []byte(username)) != 1 {
		return "", false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(parts[1])); err != nil {
		return "", false
	}

	log.GetLogger().Debug("Admin credentials validated successfully.")
	return username, true
}

// IssueAdminToken signs a short-lived HS256 bearer token for the admin API.
func IssueAdminToken(username string) (string, int, error) {

	adminConfig := config.GetCMPRuntime().Config.Admin
	ttl := adminConfig.TokenTTLSeconds
	if ttl <= 0 {
		ttl = defaultTokenTTLSeconds
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(ttl) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(adminConfig.JWTSecret))
	if err != nil {
		return "", 0, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.ISSUE_ADMIN_TOKEN.Code,
			Message:     errors.ISSUE_ADMIN_TOKEN.Message,
			Description: "Failed to sign admin token.",
		}, err)
	}

	return signed, ttl, nil
}

// RequireAdmin authorizes a Bearer admin token on the given request.
func RequireAdmin(r *http.Request) error {

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") || authHeader == "" {
		return unauthorizedError("Missing or invalid Authorization header")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := parseAdminToken(tokenString)
	if err != nil {
		return unauthorizedError("Invalid or expired admin token")
	}

	if !validateAdminClaims(claims) {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.FORBIDDEN.Code,
			Message:     errors.FORBIDDEN.Message,
			Description: "Do not have permission to perform this operation",
		}, http.StatusForbidden)
	}

	return nil
}

// AdminFromRequest returns the admin username when the request carries a
// valid Bearer admin token, and false otherwise. Unlike RequireAdmin this
// never fails the request; it is used to attribute actions on endpoints that
// serve anonymous visitors too.
func AdminFromRequest(r *http.Request) (string, bool) {

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	claims, err := parseAdminToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || !validateAdminClaims(claims) {
		return "", false
	}

	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// parseAdminToken verifies the token signature and returns its claims.
func parseAdminToken(tokenString string) (jwt.MapClaims, error) {

	adminConfig := config.GetCMPRuntime().Config.Admin
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(adminConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// validateAdminClaims ensures the token carries the admin role and has not expired.
func validateAdminClaims(claims jwt.MapClaims) bool {

	logger := log.GetLogger()
	roleRaw, ok := claims["role"]
	if !ok {
		logger.Debug("Token does not have a role claim.")
		return false
	}
	role, ok := roleRaw.(string)
	if !ok || role != "admin" {
		logger.Debug("Token role claim is not valid.")
		return false
	}

	expRaw, ok := claims["exp"]
	if !ok {
		logger.Debug("Token does not have an expiration time.")
		return false
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		logger.Debug("Token does not have a valid expiration time.", log.Any("exp", expRaw))
		return false
	}
	if int64(expFloat) < time.Now().Unix() {
		logger.Debug("Token has expired.")
		return false
	}

	return true
}

func unauthorizedError(description string) *errors.ClientError {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.UN_AUTHORIZED.Code,
		Message:     errors.UN_AUTHORIZED.Message,
		Description: description,
	}, http.StatusUnauthorized)
}
