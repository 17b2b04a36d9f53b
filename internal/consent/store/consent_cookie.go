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

package store

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	model "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	errors2 "github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
)

// EncodeConsent serializes a consent record for cookie storage. The JSON is
// URL-escaped because quotes and commas are not valid cookie-value bytes.
func EncodeConsent(record model.ConsentRecord) (string, error) {

	encoded, err := json.Marshal(record)
	if err != nil {
		errorMsg := "Failed to encode consent record for cookie storage."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}
	return url.QueryEscape(string(encoded)), nil
}

// DecodeConsent parses a raw cookie value. Absent, empty or malformed input
// yields the canonical default record; this never fails.
func DecodeConsent(raw string) model.ConsentRecord {

	if raw == "" {
		return model.DefaultConsentRecord()
	}

	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		log.GetLogger().Debug("Malformed consent cookie encoding, falling back to default record", log.Error(err))
		return model.DefaultConsentRecord()
	}

	var record model.ConsentRecord
	if err := json.Unmarshal([]byte(unescaped), &record); err != nil {
		log.GetLogger().Debug("Malformed consent cookie, falling back to default record", log.Error(err))
		return model.DefaultConsentRecord()
	}

	if record.Categories == nil {
		record.Categories = map[string]bool{}
	}
	return record
}

// ReadConsentCookie extracts the current consent record from the request.
func ReadConsentCookie(r *http.Request) model.ConsentRecord {

	cookie, err := r.Cookie(constants.ConsentCookieName)
	if err != nil {
		return model.DefaultConsentRecord()
	}
	return DecodeConsent(cookie.Value)
}

// WriteConsentCookie persists the record in the consent cookie. The cookie is
// deliberately readable by client-side script so the banner can reflect the
// current state without a round trip.
func WriteConsentCookie(w http.ResponseWriter, record model.ConsentRecord, expirationDays int) error {

	encoded, err := EncodeConsent(record)
	if err != nil {
		return err
	}

	cookieConfig := config.GetCMPRuntime().Config.Cookie
	http.SetCookie(w, &http.Cookie{
		Name:     constants.ConsentCookieName,
		Value:    encoded,
		Path:     cookiePathOrDefault(cookieConfig.Path),
		Domain:   cookieConfig.Domain,
		Expires:  time.Now().Add(time.Duration(expirationDays) * 24 * time.Hour),
		Secure:   cookieConfig.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearConsentCookie expires the consent cookie immediately. Safe to call on
// every page load; clearing an already-absent cookie is a no-op for clients.
func ClearConsentCookie(w http.ResponseWriter) {

	cookieConfig := config.GetCMPRuntime().Config.Cookie
	http.SetCookie(w, &http.Cookie{
		Name:     constants.ConsentCookieName,
		Value:    "",
		Path:     cookiePathOrDefault(cookieConfig.Path),
		Domain:   cookieConfig.Domain,
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Secure:   cookieConfig.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookiePathOrDefault(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
