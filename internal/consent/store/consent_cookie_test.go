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

package store

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	model "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	config.OverrideCMPRuntime(config.Config{
		Cookie: config.CookieConfig{Path: "/", Secure: true},
	})
	os.Exit(m.Run())
}

func sampleRecord() model.ConsentRecord {
	return model.ConsentRecord{
		Status:    constants.ConsentStatusGiven,
		Timestamp: 1_700_000_000,
		Version:   "1.0",
		Categories: map[string]bool{
			constants.CategoryNecessary:   true,
			constants.CategoryPreferences: false,
			constants.CategoryAnalytics:   true,
			constants.CategoryMarketing:   false,
		},
		Overall: constants.OverallPartial,
	}
}

func TestConsentCookie_RoundTrip(t *testing.T) {
	recorder := httptest.NewRecorder()
	require.NoError(t, WriteConsentCookie(recorder, sampleRecord(), 365))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	written := cookies[0]

	assert.Equal(t, constants.ConsentCookieName, written.Name)
	assert.False(t, written.HttpOnly, "the banner script must be able to read the record")
	assert.Equal(t, http.SameSiteLaxMode, written.SameSite)
	assert.True(t, written.Secure)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(written)

	decoded := ReadConsentCookie(request)
	assert.Equal(t, sampleRecord(), decoded)
}

func TestReadConsentCookie_AbsentCookie(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	record := ReadConsentCookie(request)
	assert.Equal(t, model.DefaultConsentRecord(), record)
	assert.NotNil(t, record.Categories)
}

func TestReadConsentCookie_MalformedValue(t *testing.T) {
	for _, value := range []string{"", "not-json", "%7Bbroken", "{\"categories\":42}"} {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.AddCookie(&http.Cookie{Name: constants.ConsentCookieName, Value: value})

		record := ReadConsentCookie(request)
		assert.Equal(t, model.DefaultConsentRecord(), record, "value %q", value)
	}
}

func TestClearConsentCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	ClearConsentCookie(recorder)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.ConsentCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
