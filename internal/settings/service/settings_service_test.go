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

package service

import (
	"os"
	"testing"

	model "github.com/adrias-freebrand/cookie-goat/internal/settings/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestApplyDefaults_NilStoredReturnsDefaults(t *testing.T) {
	assert.Equal(t, model.DefaultSettings(), applyDefaults(nil))
}

func TestApplyDefaults_PartialRecordKeepsDefaultsElsewhere(t *testing.T) {
	stored := &model.Settings{PolicyVersion: "3.2"}

	settings := applyDefaults(stored)
	assert.Equal(t, "3.2", settings.PolicyVersion)
	assert.Equal(t, model.DefaultSettings().BannerTitle, settings.BannerTitle)
	assert.Equal(t, model.DefaultSettings().ConsentExpirationDays, settings.ConsentExpirationDays)
}

func TestApplyDefaults_ClampsStoredValues(t *testing.T) {
	stored := &model.Settings{
		ConsentExpirationDays: 10_000,
		AutoscanFrequency:     1,
	}

	settings := applyDefaults(stored)
	assert.Equal(t, constants.MaxConsentExpirationDays, settings.ConsentExpirationDays)
	assert.Equal(t, int64(constants.MinAutoscanFrequency), settings.AutoscanFrequency)
}

func TestApplyUpdate_ExpirationClamped(t *testing.T) {
	current := model.DefaultSettings()

	low := applyUpdate(current, model.SettingsUpdate{ConsentExpirationDays: intPtr(1)})
	assert.Equal(t, constants.MinConsentExpirationDays, low.ConsentExpirationDays)

	high := applyUpdate(current, model.SettingsUpdate{ConsentExpirationDays: intPtr(9999)})
	assert.Equal(t, constants.MaxConsentExpirationDays, high.ConsentExpirationDays)

	inRange := applyUpdate(current, model.SettingsUpdate{ConsentExpirationDays: intPtr(90)})
	assert.Equal(t, 90, inRange.ConsentExpirationDays)
}

func TestApplyUpdate_FrequencyClamped(t *testing.T) {
	current := model.DefaultSettings()

	low := applyUpdate(current, model.SettingsUpdate{AutoscanFrequency: int64Ptr(60)})
	assert.Equal(t, int64(constants.MinAutoscanFrequency), low.AutoscanFrequency)

	high := applyUpdate(current, model.SettingsUpdate{AutoscanFrequency: int64Ptr(constants.DayInSeconds * 365)})
	assert.Equal(t, int64(constants.MaxAutoscanFrequency), high.AutoscanFrequency)
}

func TestApplyUpdate_AbsentFieldsUntouched(t *testing.T) {
	current := model.DefaultSettings()
	current.BannerTitle = "Existing title"

	updated := applyUpdate(current, model.SettingsUpdate{PolicyLink: strPtr("/privacy/")})
	assert.Equal(t, "Existing title", updated.BannerTitle)
	assert.Equal(t, "/privacy/", updated.PolicyLink)
}

func TestApplyUpdate_SanitizesText(t *testing.T) {
	current := model.DefaultSettings()

	updated := applyUpdate(current, model.SettingsUpdate{
		BannerTitle: strPtr("  Title\x00 with\x07 control bytes  "),
	})
	assert.Equal(t, "Title with control bytes", updated.BannerTitle)
}

func TestApplyUpdate_UnknownCategoryTextIgnored(t *testing.T) {
	current := model.DefaultSettings()

	updated := applyUpdate(current, model.SettingsUpdate{
		CategoryTexts: map[string]string{
			constants.CategoryAnalytics: "Updated analytics copy.",
			"made_up_category":          "Should be dropped.",
		},
	})
	assert.Equal(t, "Updated analytics copy.", updated.CategoryTexts[constants.CategoryAnalytics])
	_, exists := updated.CategoryTexts["made_up_category"]
	assert.False(t, exists)
}

func TestApplyUpdate_GTMContainerUppercased(t *testing.T) {
	current := model.DefaultSettings()

	updated := applyUpdate(current, model.SettingsUpdate{GTMContainerID: strPtr("gtm-abc123")})
	assert.Equal(t, "GTM-ABC123", updated.GTMContainerID)
}
