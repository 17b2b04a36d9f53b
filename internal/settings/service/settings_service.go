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

package service

import (
	"strings"
	"time"
	"unicode"

	model "github.com/adrias-freebrand/cookie-goat/internal/settings/model"
	"github.com/adrias-freebrand/cookie-goat/internal/settings/store"
	"github.com/adrias-freebrand/cookie-goat/internal/system/cache"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
)

const settingsCacheKey = "settings"

// settingsCache fronts the read-mostly settings row. Updates invalidate it.
var settingsCache = cache.NewCache(30 * time.Second)

// SettingsServiceInterface defines the service interface.
type SettingsServiceInterface interface {
	GetSettings() (model.Settings, error)
	UpdateSettings(update model.SettingsUpdate) (model.Settings, error)
	TouchAutoscanLastRun(now int64) error
}

// SettingsService is the default implementation.
type SettingsService struct{}

// GetSettingsService returns a new instance.
func GetSettingsService() SettingsServiceInterface {
	return &SettingsService{}
}

// GetSettings returns the persisted settings overlaid on the defaults.
func (ss *SettingsService) GetSettings() (model.Settings, error) {

	if cached, found := settingsCache.Get(settingsCacheKey); found {
		if settings, ok := cached.(model.Settings); ok {
			return settings, nil
		}
	}

	stored, err := store.GetSettings()
	if err != nil {
		return model.Settings{}, err
	}

	settings := applyDefaults(stored)
	settingsCache.Set(settingsCacheKey, settings)
	return settings, nil
}

// UpdateSettings sanitizes and clamps the incoming update, persists the merged
// record and returns it.
func (ss *SettingsService) UpdateSettings(update model.SettingsUpdate) (model.Settings, error) {

	current, err := ss.GetSettings()
	if err != nil {
		return model.Settings{}, err
	}

	merged := applyUpdate(current, update)
	if err := store.UpsertSettings(merged); err != nil {
		return model.Settings{}, err
	}

	settingsCache.Delete(settingsCacheKey)
	return merged, nil
}

// TouchAutoscanLastRun stamps the last scheduled-scan time.
func (ss *SettingsService) TouchAutoscanLastRun(now int64) error {

	current, err := ss.GetSettings()
	if err != nil {
		return err
	}

	current.AutoscanLastRun = now
	if err := store.UpsertSettings(current); err != nil {
		return err
	}

	settingsCache.Delete(settingsCacheKey)
	return nil
}

// applyDefaults overlays a possibly-partial stored record on the defaults.
func applyDefaults(stored *model.Settings) model.Settings {

	settings := model.DefaultSettings()
	if stored == nil {
		return settings
	}

	if stored.BannerTitle != "" {
		settings.BannerTitle = stored.BannerTitle
	}
	if stored.BannerDescription != "" {
		settings.BannerDescription = stored.BannerDescription
	}
	if stored.PolicyLink != "" {
		settings.PolicyLink = stored.PolicyLink
	}
	if stored.PolicyVersion != "" {
		settings.PolicyVersion = stored.PolicyVersion
	}
	if stored.ConsentExpirationDays != 0 {
		settings.ConsentExpirationDays = clampInt(stored.ConsentExpirationDays,
			constants.MinConsentExpirationDays, constants.MaxConsentExpirationDays)
	}
	if stored.FloatingButtonLabel != "" {
		settings.FloatingButtonLabel = stored.FloatingButtonLabel
	}
	if stored.AutoscanLastRun != 0 {
		settings.AutoscanLastRun = stored.AutoscanLastRun
	}
	if stored.AutoscanFrequency != 0 {
		settings.AutoscanFrequency = clampInt64(stored.AutoscanFrequency,
			constants.MinAutoscanFrequency, constants.MaxAutoscanFrequency)
	}
	if stored.GTMContainerID != "" {
		settings.GTMContainerID = stored.GTMContainerID
	}
	for category, text := range stored.CategoryTexts {
		if text != "" {
			settings.CategoryTexts[category] = text
		}
	}

	return settings
}

// applyUpdate merges the sanitized update into the current record.
func applyUpdate(current model.Settings, update model.SettingsUpdate) model.Settings {

	if update.BannerTitle != nil {
		current.BannerTitle = sanitizeText(*update.BannerTitle)
	}
	if update.BannerDescription != nil {
		current.BannerDescription = sanitizeText(*update.BannerDescription)
	}
	if update.PolicyLink != nil {
		current.PolicyLink = sanitizeText(*update.PolicyLink)
	}
	if update.PolicyVersion != nil {
		current.PolicyVersion = sanitizeText(*update.PolicyVersion)
	}
	if update.FloatingButtonLabel != nil {
		current.FloatingButtonLabel = sanitizeText(*update.FloatingButtonLabel)
	}
	if update.GTMContainerID != nil {
		current.GTMContainerID = strings.ToUpper(sanitizeText(*update.GTMContainerID))
	}
	if update.ConsentExpirationDays != nil {
		current.ConsentExpirationDays = clampInt(*update.ConsentExpirationDays,
			constants.MinConsentExpirationDays, constants.MaxConsentExpirationDays)
	}
	if update.AutoscanFrequency != nil {
		current.AutoscanFrequency = clampInt64(*update.AutoscanFrequency,
			constants.MinAutoscanFrequency, constants.MaxAutoscanFrequency)
	}
	for category, text := range update.CategoryTexts {
		if _, known := current.CategoryTexts[category]; known {
			current.CategoryTexts[category] = sanitizeText(text)
		}
	}

	return current
}

// sanitizeText trims the value and strips control characters. Markup escaping
// happens at render time, not at storage time.
func sanitizeText(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' {
			return -1
		}
		return r
	}, value)
	return strings.TrimSpace(cleaned)
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampInt64(value, min, max int64) int64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
