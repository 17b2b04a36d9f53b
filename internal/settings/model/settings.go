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

package model

import "github.com/adrias-freebrand/cookie-goat/internal/system/constants"

// Settings is the single global plugin configuration record. Read-mostly,
// mutated only through the sanitizing admin update path.
type Settings struct {
	BannerTitle           string            `json:"banner_title"`
	BannerDescription     string            `json:"banner_description"`
	PolicyLink            string            `json:"policy_link"`
	PolicyVersion         string            `json:"policy_version"`
	ConsentExpirationDays int               `json:"consent_expiration_days"`
	FloatingButtonLabel   string            `json:"floating_button_label"`
	AutoscanLastRun       int64             `json:"autoscan_last_run"`
	AutoscanFrequency     int64             `json:"autoscan_frequency"`
	GTMContainerID        string            `json:"gtm_container_id"`
	CategoryTexts         map[string]string `json:"category_texts"`
}

// SettingsUpdate carries the mutable subset accepted by the admin update
// endpoint. Pointer fields distinguish "absent" from "set to zero value".
type SettingsUpdate struct {
	BannerTitle           *string           `json:"banner_title,omitempty"`
	BannerDescription     *string           `json:"banner_description,omitempty"`
	PolicyLink            *string           `json:"policy_link,omitempty"`
	PolicyVersion         *string           `json:"policy_version,omitempty"`
	ConsentExpirationDays *int              `json:"consent_expiration_days,omitempty"`
	FloatingButtonLabel   *string           `json:"floating_button_label,omitempty"`
	AutoscanFrequency     *int64            `json:"autoscan_frequency,omitempty"`
	GTMContainerID        *string           `json:"gtm_container_id,omitempty"`
	CategoryTexts         map[string]string `json:"category_texts,omitempty"`
}

// CategorySchemaEntry describes one consent category for UI rendering.
type CategorySchemaEntry struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// DefaultSettings returns the canonical defaults applied underneath whatever
// has been persisted.
func DefaultSettings() Settings {
	return Settings{
		BannerTitle:           "Manage your privacy",
		BannerDescription:     "We use cookies to improve your experience, analyze traffic and personalize content. You can accept, reject or configure your preferences.",
		PolicyLink:            "/cookie-policy/",
		PolicyVersion:         "1.0",
		ConsentExpirationDays: constants.MaxConsentExpirationDays,
		FloatingButtonLabel:   "Cookie preferences",
		AutoscanLastRun:       0,
		AutoscanFrequency:     constants.DayInSeconds * 7,
		GTMContainerID:        "",
		CategoryTexts: map[string]string{
			constants.CategoryNecessary:   "Essential cookies for basic site operation.",
			constants.CategoryPreferences: "Allow the site to remember your preferences.",
			constants.CategoryAnalytics:   "Help understand how people interact with the site.",
			constants.CategoryMarketing:   "Used to show personalized advertising.",
		},
	}
}

// CategorySchema derives the UI-facing category schema from the settings.
// The necessary category is immutable and never user-disableable.
func (s Settings) CategorySchema() map[string]CategorySchemaEntry {
	labels := map[string]string{
		constants.CategoryNecessary:   "Essential",
		constants.CategoryPreferences: "Preferences",
		constants.CategoryAnalytics:   "Analytics",
		constants.CategoryMarketing:   "Marketing",
	}

	schema := make(map[string]CategorySchemaEntry, len(constants.CategoryOrder))
	for _, category := range constants.CategoryOrder {
		schema[category] = CategorySchemaEntry{
			Label:       labels[category],
			Description: s.CategoryTexts[category],
		}
	}
	return schema
}
