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

	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
)

// categoryKeywords maps each category to the lowercase substrings that assign
// a storage name to it. Evaluated in constants.CategoryOrder, first match
// wins, so platform names can never end up in a blockable category.
var categoryKeywords = map[string][]string{
	constants.CategoryNecessary: {
		"wordpress", "wp-", "woocommerce", "phpsessid", "cookie_notice_accepted",
	},
	constants.CategoryPreferences: {
		"lang", "locale", "pref", "pll_language",
	},
	constants.CategoryAnalytics: {
		"ga", "_gid", "_gat", "_gcl", "_fbp", "matomo", "stats", "ym_uid",
	},
	constants.CategoryMarketing: {
		"ads", "gads", "fr", "tr", "tt_viewer", "ninja_pixel",
	},
}

// categoryPurposes are the human-readable purposes attached to evidence of
// each category.
var categoryPurposes = map[string]string{
	constants.CategoryNecessary:   "Required for the site to function.",
	constants.CategoryPreferences: "Stores interface or language preferences.",
	constants.CategoryAnalytics:   "Measures how visitors use the site.",
	constants.CategoryMarketing:   "Supports advertising and retargeting.",
}

// Classify assigns a storage name to a consent category. Matching is
// case-insensitive substring; names that match nothing are treated as
// necessary so an unknown cookie is never silently blocked.
func Classify(name string) string {

	lowered := strings.ToLower(name)
	for _, category := range constants.CategoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return constants.CategoryNecessary
}

// PurposeFor returns the purpose text for a category, falling back to the
// necessary purpose for unknown categories.
func PurposeFor(category string) string {
	if purpose, ok := categoryPurposes[category]; ok {
		return purpose
	}
	return categoryPurposes[constants.CategoryNecessary]
}
