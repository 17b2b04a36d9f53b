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

	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestClassify_KnownKeywords(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"wordpress_logged_in_abc", constants.CategoryNecessary},
		{"wp-settings-1", constants.CategoryNecessary},
		{"PHPSESSID", constants.CategoryNecessary},
		{"cookie_notice_accepted", constants.CategoryNecessary},
		{"pll_language", constants.CategoryPreferences},
		{"user_locale", constants.CategoryPreferences},
		{"_ga", constants.CategoryAnalytics},
		{"_gid", constants.CategoryAnalytics},
		{"_fbp", constants.CategoryAnalytics},
		{"matomo_visitor", constants.CategoryAnalytics},
		{"ym_uid", constants.CategoryAnalytics},
		{"tt_viewer", constants.CategoryMarketing},
		{"fr", constants.CategoryMarketing},
		{"ninja_pixel_id", constants.CategoryMarketing},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Classify(tc.name), "name %q", tc.name)
	}
}

func TestClassify_UnknownNameFallsBackToNecessary(t *testing.T) {
	assert.Equal(t, constants.CategoryNecessary, Classify("completely_unknown_cookie"))
	assert.Equal(t, constants.CategoryNecessary, Classify(""))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, constants.CategoryNecessary, Classify("WORDPRESS_SEC"))
	assert.Equal(t, constants.CategoryPreferences, Classify("Site-Lang"))
	assert.Equal(t, constants.CategoryAnalytics, Classify("_GID"))
}

// A name matching keywords from several categories resolves to the earliest
// category in priority order.
func TestClassify_PriorityOrder(t *testing.T) {
	// "wp-lang-ads" matches necessary ("wp-"), preferences ("lang") and
	// marketing ("ads"); necessary wins.
	assert.Equal(t, constants.CategoryNecessary, Classify("wp-lang-ads"))

	// "lang_stats" matches preferences ("lang") and analytics ("stats");
	// preferences wins.
	assert.Equal(t, constants.CategoryPreferences, Classify("lang_stats"))

	// "gads_session" matches analytics ("ga") before marketing ("gads");
	// analytics wins.
	assert.Equal(t, constants.CategoryAnalytics, Classify("gads_session"))
}

func TestClassify_AlwaysReturnsKnownCategory(t *testing.T) {
	names := []string{"foo", "_ga", "xyz", "tr_pixel", "wp-admin", "", "123"}
	valid := map[string]bool{}
	for _, category := range constants.CategoryOrder {
		valid[category] = true
	}

	for _, name := range names {
		assert.True(t, valid[Classify(name)], "name %q", name)
	}
}

func TestPurposeFor_UnknownCategoryFallsBack(t *testing.T) {
	assert.Equal(t, categoryPurposes[constants.CategoryNecessary], PurposeFor("bogus"))
	assert.Equal(t, categoryPurposes[constants.CategoryMarketing], PurposeFor(constants.CategoryMarketing))
}
