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

	model "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	settingsModel "github.com/adrias-freebrand/cookie-goat/internal/settings/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// ComputeOverall
// ---------------------------------------------------------------------------

func TestComputeOverall(t *testing.T) {
	cases := []struct {
		name      string
		decisions map[string]bool
		expected  string
	}{
		{
			"nothing granted",
			map[string]bool{constants.CategoryNecessary: true},
			constants.OverallDenied,
		},
		{
			"necessary alone never lifts the aggregate",
			map[string]bool{
				constants.CategoryNecessary:   true,
				constants.CategoryPreferences: false,
				constants.CategoryAnalytics:   false,
				constants.CategoryMarketing:   false,
			},
			constants.OverallDenied,
		},
		{
			"one optional category",
			map[string]bool{
				constants.CategoryNecessary: true,
				constants.CategoryAnalytics: true,
			},
			constants.OverallPartial,
		},
		{
			"two optional categories",
			map[string]bool{
				constants.CategoryNecessary:   true,
				constants.CategoryPreferences: true,
				constants.CategoryMarketing:   true,
			},
			constants.OverallPartial,
		},
		{
			"all optional categories",
			map[string]bool{
				constants.CategoryNecessary:   true,
				constants.CategoryPreferences: true,
				constants.CategoryAnalytics:   true,
				constants.CategoryMarketing:   true,
			},
			constants.OverallGranted,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeOverall(tc.decisions))
		})
	}
}

// ---------------------------------------------------------------------------
// IsExpired
// ---------------------------------------------------------------------------

func TestIsExpired_EmptyVersionIsAlwaysStale(t *testing.T) {
	settings := settingsModel.DefaultSettings()
	record := model.ConsentRecord{
		Status:    constants.ConsentStatusGiven,
		Timestamp: 1_700_000_000,
		Version:   "",
	}
	assert.True(t, IsExpired(record, settings, 1_700_000_001))
}

func TestIsExpired_VersionMismatchIsStale(t *testing.T) {
	settings := settingsModel.DefaultSettings()
	settings.PolicyVersion = "2.0"

	record := model.ConsentRecord{
		Status:    constants.ConsentStatusGiven,
		Timestamp: 1_700_000_000,
		Version:   "1.0",
	}
	assert.True(t, IsExpired(record, settings, 1_700_000_001))

	record.Version = "2.0"
	assert.False(t, IsExpired(record, settings, 1_700_000_001))
}

// Expiration is monotone in time: valid right at the boundary, stale one
// second later, and never valid again afterwards.
func TestIsExpired_WindowBoundary(t *testing.T) {
	settings := settingsModel.DefaultSettings()
	settings.ConsentExpirationDays = 30

	issued := int64(1_700_000_000)
	expiry := issued + int64(30)*constants.DayInSeconds
	record := model.ConsentRecord{
		Status:    constants.ConsentStatusGiven,
		Timestamp: issued,
		Version:   settings.PolicyVersion,
	}

	assert.False(t, IsExpired(record, settings, issued))
	assert.False(t, IsExpired(record, settings, expiry))
	assert.True(t, IsExpired(record, settings, expiry+1))
	assert.True(t, IsExpired(record, settings, expiry+constants.DayInSeconds))
}

// ---------------------------------------------------------------------------
// ConsentRecord semantics
// ---------------------------------------------------------------------------

func TestDefaultConsentRecord_DeniesEverythingOptional(t *testing.T) {
	record := model.DefaultConsentRecord()

	assert.False(t, record.Given())
	assert.True(t, record.Allows(constants.CategoryNecessary))
	assert.False(t, record.Allows(constants.CategoryPreferences))
	assert.False(t, record.Allows(constants.CategoryAnalytics))
	assert.False(t, record.Allows(constants.CategoryMarketing))
}

func TestConsentRecord_NecessaryCannotBeRevoked(t *testing.T) {
	record := model.ConsentRecord{
		Status:     constants.ConsentStatusGiven,
		Categories: map[string]bool{constants.CategoryNecessary: false},
	}
	assert.True(t, record.Allows(constants.CategoryNecessary))
}
