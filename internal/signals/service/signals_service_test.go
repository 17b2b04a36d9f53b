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
	"testing"

	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/stretchr/testify/assert"
)

func TestDefaultVector_DeniesEverything(t *testing.T) {
	vector := GetSignalsService().DefaultVector()

	assert.Equal(t, constants.SignalDenied, vector.AdStorage)
	assert.Equal(t, constants.SignalDenied, vector.AdUserData)
	assert.Equal(t, constants.SignalDenied, vector.AdPersonalization)
	assert.Equal(t, constants.SignalDenied, vector.AnalyticsStorage)
}

// Category flags on a record without an explicit decision must never leak
// into the signal vector.
func TestProject_UndecidedRecordProjectsToDefault(t *testing.T) {
	record := consentModel.ConsentRecord{
		Status: constants.ConsentStatusDenied,
		Categories: map[string]bool{
			constants.CategoryAnalytics: true,
			constants.CategoryMarketing: true,
		},
	}

	service := GetSignalsService()
	assert.Equal(t, service.DefaultVector(), service.Project(record))
}

func TestProject_AnalyticsOnly(t *testing.T) {
	record := consentModel.ConsentRecord{
		Status: constants.ConsentStatusGiven,
		Categories: map[string]bool{
			constants.CategoryNecessary: true,
			constants.CategoryAnalytics: true,
		},
	}

	vector := GetSignalsService().Project(record)
	assert.Equal(t, constants.SignalGranted, vector.AnalyticsStorage)
	assert.Equal(t, constants.SignalDenied, vector.AdStorage)
	assert.Equal(t, constants.SignalDenied, vector.AdUserData)
	assert.Equal(t, constants.SignalDenied, vector.AdPersonalization)
}

// The three advertising signals always move together off the marketing
// category.
func TestProject_MarketingControlsAdTrio(t *testing.T) {
	record := consentModel.ConsentRecord{
		Status: constants.ConsentStatusGiven,
		Categories: map[string]bool{
			constants.CategoryNecessary: true,
			constants.CategoryMarketing: true,
		},
	}

	vector := GetSignalsService().Project(record)
	assert.Equal(t, constants.SignalGranted, vector.AdStorage)
	assert.Equal(t, constants.SignalGranted, vector.AdUserData)
	assert.Equal(t, constants.SignalGranted, vector.AdPersonalization)
	assert.Equal(t, constants.SignalDenied, vector.AnalyticsStorage)
}

// Preferences has no consent-mode signal of its own.
func TestProject_PreferencesDoesNotAffectSignals(t *testing.T) {
	record := consentModel.ConsentRecord{
		Status: constants.ConsentStatusGiven,
		Categories: map[string]bool{
			constants.CategoryNecessary:   true,
			constants.CategoryPreferences: true,
		},
	}

	service := GetSignalsService()
	assert.Equal(t, service.DefaultVector(), service.Project(record))
}
