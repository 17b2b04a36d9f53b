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

package integration

import (
	"net/http"
	"testing"

	"github.com/adrias-freebrand/cookie-goat/internal/scanner/model"
	scanProvider "github.com/adrias-freebrand/cookie-goat/internal/scanner/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/scanner/store"
	settingsProvider "github.com/adrias-freebrand/cookie-goat/internal/settings/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSnapshot_AbsentReturnsNil(t *testing.T) {
	_, err := testPG.DB.Exec("DELETE FROM " + constants.SnapshotTable)
	assert.NoError(t, err)

	snapshot, err := store.GetScanSnapshot()
	assert.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestScanSnapshot_UpsertReplacesPrevious(t *testing.T) {
	_, err := testPG.DB.Exec("DELETE FROM " + constants.SnapshotTable)
	assert.NoError(t, err)

	first := model.ScanSnapshot{
		ScanTime: 1756530000,
		Trigger:  constants.ScanTriggerManual,
		Cookies: []model.CookieEvidence{
			{
				Hash:     "a1",
				Name:     "_ga",
				Provider: "example.com",
				Category: constants.CategoryAnalytics,
				Duration: "730 days",
				Purpose:  "Help understand how people interact with the site.",
				ValueLen: 27,
			},
		},
		Storage: []model.StorageEvidence{},
	}
	assert.NoError(t, store.UpsertScanSnapshot(first))

	second := model.ScanSnapshot{
		ScanTime: 1756530100,
		Trigger:  constants.ScanTriggerScheduled,
		Cookies: []model.CookieEvidence{
			{
				Hash:     "b2",
				Name:     "wordpress_logged_in",
				Provider: "example.com",
				Category: constants.CategoryNecessary,
				Duration: "session",
				Purpose:  "Essential cookies for basic site operation.",
				ValueLen: 40,
			},
		},
		Storage: []model.StorageEvidence{
			{Type: constants.StorageTypeLocal, Key: "cart_token", Category: constants.CategoryNecessary},
			{Type: constants.StorageTypeLocal, Key: "cart_token", Category: constants.CategoryNecessary},
		},
	}
	assert.NoError(t, store.UpsertScanSnapshot(second))

	stored, err := store.GetScanSnapshot()
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, int64(1756530100), stored.ScanTime)
	assert.Equal(t, constants.ScanTriggerScheduled, stored.Trigger)
	assert.Len(t, stored.Cookies, 1)
	assert.Equal(t, "wordpress_logged_in", stored.Cookies[0].Name)
	assert.Equal(t, 40, stored.Cookies[0].ValueLen)

	// Storage entries survive storage round trips as found, duplicates
	// included.
	assert.Len(t, stored.Storage, 2)
	assert.Equal(t, "cart_token", stored.Storage[0].Key)
	assert.Equal(t, stored.Storage[0], stored.Storage[1])
}

func TestRunScan_UnreachableSitePersistsEmptySnapshot(t *testing.T) {
	_, err := testPG.DB.Exec("DELETE FROM " + constants.SnapshotTable)
	require.NoError(t, err)

	// The configured site URL points at a closed port, so the fetch fails.
	// The requester's cookies must not leak into the snapshot in that case.
	requestCookies := []*http.Cookie{
		{Name: "wordpress_logged_in", Value: "abc123"},
		{Name: "_ga", Value: "GA1.1.123456"},
	}

	service := scanProvider.NewScanProvider().GetScanService()
	snapshot, err := service.RunScan(constants.ScanTriggerManual, requestCookies)
	require.NoError(t, err)

	assert.Empty(t, snapshot.Cookies)
	assert.Empty(t, snapshot.Storage)
	assert.Equal(t, constants.ScanTriggerManual, snapshot.Trigger)
	assert.NotZero(t, snapshot.ScanTime)

	stored, err := store.GetScanSnapshot()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Empty(t, stored.Cookies)
	assert.Empty(t, stored.Storage)

	// The scan time still advances even when the fetch fails.
	settings, err := settingsProvider.NewSettingsProvider().GetSettingsService().GetSettings()
	require.NoError(t, err)
	assert.Equal(t, snapshot.ScanTime, settings.AutoscanLastRun)
}
