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
	"fmt"
	"testing"

	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/consentlog/model"
	"github.com/adrias-freebrand/cookie-goat/internal/consentlog/service"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/stretchr/testify/assert"
)

func seedConsentLogEntries(t *testing.T, count int, baseTime int64) {
	t.Helper()
	svc := service.GetConsentLogService()

	for i := 0; i < count; i++ {
		entry := model.ConsentLogEntry{
			ConsentTime: baseTime + int64(i),
			HashedIP:    fmt.Sprintf("hash-%04d", i),
			Decision: consentModel.ConsentRecord{
				Status:    constants.ConsentStatusGiven,
				Timestamp: baseTime + int64(i),
				Version:   "1.0",
				Categories: map[string]bool{
					constants.CategoryAnalytics: i%2 == 0,
				},
				Overall: constants.OverallPartial,
			},
			PolicyVersion: "1.0",
		}
		assert.NoError(t, svc.AddEntry(entry))
	}
}

func TestConsentLog_PaginationNewestFirst(t *testing.T) {
	_, err := testPG.DB.Exec("DELETE FROM " + constants.ConsentLogTable)
	assert.NoError(t, err)

	seedConsentLogEntries(t, 25, 1756500000)

	svc := service.GetConsentLogService()

	page1, err := svc.GetConsentLogs(1)
	assert.NoError(t, err)
	assert.Len(t, page1.Entries, constants.ConsentLogPageSize)
	assert.Equal(t, 25, page1.Pagination.TotalResults)
	assert.Equal(t, 2, page1.Pagination.TotalPages)

	// Newest entry first.
	assert.Equal(t, "hash-0024", page1.Entries[0].HashedIP)
	assert.Equal(t, int64(1756500024), page1.Entries[0].ConsentTime)

	page2, err := svc.GetConsentLogs(2)
	assert.NoError(t, err)
	assert.Len(t, page2.Entries, 5)
	assert.Equal(t, "hash-0004", page2.Entries[0].HashedIP)
	assert.Equal(t, "hash-0000", page2.Entries[4].HashedIP)
}

func TestConsentLog_PageBeyondEndIsEmpty(t *testing.T) {
	_, err := testPG.DB.Exec("DELETE FROM " + constants.ConsentLogTable)
	assert.NoError(t, err)

	seedConsentLogEntries(t, 3, 1756510000)

	svc := service.GetConsentLogService()

	page, err := svc.GetConsentLogs(5)
	assert.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.Equal(t, 3, page.Pagination.TotalResults)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestConsentLog_EntryRoundTripPreservesDecision(t *testing.T) {
	_, err := testPG.DB.Exec("DELETE FROM " + constants.ConsentLogTable)
	assert.NoError(t, err)

	svc := service.GetConsentLogService()

	entry := model.ConsentLogEntry{
		ConsentTime: 1756520000,
		UserID:      "admin",
		HashedIP:    "round-trip-hash",
		Decision: consentModel.ConsentRecord{
			Status:    constants.ConsentStatusGiven,
			Timestamp: 1756520000,
			Version:   "3.1",
			Categories: map[string]bool{
				constants.CategoryPreferences: true,
				constants.CategoryAnalytics:   true,
				constants.CategoryMarketing:   false,
			},
			Overall: constants.OverallPartial,
		},
		PolicyVersion: "3.1",
	}
	assert.NoError(t, svc.AddEntry(entry))

	page, err := svc.GetConsentLogs(1)
	assert.NoError(t, err)
	assert.Len(t, page.Entries, 1)

	stored := page.Entries[0]
	assert.NotZero(t, stored.ID)
	assert.Equal(t, entry.UserID, stored.UserID)
	assert.Equal(t, entry.HashedIP, stored.HashedIP)
	assert.Equal(t, entry.PolicyVersion, stored.PolicyVersion)
	assert.Equal(t, entry.Decision.Status, stored.Decision.Status)
	assert.Equal(t, entry.Decision.Categories, stored.Decision.Categories)
	assert.Equal(t, entry.Decision.Overall, stored.Decision.Overall)
}
