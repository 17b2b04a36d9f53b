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

package schedulers

import (
	"context"
	"time"

	"github.com/adrias-freebrand/cookie-goat/internal/scanner/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/database/lock"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
)

const autoscanLockKey = "cookiegoat:autoscan"

// StartAutoscanScheduler starts the periodic scan job. Each tick checks the
// configured frequency against the last recorded run, so the tick interval
// only bounds detection latency, never scan cadence.
func StartAutoscanScheduler(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runAutoscan()

	for range ticker.C {
		runAutoscan()
	}
}

func runAutoscan() {
	logger := log.GetLogger()
	ctx := context.Background()

	// Advisory lock keeps multi-instance deployments from scanning twice.
	appLock := lock.NewPostgresLock()
	acquired, err := appLock.TryAcquire(ctx, autoscanLockKey)
	if err != nil {
		logger.Error("Failed to acquire autoscan lock", log.Error(err))
		return
	}
	if !acquired {
		logger.Debug("Autoscan lock held by another instance, skipping this tick")
		return
	}
	defer func() {
		if err := appLock.Release(ctx); err != nil {
			logger.Error("Failed to release autoscan lock", log.Error(err))
		}
	}()

	scanService := provider.NewScanProvider().GetScanService()
	ran, err := scanService.MaybeRunScheduledScan()
	if err != nil {
		logger.Error("Scheduled scan attempt failed", log.Error(err))
		return
	}
	if ran {
		logger.Info("Scheduled scan completed")
	}
}
