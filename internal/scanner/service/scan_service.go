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
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	model "github.com/adrias-freebrand/cookie-goat/internal/scanner/model"
	"github.com/adrias-freebrand/cookie-goat/internal/scanner/store"
	settingsProvider "github.com/adrias-freebrand/cookie-goat/internal/settings/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
)

// Web-storage writes referenced in page markup. Matching is lexical; the
// scanner never executes scripts.
var (
	localStorageRegex   = regexp.MustCompile(`(?i)localStorage\.setItem\(["']([^"']+)`)
	sessionStorageRegex = regexp.MustCompile(`(?i)sessionStorage\.setItem\(["']([^"']+)`)
)

// maxScanBodyBytes bounds how much of the scanned page is read for the
// web-storage pass.
const maxScanBodyBytes = 2 << 20

// ScanServiceInterface defines the service interface.
type ScanServiceInterface interface {
	GetSnapshot() (*model.ScanSnapshot, error)
	RunScan(trigger string, requestCookies []*http.Cookie) (model.ScanSnapshot, error)
	MaybeRunScheduledScan() (bool, error)
}

// ScanService is the default implementation.
type ScanService struct{}

// GetScanService returns a new instance.
func GetScanService() ScanServiceInterface {
	return &ScanService{}
}

// GetSnapshot returns the latest stored snapshot, or nil when no scan has
// run yet.
func (ss *ScanService) GetSnapshot() (*model.ScanSnapshot, error) {

	return store.GetScanSnapshot()
}

// RunScan fetches the configured site once, collects cookie and web-storage
// evidence, classifies it and persists the snapshot. Cookies are deduplicated
// by identity hash; storage entries are kept as found. A transport failure
// still persists a snapshot and advances the scan time, but with empty
// evidence lists: without a reachable site there is nothing to attribute the
// requester's cookies to either.
func (ss *ScanService) RunScan(trigger string, requestCookies []*http.Cookie) (model.ScanSnapshot, error) {

	logger := log.GetLogger()
	now := time.Now()
	siteURL := config.GetCMPRuntime().Config.Scanner.SiteURL

	cookies := make([]model.CookieEvidence, 0)
	storage := make([]model.StorageEvidence, 0)
	index := make(map[string]int)

	client := &http.Client{Timeout: constants.ScanTimeoutSeconds * time.Second}
	resp, err := client.Get(siteURL)
	if err != nil {
		logger.Warn("Site fetch failed during scan, recording empty snapshot",
			log.String("siteUrl", siteURL), log.Error(err))
	} else {
		defer resp.Body.Close()

		for _, cookie := range resp.Cookies() {
			provider := cookie.Domain
			if provider == "" {
				provider = hostOf(siteURL)
			}
			addCookie(&cookies, index, buildCookie(cookie.Name, cookie.Value, provider,
				humanizeCookieDuration(cookie, now)))
		}

		// Cookies visible on the triggering request carry no provider or
		// expiry information, only a name and value.
		for _, cookie := range requestCookies {
			addCookie(&cookies, index, buildCookie(cookie.Name, cookie.Value, "", "session"))
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxScanBodyBytes))
		if err != nil {
			logger.Warn("Failed to read site markup during scan", log.Error(err))
		} else {
			for _, match := range localStorageRegex.FindAllStringSubmatch(string(body), -1) {
				storage = append(storage, model.StorageEvidence{
					Type:     constants.StorageTypeLocal,
					Key:      match[1],
					Category: Classify(match[1]),
				})
			}
			for _, match := range sessionStorageRegex.FindAllStringSubmatch(string(body), -1) {
				storage = append(storage, model.StorageEvidence{
					Type:     constants.StorageTypeSession,
					Key:      match[1],
					Category: Classify(match[1]),
				})
			}
		}
	}

	snapshot := model.ScanSnapshot{
		ScanTime: now.Unix(),
		Trigger:  trigger,
		Cookies:  cookies,
		Storage:  storage,
	}

	if err := store.UpsertScanSnapshot(snapshot); err != nil {
		return model.ScanSnapshot{}, err
	}

	settingsService := settingsProvider.NewSettingsProvider().GetSettingsService()
	if err := settingsService.TouchAutoscanLastRun(snapshot.ScanTime); err != nil {
		logger.Error("Failed to stamp scan time after scan", log.Error(err))
	}

	logger.Info(fmt.Sprintf("Scan completed with %d cookies and %d storage entries",
		len(snapshot.Cookies), len(snapshot.Storage)), log.String("trigger", trigger))
	return snapshot, nil
}

// MaybeRunScheduledScan runs a scheduled scan when the configured frequency
// has elapsed since the last run. Returns whether a scan was performed.
func (ss *ScanService) MaybeRunScheduledScan() (bool, error) {

	settingsService := settingsProvider.NewSettingsProvider().GetSettingsService()
	settings, err := settingsService.GetSettings()
	if err != nil {
		return false, err
	}

	if time.Now().Unix()-settings.AutoscanLastRun < settings.AutoscanFrequency {
		return false, nil
	}

	if _, err := ss.RunScan(constants.ScanTriggerScheduled, nil); err != nil {
		return false, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: "system",
		ActionID:      log.ActionScheduledScan,
	})
	return true, nil
}

// buildCookie classifies one observed cookie and stamps its identity hash.
// The hash covers name, provider and category, so re-observing the same
// cookie replaces the earlier finding instead of duplicating it. Only the
// value's length is retained.
func buildCookie(name, value, provider, duration string) model.CookieEvidence {

	category := Classify(name)
	sum := md5.Sum([]byte(name + "|" + provider + "|" + category))

	return model.CookieEvidence{
		Hash:     hex.EncodeToString(sum[:]),
		Name:     name,
		Provider: provider,
		Category: category,
		Duration: duration,
		Purpose:  PurposeFor(category),
		ValueLen: len(value),
	}
}

// addCookie appends the cookie or, when its hash is already present, replaces
// the earlier finding in place. Last write wins.
func addCookie(cookies *[]model.CookieEvidence, index map[string]int, cookie model.CookieEvidence) {
	if at, seen := index[cookie.Hash]; seen {
		(*cookies)[at] = cookie
		return
	}
	index[cookie.Hash] = len(*cookies)
	*cookies = append(*cookies, cookie)
}

// humanizeCookieDuration renders a cookie lifetime the way the policy table
// shows it: "session" for session cookies, whole hours under a day (never
// less than one), whole days otherwise.
func humanizeCookieDuration(cookie *http.Cookie, now time.Time) string {

	var seconds int64
	switch {
	case cookie.MaxAge > 0:
		seconds = int64(cookie.MaxAge)
	case cookie.MaxAge < 0:
		return "session"
	case cookie.Expires.IsZero():
		return "session"
	default:
		seconds = int64(cookie.Expires.Sub(now).Seconds())
	}

	if seconds <= 0 {
		return "session"
	}
	if seconds < constants.DayInSeconds {
		hours := seconds / 3600
		if hours < 1 {
			hours = 1
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d days", seconds/constants.DayInSeconds)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
