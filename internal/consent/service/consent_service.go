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
	"net/http"
	"time"

	model "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/consent/store"
	logModel "github.com/adrias-freebrand/cookie-goat/internal/consentlog/model"
	logService "github.com/adrias-freebrand/cookie-goat/internal/consentlog/service"
	settingsModel "github.com/adrias-freebrand/cookie-goat/internal/settings/model"
	settingsProvider "github.com/adrias-freebrand/cookie-goat/internal/settings/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	syscontext "github.com/adrias-freebrand/cookie-goat/internal/system/context"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/adrias-freebrand/cookie-goat/internal/system/security"
	"github.com/adrias-freebrand/cookie-goat/internal/system/workers"
)

// ConsentServiceInterface defines the service interface.
type ConsentServiceInterface interface {
	CurrentConsent(r *http.Request) model.ConsentRecord
	EnforceExpiry(w http.ResponseWriter, r *http.Request) (model.ConsentRecord, error)
	Decide(choices map[string]bool) (model.ConsentRecord, error)
	ApplyDecision(w http.ResponseWriter, r *http.Request, choices map[string]bool) (model.ConsentRecord, error)
}

// ConsentService is the default implementation.
type ConsentService struct{}

// GetConsentService returns a new instance.
func GetConsentService() ConsentServiceInterface {
	return &ConsentService{}
}

// CurrentConsent returns the consent record carried by the request cookie.
func (cs *ConsentService) CurrentConsent(r *http.Request) model.ConsentRecord {

	return store.ReadConsentCookie(r)
}

// EnforceExpiry clears a stale consent cookie and returns the effective
// record. Runs idempotently on every consent read path.
func (cs *ConsentService) EnforceExpiry(w http.ResponseWriter, r *http.Request) (model.ConsentRecord, error) {

	settingsService := settingsProvider.NewSettingsProvider().GetSettingsService()
	settings, err := settingsService.GetSettings()
	if err != nil {
		return model.DefaultConsentRecord(), err
	}

	record := store.ReadConsentCookie(r)
	if IsExpired(record, settings, time.Now().Unix()) {
		store.ClearConsentCookie(w)
		// First-time visitors carry no decision worth auditing; only a real
		// decision going stale is.
		if record.Given() {
			log.GetLogger().Audit(log.AuditEvent{
				InitiatorType: "visitor",
				ActionID:      log.ActionExpireConsent,
				TraceID:       syscontext.GetTraceID(r.Context()),
				Data:          map[string]string{"policy_version": record.Version},
			})
		}
		return model.DefaultConsentRecord(), nil
	}

	return record, nil
}

// Decide turns raw per-category choices into a full consent record. The
// necessary category is forced on, missing categories default to off, and an
// explicit decision always yields status "given".
func (cs *ConsentService) Decide(choices map[string]bool) (model.ConsentRecord, error) {

	settingsService := settingsProvider.NewSettingsProvider().GetSettingsService()
	settings, err := settingsService.GetSettings()
	if err != nil {
		return model.DefaultConsentRecord(), err
	}

	decisions := make(map[string]bool, len(constants.CategoryOrder))
	for _, category := range constants.CategoryOrder {
		if category == constants.CategoryNecessary {
			decisions[category] = true
			continue
		}
		decisions[category] = choices[category]
	}

	return model.ConsentRecord{
		Status:     constants.ConsentStatusGiven,
		Timestamp:  time.Now().Unix(),
		Version:    settings.PolicyVersion,
		Categories: decisions,
		Overall:    ComputeOverall(decisions),
	}, nil
}

// ApplyDecision creates the consent record, writes the cookie and enqueues the
// audit log entry. The cookie write is the primary contract; log delivery is
// best-effort and never blocks the response.
func (cs *ConsentService) ApplyDecision(w http.ResponseWriter, r *http.Request, choices map[string]bool) (model.ConsentRecord, error) {

	settingsService := settingsProvider.NewSettingsProvider().GetSettingsService()
	settings, err := settingsService.GetSettings()
	if err != nil {
		return model.DefaultConsentRecord(), err
	}

	record, err := cs.Decide(choices)
	if err != nil {
		return model.DefaultConsentRecord(), err
	}

	if err := store.WriteConsentCookie(w, record, settings.ConsentExpirationDays); err != nil {
		return model.DefaultConsentRecord(), err
	}

	// Anonymous visitors leave UserID blank; decisions made while holding an
	// admin token are attributed to that account.
	userID, _ := security.AdminFromRequest(r)

	workers.EnqueueConsentLog(logModel.ConsentLogEntry{
		ConsentTime:   record.Timestamp,
		UserID:        userID,
		HashedIP:      logService.HashRequestIP(r),
		Decision:      record,
		PolicyVersion: record.Version,
	})

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: "visitor",
		ActionID:      log.ActionUpdateConsent,
		TraceID:       syscontext.GetTraceID(r.Context()),
		Data:          map[string]string{"overall": record.Overall, "policy_version": record.Version},
	})

	return record, nil
}

// ComputeOverall derives the aggregate consent level from the per-category
// decisions. Necessary never affects the aggregate.
func ComputeOverall(decisions map[string]bool) string {

	overall := constants.OverallDenied
	for _, category := range constants.CategoryOrder {
		if category == constants.CategoryNecessary {
			continue
		}
		if decisions[category] {
			overall = constants.OverallPartial
			if decisions[constants.CategoryPreferences] &&
				decisions[constants.CategoryAnalytics] &&
				decisions[constants.CategoryMarketing] {
				overall = constants.OverallGranted
			}
		}
	}
	return overall
}

// IsExpired reports whether the record is stale: never versioned, versioned
// against a different policy text, or past its expiration window.
func IsExpired(record model.ConsentRecord, settings settingsModel.Settings, now int64) bool {

	if record.Version == "" {
		return true
	}
	if record.Version != settings.PolicyVersion {
		return true
	}

	expiry := record.Timestamp + int64(settings.ConsentExpirationDays)*constants.DayInSeconds
	return now > expiry
}
