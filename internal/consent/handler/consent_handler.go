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

package handler

import (
	"encoding/json"
	"net/http"

	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/consent/provider"
	settingsProvider "github.com/adrias-freebrand/cookie-goat/internal/settings/provider"
	signalsProvider "github.com/adrias-freebrand/cookie-goat/internal/signals/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/security"
	"github.com/adrias-freebrand/cookie-goat/internal/system/utils"
)

type ConsentHandler struct{}

func NewConsentHandler() *ConsentHandler {
	return &ConsentHandler{}
}

// GetConsent handles GET /consent
func (h *ConsentHandler) GetConsent(w http.ResponseWriter, r *http.Request) {

	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.EnforceExpiry(w, r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, consentModel.UpdateResponse{Consent: record})
}

// UpdateConsent handles POST /consent
func (h *ConsentHandler) UpdateConsent(w http.ResponseWriter, r *http.Request) {

	if err := security.ValidateCSRF(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request consentModel.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UPDATE_CONSENT_BAD_REQUEST.Code,
			Message:     errors.UPDATE_CONSENT_BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "consent"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.ApplyDecision(w, r, request.Categories)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, consentModel.UpdateResponse{Consent: record})
}

// GetCSRFToken handles GET /csrf-token
func (h *ConsentHandler) GetCSRFToken(w http.ResponseWriter, r *http.Request) {

	token, err := security.GenerateCSRFToken(w)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"token": token})
}

// GetBootstrap handles GET /consent/bootstrap. Returns everything the banner
// script needs to render in one round trip.
func (h *ConsentHandler) GetBootstrap(w http.ResponseWriter, r *http.Request) {

	consentService := provider.NewConsentProvider().GetConsentService()
	record, err := consentService.EnforceExpiry(w, r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	settingsService := settingsProvider.NewSettingsProvider().GetSettingsService()
	settings, err := settingsService.GetSettings()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	signalsService := signalsProvider.NewSignalsProvider().GetSignalsService()

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"consent":    record,
		"signals":    signalsService.Project(record),
		"categories": settings.CategorySchema(),
		"banner": map[string]interface{}{
			"title":                 settings.BannerTitle,
			"description":           settings.BannerDescription,
			"policy_link":           settings.PolicyLink,
			"policy_version":        settings.PolicyVersion,
			"floating_button_label": settings.FloatingButtonLabel,
		},
	})
}
