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
	"net/http"

	consentProvider "github.com/adrias-freebrand/cookie-goat/internal/consent/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/render"
	scanProvider "github.com/adrias-freebrand/cookie-goat/internal/scanner/provider"
	settingsProvider "github.com/adrias-freebrand/cookie-goat/internal/settings/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/utils"
)

type RenderHandler struct{}

func NewRenderHandler() *RenderHandler {
	return &RenderHandler{}
}

// GetBanner handles GET /consent/banner
func (h *RenderHandler) GetBanner(w http.ResponseWriter, r *http.Request) {

	settingsService := settingsProvider.NewSettingsProvider().GetSettingsService()
	settings, err := settingsService.GetSettings()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	consentService := consentProvider.NewConsentProvider().GetConsentService()
	record, err := consentService.EnforceExpiry(w, r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	markup, err := render.Banner(settings, record)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteHTMLResponse(w, http.StatusOK, markup)
}

// GetHeadSnippet handles GET /consent/head-snippet
func (h *RenderHandler) GetHeadSnippet(w http.ResponseWriter, r *http.Request) {

	settingsService := settingsProvider.NewSettingsProvider().GetSettingsService()
	settings, err := settingsService.GetSettings()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	consentService := consentProvider.NewConsentProvider().GetConsentService()
	record, err := consentService.EnforceExpiry(w, r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	markup, err := render.HeadSnippet(settings, record)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteHTMLResponse(w, http.StatusOK, markup)
}

// GetScriptTag handles GET /script-tag. The host page requests markup for a
// registered script handle and receives either the tag or a blocked comment,
// depending on the visitor's consent.
func (h *RenderHandler) GetScriptTag(w http.ResponseWriter, r *http.Request) {

	handle := r.URL.Query().Get("handle")
	src := r.URL.Query().Get("src")
	if handle == "" || src == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.SCRIPT_TAG_BAD_REQUEST.Code,
			Message:     errors.SCRIPT_TAG_BAD_REQUEST.Message,
			Description: "Both handle and src query parameters are required.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	consentService := consentProvider.NewConsentProvider().GetConsentService()
	record, err := consentService.EnforceExpiry(w, r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	markup, err := render.ScriptTag(handle, src, record)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteHTMLResponse(w, http.StatusOK, markup)
}

// GetPolicyTable handles GET /policy-table
func (h *RenderHandler) GetPolicyTable(w http.ResponseWriter, r *http.Request) {

	service := scanProvider.NewScanProvider().GetScanService()
	snapshot, err := service.GetSnapshot()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	markup, err := render.PolicyTable(snapshot)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteHTMLResponse(w, http.StatusOK, markup)
}
