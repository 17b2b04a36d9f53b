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

	settingsModel "github.com/adrias-freebrand/cookie-goat/internal/settings/model"
	"github.com/adrias-freebrand/cookie-goat/internal/settings/provider"
	syscontext "github.com/adrias-freebrand/cookie-goat/internal/system/context"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/adrias-freebrand/cookie-goat/internal/system/security"
	"github.com/adrias-freebrand/cookie-goat/internal/system/utils"
)

type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

// GetSettings handles GET /admin/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewSettingsProvider().GetSettingsService()
	settings, err := service.GetSettings()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /admin/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var update settingsModel.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UPDATE_SETTINGS_BAD_REQUEST.Code,
			Message:     errors.UPDATE_SETTINGS_BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "settings"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewSettingsProvider().GetSettingsService()
	settings, err := service.UpdateSettings(update)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: "admin",
		ActionID:      log.ActionUpdateSettings,
		TraceID:       syscontext.GetTraceID(r.Context()),
		Data:          map[string]string{"policy_version": settings.PolicyVersion},
	})

	utils.WriteJSONResponse(w, http.StatusOK, settings)
}
