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
	"strconv"

	"github.com/adrias-freebrand/cookie-goat/internal/consentlog/provider"
	syscontext "github.com/adrias-freebrand/cookie-goat/internal/system/context"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/adrias-freebrand/cookie-goat/internal/system/pagination"
	"github.com/adrias-freebrand/cookie-goat/internal/system/security"
	"github.com/adrias-freebrand/cookie-goat/internal/system/utils"
)

type ConsentLogHandler struct{}

func NewConsentLogHandler() *ConsentLogHandler {
	return &ConsentLogHandler{}
}

// GetConsentLogs handles GET /admin/consent-logs
func (h *ConsentLogHandler) GetConsentLogs(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	page, err := pagination.ParsePage(r)
	if err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.INVALID_PAGE.Code,
			Message:     errors.INVALID_PAGE.Message,
			Description: "The page query parameter must be a positive integer.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewConsentLogProvider().GetConsentLogService()
	logPage, err := service.GetConsentLogs(page)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: "admin",
		ActionID:      log.ActionReadConsentLog,
		TraceID:       syscontext.GetTraceID(r.Context()),
		Data:          map[string]string{"page": strconv.Itoa(page)},
	})

	utils.WriteJSONResponse(w, http.StatusOK, logPage)
}
