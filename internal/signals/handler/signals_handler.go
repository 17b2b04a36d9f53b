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
	"github.com/adrias-freebrand/cookie-goat/internal/signals/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/utils"
)

type SignalsHandler struct{}

func NewSignalsHandler() *SignalsHandler {
	return &SignalsHandler{}
}

// GetSignals handles GET /consent/signals
func (h *SignalsHandler) GetSignals(w http.ResponseWriter, r *http.Request) {

	consentService := consentProvider.NewConsentProvider().GetConsentService()
	record, err := consentService.EnforceExpiry(w, r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewSignalsProvider().GetSignalsService()
	utils.WriteJSONResponse(w, http.StatusOK, service.Project(record))
}
