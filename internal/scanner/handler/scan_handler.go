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

	model "github.com/adrias-freebrand/cookie-goat/internal/scanner/model"
	"github.com/adrias-freebrand/cookie-goat/internal/scanner/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	syscontext "github.com/adrias-freebrand/cookie-goat/internal/system/context"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/adrias-freebrand/cookie-goat/internal/system/security"
	"github.com/adrias-freebrand/cookie-goat/internal/system/utils"
)

type ScanHandler struct{}

func NewScanHandler() *ScanHandler {
	return &ScanHandler{}
}

// GetSnapshot handles GET /scan. The empty snapshot is an ordinary response,
// not an error.
func (h *ScanHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {

	service := provider.NewScanProvider().GetScanService()
	snapshot, err := service.GetSnapshot()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	if snapshot == nil {
		snapshot = &model.ScanSnapshot{
			Cookies: []model.CookieEvidence{},
			Storage: []model.StorageEvidence{},
		}
	}

	utils.WriteJSONResponse(w, http.StatusOK, snapshot)
}

// RunScan handles POST /admin/scan
func (h *ScanHandler) RunScan(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewScanProvider().GetScanService()
	snapshot, err := service.RunScan(constants.ScanTriggerManual, r.Cookies())
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: "admin",
		ActionID:      log.ActionManualScan,
		TraceID:       syscontext.GetTraceID(r.Context()),
		Data: map[string]string{
			"cookies": strconv.Itoa(len(snapshot.Cookies)),
			"storage": strconv.Itoa(len(snapshot.Storage)),
		},
	})

	utils.WriteJSONResponse(w, http.StatusOK, snapshot)
}
