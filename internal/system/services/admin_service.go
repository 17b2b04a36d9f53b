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

package services

import (
	"fmt"
	"net/http"

	syscontext "github.com/adrias-freebrand/cookie-goat/internal/system/context"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/adrias-freebrand/cookie-goat/internal/system/security"
	"github.com/adrias-freebrand/cookie-goat/internal/system/utils"
)

type AdminHTTPService struct{}

func NewAdminHTTPService(mux *http.ServeMux, apiBasePath string) *AdminHTTPService {
	instance := &AdminHTTPService{}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *AdminHTTPService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("POST %s/admin/login", apiBasePath), s.handleLogin)
}

// handleLogin exchanges Basic admin credentials for a short-lived bearer token.
func (s *AdminHTTPService) handleLogin(w http.ResponseWriter, r *http.Request) {

	username, err := security.AuthnWithAdminCredentials(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	token, ttl, err := security.IssueAdminToken(username)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   username,
		InitiatorType: "admin",
		ActionID:      log.ActionAdminLogin,
		TraceID:       syscontext.GetTraceID(r.Context()),
	})

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   ttl,
	})
}
