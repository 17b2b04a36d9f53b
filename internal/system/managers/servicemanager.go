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

package managers

import (
	"net/http"

	"github.com/adrias-freebrand/cookie-goat/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

// RegisterServices mounts every HTTP service on the shared mux. Public
// consent and render endpoints sit under the API base path next to the
// admin endpoints; the admin ones enforce their own bearer authorization.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	services.NewConsentHTTPService(sm.mux, apiBasePath)
	services.NewScanHTTPService(sm.mux, apiBasePath)
	services.NewSettingsHTTPService(sm.mux, apiBasePath)
	services.NewConsentLogHTTPService(sm.mux, apiBasePath)
	services.NewRenderHTTPService(sm.mux, apiBasePath)
	services.NewAdminHTTPService(sm.mux, apiBasePath)
	services.NewHealthService(sm.mux)

	return nil
}
