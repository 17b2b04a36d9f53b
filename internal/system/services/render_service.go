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

	"github.com/adrias-freebrand/cookie-goat/internal/render/handler"
)

type RenderHTTPService struct {
	handler *handler.RenderHandler
}

func NewRenderHTTPService(mux *http.ServeMux, apiBasePath string) *RenderHTTPService {
	instance := &RenderHTTPService{
		handler: handler.NewRenderHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *RenderHTTPService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s/consent/banner", apiBasePath), s.handler.GetBanner)
	mux.HandleFunc(fmt.Sprintf("GET %s/consent/head-snippet", apiBasePath), s.handler.GetHeadSnippet)
	mux.HandleFunc(fmt.Sprintf("GET %s/policy-table", apiBasePath), s.handler.GetPolicyTable)
	mux.HandleFunc(fmt.Sprintf("GET %s/script-tag", apiBasePath), s.handler.GetScriptTag)
}
