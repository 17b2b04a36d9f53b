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

	"github.com/adrias-freebrand/cookie-goat/internal/consent/handler"
	signalsHandler "github.com/adrias-freebrand/cookie-goat/internal/signals/handler"
)

type ConsentHTTPService struct {
	handler        *handler.ConsentHandler
	signalsHandler *signalsHandler.SignalsHandler
}

func NewConsentHTTPService(mux *http.ServeMux, apiBasePath string) *ConsentHTTPService {
	instance := &ConsentHTTPService{
		handler:        handler.NewConsentHandler(),
		signalsHandler: signalsHandler.NewSignalsHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *ConsentHTTPService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s/consent", apiBasePath), s.handler.GetConsent)
	mux.HandleFunc(fmt.Sprintf("POST %s/consent", apiBasePath), s.handler.UpdateConsent)
	mux.HandleFunc(fmt.Sprintf("GET %s/csrf-token", apiBasePath), s.handler.GetCSRFToken)
	mux.HandleFunc(fmt.Sprintf("GET %s/consent/bootstrap", apiBasePath), s.handler.GetBootstrap)
	mux.HandleFunc(fmt.Sprintf("GET %s/consent/signals", apiBasePath), s.signalsHandler.GetSignals)
}
