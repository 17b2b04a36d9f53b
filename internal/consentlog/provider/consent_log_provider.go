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

package provider

import (
	"github.com/adrias-freebrand/cookie-goat/internal/consentlog/service"
)

// ConsentLogProviderInterface defines the interface for the consent log provider.
type ConsentLogProviderInterface interface {
	GetConsentLogService() service.ConsentLogServiceInterface
}

// ConsentLogProvider is the default implementation of the ConsentLogProviderInterface.
type ConsentLogProvider struct{}

// NewConsentLogProvider creates a new instance of ConsentLogProvider.
func NewConsentLogProvider() ConsentLogProviderInterface {
	return &ConsentLogProvider{}
}

// GetConsentLogService returns the consent log service instance.
func (clp *ConsentLogProvider) GetConsentLogService() service.ConsentLogServiceInterface {
	return service.GetConsentLogService()
}
