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
	"github.com/adrias-freebrand/cookie-goat/internal/signals/service"
)

// SignalsProviderInterface defines the interface for the signals provider.
type SignalsProviderInterface interface {
	GetSignalsService() service.SignalsServiceInterface
}

// SignalsProvider is the default implementation of the SignalsProviderInterface.
type SignalsProvider struct{}

// NewSignalsProvider creates a new instance of SignalsProvider.
func NewSignalsProvider() SignalsProviderInterface {
	return &SignalsProvider{}
}

// GetSignalsService returns the signals service instance.
func (sp *SignalsProvider) GetSignalsService() service.SignalsServiceInterface {
	return service.GetSignalsService()
}
