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

package service

import (
	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	model "github.com/adrias-freebrand/cookie-goat/internal/signals/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
)

// SignalsServiceInterface defines the service interface.
type SignalsServiceInterface interface {
	Project(record consentModel.ConsentRecord) model.SignalVector
	DefaultVector() model.SignalVector
}

// SignalsService is the default implementation.
type SignalsService struct{}

// GetSignalsService returns a new instance.
func GetSignalsService() SignalsServiceInterface {
	return &SignalsService{}
}

// DefaultVector is the deny-everything vector applied before any explicit
// decision exists.
func (ss *SignalsService) DefaultVector() model.SignalVector {
	return model.SignalVector{
		AdStorage:         constants.SignalDenied,
		AdUserData:        constants.SignalDenied,
		AdPersonalization: constants.SignalDenied,
		AnalyticsStorage:  constants.SignalDenied,
	}
}

// Project maps a consent record onto the consent-mode signal vector. Records
// without an explicit decision always project to the default deny vector,
// regardless of their category flags.
func (ss *SignalsService) Project(record consentModel.ConsentRecord) model.SignalVector {

	vector := ss.DefaultVector()
	if !record.Given() {
		return vector
	}

	if record.Allows(constants.CategoryAnalytics) {
		vector.AnalyticsStorage = constants.SignalGranted
	}
	if record.Allows(constants.CategoryMarketing) {
		vector.AdStorage = constants.SignalGranted
		vector.AdUserData = constants.SignalGranted
		vector.AdPersonalization = constants.SignalGranted
	}

	return vector
}
