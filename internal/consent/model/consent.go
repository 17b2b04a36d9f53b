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

package model

import "github.com/adrias-freebrand/cookie-goat/internal/system/constants"

// ConsentRecord is the consent state carried in the client-side cookie.
// Overall is derived from Categories, never independently settable.
type ConsentRecord struct {
	Status     string          `json:"status"`
	Timestamp  int64           `json:"timestamp"`
	Version    string          `json:"version"`
	Categories map[string]bool `json:"categories"`
	Overall    string          `json:"overall,omitempty"`
}

// DefaultConsentRecord is the canonical "no consent yet" record returned for
// absent, empty or malformed cookies.
func DefaultConsentRecord() ConsentRecord {
	return ConsentRecord{
		Status:     constants.ConsentStatusDenied,
		Timestamp:  0,
		Version:    "",
		Categories: map[string]bool{},
	}
}

// Allows reports whether the record grants the given category. The necessary
// category is always allowed.
func (c ConsentRecord) Allows(category string) bool {
	if category == constants.CategoryNecessary {
		return true
	}
	return c.Categories[category]
}

// Given reports whether the user has made an explicit choice.
func (c ConsentRecord) Given() bool {
	return c.Status == constants.ConsentStatusGiven
}

// UpdateRequest is the body accepted by the public consent update endpoint.
type UpdateRequest struct {
	Categories map[string]bool `json:"categories"`
}

// UpdateResponse is the success envelope of the consent update endpoint.
type UpdateResponse struct {
	Consent ConsentRecord `json:"consent"`
}
