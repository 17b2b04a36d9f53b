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

import (
	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/pagination"
)

// ConsentLogEntry is one immutable audit record of a visitor decision. The
// raw IP address is never stored; only its salted hash. UserID is set only
// when the decision was made by an authenticated admin.
type ConsentLogEntry struct {
	ID            int64                      `json:"id"`
	ConsentTime   int64                      `json:"consent_time"`
	UserID        string                     `json:"user_id,omitempty"`
	HashedIP      string                     `json:"hashed_ip"`
	Decision      consentModel.ConsentRecord `json:"decision"`
	PolicyVersion string                     `json:"policy_version"`
}

// ConsentLogPage is one page of the audit trail, newest first.
type ConsentLogPage struct {
	Entries    []ConsentLogEntry     `json:"entries"`
	Pagination pagination.Pagination `json:"pagination"`
}
