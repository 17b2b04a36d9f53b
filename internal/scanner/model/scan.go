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

// CookieEvidence is one cookie observed during a scan. The value itself is
// never stored, only its length.
type CookieEvidence struct {
	Hash     string `json:"hash"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Category string `json:"category"`
	Duration string `json:"duration"`
	Purpose  string `json:"purpose"`
	ValueLen int    `json:"value_len"`
}

// StorageEvidence is one web-storage write referenced in the scanned page
// markup.
type StorageEvidence struct {
	Type     string `json:"type"`
	Key      string `json:"key"`
	Category string `json:"category"`
}

// ScanSnapshot is the full result of the most recent scan. Cookies are
// deduplicated by identity hash; storage entries are kept as found. Stored
// wholesale; each scan replaces the previous snapshot.
type ScanSnapshot struct {
	ScanTime int64             `json:"scan_time"`
	Trigger  string            `json:"trigger"`
	Cookies  []CookieEvidence  `json:"cookies"`
	Storage  []StorageEvidence `json:"storage"`
}
