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
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"

	model "github.com/adrias-freebrand/cookie-goat/internal/consentlog/model"
	"github.com/adrias-freebrand/cookie-goat/internal/consentlog/store"
	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/pagination"
)

// ConsentLogServiceInterface defines the service interface.
type ConsentLogServiceInterface interface {
	AddEntry(entry model.ConsentLogEntry) error
	GetConsentLogs(page int) (model.ConsentLogPage, error)
}

// ConsentLogService is the default implementation.
type ConsentLogService struct{}

// GetConsentLogService returns a new instance.
func GetConsentLogService() ConsentLogServiceInterface {
	return &ConsentLogService{}
}

// AddEntry appends one decision record to the audit trail.
func (cls *ConsentLogService) AddEntry(entry model.ConsentLogEntry) error {

	return store.AddConsentLogEntry(entry)
}

// GetConsentLogs returns the requested page of the audit trail, newest first.
// Pages past the end come back empty with the real totals.
func (cls *ConsentLogService) GetConsentLogs(page int) (model.ConsentLogPage, error) {

	total, err := store.GetConsentLogCount()
	if err != nil {
		return model.ConsentLogPage{}, err
	}

	offset := (page - 1) * constants.ConsentLogPageSize
	entries := []model.ConsentLogEntry{}
	if offset < total {
		entries, err = store.GetConsentLogEntries(constants.ConsentLogPageSize, offset)
		if err != nil {
			return model.ConsentLogPage{}, err
		}
	}

	return model.ConsentLogPage{
		Entries:    entries,
		Pagination: pagination.Build(page, constants.ConsentLogPageSize, total),
	}, nil
}

// HashRequestIP returns the salted hash of the client address. The raw
// address never leaves this function.
func HashRequestIP(r *http.Request) string {

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	host = strings.TrimSpace(host)

	salt := config.GetCMPRuntime().Config.Scanner.IPSalt
	sum := sha256.Sum256([]byte(salt + host))
	return hex.EncodeToString(sum[:])
}
