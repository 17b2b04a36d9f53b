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

package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	model "github.com/adrias-freebrand/cookie-goat/internal/consentlog/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/database/provider"
	errors2 "github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
)

// AddConsentLogEntry appends one decision record to the audit trail.
func AddConsentLogEntry(entry model.ConsentLogEntry) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for adding consent log entry."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_LOG.Code,
			Message:     errors2.ADD_CONSENT_LOG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	decision, err := json.Marshal(entry.Decision)
	if err != nil {
		errorMsg := "Failed to encode consent decision for storage."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	// Anonymous visitor decisions carry no account identity; store NULL
	// rather than an empty string.
	var userID interface{}
	if entry.UserID != "" {
		userID = entry.UserID
	}

	query := fmt.Sprintf(`INSERT INTO %s (consent_time, user_id, hashed_ip, decision, policy_version)
				VALUES ($1, $2, $3, $4, $5)`, constants.ConsentLogTable)
	if _, err := dbClient.ExecuteQuery(query, entry.ConsentTime, userID, entry.HashedIP,
		string(decision), entry.PolicyVersion); err != nil {
		errorMsg := "Failed to execute query for adding consent log entry."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_LOG.Code,
			Message:     errors2.ADD_CONSENT_LOG.Message,
			Description: errorMsg,
		}, err)
	}

	return nil
}

// GetConsentLogCount returns the total number of entries in the audit trail.
func GetConsentLogCount() (int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for counting consent log entries."
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_LOG.Code,
			Message:     errors2.FETCH_CONSENT_LOG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`SELECT COUNT(*) AS total FROM %s`, constants.ConsentLogTable)
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed to execute query for counting consent log entries."
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_LOG.Code,
			Message:     errors2.FETCH_CONSENT_LOG.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return asInt(results[0]["total"])
}

// GetConsentLogEntries returns one page of entries, newest first.
func GetConsentLogEntries(limit, offset int) ([]model.ConsentLogEntry, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching consent log entries."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_LOG.Code,
			Message:     errors2.FETCH_CONSENT_LOG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`SELECT id, consent_time, user_id, hashed_ip, decision, policy_version FROM %s
				ORDER BY consent_time DESC, id DESC LIMIT $1 OFFSET $2`, constants.ConsentLogTable)
	results, err := dbClient.ExecuteQuery(query, limit, offset)
	if err != nil {
		errorMsg := "Failed to execute query for fetching consent log entries."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_LOG.Code,
			Message:     errors2.FETCH_CONSENT_LOG.Message,
			Description: errorMsg,
		}, err)
	}

	entries := make([]model.ConsentLogEntry, 0, len(results))
	for _, row := range results {
		entry, err := buildEntryFromRow(row)
		if err != nil {
			errorMsg := "Failed to decode consent log row."
			logger.Debug(errorMsg, log.Error(err))
			return nil, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.FETCH_CONSENT_LOG.Code,
				Message:     errors2.FETCH_CONSENT_LOG.Message,
				Description: errorMsg,
			}, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func buildEntryFromRow(row map[string]interface{}) (model.ConsentLogEntry, error) {

	id, err := asInt64(row["id"])
	if err != nil {
		return model.ConsentLogEntry{}, fmt.Errorf("invalid id column: %w", err)
	}
	consentTime, err := asInt64(row["consent_time"])
	if err != nil {
		return model.ConsentLogEntry{}, fmt.Errorf("invalid consent_time column: %w", err)
	}

	var userID string
	switch v := row["user_id"].(type) {
	case nil:
	case string:
		userID = v
	case []byte:
		userID = string(v)
	default:
		return model.ConsentLogEntry{}, fmt.Errorf("invalid user_id column type %T", row["user_id"])
	}

	hashedIP, ok := row["hashed_ip"].(string)
	if !ok {
		return model.ConsentLogEntry{}, fmt.Errorf("invalid hashed_ip column type %T", row["hashed_ip"])
	}
	policyVersion, ok := row["policy_version"].(string)
	if !ok {
		return model.ConsentLogEntry{}, fmt.Errorf("invalid policy_version column type %T", row["policy_version"])
	}

	var decision consentModel.ConsentRecord
	switch raw := row["decision"].(type) {
	case []byte:
		err = json.Unmarshal(raw, &decision)
	case string:
		err = json.Unmarshal([]byte(raw), &decision)
	default:
		err = fmt.Errorf("unexpected decision column type %T", row["decision"])
	}
	if err != nil {
		return model.ConsentLogEntry{}, err
	}

	return model.ConsentLogEntry{
		ID:            id,
		ConsentTime:   consentTime,
		UserID:        userID,
		HashedIP:      hashedIP,
		Decision:      decision,
		PolicyVersion: policyVersion,
	}, nil
}

func asInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected integer column type %T", value)
	}
}

func asInt(value interface{}) (int, error) {
	v, err := asInt64(value)
	return int(v), err
}
