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

	model "github.com/adrias-freebrand/cookie-goat/internal/scanner/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/database/provider"
	errors2 "github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
)

// GetScanSnapshot retrieves the latest scan snapshot. Returns nil when no
// scan has run yet.
func GetScanSnapshot() (*model.ScanSnapshot, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching scan snapshot."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SCAN_SNAPSHOT.Code,
			Message:     errors2.FETCH_SCAN_SNAPSHOT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`SELECT data FROM %s WHERE id = 1`, constants.SnapshotTable)
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed to execute query for fetching scan snapshot."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SCAN_SNAPSHOT.Code,
			Message:     errors2.FETCH_SCAN_SNAPSHOT.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug("No scan snapshot found")
		return nil, nil
	}

	raw, err := rawJSON(results[0]["data"])
	if err != nil {
		errorMsg := "Scan snapshot record has an unexpected column type."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SCAN_SNAPSHOT.Code,
			Message:     errors2.FETCH_SCAN_SNAPSHOT.Message,
			Description: errorMsg,
		}, err)
	}

	var snapshot model.ScanSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		errorMsg := "Failed to decode stored scan snapshot."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SCAN_SNAPSHOT.Code,
			Message:     errors2.FETCH_SCAN_SNAPSHOT.Message,
			Description: errorMsg,
		}, err)
	}

	return &snapshot, nil
}

// UpsertScanSnapshot replaces the stored snapshot wholesale.
func UpsertScanSnapshot(snapshot model.ScanSnapshot) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for storing scan snapshot."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.STORE_SCAN_SNAPSHOT.Code,
			Message:     errors2.STORE_SCAN_SNAPSHOT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		errorMsg := "Failed to encode scan snapshot for storage."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES (1, $1)
				ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, constants.SnapshotTable)
	if _, err := dbClient.ExecuteQuery(query, string(encoded)); err != nil {
		errorMsg := "Failed to execute query for storing scan snapshot."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.STORE_SCAN_SNAPSHOT.Code,
			Message:     errors2.STORE_SCAN_SNAPSHOT.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Debug("Scan snapshot persisted successfully")
	return nil
}

// rawJSON normalizes the driver's representation of a jsonb column.
func rawJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unexpected jsonb column type %T", value)
	}
}
