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

	model "github.com/adrias-freebrand/cookie-goat/internal/settings/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/database/provider"
	errors2 "github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
)

// GetSettings retrieves the persisted settings record. Returns nil when no
// record has been stored yet; callers overlay the defaults.
func GetSettings() (*model.Settings, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching settings."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SETTINGS.Code,
			Message:     errors2.FETCH_SETTINGS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`SELECT data FROM %s WHERE id = 1`, constants.SettingsTable)
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed to execute query for fetching settings."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SETTINGS.Code,
			Message:     errors2.FETCH_SETTINGS.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug("No settings record found")
		return nil, nil
	}

	raw, err := rawJSON(results[0]["data"])
	if err != nil {
		errorMsg := "Settings record has an unexpected column type."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SETTINGS.Code,
			Message:     errors2.FETCH_SETTINGS.Message,
			Description: errorMsg,
		}, err)
	}

	var settings model.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		errorMsg := "Failed to decode stored settings record."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SETTINGS.Code,
			Message:     errors2.FETCH_SETTINGS.Message,
			Description: errorMsg,
		}, err)
	}

	return &settings, nil
}

// UpsertSettings persists the settings record wholesale as the single global row.
func UpsertSettings(settings model.Settings) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for updating settings."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_SETTINGS.Code,
			Message:     errors2.UPDATE_SETTINGS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	encoded, err := json.Marshal(settings)
	if err != nil {
		errorMsg := "Failed to encode settings record for storage."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES (1, $1)
				ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, constants.SettingsTable)
	if _, err := dbClient.ExecuteQuery(query, string(encoded)); err != nil {
		errorMsg := "Failed to execute query for updating settings."
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_SETTINGS.Code,
			Message:     errors2.UPDATE_SETTINGS.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Debug("Settings record persisted successfully")
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
