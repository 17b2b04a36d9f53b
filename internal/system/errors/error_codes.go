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

package errors

const errorPrefix = "CGT-"

var (
	// Server error codes

	FETCH_SETTINGS = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while fetching plugin settings.",
	}

	UPDATE_SETTINGS = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while updating plugin settings.",
	}

	FETCH_SCAN_SNAPSHOT = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching scan snapshot.",
	}

	STORE_SCAN_SNAPSHOT = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while storing scan snapshot.",
	}

	ADD_CONSENT_LOG = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while appending consent log entry.",
	}

	FETCH_CONSENT_LOG = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching consent log entries.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while encoding data as JSON.",
	}

	ISSUE_ADMIN_TOKEN = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while issuing admin token.",
	}

	RENDER_MARKUP = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while rendering consent markup.",
	}

	LOCK_KEY_GEN = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while generating advisory lock key.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while acquiring advisory lock.",
	}

	LOCK_RELEASE = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while releasing advisory lock.",
	}

	// Client error codes

	UPDATE_CONSENT_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid consent update request.",
	}

	INVALID_CSRF_TOKEN = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Invalid or missing anti-forgery token.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Unauthorized request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Insufficient permissions to perform this operation.",
	}

	UPDATE_SETTINGS_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Invalid settings update request.",
	}

	INVALID_PAGE = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Invalid pagination parameter.",
	}

	SCRIPT_TAG_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Invalid script tag request.",
	}
)
