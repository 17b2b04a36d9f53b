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

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/adrias-freebrand/cookie-goat/internal/system/config"
	"github.com/adrias-freebrand/cookie-goat/internal/system/database/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
	"github.com/adrias-freebrand/cookie-goat/internal/system/workers"
	"github.com/adrias-freebrand/cookie-goat/test/setup"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "integration-secret"
)

var testPG *setup.TestPostgres

func TestMain(m *testing.M) {
	ctx := context.Background()
	os.Setenv("TEST_MODE", "true")

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		fmt.Println("Failed to hash test admin password:", err)
		os.Exit(1)
	}

	conf := config.Config{
		Log: config.LogConfig{
			LogLevel: "ERROR",
		},
		Admin: config.AdminConfig{
			AdminUsername:     testAdminUsername,
			AdminPasswordHash: string(passwordHash),
			JWTSecret:         "integration-jwt-secret",
			TokenTTLSeconds:   300,
		},
		Cookie: config.CookieConfig{
			Path:   "/",
			Secure: false,
		},
		Scanner: config.ScannerConfig{
			SiteURL: "http://127.0.0.1:1",
			IPSalt:  "integration-salt",
		},
	}
	config.OverrideCMPRuntime(conf)
	_ = log.Init("ERROR")

	pg, err := setup.SetupTestPostgres(ctx)
	if err != nil {
		fmt.Println("Failed to start test DB:", err)
		os.Exit(1)
	}

	testPG = pg
	provider.SetTestDB(pg.DB)
	if err := pg.ApplySchema("../../dbscripts/schema.sql"); err != nil {
		fmt.Println("Failed to apply schema:", err)
		pg.Teardown(ctx)
		os.Exit(1)
	}

	workers.StartConsentLogWorker()

	code := m.Run()

	pg.Teardown(ctx)

	os.Exit(code)
}
