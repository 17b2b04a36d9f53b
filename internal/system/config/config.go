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

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// AdminConfig carries the credentials and token settings for admin access.
// AdminPasswordHash is a bcrypt hash; plain-text passwords never live in config.
type AdminConfig struct {
	AdminUsername     string `yaml:"admin_username"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
	JWTSecret         string `yaml:"jwt_secret"`
	TokenTTLSeconds   int    `yaml:"token_ttl_seconds"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// CookieConfig mirrors the host environment's cookie-path configuration.
type CookieConfig struct {
	Path   string `yaml:"path"`
	Domain string `yaml:"domain"`
	Secure bool   `yaml:"secure"`
}

// ScannerConfig points the auditor at the site it protects.
type ScannerConfig struct {
	SiteURL string `yaml:"site_url"`
	IPSalt  string `yaml:"ip_salt"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	Admin      AdminConfig      `yaml:"admin"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Cookie     CookieConfig     `yaml:"cookie"`
	Scanner    ScannerConfig    `yaml:"scanner"`
	SchemaFile string           `yaml:"schema_file"`
}
