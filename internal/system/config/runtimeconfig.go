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

import "sync"

// CMPRuntime holds the runtime configuration for the CMP server.
type CMPRuntime struct {
	CMPHome string `yaml:"cmp_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *CMPRuntime
	once          sync.Once
)

// InitializeCMPRuntime initializes the CMPRuntime configuration.
func InitializeCMPRuntime(cmpHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &CMPRuntime{
			CMPHome: cmpHome,
			Config:  *config,
		}
	})

	return nil
}

// GetCMPRuntime returns the CMPRuntime configuration.
func GetCMPRuntime() *CMPRuntime {

	if runtimeConfig == nil {
		panic("CMPRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideCMPRuntime replaces the runtime configuration. Test use only.
func OverrideCMPRuntime(conf Config) {
	runtimeConfig = &CMPRuntime{
		Config: conf,
	}
}
