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

// Package tags gates known third-party script handles on the visitor's
// consent record. Unknown handles always load: blocking is opt-in per handle,
// never a side effect of being unregistered.
package tags

import (
	"fmt"
	"sync"

	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
)

// Registry maps script handles to the consent category that must be granted
// before the script may load.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]string
}

// NewRegistry returns a registry seeded with the stock handle mappings.
func NewRegistry() *Registry {
	return &Registry{
		handles: map[string]string{
			"google-analytics":    constants.CategoryAnalytics,
			"ga-google-analytics": constants.CategoryAnalytics,
			"google-ads":          constants.CategoryMarketing,
			"facebook-pixel":      constants.CategoryMarketing,
		},
	}
}

// Register binds a script handle to a consent category, replacing any
// earlier binding.
func (reg *Registry) Register(handle, category string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.handles[handle] = category
}

// CategoryFor returns the category bound to a handle, if any.
func (reg *Registry) CategoryFor(handle string) (string, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	category, ok := reg.handles[handle]
	return category, ok
}

// ShouldLoad reports whether the script behind the handle may load under the
// given consent record. Unregistered handles load unconditionally.
func (reg *Registry) ShouldLoad(handle string, record consentModel.ConsentRecord) bool {

	category, registered := reg.CategoryFor(handle)
	if !registered {
		return true
	}
	return record.Allows(category)
}

// FilterScriptTag passes the markup through untouched when the handle may
// load, and swaps it for an HTML comment naming the blocked handle when not.
func (reg *Registry) FilterScriptTag(handle, tag string, record consentModel.ConsentRecord) string {

	if reg.ShouldLoad(handle, record) {
		return tag
	}
	category, _ := reg.CategoryFor(handle)
	return fmt.Sprintf("<!-- cookiegoat: blocked %s (%s) -->", handle, category)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}
