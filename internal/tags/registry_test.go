/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
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

package tags

import (
	"testing"

	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/stretchr/testify/assert"
)

func deniedRecord() consentModel.ConsentRecord {
	return consentModel.DefaultConsentRecord()
}

func grantedRecord(categories ...string) consentModel.ConsentRecord {
	decisions := map[string]bool{constants.CategoryNecessary: true}
	for _, category := range categories {
		decisions[category] = true
	}
	return consentModel.ConsentRecord{
		Status:     constants.ConsentStatusGiven,
		Categories: decisions,
	}
}

func TestShouldLoad_UnknownHandleAlwaysLoads(t *testing.T) {
	registry := NewRegistry()

	assert.True(t, registry.ShouldLoad("some-custom-plugin", deniedRecord()))
	assert.True(t, registry.ShouldLoad("", deniedRecord()))
}

func TestShouldLoad_RegisteredHandleFollowsConsent(t *testing.T) {
	registry := NewRegistry()

	assert.False(t, registry.ShouldLoad("google-analytics", deniedRecord()))
	assert.True(t, registry.ShouldLoad("google-analytics", grantedRecord(constants.CategoryAnalytics)))

	assert.False(t, registry.ShouldLoad("facebook-pixel", grantedRecord(constants.CategoryAnalytics)))
	assert.True(t, registry.ShouldLoad("facebook-pixel", grantedRecord(constants.CategoryMarketing)))
}

func TestRegister_OverridesSeedBinding(t *testing.T) {
	registry := NewRegistry()
	registry.Register("google-analytics", constants.CategoryMarketing)

	assert.False(t, registry.ShouldLoad("google-analytics", grantedRecord(constants.CategoryAnalytics)))
	assert.True(t, registry.ShouldLoad("google-analytics", grantedRecord(constants.CategoryMarketing)))
}

func TestRegister_NecessaryBindingNeverBlocks(t *testing.T) {
	registry := NewRegistry()
	registry.Register("my-session-plugin", constants.CategoryNecessary)

	assert.True(t, registry.ShouldLoad("my-session-plugin", deniedRecord()))
}

func TestFilterScriptTag(t *testing.T) {
	registry := NewRegistry()
	tag := `<script src="https://www.googletagmanager.com/gtag/js"></script>`

	passed := registry.FilterScriptTag("google-analytics", tag, grantedRecord(constants.CategoryAnalytics))
	assert.Equal(t, tag, passed)

	blocked := registry.FilterScriptTag("google-analytics", tag, deniedRecord())
	assert.Equal(t, "<!-- cookiegoat: blocked google-analytics (analytics) -->", blocked)

	unknown := registry.FilterScriptTag("hand-rolled-widget", tag, deniedRecord())
	assert.Equal(t, tag, unknown)
}
