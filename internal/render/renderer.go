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

// Package render produces the embeddable HTML surfaces: the consent banner
// with its preferences modal, the floating reopen control, the cookie policy
// table and the consent-mode head snippet. All visitor-controlled and
// admin-controlled text is escaped here, at the output boundary.
package render

import (
	"bytes"
	"encoding/json"
	"html/template"

	consentModel "github.com/adrias-freebrand/cookie-goat/internal/consent/model"
	scanModel "github.com/adrias-freebrand/cookie-goat/internal/scanner/model"
	settingsModel "github.com/adrias-freebrand/cookie-goat/internal/settings/model"
	signalsProvider "github.com/adrias-freebrand/cookie-goat/internal/signals/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/tags"
)

var bannerTemplate = template.Must(template.New("banner").Parse(`<div id="cookiegoat-banner" class="cookiegoat-banner" role="dialog" aria-live="polite" aria-label="{{.Settings.BannerTitle}}"{{if .Decided}} hidden{{end}}>
  <h2 class="cookiegoat-banner-title">{{.Settings.BannerTitle}}</h2>
  <p class="cookiegoat-banner-description">{{.Settings.BannerDescription}}</p>
  <p><a class="cookiegoat-policy-link" href="{{.Settings.PolicyLink}}">Cookie policy</a></p>
  <div class="cookiegoat-banner-actions">
    <button type="button" class="cookiegoat-accept-all" data-cookiegoat="accept-all">Accept all</button>
    <button type="button" class="cookiegoat-reject-all" data-cookiegoat="reject-all">Reject all</button>
    <button type="button" class="cookiegoat-configure" data-cookiegoat="configure">Configure</button>
  </div>
  <div class="cookiegoat-modal" hidden>
    {{range .Categories}}<div class="cookiegoat-category">
      <label>
        <input type="checkbox" name="cookiegoat_category" value="{{.Key}}"{{if .Checked}} checked{{end}}{{if .Locked}} checked disabled{{end}}>
        <span class="cookiegoat-category-label">{{.Label}}</span>
      </label>
      <p class="cookiegoat-category-description">{{.Description}}</p>
    </div>
    {{end}}<button type="button" class="cookiegoat-save" data-cookiegoat="save">Save preferences</button>
  </div>
</div>
<button type="button" id="cookiegoat-floating" class="cookiegoat-floating" data-cookiegoat="reopen">{{.Settings.FloatingButtonLabel}}</button>
`))

var preferencesButtonTemplate = template.Must(template.New("preferences").Parse(`<button type="button" class="cookiegoat-preferences-button" data-cookiegoat="reopen">{{.Label}}</button>
`))

var scriptTagTemplate = template.Must(template.New("script").Parse(`<script src="{{.Src}}" id="{{.Handle}}-js"></script>`))

var policyTableTemplate = template.Must(template.New("policy").Parse(`{{if .Rows}}<table class="cookiegoat-policy-table">
  <thead>
    <tr><th>Name</th><th>Provider</th><th>Category</th><th>Type</th><th>Duration</th><th>Purpose</th></tr>
  </thead>
  <tbody>
    {{range .Rows}}<tr>
      <td>{{.Name}}</td>
      <td>{{.Provider}}</td>
      <td>{{.Category}}</td>
      <td>{{.Type}}</td>
      <td>{{.Duration}}</td>
      <td>{{.Purpose}}</td>
    </tr>
    {{end}}</tbody>
</table>
{{else}}<p class="cookiegoat-policy-empty">No cookies have been detected yet. Run a scan to populate this table.</p>
{{end}}`))

var headSnippetTemplate = template.Must(template.New("head").Parse(`<script>
window.dataLayer = window.dataLayer || [];
function gtag(){dataLayer.push(arguments);}
gtag('consent', 'default', {{.Defaults}});
gtag('set', 'ads_data_redaction', true);
gtag('set', 'url_passthrough', false);
{{if .Update}}gtag('consent', 'update', {{.Update}});
{{end}}</script>
{{if .GTMContainerID}}<!-- Google Tag Manager container {{.GTMContainerID}} loads after the consent defaults above. -->
{{end}}`))

type bannerCategory struct {
	Key         string
	Label       string
	Description string
	Checked     bool
	Locked      bool
}

// Banner renders the consent banner, the preferences modal and the floating
// reopen control. When a valid decision already exists the banner markup is
// emitted hidden so the client script can reopen it on demand.
func Banner(settings settingsModel.Settings, record consentModel.ConsentRecord) (string, error) {

	schema := settings.CategorySchema()
	categories := make([]bannerCategory, 0, len(constants.CategoryOrder))
	for _, key := range constants.CategoryOrder {
		categories = append(categories, bannerCategory{
			Key:         key,
			Label:       schema[key].Label,
			Description: schema[key].Description,
			Checked:     record.Allows(key),
			Locked:      key == constants.CategoryNecessary,
		})
	}

	return execute(bannerTemplate, map[string]interface{}{
		"Settings":   settings,
		"Categories": categories,
		"Decided":    record.Given(),
	})
}

// PreferencesButton renders the standalone reopen button for embedding in
// page content.
func PreferencesButton(settings settingsModel.Settings) (string, error) {

	return execute(preferencesButtonTemplate, map[string]interface{}{
		"Label": settings.FloatingButtonLabel,
	})
}

// ScriptTag renders a script tag for a registered handle, gated on the
// visitor's consent. Blocked handles come back as an HTML comment.
func ScriptTag(handle, src string, record consentModel.ConsentRecord) (string, error) {

	tag, err := execute(scriptTagTemplate, map[string]interface{}{
		"Handle": handle,
		"Src":    src,
	})
	if err != nil {
		return "", err
	}

	return tags.Default().FilterScriptTag(handle, tag, record), nil
}

type policyRow struct {
	Name     string
	Provider string
	Category string
	Type     string
	Duration string
	Purpose  string
}

// PolicyTable renders the evidence table from the latest scan snapshot,
// cookies first and web-storage entries after. A nil snapshot renders the
// empty state.
func PolicyTable(snapshot *scanModel.ScanSnapshot) (string, error) {

	var rows []policyRow
	if snapshot != nil {
		for _, cookie := range snapshot.Cookies {
			rows = append(rows, policyRow{
				Name:     cookie.Name,
				Provider: cookie.Provider,
				Category: cookie.Category,
				Type:     constants.StorageTypeCookie,
				Duration: cookie.Duration,
				Purpose:  cookie.Purpose,
			})
		}
		for _, entry := range snapshot.Storage {
			duration := "session"
			if entry.Type == constants.StorageTypeLocal {
				duration = "persistent"
			}
			rows = append(rows, policyRow{
				Name:     entry.Key,
				Category: entry.Category,
				Type:     entry.Type,
				Duration: duration,
			})
		}
	}

	return execute(policyTableTemplate, map[string]interface{}{
		"Rows": rows,
	})
}

// HeadSnippet renders the consent-mode bootstrap script. The deny-everything
// defaults always come first; an update call follows only when the record
// carries an explicit decision.
func HeadSnippet(settings settingsModel.Settings, record consentModel.ConsentRecord) (string, error) {

	signalsService := signalsProvider.NewSignalsProvider().GetSignalsService()

	defaults, err := json.Marshal(signalsService.DefaultVector())
	if err != nil {
		return "", marshalError(err)
	}

	var update template.JS
	if record.Given() {
		encoded, err := json.Marshal(signalsService.Project(record))
		if err != nil {
			return "", marshalError(err)
		}
		update = template.JS(encoded)
	}

	return execute(headSnippetTemplate, map[string]interface{}{
		"Defaults":       template.JS(defaults),
		"Update":         update,
		"GTMContainerID": settings.GTMContainerID,
	})
}

func execute(tmpl *template.Template, data interface{}) (string, error) {

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.NewServerError(errors.ErrorMessage{
			Code:        errors.RENDER_MARKUP.Code,
			Message:     errors.RENDER_MARKUP.Message,
			Description: "Failed to execute markup template.",
		}, err)
	}
	return buf.String(), nil
}

func marshalError(err error) error {
	return errors.NewServerError(errors.ErrorMessage{
		Code:        errors.MARSHAL_JSON.Code,
		Message:     errors.MARSHAL_JSON.Message,
		Description: "Failed to encode consent signals for the head snippet.",
	}, err)
}
