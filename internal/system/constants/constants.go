package constants

const ApiBasePath = "/api/v1"
const ConsentApiPath = "consent"
const ScanApiPath = "scan"
const SettingsApiPath = "settings"
const ConsentLogApiPath = "consent-logs"

// ConsentCookieName is the client-side cookie carrying the consent record.
const ConsentCookieName = "cookiegoat_consent"

// CSRFCookieName is the double-submit token cookie for the public update path.
const CSRFCookieName = "cookiegoat_csrf"
const CSRFHeaderName = "X-CSRF-Token"

type contextKey string

const TraceIDContextKey contextKey = "traceId"

// Category keys, in classification priority order.
const (
	CategoryNecessary   = "necessary"
	CategoryPreferences = "preferences"
	CategoryAnalytics   = "analytics"
	CategoryMarketing   = "marketing"
)

// CategoryOrder is the fixed priority order used by the classifier and the
// aggregate computation. Necessary first keeps ambiguous names unblockable.
var CategoryOrder = []string{
	CategoryNecessary,
	CategoryPreferences,
	CategoryAnalytics,
	CategoryMarketing,
}

// Consent status values.
const (
	ConsentStatusDenied = "denied"
	ConsentStatusGiven  = "given"
)

// Overall aggregate values.
const (
	OverallDenied  = "denied"
	OverallPartial = "partial"
	OverallGranted = "granted"
)

// Consent-signal flag values.
const (
	SignalGranted = "granted"
	SignalDenied  = "denied"
)

// Storage evidence types reported by the scanner.
const (
	StorageTypeCookie  = "cookie"
	StorageTypeLocal   = "localStorage"
	StorageTypeSession = "sessionStorage"
)

// Scan trigger labels recorded on snapshots.
const (
	ScanTriggerManual    = "manual"
	ScanTriggerScheduled = "scheduled"
)

const (
	SettingsTable   = "cookiegoat_settings"
	SnapshotTable   = "cookiegoat_scan_snapshot"
	ConsentLogTable = "cookiegoat_consent_log"
)

// DayInSeconds is the base unit for expiration and autoscan clamping.
const DayInSeconds = 86400

const (
	MinConsentExpirationDays = 30
	MaxConsentExpirationDays = 730
	MinAutoscanFrequency     = DayInSeconds
	MaxAutoscanFrequency     = DayInSeconds * 30
)

// ConsentLogPageSize is the fixed admin log page size.
const ConsentLogPageSize = 20

// DefaultQueueSize bounds the async consent-log queue.
const DefaultQueueSize = 100

// ScanTimeoutSeconds is the hard bound on the scanner's outbound fetch.
const ScanTimeoutSeconds = 15
