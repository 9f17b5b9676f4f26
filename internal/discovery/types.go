// Package discovery holds the heuristics that pick a likely lamp out of a
// BLE scan and derive the three protocol identifiers from a peer's GATT
// structure. It performs no I/O itself; scanning and enumeration are done by
// the transport adapter and fed in.
package discovery

// Peer is one device seen during a scan. Transient, never persisted.
type Peer struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	RSSI     int16    `json:"rssi"`
	Services []string `json:"services"`
}

// Characteristic capability flags as reported by GATT.
const (
	PropRead            = "READ"
	PropWrite           = "WRITE"
	PropWriteNoResponse = "WRITE_NO_RESPONSE"
	PropNotify          = "NOTIFY"
	PropIndicate        = "INDICATE"
)

// Structure is one peer's full service enumeration, used only to derive
// identifier suggestions.
type Structure struct {
	Address  string    `json:"address"`
	Services []Service `json:"services"`
}

type Service struct {
	UUID            string           `json:"uuid"`
	Description     string           `json:"description"`
	Characteristics []Characteristic `json:"characteristics"`
}

type Characteristic struct {
	UUID       string   `json:"uuid"`
	Properties []string `json:"properties"`
}

// Confidence rates how an identifier suggestion was derived.
type Confidence string

const (
	// ConfidenceHigh means the exact standard service and characteristics
	// were present.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium means a vendor-pattern service was matched and its
	// characteristics picked by capability flags.
	ConfidenceMedium Confidence = "medium"
)

// Suggestion is a complete set of protocol identifiers for one peer. All
// three fields are always populated; partial matches are never suggested.
type Suggestion struct {
	ServiceUUID    string     `json:"service_uuid"`
	WriteCharUUID  string     `json:"write_char_uuid"`
	NotifyCharUUID string     `json:"notify_char_uuid"`
	Confidence     Confidence `json:"confidence"`
}
