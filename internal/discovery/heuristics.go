package discovery

import (
	"strings"

	"lotuslamp/internal/config"
)

// namePatterns are manufacturer/product markers that show up in advertised
// names of lamps speaking this protocol.
var namePatterns = []string{
	"MELK",
	"Lotus",
	"LED",
	"RGB",
	"LAMP",
	"Light",
}

const bleBaseSuffix = "-0000-1000-8000-00805F9B34FB"

// FilterLikelyLamps keeps peers whose name matches a known marker or whose
// advertised services include the standard lamp service. Input order is
// preserved.
func FilterLikelyLamps(peers []Peer) []Peer {
	var lamps []Peer
	for _, p := range peers {
		if likelyLamp(p) {
			lamps = append(lamps, p)
		}
	}
	return lamps
}

func likelyLamp(p Peer) bool {
	for _, pattern := range namePatterns {
		if containsFold(p.Name, pattern) {
			return true
		}
	}
	for _, svc := range p.Services {
		if strings.EqualFold(svc, config.DefaultServiceUUID) {
			return true
		}
	}
	return false
}

// IdentifyProtocolIDs derives the three protocol identifiers from a peer's
// GATT structure. Two tiers: an exact match against the standard service and
// characteristics (high confidence), then any 0000FFxx vendor service whose
// characteristics are picked by capability flags (medium confidence). If
// either tier leaves an identifier unresolved the result is nil; callers
// fall back to manual entry or the defaults.
func IdentifyProtocolIDs(s *Structure) *Suggestion {
	if s == nil {
		return nil
	}

	for _, svc := range s.Services {
		if strings.EqualFold(svc.UUID, config.DefaultServiceUUID) {
			return completed(exactMatch(svc))
		}
	}

	for _, svc := range s.Services {
		if vendorPattern(svc.UUID) {
			return completed(flagMatch(svc))
		}
	}

	return nil
}

func exactMatch(svc Service) *Suggestion {
	sug := &Suggestion{
		ServiceUUID: strings.ToUpper(svc.UUID),
		Confidence:  ConfidenceHigh,
	}
	for _, char := range svc.Characteristics {
		switch {
		case strings.EqualFold(char.UUID, config.DefaultWriteCharUUID):
			sug.WriteCharUUID = strings.ToUpper(char.UUID)
		case strings.EqualFold(char.UUID, config.DefaultNotifyCharUUID):
			sug.NotifyCharUUID = strings.ToUpper(char.UUID)
		}
	}
	return sug
}

func flagMatch(svc Service) *Suggestion {
	sug := &Suggestion{
		ServiceUUID: strings.ToUpper(svc.UUID),
		Confidence:  ConfidenceMedium,
	}
	for _, char := range svc.Characteristics {
		if sug.WriteCharUUID == "" && hasProperty(char, PropWriteNoResponse) {
			sug.WriteCharUUID = strings.ToUpper(char.UUID)
		} else if sug.NotifyCharUUID == "" && hasProperty(char, PropNotify) {
			sug.NotifyCharUUID = strings.ToUpper(char.UUID)
		}
	}
	return sug
}

// completed enforces the all-or-nothing contract: a suggestion missing any
// identifier is discarded.
func completed(sug *Suggestion) *Suggestion {
	if sug.ServiceUUID == "" || sug.WriteCharUUID == "" || sug.NotifyCharUUID == "" {
		return nil
	}
	return sug
}

// vendorPattern reports whether a service sits in the 0000FFxx 16-bit family
// under the standard BLE base, the range vendors of these lamps use.
func vendorPattern(uuid string) bool {
	u := strings.ToUpper(uuid)
	return strings.HasPrefix(u, "0000FF") && strings.HasSuffix(u, bleBaseSuffix)
}

func hasProperty(c Characteristic, prop string) bool {
	for _, p := range c.Properties {
		if strings.EqualFold(p, prop) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
