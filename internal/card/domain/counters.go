package domain

// Counter names tracked per slug. The set is closed: increments for any
// other name are rejected at the store boundary.
const (
	CounterContactShared  = "contact_shared"
	CounterWhatsAppClicks = "whatsapp_clicks"
	CounterEmailClicks    = "email_clicks"
	CounterMapClicks      = "map_clicks"
	CounterShareClicks    = "share_clicks"
	CounterNFCScans       = "nfc_scans"
)

// CounterNames lists every tracked counter in display/export order.
var CounterNames = []string{
	CounterContactShared,
	CounterWhatsAppClicks,
	CounterEmailClicks,
	CounterMapClicks,
	CounterShareClicks,
	CounterNFCScans,
}

// KnownCounter reports whether name is one of the tracked counters.
func KnownCounter(name string) bool {
	for _, n := range CounterNames {
		if n == name {
			return true
		}
	}
	return false
}

// CounterSet holds the counter values for one slug. Missing counters read
// as zero.
type CounterSet map[string]int64

// SlugCounters pairs a slug with its counter values, used for the admin
// dashboard and CSV export.
type SlugCounters struct {
	Slug     string
	Counters CounterSet
}

// Total sums every counter in the set.
func (c CounterSet) Total() int64 {
	var total int64
	for _, v := range c {
		total += v
	}
	return total
}

// Filled returns a copy of c with every known counter present, defaulting
// absent names to zero.
func (c CounterSet) Filled() CounterSet {
	out := make(CounterSet, len(CounterNames))
	for _, name := range CounterNames {
		out[name] = c[name]
	}
	return out
}
