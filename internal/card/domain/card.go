package domain

// Card is a single business card as stored in the cards document. The
// record is immutable at runtime; the document is edited out-of-band and
// re-read from disk on every lookup.
type Card struct {
	Slug string `json:"-"`

	DisplayName string `json:"display_name"`
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	SaveName    string `json:"save_name"` // contact name used when saving the vCard
	Org         string `json:"org"`
	Title       string `json:"title"`

	WhatsAppDisplay string `json:"whatsapp_display"`
	WhatsAppE164    string `json:"whatsapp_e164"`
	OfficeDisplay   string `json:"office_display"`
	OfficeE164      string `json:"office_e164"`

	Email          string `json:"email"`
	WebsiteDisplay string `json:"website_display"`
	WebsiteURL     string `json:"website_url"`

	AddressDisplay string `json:"address_display"`
	MapsQuery      string `json:"maps_query"` // URL-encoded query for the map deep link

	Photo string `json:"photo,omitempty"` // filename under the assets dir
	Logo  string `json:"logo,omitempty"`
	Note  string `json:"note,omitempty"`
}
