// Package vcf encodes vCard 3.0 contact files. The format is line
// oriented with CRLF terminators, and contact-import software on both
// iOS and Android is sensitive to field order, so Encode always emits
// fields in the same sequence.
package vcf

import (
	"bytes"
	"encoding/base64"
	"strings"
)

// Card holds the fields of a single contact. Empty fields are omitted
// from the output; the relative order of the present fields never changes.
type Card struct {
	GivenName     string
	FamilyName    string
	FormattedName string
	Org           string
	Title         string

	CellPhone string // E.164, "+" added if missing
	WorkPhone string // E.164, "+" added if missing

	Email string
	URL   string

	Address string // free-text street address, single ADR line
	Note    string

	Photo     []byte // raw image bytes, base64-encoded into the PHOTO line
	PhotoType string // e.g. "JPEG", "PNG"; defaults to JPEG
}

// Encode renders the card as a vCard 3.0 payload with CRLF line endings
// and a trailing CRLF after END:VCARD.
func Encode(c Card) []byte {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + escape(c.FamilyName) + ";" + escape(c.GivenName) + ";;;",
		"FN:" + escape(c.FormattedName),
	}

	if c.Org != "" {
		lines = append(lines, "ORG:"+escape(c.Org))
	}
	if c.Title != "" {
		lines = append(lines, "TITLE:"+escape(c.Title))
	}
	if c.CellPhone != "" {
		lines = append(lines, "TEL;TYPE=CELL,VOICE:"+e164(c.CellPhone))
	}
	if c.WorkPhone != "" {
		lines = append(lines, "TEL;TYPE=WORK,VOICE:"+e164(c.WorkPhone))
	}
	if c.Email != "" {
		lines = append(lines, "EMAIL;TYPE=WORK:"+escape(c.Email))
	}
	if c.URL != "" {
		lines = append(lines, "URL:"+c.URL)
	}
	if c.Address != "" {
		lines = append(lines, "ADR;TYPE=WORK:;;"+escape(c.Address)+";;;;")
	}
	if len(c.Photo) > 0 {
		typ := c.PhotoType
		if typ == "" {
			typ = "JPEG"
		}
		encoded := base64.StdEncoding.EncodeToString(c.Photo)
		lines = append(lines, "PHOTO;ENCODING=b;TYPE="+typ+":"+encoded)
	}
	if c.Note != "" {
		lines = append(lines, "NOTE:"+escape(c.Note))
	}

	lines = append(lines, "END:VCARD", "")

	var buf bytes.Buffer
	for i, line := range lines {
		if i > 0 {
			buf.WriteString("\r\n")
		}
		buf.WriteString(line)
	}
	return buf.Bytes()
}

// escape protects the characters vCard 3.0 treats as structural inside
// text values.
func escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
		"\r", "",
	)
	return r.Replace(s)
}

// e164 normalises a phone number to a leading "+" form.
func e164(number string) string {
	number = strings.TrimSpace(number)
	if number == "" || strings.HasPrefix(number, "+") {
		return number
	}
	return "+" + number
}
