package vcf

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fullCard() Card {
	return Card{
		GivenName:     "Wjm",
		FamilyName:    "Piek",
		FormattedName: "Wjm Martin's Funerals",
		Org:           "Martin's Funerals",
		Title:         "Director",
		CellPhone:     "27825615932",
		WorkPhone:     "+27104480921",
		Email:         "wjm@martinsdirect.com",
		URL:           "https://www.martinsnorthcliff.com",
		Address:       "208 Weltevreden Road, Northcliff",
		Note:          "Professional Funeral & Cremation Services",
	}
}

func TestEncode_WrapperAndLineEndings(t *testing.T) {
	out := string(Encode(fullCard()))

	require.True(t, strings.HasPrefix(out, "BEGIN:VCARD\r\n"))
	require.True(t, strings.HasSuffix(out, "END:VCARD\r\n"))

	// Every line break is CRLF; no bare LF anywhere.
	require.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")
}

func TestEncode_FieldOrder(t *testing.T) {
	out := string(Encode(fullCard()))
	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")

	prefixes := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:",
		"FN:",
		"ORG:",
		"TITLE:",
		"TEL;TYPE=CELL,VOICE:",
		"TEL;TYPE=WORK,VOICE:",
		"EMAIL;TYPE=WORK:",
		"URL:",
		"ADR;TYPE=WORK:",
		"NOTE:",
		"END:VCARD",
	}
	require.Len(t, lines, len(prefixes))
	for i, prefix := range prefixes {
		require.True(t, strings.HasPrefix(lines[i], prefix),
			"line %d = %q, want prefix %q", i, lines[i], prefix)
	}
}

func TestEncode_PhoneNormalisation(t *testing.T) {
	out := string(Encode(fullCard()))

	require.Contains(t, out, "TEL;TYPE=CELL,VOICE:+27825615932")
	require.Contains(t, out, "TEL;TYPE=WORK,VOICE:+27104480921")
}

func TestEncode_OmitsEmptyFields(t *testing.T) {
	out := string(Encode(Card{
		GivenName:     "Ada",
		FormattedName: "Ada Lovelace",
	}))

	require.NotContains(t, out, "ORG:")
	require.NotContains(t, out, "TEL;")
	require.NotContains(t, out, "ADR;")
	require.NotContains(t, out, "PHOTO;")
	require.NotContains(t, out, "NOTE:")
}

func TestEncode_Photo(t *testing.T) {
	photo := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	c := fullCard()
	c.Photo = photo
	out := string(Encode(c))

	require.Contains(t, out,
		"PHOTO;ENCODING=b;TYPE=JPEG:"+base64.StdEncoding.EncodeToString(photo))

	c.PhotoType = "PNG"
	out = string(Encode(c))
	require.Contains(t, out, "PHOTO;ENCODING=b;TYPE=PNG:")
}

func TestEncode_EscapesStructuralCharacters(t *testing.T) {
	c := Card{
		FormattedName: "Smith; Jones, and Co",
		Org:           "Line\nBreak",
	}
	out := string(Encode(c))

	require.Contains(t, out, `FN:Smith\; Jones\, and Co`)
	require.Contains(t, out, `ORG:Line\nBreak`)
}
