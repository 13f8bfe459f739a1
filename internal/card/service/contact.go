package service

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/martinsdigital/tapcard/internal/card/domain"
	"github.com/martinsdigital/tapcard/pkg/vcf"
)

// ContactService renders a card as a downloadable vCard payload.
type ContactService struct {
	// AssetsDir is where card photos live; an unreadable photo drops the
	// PHOTO line rather than failing the download.
	AssetsDir string
}

// Render encodes the card and returns the payload plus the attachment
// filename.
func (s *ContactService) Render(card domain.Card) ([]byte, string) {
	given, family := contactName(card)

	formatted := card.SaveName
	if formatted == "" {
		formatted = card.DisplayName
	}

	vc := vcf.Card{
		GivenName:     given,
		FamilyName:    family,
		FormattedName: formatted,
		Org:           card.Org,
		Title:         card.Title,
		CellPhone:     card.WhatsAppE164,
		WorkPhone:     card.OfficeE164,
		Email:         card.Email,
		URL:           card.WebsiteURL,
		Address:       card.AddressDisplay,
		Note:          card.Note,
	}

	if card.Photo != "" {
		if data, err := os.ReadFile(filepath.Join(s.AssetsDir, card.Photo)); err == nil {
			vc.Photo = data
			vc.PhotoType = photoType(card.Photo)
		}
	}

	return vcf.Encode(vc), attachmentName(card.Slug)
}

// contactName picks the N-line name parts, deriving them from the display
// name when the record doesn't split them explicitly.
func contactName(card domain.Card) (given, family string) {
	if card.GivenName != "" || card.FamilyName != "" {
		return card.GivenName, card.FamilyName
	}

	parts := strings.Fields(card.DisplayName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// attachmentName derives the download filename from the slug, stripping
// path separators so the header can't smuggle a path.
func attachmentName(slug string) string {
	cleaned := strings.NewReplacer("/", "", "\\", "", "..", "").Replace(slug)
	if cleaned == "" {
		cleaned = "contact"
	}
	return cleaned + ".vcf"
}

func photoType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	default:
		return "JPEG"
	}
}
