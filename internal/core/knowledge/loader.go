package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	ServicesFile   = "services.json"
	TeamFile       = "team.json"
	SiteFile       = "site.json"
	FAQsFile       = "faqs.json"
	ShopFile       = "shop.json"
	ClientDocsFile = "client_docs.json"
)

// Load reads the knowledge tables from dir. Services, team and site are
// required; FAQs, shop and client documents degrade to absent when missing
// or malformed.
func Load(dir string) (*Base, error) {
	b := &Base{LoadedAt: time.Now()}

	var services struct {
		Services []Service `json:"services"`
	}
	if err := readJSON(filepath.Join(dir, ServicesFile), &services); err != nil {
		return nil, err
	}
	b.Services = services.Services

	var team struct {
		Team        []TeamMember `json:"team"`
		Departments []string     `json:"departments"`
	}
	if err := readJSON(filepath.Join(dir, TeamFile), &team); err != nil {
		return nil, err
	}
	b.Team = team.Team
	b.Departments = team.Departments

	if err := readJSON(filepath.Join(dir, SiteFile), &b.Site); err != nil {
		return nil, err
	}

	if raw, err := os.ReadFile(filepath.Join(dir, FAQsFile)); err != nil {
		optionalMissing(FAQsFile, err)
	} else if sections, err := DecodeFAQSections(raw); err != nil {
		optionalMissing(FAQsFile, err)
	} else {
		b.FAQs = sections
	}

	var shop Shop
	if err := readJSON(filepath.Join(dir, ShopFile), &shop); err != nil {
		optionalMissing(ShopFile, err)
	} else if len(shop.Products) > 0 {
		b.Shop = &shop
	}

	var docs struct {
		Documents []Document `json:"documents"`
	}
	if err := readJSON(filepath.Join(dir, ClientDocsFile), &docs); err != nil {
		optionalMissing(ClientDocsFile, err)
	} else {
		b.Documents = docs.Documents
	}

	log.Info().
		Int("services", len(b.Services)).
		Int("team", len(b.Team)).
		Int("faq_sections", len(b.FAQs)).
		Int("documents", len(b.Documents)).
		Bool("shop", b.Shop != nil).
		Msg("📚 Knowledge base loaded")

	return b, nil
}

// DecodeFAQSections decodes the faqs.json object while keeping the order of
// its section keys, which is the matcher's iteration order. Non-object
// members (comments, metadata) are skipped.
func DecodeFAQSections(raw []byte) ([]FAQSection, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read faqs: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("faqs: top-level value must be an object")
	}

	var sections []FAQSection
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read faq key: %w", err)
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to read faq section %q: %w", key, err)
		}
		trimmed := bytes.TrimSpace(value)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}

		var s FAQSection
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("failed to parse faq section %q: %w", key, err)
		}
		s.ID = key
		sections = append(sections, s)
	}
	return sections, nil
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func optionalMissing(name string, err error) {
	log.Warn().Err(err).Str("file", name).Msg("⚠️ Optional knowledge file unavailable, feature disabled")
}
