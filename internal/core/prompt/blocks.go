package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
)

const (
	MaxServiceDesc       = 85
	MaxTeamMemberLine    = 220
	MaxDocExcerpt        = 160
	MaxPricingDocExcerpt = 520

	ellipsis = "…"
)

// Team groups rendered before the regular departments.
const (
	DeptDoctors           = "Ärzte"
	DeptManagementMedical = "Geschäftsleitung mit ärztlicher Kompetenz"
	DeptManagement        = "Geschäftsleitung"
	DeptOsteopathy        = "Osteopathie │ Etiopathie"

	deptOther = "Sonstige"
)

// Members listed under Ärzte regardless of their department.
var doctorNames = map[string]bool{
	"Dr. med. Manuel Haag":              true,
	"Dr. med. Christoph Lienhard":       true,
	"Dr. medic. (RO) Violeta Marinescu": true,
	"Praktische Ärztin Sophie Steger":   true,
}

// The management member with medical competence; also heads the osteopathy group.
const managementWithMedical = "Prof. Martin Spring"

var (
	pricingDocIDRe    = regexp.MustCompile(`(?i)abo|flyer.*abo|goldene\s*regeln|functiotraining`)
	pricingDocTitleRe = regexp.MustCompile(`(?i)Abo|Flyer.*Abo|Goldene Regeln|functioTraining`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
)

// Block renders one optional section of the system prompt. An empty result
// means the block is left out.
type Block struct {
	Name   string
	Render func(kb *knowledge.Base) string
}

// Blocks is the order in which data blocks follow the template.
var Blocks = []Block{
	{Name: "contact", Render: ContactBlock},
	{Name: "services", Render: ServicesBlock},
	{Name: "team", Render: TeamBlock},
	{Name: "shop", Render: ShopBlock},
	{Name: "documents", Render: DocumentsBlock},
}

// Truncate cuts s to limit runes and appends an ellipsis if anything was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit]) + ellipsis
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func ContactBlock(kb *knowledge.Base) string {
	s := kb.Site
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kontakt: %s. Tel: %s. E-Mail: %s. ",
		or(s.Contact.Address, "Langgrütstrasse 112, CH-8047 Zürich"),
		or(s.Contact.Phone, "+41 (0) 44 401 15 15"),
		or(s.Contact.Email, "functiomed@hin.ch")))
	sb.WriteString(fmt.Sprintf("Termin buchen: [%s](%s). ",
		or(s.Home.Booking.Label, "Termin buchen"),
		or(s.Home.Booking.URL, "https://www.functiomed.ch/termin-buchen")))
	sb.WriteString(fmt.Sprintf("Notfall: [%s](%s). ",
		or(s.Notfall.Title, "Notfall"),
		or(s.Notfall.URL, "https://www.functiomed.ch/notfall")))
	sb.WriteString(fmt.Sprintf("Öffnungszeiten Sekretariat: %s. ",
		or(s.OpeningHours.Secretariat, "Mo–Do 08:30–12:00 / 13:30–16:30, Fr 08:30–12:00 / 13:30–16:00, Sa 09:00–11:00")))
	sb.WriteString("Anreise-Hinweis: Wenn du beschreibst, wie man zur Praxis kommt, nenne ausschließlich **Bus Nr. 33** (nie Tram) und die Haltestelle **Schulhaus Altweg** als nächstgelegene Station. ")
	sb.WriteString("Sage immer „Bus Nr. 33, Haltestelle Schulhaus Altweg“, nie „Tram“ oder „Tramlinie“, und füge immer den Google-Maps-Link " + MapLink + " hinzu. ")
	sb.WriteString("**Wichtig:** Sage niemals „kontaktiere mich“ oder „contact me“ oder „feel free to contact me“; immer „kontaktiert uns“ / „contact us“ / „feel free to contact us“ (z. B. mit Telefon oder E-Mail) verwenden. ")
	sb.WriteString("Gib die Telefonnummer immer im Format +41 (0) 44 401 15 15 an (mit (0) für die Inlandswahl). ")
	sb.WriteString("**Parken:** Bei Fragen zu Parkplätzen oder Parkieren immer angeben: Es gibt Parkplätze direkt vor der Praxis sowie in der blauen Zone (Parkkarte erforderlich).\n")
	return sb.String()
}

func ServicesBlock(kb *knowledge.Base) string {
	if len(kb.Services) == 0 {
		return ""
	}
	lines := make([]string, 0, len(kb.Services))
	for _, s := range kb.Services {
		desc := strings.TrimSpace(s.Description)
		if desc == "" {
			desc = "—"
		}
		lines = append(lines, fmt.Sprintf("**%s:** %s", s.Name, Truncate(desc, MaxServiceDesc)))
	}
	return "\n**Leistungen / Services (bei Service-Fragen nutzen, Beschreibung erwähnen):**\n" + strings.Join(lines, "\n") + "\n"
}

// TeamMemberLine renders one roster entry within MaxTeamMemberLine runes.
func TeamMemberLine(m knowledge.TeamMember) string {
	line := m.Name + " – " + or(m.Title, "—")
	if m.Credentials != "" {
		line += ". " + m.Credentials
	}
	if len(m.Specialties) > 0 {
		line += ". Schwerpunkte: " + strings.Join(firstN(m.Specialties, 5), ", ")
	}
	if m.Bio != "" {
		line += ". " + m.Bio
	}
	if len(m.Languages) > 0 {
		line += ". Sprachen: " + strings.Join(firstN(m.Languages, 5), ", ")
	}
	if utf8.RuneCountInString(line) > MaxTeamMemberLine {
		line = string([]rune(line)[:MaxTeamMemberLine-1]) + ellipsis
	}
	return line
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// TeamGroups returns the roster grouped for rendering, in render order.
// A member can appear in several groups: doctors are listed under Ärzte as
// well as their own department, and the management member with medical
// competence gets a group of their own and heads the osteopathy group.
func TeamGroups(kb *knowledge.Base) []Group {
	byDept := map[string][]string{}
	add := func(dept, line string) { byDept[dept] = append(byDept[dept], line) }

	for _, m := range kb.Team {
		dept := or(m.Department, deptOther)
		line := TeamMemberLine(m)

		if dept == DeptManagement {
			if m.Name == managementWithMedical {
				add(DeptManagementMedical, line)
			} else {
				add(DeptManagement, line)
			}
			if doctorNames[m.Name] {
				add(DeptDoctors, line)
			}
			continue
		}
		if doctorNames[m.Name] && dept != DeptDoctors {
			add(DeptDoctors, line)
		}
		add(dept, line)
	}

	if head := byDept[DeptManagementMedical]; len(head) > 0 && len(byDept[DeptOsteopathy]) > 0 {
		byDept[DeptOsteopathy] = append([]string{head[0]}, byDept[DeptOsteopathy]...)
	}

	first := []string{DeptDoctors, DeptManagementMedical, DeptManagement}
	isFirst := map[string]bool{}
	var groups []Group
	for _, d := range first {
		isFirst[d] = true
		if len(byDept[d]) > 0 {
			groups = append(groups, Group{Name: d, Lines: byDept[d]})
		}
	}
	for _, d := range kb.Departments {
		if isFirst[d] || len(byDept[d]) == 0 {
			continue
		}
		groups = append(groups, Group{Name: d, Lines: byDept[d]})
	}
	return groups
}

type Group struct {
	Name  string
	Lines []string
}

const teamLinkInstruction = `
**When the user asks about the team (e.g. who is the team / wer ist das Team):** (1) Structure your answer by departments (e.g. Ärzte/doctors, Geschäftsleitung mit ärztlicher Kompetenz/Management with medical competence, Geschäftsleitung/Management, Osteopathie, Physiotherapie, Empfang/reception, etc.). (2) Include the **Ärzte** section and **Geschäftsleitung mit ärztlicher Kompetenz** so management doctors appear in the list. (3) Mention that the team includes doctors, therapists, reception staff and other specialists. (4) Always end with a short sentence that says further information on the team can be found on the website (no separate team site): (DE) "Weitere Informationen zu unserem Team findest du auf unserer Website: https://www.functiomed.ch." / (EN) "Further information on our team can be found on our website (https://www.functiomed.ch)." / (FR) "Vous trouvez plus d'informations sur notre équipe sur notre site web : https://www.functiomed.ch." Do NOT add this closing line when the user asks about directions, location, contact, bus, services, or appointments.
`

func TeamBlock(kb *knowledge.Base) string {
	if len(kb.Team) == 0 {
		return ""
	}
	groups := TeamGroups(kb)
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("**%s:**\n%s", g.Name, strings.Join(g.Lines, "\n")))
	}
	return "\n**Team (bei Fragen zu Personen oder Abteilungen nutzen; Antwort nach Abteilungen strukturieren: zuerst Ärzte, dann Geschäftsleitung mit ärztlicher Kompetenz, dann Geschäftsleitung, dann weitere Abteilungen; am Ende Team-Link):**\n" +
		strings.Join(parts, "\n\n") + teamLinkInstruction
}

func ShopBlock(kb *knowledge.Base) string {
	if kb.Shop == nil || len(kb.Shop.Products) == 0 {
		return ""
	}
	lines := make([]string, 0, len(kb.Shop.Products))
	for _, p := range kb.Shop.Products {
		line := fmt.Sprintf("• %s (%s)", p.Title, p.Author)
		if p.PriceNote != "" {
			line += " – " + p.PriceNote
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf("\n**Shop (Bücher, bei Shop-Fragen nennen):** %s. Erhältlich in der Praxis bzw. [Online-Shop](%s).\n",
		strings.Join(lines, " | "), kb.Shop.Source)
}

// IsPricingDocument reports whether a document carries subscription prices
// and gets the larger excerpt budget.
func IsPricingDocument(d knowledge.Document) bool {
	return pricingDocIDRe.MatchString(d.ID) || pricingDocTitleRe.MatchString(d.Title)
}

func DocumentsBlock(kb *knowledge.Base) string {
	var lines []string
	for _, d := range kb.Documents {
		text := strings.TrimSpace(whitespaceRe.ReplaceAllString(d.Content, " "))
		if text == "" {
			continue
		}
		limit := MaxDocExcerpt
		if IsPricingDocument(d) {
			limit = MaxPricingDocExcerpt
		}
		lines = append(lines, fmt.Sprintf("**%s:** %s", d.Title, Truncate(text, limit)))
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n**Weitere Client-Dokumente (nutzen bei passenden Fragen):**\n" + strings.Join(lines, "\n") + "\n"
}
