package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"resume-review/internal/analyses"
	"resume-review/internal/history"
)

const notSpecified = "Not specified"

// Stars renders the rating as five stars, filling star i when i < rating/2.
func Stars(rating float64) string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		if float64(i) < rating/2 {
			b.WriteString("★")
		} else {
			b.WriteString("☆")
		}
	}
	return b.String()
}

// FormatRating renders "7/10", keeping decimals only when present.
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64) + "/10"
}

// Entry renders the full analysis of one history entry.
func Entry(s Styles, e history.Entry) string {
	r := analyses.Result(e.Result)
	var sections []string

	rating, hasRating := r.Rating()
	header := s.Title.Render("Resume Analysis")
	if hasRating {
		header += "  " + s.rating(rating).Render(FormatRating(rating)) +
			"  " + Stars(rating) +
			"  " + s.rating(rating).Render(analyses.RatingLabel(rating))
	}
	sections = append(sections, header)
	sections = append(sections, s.Muted.Render(fmt.Sprintf("%s (%s)", e.FileName, e.FileSize)))

	details := []string{
		field(s, "Name", r.PersonalDetail("name")),
		field(s, "Email", r.PersonalDetail("email")),
		field(s, "Phone", r.PersonalDetail("phone")),
	}
	for _, key := range []string{"linkedin", "portfolio", "location"} {
		if v := r.PersonalDetail(key); v != "" && v != notSpecified {
			details = append(details, field(s, strings.ToUpper(key[:1])+key[1:], v))
		}
	}
	sections = append(sections, section(s, "Personal Details", details...))

	if summary := r.Summary(); summary != "" {
		sections = append(sections, section(s, "Professional Summary", summary))
	}

	sections = append(sections, listSection(s, "Technical Skills", r.Strings("technicalSkills")))
	sections = append(sections, listSection(s, "Soft Skills", r.Strings("softSkills")))

	if jobs := r.Objects("workExperience"); len(jobs) > 0 {
		lines := make([]string, 0, len(jobs))
		for _, job := range jobs {
			line := s.Label.Render(job.Text("position"))
			if company := job.Text("company"); company != "" {
				line += " at " + s.Accent.Render(company)
			}
			if duration := job.Text("duration"); duration != "" {
				line += " " + s.Muted.Render("("+duration+")")
			}
			if desc := job.Text("description"); desc != "" {
				line += "\n  " + desc
			}
			lines = append(lines, line)
		}
		sections = append(sections, section(s, fmt.Sprintf("Work Experience (%d)", len(jobs)), lines...))
	}

	if schools := r.Objects("education"); len(schools) > 0 {
		lines := make([]string, 0, len(schools))
		for _, edu := range schools {
			line := s.Label.Render(edu.Text("degree"))
			if inst := edu.Text("institution"); inst != "" {
				line += ", " + s.Accent.Render(inst)
			}
			if duration := edu.Text("duration"); duration != "" {
				line += " " + s.Muted.Render("("+duration+")")
			}
			if gpa := edu.Text("gpa"); gpa != "" && gpa != notSpecified {
				line += " GPA: " + gpa
			}
			lines = append(lines, line)
		}
		sections = append(sections, section(s, fmt.Sprintf("Education (%d)", len(schools)), lines...))
	}

	if projects := r.Objects("projects"); len(projects) > 0 {
		lines := make([]string, 0, len(projects))
		for _, p := range projects {
			line := s.Label.Render(p.Text("name"))
			if desc := p.Text("description"); desc != "" {
				line += "\n  " + desc
			}
			if tech := p.Strings("technologies"); len(tech) > 0 {
				line += "\n  " + s.Muted.Render(strings.Join(tech, ", "))
			}
			lines = append(lines, line)
		}
		sections = append(sections, section(s, fmt.Sprintf("Projects (%d)", len(projects)), lines...))
	}

	if certs := r.Strings("certifications"); len(certs) > 0 {
		sections = append(sections, bulletSection(s, fmt.Sprintf("Certifications (%d)", len(certs)), certs))
	}
	sections = append(sections, bulletSection(s, "Areas for Improvement", r.Strings("improvementAreas")))
	sections = append(sections, listSection(s, "Suggested Skills to Learn", r.Strings("suggestedSkills")))

	if !e.AnalyzedAt.IsZero() {
		sections = append(sections, s.Muted.Render("Analysis completed on "+e.AnalyzedAt.Local().Format("2006-01-02 15:04:05")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// History renders the history list as a table, newest last.
func History(s Styles, entries []history.Entry) string {
	if len(entries) == 0 {
		return s.Muted.Render("No analysis history yet.")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		r := analyses.Result(e.Result)
		rating := "-"
		if v, ok := r.Rating(); ok {
			rating = FormatRating(v) + " " + Stars(v)
		}
		date := ""
		if !e.AnalyzedAt.IsZero() {
			date = e.AnalyzedAt.Local().Format("2006-01-02")
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			orDash(r.PersonalDetail("name")),
			orDash(r.PersonalDetail("email")),
			e.FileName,
			rating,
			date,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Border)).
		Headers("ID", "Name", "Email", "File Name", "Rating", "Date").
		Rows(rows...)
	return t.Render()
}

func field(s Styles, label, value string) string {
	return s.Label.Render(label+":") + " " + orDash(value)
}

func section(s Styles, title string, lines ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{s.Section.Render(title)}, lines...)...)
}

func listSection(s Styles, title string, items []string) string {
	body := s.Muted.Render("none")
	if len(items) > 0 {
		body = strings.Join(items, ", ")
	}
	return section(s, fmt.Sprintf("%s (%d)", title, len(items)), body)
}

func bulletSection(s Styles, title string, items []string) string {
	if len(items) == 0 {
		return section(s, title, s.Muted.Render("none"))
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return section(s, title, lines...)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
