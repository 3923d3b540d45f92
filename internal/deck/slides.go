package deck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/models"
)

// slideBuilder renders one slide unit at a time into batch requests. All
// geometry is absolute on the 720x405 PT canvas.
type slideBuilder struct {
	theme *Theme
}

func (b *slideBuilder) cover(sid, domain string) []Request {
	t := b.theme
	reqs := []Request{
		createSlide(sid, "BLANK"),
		createShape(sid+"_panel", sid, "RECTANGLE", 400, slideHeightPT, 0, 0),
		solidFill(sid+"_panel", t.Primary),
		createShape(sid+"_pill", sid, "ROUND_RECTANGLE", 200, 30, 30, 40),
		solidFill(sid+"_pill", t.Red),
		insertText(sid+"_pill", "Content Marketing Audit"),
		textStyle(sid+"_pill", 12, t.White, true),
		centerText(sid + "_pill"),
		textBox(sid+"_title", sid, 350, 200, 30, 90),
		insertText(sid+"_title", "What Does It\nTake To Win in\nGoogle\nSearches?"),
		textStyle(sid+"_title", 36, t.White, true),
		textBox(sid+"_subtitle", sid, 350, 40, 30, 280),
		insertText(sid+"_subtitle", fmt.Sprintf("Content Audit for %s", domain)),
		textStyle(sid+"_subtitle", 22, t.Yellow, true),
		createImage(sid+"_funnel", sid, t.AssetURL("funnel"), 300, 300, 410, 50),
	}
	return reqs
}

func (b *slideBuilder) homepageSnapshot(sid, imageURL string) []Request {
	t := b.theme
	black := Color{}
	return []Request{
		createSlide(sid, "BLANK"),
		pageBackground(sid, black),
		createImage(sid+"_img", sid, imageURL, slideWidthPT, slideHeightPT, 0, 0),
		createShape(sid+"_bg", sid, "RECTANGLE", slideWidthPT, 50, 0, 355),
		solidFillAlpha(sid+"_bg", black, 0.7),
		textBox(sid+"_t", sid, 500, 40, 20, 360),
		insertText(sid+"_t", "Homepage Snapshot"),
		textStyle(sid+"_t", 18, t.White, true),
	}
}

// explainer is the scare slide that opens each topic section: blue sidebar,
// title and body on the right, optional stat line at the bottom.
func (b *slideBuilder) explainer(sid string, sec section) []Request {
	t := b.theme
	reqs := []Request{
		createSlide(sid, "BLANK"),
		pageBackground(sid, t.White),
		createShape(sid+"_sidebar", sid, "RECTANGLE", 180, slideHeightPT, 0, 0),
		solidFill(sid+"_sidebar", t.Primary),
		textBox(sid+"_title", sid, 500, 70, 220, 30),
		insertText(sid+"_title", sec.Title),
		textStyleFont(sid+"_title", 28, t.Primary, false, "Arial"),
		textBox(sid+"_body", sid, 480, 180, 220, 115),
		insertText(sid+"_body", sec.Body),
		textStyleFont(sid+"_body", 13, t.BodyText, false, "Arial"),
		paragraphSpacing(sid+"_body", 130, 3),
	}
	if sec.Stat != "" {
		reqs = append(reqs,
			textBox(sid+"_stat", sid, 480, 50, 220, 330),
			insertText(sid+"_stat", sec.Stat),
			textStyleFont(sid+"_stat", 13, t.Primary, true, "Arial"),
		)
	}
	return reqs
}

// imageSlide is a full-bleed screenshot under a title bar, with an optional
// annotation badge in the top-right corner.
func (b *slideBuilder) imageSlide(sid, title, imageURL, annotation string) []Request {
	t := b.theme
	reqs := []Request{
		createSlide(sid, "BLANK"),
		pageBackground(sid, t.Primary),
		textBox(sid+"_t", sid, 600, 50, 50, 15),
		insertText(sid+"_t", title),
		textStyle(sid+"_t", 28, t.White, true),
		createImage(sid+"_img", sid, imageURL, 680, 320, 20, 75),
	}
	if annotation != "" {
		reqs = append(reqs,
			createShape(sid+"_ann_bg", sid, "ROUND_RECTANGLE", 160, 42, 540, 10),
			solidFill(sid+"_ann_bg", t.Warning),
			insertText(sid+"_ann_bg", annotation),
			textStyle(sid+"_ann_bg", 12, t.White, true),
			centerText(sid+"_ann_bg"),
		)
	}
	return reqs
}

// imageWithBullets splits the canvas: screenshot on the left, white issue
// card with bullets on the right.
func (b *slideBuilder) imageWithBullets(sid, title, imageURL string, bullets []string) []Request {
	t := b.theme
	reqs := []Request{
		createSlide(sid, "BLANK"),
		pageBackground(sid, t.Primary),
		textBox(sid+"_t", sid, 600, 50, 50, 15),
		insertText(sid+"_t", title),
		textStyle(sid+"_t", 28, t.White, true),
		createImage(sid+"_img", sid, imageURL, 420, 300, 15, 75),
		createShape(sid+"_bullets_bg", sid, "ROUND_RECTANGLE", 250, 290, 450, 80),
		solidFill(sid+"_bullets_bg", t.White),
		textBox(sid+"_label", sid, 220, 25, 465, 90),
		insertText(sid+"_label", "ISSUES FOUND"),
		textStyle(sid+"_label", 14, t.Primary, true),
	}
	if len(bullets) > 0 {
		lines := make([]string, len(bullets))
		for i, item := range bullets {
			lines[i] = "• " + item
		}
		reqs = append(reqs,
			textBox(sid+"_bullets", sid, 230, 240, 460, 120),
			insertText(sid+"_bullets", strings.Join(lines, "\n")),
			textStyle(sid+"_bullets", 13, t.BodyText, false),
			paragraphSpacing(sid+"_bullets", 160, 4),
		)
	}
	return reqs
}

// basicSlide is the shared frame for table and fallback slides: blue page,
// title, white content card.
func (b *slideBuilder) basicSlide(sid, title string) []Request {
	t := b.theme
	return []Request{
		createSlide(sid, "TITLE_ONLY"),
		pageBackground(sid, t.Primary),
		textBox(sid+"_t", sid, 600, 50, 50, 20),
		insertText(sid+"_t", title),
		textStyle(sid+"_t", 30, t.White, true),
		createShape(sid+"_card", sid, "RECTANGLE", 680, 350, 20, 80),
		solidFill(sid+"_card", t.White),
	}
}

// dashboardMetrics feeds the synthesized traffic overview when no screenshot
// is available.
type dashboardMetrics struct {
	KeywordCount   int
	Traffic        float64
	RefDomains     int
	TotalBacklinks int
	AvgPosition    float64
	HasKeywords    bool
}

func (b *slideBuilder) trafficDashboard(sid string, m dashboardMetrics) []Request {
	t := b.theme
	reqs := []Request{
		createSlide(sid, "BLANK"),
		pageBackground(sid, t.Primary),
		textBox(sid+"_t", sid, 600, 50, 50, 20),
		insertText(sid+"_t", "Organic Traffic Overview"),
		textStyle(sid+"_t", 30, t.White, true),
		createShape(sid+"_card", sid, "RECTANGLE", 650, 250, 35, 80),
		solidFill(sid+"_card", t.White),
	}

	trafficValue := "N/A"
	if m.Traffic > 0 {
		trafficValue = "$" + commaInt(int64(m.Traffic*2))
	}
	refDomains := "N/A"
	if m.RefDomains > 0 {
		refDomains = audit.FormatNumber(float64(m.RefDomains))
	}
	backlinks := "N/A"
	if m.TotalBacklinks > 0 {
		backlinks = audit.FormatNumber(float64(m.TotalBacklinks))
	}
	avgPos := "N/A"
	if m.HasKeywords {
		avgPos = fmt.Sprintf("%.1f", m.AvgPosition)
	}

	tiles := []struct {
		label string
		value string
	}{
		{"Org. Keywords", audit.FormatNumber(float64(m.KeywordCount))},
		{"Org. Traffic", audit.FormatNumber(m.Traffic)},
		{"Traffic Value", trafficValue},
		{"Ref. Domains", refDomains},
		{"Backlinks", backlinks},
		{"Avg. Position", avgPos},
	}
	for idx, tile := range tiles {
		x := float64(50 + (idx%3)*200)
		y := float64(100 + (idx/3)*100)
		labelID := fmt.Sprintf("%s_m%d_l", sid, idx)
		valueID := fmt.Sprintf("%s_m%d_v", sid, idx)
		reqs = append(reqs,
			textBox(labelID, sid, 150, 20, x, y),
			insertText(labelID, tile.label),
			textStyle(labelID, 12, t.Dark, false),
			textBox(valueID, sid, 150, 40, x, y+20),
			insertText(valueID, tile.value),
			textStyle(valueID, 24, t.Primary, true),
		)
	}

	reqs = append(reqs,
		textBox(sid+"_warn", sid, 200, 30, 450, 100),
		insertText(sid+"_warn", "Low Organic Visibility"),
		textStyle(sid+"_warn", 14, t.Error, true),
	)
	return reqs
}

func (b *slideBuilder) keywordTable(sid string, keywords []models.Keyword) []Request {
	reqs := b.basicSlide(sid, "ORGANIC KW REPORT")
	tableID := sid + "_tbl"
	reqs = append(reqs, createTable(tableID, sid, len(keywords)+1, 5, 650, 300, 35, 100))
	for i, h := range []string{"Keyword", "Volume", "KD", "CPC", "Pos"} {
		reqs = append(reqs, cellText(tableID, 0, i, h))
	}
	for r, kw := range keywords {
		row := r + 1
		position := "-"
		if kw.Position > 0 {
			position = strconv.Itoa(kw.Position)
		}
		competition := kw.Competition
		if competition == "" {
			competition = "-"
		}
		reqs = append(reqs,
			cellText(tableID, row, 0, truncate(kw.Keyword, 30)),
			cellText(tableID, row, 1, audit.FormatNumber(float64(kw.SearchVolume))),
			cellText(tableID, row, 2, competition),
			cellText(tableID, row, 3, audit.FormatCurrency(kw.CPC)),
			cellText(tableID, row, 4, position),
		)
	}
	return reqs
}

// issueTable lists up to five affected URLs for a single issue type, with a
// count indicator above the table.
func (b *slideBuilder) issueTable(sid, title string, pages []models.PageRecord, issueDesc string) []Request {
	t := b.theme
	reqs := b.basicSlide(sid, title)

	count := len(pages)
	countText := "✓ No issues found"
	countColor := t.Success
	if count > 0 {
		countText = fmt.Sprintf("⚠ %d pages affected", count)
		countColor = t.Error
	}
	reqs = append(reqs,
		textBox(sid+"_count", sid, 200, 30, 520, 60),
		insertText(sid+"_count", countText),
		textStyle(sid+"_count", 12, countColor, true),
	)

	if count == 0 {
		reqs = append(reqs,
			textBox(sid+"_ok", sid, 400, 50, 180, 180),
			insertText(sid+"_ok", "✓ No issues detected on crawled pages"),
			textStyle(sid+"_ok", 18, t.Success, true),
		)
		return reqs
	}

	if count > 5 {
		pages = pages[:5]
	}
	tableID := sid + "_tbl"
	reqs = append(reqs,
		createTable(tableID, sid, len(pages)+1, 2, 650, 250, 35, 100),
		cellText(tableID, 0, 0, "URL"),
		cellText(tableID, 0, 1, "Issue"),
	)
	for r, p := range pages {
		display := strings.TrimPrefix(strings.TrimPrefix(p.URL, "https://"), "http://")
		reqs = append(reqs,
			cellText(tableID, r+1, 0, truncate(display, 50)),
			cellText(tableID, r+1, 1, issueDesc),
		)
	}
	return reqs
}

// bulletList is the no-screenshot fallback for the heading section: the
// issue bullets rendered on the white card.
func (b *slideBuilder) bulletList(sid, title string, bullets []string) []Request {
	t := b.theme
	reqs := b.basicSlide(sid, title)
	lines := make([]string, len(bullets))
	for i, item := range bullets {
		lines[i] = "• " + item
	}
	reqs = append(reqs,
		textBox(sid+"_items", sid, 600, 300, 50, 100),
		insertText(sid+"_items", strings.Join(lines, "\n")),
		textStyle(sid+"_items", 16, t.BodyText, false),
		paragraphSpacing(sid+"_items", 160, 6),
	)
	return reqs
}

func (b *slideBuilder) backlinksTable(sid, title string, links []models.ReferringDomain, note string) []Request {
	t := b.theme
	reqs := b.basicSlide(sid, title)
	tableID := sid + "_tbl"
	reqs = append(reqs, createTable(tableID, sid, len(links)+1, 3, 650, 300, 35, 100))
	for i, h := range []string{"Referring Page", "DR", "Links"} {
		reqs = append(reqs, cellText(tableID, 0, i, h))
	}
	for r, l := range links {
		row := r + 1
		reqs = append(reqs,
			cellText(tableID, row, 0, truncate(l.Domain, 40)),
			cellText(tableID, row, 1, strconv.Itoa(l.Rank)),
			cellText(tableID, row, 2, strconv.Itoa(l.Backlinks)),
		)
	}
	reqs = append(reqs,
		textBox(sid+"_note", sid, 200, 40, 450, 80),
		insertText(sid+"_note", "⬇ "+note),
		textStyle(sid+"_note", 14, t.Error, true),
	)
	return reqs
}

// readabilitySummary is the no-screenshot fallback for the content section.
func (b *slideBuilder) readabilitySummary(sid string, grade float64, annotation string) []Request {
	t := b.theme
	reqs := b.basicSlide(sid, "CONTENT ANALYSIS")

	color := t.Success
	if grade > 9 {
		color = t.Error
	}
	reqs = append(reqs,
		createShape(sid+"_c", sid, "ELLIPSE", 150, 150, 285, 150),
		outlineOnly(sid+"_c", color, 10),
		textBox(sid+"_g", sid, 100, 60, 310, 190),
		insertText(sid+"_g", fmt.Sprintf("%.1f", grade)),
		textStyle(sid+"_g", 40, color, true),
		textBox(sid+"_msg", sid, 450, 40, 140, 100),
		insertText(sid+"_msg", annotation),
		textStyle(sid+"_msg", 18, color, true),
		textBox(sid+"_lbl", sid, 300, 30, 220, 320),
		insertText(sid+"_lbl", "Average Reading Grade Level"),
		textStyle(sid+"_lbl", 14, t.Primary, false),
	)
	return reqs
}

// speedGauge is the no-screenshot speed slide: a score derived from the
// average page load time, drawn as a circular gauge.
func (b *slideBuilder) speedGauge(sid string, loadTimeMs float64) []Request {
	t := b.theme
	reqs := b.basicSlide(sid, "Website Speed Analysis")

	score := audit.LoadTimeSpeedScore(loadTimeMs)
	if loadTimeMs < 0 {
		loadTimeMs = 0
	}

	color := t.Error
	msg := "Critical: Page Speed Optimization Required"
	switch {
	case score >= 80:
		color = t.Success
		msg = "Good Page Speed Performance"
	case score >= 50:
		color = t.Warning
		msg = "Page Speed Needs Improvement"
	}

	reqs = append(reqs,
		createShape(sid+"_c", sid, "ELLIPSE", 150, 150, 285, 150),
		outlineOnly(sid+"_c", color, 10),
		textBox(sid+"_s", sid, 100, 60, 310, 190),
		insertText(sid+"_s", strconv.Itoa(score)),
		textStyle(sid+"_s", 48, color, true),
		textBox(sid+"_msg", sid, 450, 40, 140, 100),
		insertText(sid+"_msg", msg),
		textStyle(sid+"_msg", 18, color, true),
		textBox(sid+"_lt", sid, 300, 30, 220, 320),
		insertText(sid+"_lt", fmt.Sprintf("Average Load Time: %.2fs", loadTimeMs/1000)),
		textStyle(sid+"_lt", 14, t.Primary, false),
	)
	return reqs
}

func (b *slideBuilder) funnel(sid string) []Request {
	t := b.theme
	return []Request{
		createSlide(sid, "BLANK"),
		createShape(sid+"_panel", sid, "RECTANGLE", 400, slideHeightPT, 0, 0),
		solidFill(sid+"_panel", t.Primary),
		createShape(sid+"_decor_top", sid, "CHORD", 100, 80, 250, -40),
		solidFill(sid+"_decor_top", t.LightBlue),
		createShape(sid+"_pill", sid, "ROUND_RECTANGLE", 200, 30, 30, 40),
		solidFill(sid+"_pill", t.Red),
		insertText(sid+"_pill", "Content Marketing Audit"),
		textStyle(sid+"_pill", 12, t.White, true),
		centerText(sid + "_pill"),
		textBox(sid+"_title", sid, 350, 200, 30, 90),
		insertText(sid+"_title", "What Does It\nTake To Win in\nGoogle\nSearches?"),
		textStyle(sid+"_title", 36, t.White, true),
		createShape(sid+"_arrow", sid, "CHEVRON", 60, 40, 40, 320),
		solidFill(sid+"_arrow", t.Yellow),
		createImage(sid+"_funnel", sid, t.AssetURL("funnel"), 300, 300, 410, 50),
	}
}

func (b *slideBuilder) thankYou(sid string) []Request {
	t := b.theme
	return []Request{
		createSlide(sid, "BLANK"),
		pageBackground(sid, t.Primary),
		textBox(sid+"_thankyou", sid, 400, 100, 160, 150),
		insertText(sid+"_thankyou", "Thank You"),
		textStyleFont(sid+"_thankyou", 60, t.White, true, "Arial"),
		centerText(sid + "_thankyou"),
	}
}

// truncate shortens s to max runes, never splitting a multi-byte character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// commaInt renders n with thousands separators for dollar figures.
func commaInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	if neg {
		return "-" + out.String()
	}
	return out.String()
}
