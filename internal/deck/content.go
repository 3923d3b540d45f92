package deck

import "fmt"

// section is one topic block of the deck: an explainer followed by a data
// slide.
type section struct {
	Title string
	Body  string
	Stat  string
}

var (
	sectionOrganic = section{
		Title: "WHY ORGANIC VISIBILITY MATTERS",
		Body: "Your website is often the first impression potential customers have of your business. " +
			"When users search for solutions you offer, showing up on Google's first page is about more than just traffic. " +
			"It's about credibility and trust. A strong content strategy directly builds your domain authority, " +
			"signaling to search engines that your site is a reliable source of information. " +
			"Without this authority, even the best products struggle to reach their audience.\n\n" +
			"Equally important is your site architecture. A well-structured website helps Google's crawlers " +
			"understand and index your pages efficiently. Poor architecture leads to orphaned pages, broken internal links, " +
			"and missed ranking opportunities. When competitors have cleaner structures, they capture the market share " +
			"you're leaving on the table.",
		Stat: "",
	}

	sectionMeta = section{
		Title: "THE COST OF POOR META TAGS",
		Body: "• Meta titles and descriptions are your digital shop window to the world.\n" +
			"• They are the very first interaction a potential user has with your brand.\n" +
			"• Poor tags lead to low click-through rates regardless of your search rank.\n" +
			"• Clear metadata helps search engines accurately categorize your pages.\n" +
			"• Optimization can increase organic traffic by 30% without more content.",
		Stat: "Optimized meta tags can increase Click-Through Rate (CTR) by up to 30%.",
	}

	sectionHeadings = section{
		Title: "HEADINGS STRUCTURE & RANKING",
		Body: "• Headings establish content hierarchy for both users and search robots.\n" +
			"• Missing H1 tags make it nearly impossible for Google to identify topics.\n" +
			"• Structured subheadings (H2, H3) keep readers engaged and scrolling.\n" +
			"• Broken hierarchy causes \"pogo-sticking\" which hurts your rankings.\n" +
			"• Proper heading usage is a primary signal for search engine crawlers.",
		Stat: "PROPER H1-H6 USE IS A TOP 5 RANKING FACTOR.",
	}

	sectionBacklinks = section{
		Title: "AUTHORITY & TRUST",
		Body: "• Backlinks act as digital \"votes of confidence\" for your domain.\n" +
			"• Domain authority is driven primarily by the quality of external links.\n" +
			"• High-quality, relevant links are a top three Google ranking factor.\n" +
			"• Spammy or toxic backlinks can trigger severe algorithmic penalties.\n" +
			"• A strong Link profile makes it easier for new content to rank fast.",
		Stat: "The #1 Result in Google has 3.8x more backlinks than positions 2-10.",
	}

	sectionContent = section{
		Title: "CONTENT & READABILITY",
		Body: "• Thin or low-quality content is the fastest way to lose rankings.\n" +
			"• Google prioritizes pages that provide genuine value and clarity.\n" +
			"• Complex jargon drives users away and signals poor UX to crawlers.\n" +
			"• High dwell time is a key metric for sustained search performance.\n" +
			"• Simple and readable content ensures users find the answers they seek.",
		Stat: "The average reading level of a #1 ranking page is Grade 8.",
	}

	sectionSpeed = section{
		Title: "SLOW SPEED KILLS CONVERSIONS",
		Body: "• Website speed is a direct ranking factor in the mobile-first era.\n" +
			"• Users expect pages to load in under 2 seconds or they will leave.\n" +
			"• High bounce rates from slow speeds tell Google your site is poor.\n" +
			"• Slow performance kills conversion rates on desktops and mobiles.\n" +
			"• Faster sites enjoy better crawl budgets and more frequent updates.",
		Stat: "53% of visits are abandoned if a mobile site takes >3 seconds to load.",
	}
)

func pluralPages(n int) string {
	if n == 1 {
		return "page"
	}
	return "pages"
}

func pluralHeadings(n int) string {
	if n == 1 {
		return "heading"
	}
	return "headings"
}

// metaBullets turns the meta issue counts into display bullets. Zero counts
// are skipped; an issue-free page set gets a single all-clear line.
func metaBullets(counts map[string]int) []string {
	bullets := make([]string, 0, 3)
	if n := counts["titleTooLong"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s with titles too long", n, pluralPages(n)))
	}
	if n := counts["noDesc"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s missing description", n, pluralPages(n)))
	}
	if n := counts["descTooLong"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s with description too long", n, pluralPages(n)))
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "No major meta issues found")
	}
	return bullets
}

func headingBullets(counts map[string]int) []string {
	bullets := make([]string, 0, 9)
	if n := counts["noH1"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s missing H1", n, pluralPages(n)))
	}
	if n := counts["multiH1"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s with multiple H1s", n, pluralPages(n)))
	}
	if n := counts["dupH1"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d duplicate H1 %s found", n, pluralHeadings(n)))
	}
	if n := counts["noH2"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s missing H2", n, pluralPages(n)))
	}
	if n := counts["manyH2"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s with too many H2", n, pluralPages(n)))
	}
	if n := counts["dupH2"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d duplicate H2 %s found", n, pluralHeadings(n)))
	}
	if n := counts["noH3"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s missing H3", n, pluralPages(n)))
	}
	if n := counts["manyH3"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d %s with too many H3", n, pluralPages(n)))
	}
	if n := counts["dupH3"]; n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d duplicate H3 %s found", n, pluralHeadings(n)))
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "No major heading issues found")
	}
	return bullets
}
