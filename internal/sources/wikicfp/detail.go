package wikicfp

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/normalize"
)

// Detail is the event summary of a WikiCFP call-for-papers page.
type Detail struct {
	When            string // "Jul 13, 2025 - Jul 19, 2025"
	Where           string
	AbstractDue     string
	SubmissionDue   string
	NotificationDue string
	FinalDue        string
	Link            string // Conference home page
	URL             string // The detail page itself
}

// Row labels of the summary table.
const (
	labelWhen         = "when"
	labelWhere        = "where"
	labelAbstract     = "abstract registration due"
	labelSubmission   = "submission deadline"
	labelNotification = "notification due"
	labelFinal        = "final version due"
)

// parseDetail reads the "table.gglu" summary. A label present more than
// once is ambiguous and ignored.
func parseDetail(doc *goquery.Document) (Detail, error) {
	table := doc.Find("div.contsec table.gglu").First()
	if table.Length() == 0 {
		return Detail{}, errors.New("event summary table not found")
	}

	values := map[string]string{}
	counts := map[string]int{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToLower(normalize.CleanCell(cells.Eq(0).Text()))
		counts[label]++
		values[label] = normalize.CleanCell(cells.Eq(1).Text())
	})
	get := func(label string) string {
		if counts[label] != 1 {
			return ""
		}
		return values[label]
	}

	d := Detail{
		When:            get(labelWhen),
		Where:           get(labelWhere),
		AbstractDue:     get(labelAbstract),
		SubmissionDue:   get(labelSubmission),
		NotificationDue: get(labelNotification),
		FinalDue:        get(labelFinal),
	}

	var links []string
	doc.Find("div.contsec").First().Find("td").Each(func(_ int, td *goquery.Selection) {
		if text := td.Text(); strings.Contains(text, "Link:") {
			links = append(links, text)
		}
	})
	if len(links) == 1 {
		d.Link = normalize.CleanCell(strings.Replace(links[0], "Link:", "", 1))
	}
	return d, nil
}
