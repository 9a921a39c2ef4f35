package statementparser

import (
	"strings"

	"fjacquet/fintrack/internal/models"
)

// pageResult is what the extractor produced for one page.
type pageResult struct {
	transactions []models.Transaction
	lines        []models.LineResult
	coverage     models.PageCoverage
}

// extractPage walks the lines of one page. The section state starts outside
// on every page. A nil grammar marks every line as skipped.
func extractPage(g *grammar, pageNum int, text string, year int) pageResult {
	res := pageResult{coverage: models.PageCoverage{Page: pageNum}}
	examine := g != nil && g.examines(text)
	inside := false

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		outcome := models.LineSkipped

		switch {
		case !examine || line == "":
		case g.isHeader(line):
			inside = true
		case g.isIgnored(line):
		case g.isFooter(line):
			inside = false
		case !inside:
		case g.isNoise(line):
		default:
			outcome = models.LineMalformed
			if m := g.row.FindStringSubmatch(line); m != nil {
				if tx, err := g.build(m, year); err == nil {
					res.transactions = append(res.transactions, tx)
					outcome = models.LineMatched
				}
			}
		}

		res.record(models.LineResult{Page: pageNum, LineNum: i + 1, Text: line, Outcome: outcome})
	}

	return res
}

func (r *pageResult) record(lr models.LineResult) {
	r.lines = append(r.lines, lr)
	switch lr.Outcome {
	case models.LineMatched:
		r.coverage.Matched++
	case models.LineMalformed:
		r.coverage.Malformed++
	default:
		r.coverage.Skipped++
	}
}
