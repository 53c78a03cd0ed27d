package yjqy

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"yjqy-scraper/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

const (
	report_client_get_records = "client.get-records"

	// field label cells of the results table carry this class
	labelClass = "STYLE11"
	// section title rows read "共N条符合条件信息..."
	titleMarker = "符合条件信息"
)

// recordsForm is the search form submitted for a full listing, the "a"
// values are the site's wildcard.
func recordsForm(id int) map[string]string {
	return map[string]string{
		"xjh_inf":  "a",
		"name_inf": "a",
		"zkzh_inf": "a",
		"guanxi":   "1",
		"xmid":     strconv.Itoa(id),
	}
}

// Records submits query `id` of school `code` and extracts the results table.
func (c *Client) Records(ctx context.Context, code string, id int) (ResultSet, error) {
	ctx, span := tracer.Start(ctx, "client:Records")
	defer span.End()
	span.SetAttributes(
		attribute.String("school", code),
		attribute.Int("query", id),
	)

	path := schoolPath(code, queryPage)
	doc, err := c.fetch(ctx, http.MethodPost, path, recordsForm(id))
	if err != nil {
		c.tel.ReportBroken(report_client_get_records, err, code, id)
		return nil, err
	}

	container, err := findRowContainer(doc, path)
	if err != nil {
		c.tel.ReportBroken(report_client_get_records, err, code, id)
		return nil, err
	}
	records, err := SegmentRows(container)
	if err != nil {
		c.tel.ReportBroken(report_client_get_records, err, code, id)
		return nil, err
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

// findRowContainer returns the grandparent of the second STYLE11 element, the
// first one is a decorative header outside of the results table.
func findRowContainer(doc *goquery.Document, page string) (*goquery.Selection, error) {
	labels := doc.Find("." + labelClass)
	if labels.Length() < 2 {
		return nil, &ParseError{
			Page:   page,
			Reason: "results table not found: expected at least 2 " + labelClass + " elements",
		}
	}
	container := labels.Eq(1).Parent().Parent()
	if container.Length() == 0 {
		return nil, &ParseError{Page: page, Reason: "results table has no row container"}
	}
	return container, nil
}

// SegmentRows groups the direct child rows of `container` into records.
//
//   - rows without cells are ignored.
//   - a single cell row containing the title marker sets TITLE on the
//     current record.
//   - any other single cell row closes the current record, even an empty one.
//   - two cell rows add a label/value field to the current record.
//   - any other cell count fails with *MalformedRowError.
//
// A record is only emitted when a closing row follows it, so whatever comes
// after the last boundary is dropped. Results tables always end with one.
func SegmentRows(container *goquery.Selection) (ResultSet, error) {
	result := ResultSet{}
	current := NewRecord()

	rows := container.Children()
	for i := range rows.Nodes {
		row := rows.Eq(i)
		cells := row.Children()

		switch cells.Length() {
		case 0:
		case 1:
			text := row.Text()
			if strings.Contains(text, titleMarker) {
				current.Set(TitleKey, strings.TrimSpace(text))
				continue
			}
			result = append(result, current)
			current = NewRecord()
		case 2:
			current.Set(
				htmlutil.TrimmedText(cells.Eq(0)),
				htmlutil.TrimmedText(cells.Eq(1)),
			)
		default:
			return nil, &MalformedRowError{
				Row:   i,
				Cells: cells.Length(),
				Text:  strings.TrimSpace(row.Text()),
			}
		}
	}

	return result, nil
}
