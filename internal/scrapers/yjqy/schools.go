package yjqy

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"yjqy-scraper/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_client_get_schools = "client.get-schools"

	directoryPath = "/list/link_qy.php"
)

// School is a partner school of the site, Code is the path segment used in
// its urls (ex. "yjyz" in /sc/yjyz/).
type School struct {
	Code string
	Name string
}

// Schools returns every school linked from the partner directory page.
func (c *Client) Schools(ctx context.Context) ([]School, error) {
	ctx, span := tracer.Start(ctx, "client:Schools")
	defer span.End()

	doc, err := c.fetch(ctx, http.MethodGet, directoryPath, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_get_schools, err)
		return nil, err
	}

	schools, err := parseSchools(doc, c.BaseUrl.String()+"sc/")
	if err != nil {
		c.tel.ReportBroken(report_client_get_schools, err)
		return nil, err
	}

	c.tel.ReportCount(report_client_get_schools, int64(len(schools)))
	return schools, nil
}

// parseSchools derives schools from every anchor inside a table cell, the
// code is the href minus `prefix` and one trailing slash.
func parseSchools(doc *goquery.Document, prefix string) ([]School, error) {
	set := map[School]struct{}{}
	for _, a := range htmlutil.GetAnchors(doc.Find("table td a")) {
		if !a.HasHref {
			return nil, &ParseError{
				Page:   directoryPath,
				Reason: "school anchor has no href",
			}
		}
		code := strings.TrimPrefix(a.Href, prefix)
		code = strings.TrimSuffix(code, "/")
		set[School{Code: code, Name: a.Name}] = struct{}{}
	}

	schools := make([]School, 0, len(set))
	for s := range set {
		schools = append(schools, s)
	}
	slices.SortFunc(schools, func(a, b School) int {
		if a.Code != b.Code {
			return strings.Compare(a.Code, b.Code)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return schools, nil
}
