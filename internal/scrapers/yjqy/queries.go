package yjqy

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"yjqy-scraper/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_client_get_queries       = "client.get-queries"
	report_client_get_input_columns = "client.get-input-columns"

	queryPage = "stu_chaxun.php"
)

// Query is an info query category offered by one school.
type Query struct {
	Id    int
	Label string
}

func (q Query) String() string {
	return fmt.Sprintf("%d (%s)", q.Id, q.Label)
}

// Queries returns the options of the query form's `xmid` select.
func (c *Client) Queries(ctx context.Context, code string) ([]Query, error) {
	ctx, span := tracer.Start(ctx, "client:Queries")
	defer span.End()

	path := schoolPath(code, queryPage)
	doc, err := c.fetch(ctx, http.MethodGet, path, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_get_queries, err, code)
		return nil, err
	}

	queries, err := parseQueries(doc, path)
	if err != nil {
		c.tel.ReportBroken(report_client_get_queries, err, code)
		return nil, err
	}
	return queries, nil
}

func parseQueries(doc *goquery.Document, page string) ([]Query, error) {
	set := map[Query]struct{}{}
	var parseErr error
	doc.Find("table select[name='xmid'] option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		value, ok := opt.Attr("value")
		if !ok {
			parseErr = &ParseError{Page: page, Reason: "query option has no value"}
			return false
		}
		id, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			parseErr = &ParseError{
				Page:   page,
				Reason: fmt.Sprintf("query option value %q is not an integer", value),
				Err:    err,
			}
			return false
		}
		set[Query{Id: id, Label: htmlutil.TrimmedText(opt)}] = struct{}{}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	queries := make([]Query, 0, len(set))
	for q := range set {
		queries = append(queries, q)
	}
	slices.SortFunc(queries, func(a, b Query) int {
		if a.Id != b.Id {
			return a.Id - b.Id
		}
		return strings.Compare(a.Label, b.Label)
	})
	return queries, nil
}

// InputColumn is one of the identity fields a query asks for before it
// returns results (ex. student number, name).
type InputColumn struct {
	Id   string
	Text string
}

// InputColumns returns the input columns required by query `id` of school `code`.
func (c *Client) InputColumns(ctx context.Context, code string, id int) ([]InputColumn, error) {
	ctx, span := tracer.Start(ctx, "client:InputColumns")
	defer span.End()

	path := schoolPath(code, queryPage)
	doc, err := c.fetch(ctx, http.MethodPost, path, map[string]string{
		"xmid": strconv.Itoa(id),
	})
	if err != nil {
		c.tel.ReportBroken(report_client_get_input_columns, err, code, id)
		return nil, err
	}

	var columns []InputColumn
	sel := doc.Find("table tr:nth-child(2) table tbody tr:nth-child(3) select")
	for i := range sel.Nodes {
		el := sel.Eq(i)
		colId, ok := el.Attr("id")
		if !ok {
			err := &ParseError{Page: path, Reason: "input column select has no id"}
			c.tel.ReportBroken(report_client_get_input_columns, err, code, id)
			return nil, err
		}
		columns = append(columns, InputColumn{
			Id:   colId,
			Text: htmlutil.TrimmedText(el),
		})
	}
	return columns, nil
}
