package yjqy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_client_get_changelog = "client.get-changelog"

	changelogPage = "banben.php"
)

// ChangeLog is one entry of a school's software version history.
type ChangeLog struct {
	Date    time.Time
	Version string
	Text    string
}

// ParseChangeLog parses an entry of the form "20230901【v2.3】text".
func ParseChangeLog(value string) (ChangeLog, error) {
	date, rest, ok := strings.Cut(strings.TrimSpace(value), "【")
	if !ok {
		return ChangeLog{}, fmt.Errorf("changelog text has no '【'")
	}
	version, rest, ok := strings.Cut(rest, "】")
	if !ok {
		return ChangeLog{}, fmt.Errorf("changelog text has no '】'")
	}

	if len(date) != 8 {
		return ChangeLog{}, fmt.Errorf("changelog date must have 8 characters, got %q", date)
	}
	parsed, err := time.Parse("20060102", date)
	if err != nil {
		return ChangeLog{}, err
	}

	return ChangeLog{
		Date:    parsed,
		Version: version,
		Text:    strings.TrimSpace(rest),
	}, nil
}

// Changelog returns the version history shown on a school's banben.php.
func (c *Client) Changelog(ctx context.Context, code string) ([]ChangeLog, error) {
	ctx, span := tracer.Start(ctx, "client:Changelog")
	defer span.End()

	path := schoolPath(code, changelogPage)
	doc, err := c.fetch(ctx, http.MethodGet, path, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_get_changelog, err, code)
		return nil, err
	}

	var changelog []ChangeLog
	var parseErr error
	doc.Find("table tr:not(:first-child) td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		entry, err := ParseChangeLog(td.Text())
		if err != nil {
			parseErr = &ParseError{Page: path, Reason: "changelog entry", Err: err}
			return false
		}
		changelog = append(changelog, entry)
		return true
	})
	if parseErr != nil {
		c.tel.ReportBroken(report_client_get_changelog, parseErr, code)
		return nil, parseErr
	}

	return changelog, nil
}
