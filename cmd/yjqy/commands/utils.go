package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"yjqy-scraper/internal/scrapers/yjqy"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

func normalizeName(name string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(name), "")
}

// matchSchool picks the school whose code equals `arg`, failing that the
// school whose name is most similar to it.
func matchSchool(schools []yjqy.School, arg string) (yjqy.School, bool) {
	for _, s := range schools {
		if s.Code == arg {
			return s, true
		}
	}

	var best yjqy.School
	bestSimilarity := 0.0
	for _, s := range schools {
		similarity := matchr.JaroWinkler(normalizeName(arg), normalizeName(s.Name), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = s
		}
	}
	return best, bestSimilarity > 0
}

func resolveSchool(ctx context.Context, client *yjqy.Client, arg string) yjqy.School {
	schools, err := client.Schools(ctx)
	if err != nil {
		fatal("failed to list schools", err)
	}
	school, ok := matchSchool(schools, arg)
	if !ok {
		fatal("failed to resolve school", fmt.Errorf("no school matches %q", arg))
	}
	if school.Code != arg {
		slog.Info("resolved school", "arg", arg, "code", school.Code, "name", school.Name)
	}
	return school
}

func parseQueryId(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fatal("query id must be an integer", err)
	}
	return id
}
