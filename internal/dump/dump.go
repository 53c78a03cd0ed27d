package dump

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"yjqy-scraper/internal/components/assert"
	"yjqy-scraper/internal/components/telemetry"
	"yjqy-scraper/internal/scrapers/yjqy"

	"github.com/schollz/progressbar/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_dumper_school = "dumper.school"
	report_dumper_write  = "dumper.write"
	report_dumper_count  = "dumper.records"
)

var tracer = telemetry.Tracer("yjqy.internal.dump")

// DefaultSkip lists school codes whose query page is known to be broken.
var DefaultSkip = []string{"yjsyxx"}

// Source is the part of *yjqy.Client the dumper depends on.
type Source interface {
	Schools(ctx context.Context) ([]yjqy.School, error)
	Queries(ctx context.Context, code string) ([]yjqy.Query, error)
	Records(ctx context.Context, code string, id int) (yjqy.ResultSet, error)
}

type Options struct {
	OutputDir string
	// Skip is the list of school codes that are never queried, nil means DefaultSkip.
	Skip []string
	// Progress receives a progress bar over the schools when not nil.
	Progress io.Writer
}

type SchoolResult struct {
	School  yjqy.School
	Dir     string
	Skipped bool
	Queries int
	Records int
}

type Summary struct {
	Schools []SchoolResult
}

func (s Summary) Records() int {
	total := 0
	for _, r := range s.Schools {
		total += r.Records
	}
	return total
}

type Dumper struct {
	src  Source
	opts Options
	tel  telemetry.API
}

func NewDumper(src Source, opts Options, tel telemetry.API) Dumper {
	assert.NotNil(src)
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.OutputDir)
	if opts.Skip == nil {
		opts.Skip = DefaultSkip
	}
	return Dumper{
		src:  src,
		opts: opts,
		tel:  telemetry.NewScopedAPI("dump", tel),
	}
}

// Run writes every result set of every school to
// <OutputDir>/<code><name>/<id>-<label>.json, it stops at the first error.
// Files written before the error are left in place.
func (d Dumper) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "dumper:Run")
	defer span.End()

	var summary Summary

	schools, err := d.src.Schools(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list schools")
		return summary, fmt.Errorf("list schools: %w", err)
	}

	var bar *progressbar.ProgressBar
	if d.opts.Progress != nil {
		bar = newProgressBar(d.opts.Progress, len(schools))
		defer bar.Finish()
	}

	for _, school := range schools {
		result, err := d.dumpSchool(ctx, school)
		summary.Schools = append(summary.Schools, result)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to dump school")
			d.tel.ReportBroken(report_dumper_school, err, school.Code, school.Name)
			return summary, err
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	span.SetAttributes(attribute.Int("records", summary.Records()))
	return summary, nil
}

func (d Dumper) dumpSchool(ctx context.Context, school yjqy.School) (SchoolResult, error) {
	ctx, span := tracer.Start(ctx, "dumper:dumpSchool")
	defer span.End()
	span.SetAttributes(
		attribute.String("code", school.Code),
		attribute.String("name", school.Name),
	)

	result := SchoolResult{
		School: school,
		Dir:    filepath.Join(d.opts.OutputDir, school.Code+school.Name),
	}
	slog.Info("SCHOOL", "code", school.Code, "name", school.Name)

	// the directory exists even for skipped schools
	err := os.MkdirAll(result.Dir, 0755)
	if err != nil {
		return result, fmt.Errorf("create directory for %s: %w", school.Code, err)
	}

	if slices.Contains(d.opts.Skip, school.Code) {
		result.Skipped = true
		d.tel.ReportDebug("skipping school", school.Code, school.Name)
		return result, nil
	}

	queries, err := d.src.Queries(ctx, school.Code)
	if err != nil {
		return result, fmt.Errorf("list queries of %s: %w", school.Code, err)
	}

	for _, q := range queries {
		slog.Info("QUERY", "code", school.Code, "name", school.Name, "id", q.Id, "label", q.Label)

		records, err := d.src.Records(ctx, school.Code, q.Id)
		if err != nil {
			return result, fmt.Errorf("query %v of %s: %w", q, school.Code, err)
		}

		path := filepath.Join(result.Dir, FileName(q))
		err = writeResultSet(path, records)
		if err != nil {
			d.tel.ReportBroken(report_dumper_write, err, path)
			return result, err
		}

		result.Queries++
		result.Records += len(records)
		d.tel.ReportCount(report_dumper_count, int64(len(records)))
	}

	return result, nil
}

// FileName is the name of the file a query's results are written to, path
// separators in the label are replaced so the file stays inside its school
// directory.
func FileName(q yjqy.Query) string {
	label := strings.ReplaceAll(q.Label, "/", "_")
	label = strings.ReplaceAll(label, string(filepath.Separator), "_")
	return fmt.Sprintf("%d-%s.json", q.Id, label)
}

func writeResultSet(path string, records yjqy.ResultSet) error {
	var buff bytes.Buffer
	err := EncodeResultSet(&buff, records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	err = os.WriteFile(path, buff.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EncodeResultSet writes `records` as a json array indented by 4 spaces with
// non-ascii and html characters written as is and no trailing newline.
// A nil result set is written as [].
func EncodeResultSet(w io.Writer, records yjqy.ResultSet) error {
	if records == nil {
		records = yjqy.ResultSet{}
	}

	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	err := enc.Encode(records)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes.TrimSuffix(buff.Bytes(), []byte("\n")))
	return err
}

func newProgressBar(w io.Writer, schools int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		schools,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("schools"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
