// Command gotms queries a translation-management server through a two-tier
// cache.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ZaguanLabs/gotms"
	"github.com/ZaguanLabs/gotms/agent"
	"github.com/ZaguanLabs/gotms/cache"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = gotms.Version
	commit    = gotms.GitCommit
	buildDate = gotms.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gotms", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	server := fs.String("server", "", "API root URL (default: TMS_SERVER env)")
	token := fs.String("token", "", "Auth token (default: TMS_TOKEN env)")
	user := fs.String("user", "", "Account name for basic auth")
	cachePath := fs.String("cache", "", "Cache file path (default: "+cache.DefaultFilename+")")
	filters := fs.String("filter", "", "Comma-separated attribute filters (e.g. 'fullname=German')")
	langFilters := fs.String("lang-filter", "", "Language-side filters for search")
	projFilters := fs.String("project-filter", "", "Project-side filters for search")
	flush := fs.String("flush", "", "Flush cache tier before running: transient, persistent or all")
	rpm := fs.Int("rpm", 0, "Rate-limit requests per minute (0 to disable)")
	noRetry := fs.Bool("no-retry", false, "Disable retries on retryable errors")
	jsonOutput := fs.Bool("json", false, "Output result as JSON")
	showVersion := fs.Bool("version", false, "Show version")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	verbose := fs.Bool("verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gotms [flags] <operation>\n\n")
		fmt.Fprintf(stderr, "Operations: languages, projects, translation-projects,\n")
		fmt.Fprintf(stderr, "            find-languages, find-projects, search, flush\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", gotms.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("an operation is required")
	}
	op := fs.Arg(0)

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync() //nolint:errcheck
		logger = l
	}

	store, err := cache.Open(*cachePath, cache.WithLogger(logger))
	if err != nil {
		return err
	}
	defer store.Close()

	if *flush != "" {
		if err := flushTier(store, *flush); err != nil {
			return err
		}
		if !*quiet {
			fmt.Fprintf(stderr, "flushed %s cache\n", *flush)
		}
		if op == "flush" {
			return nil
		}
	} else if op == "flush" {
		return fmt.Errorf("flush operation requires --flush=transient|persistent|all")
	}

	srv := *server
	if srv == "" {
		srv = os.Getenv("TMS_SERVER")
	}
	if srv == "" {
		return fmt.Errorf("server URL required (--server or TMS_SERVER env)")
	}

	tok := *token
	if tok == "" {
		tok = os.Getenv("TMS_TOKEN")
	}

	a, err := agent.New(agent.Config{
		BaseURL:  srv,
		Username: *user,
		Token:    tok,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating agent: %w", err)
	}

	var requester gotms.Requester = a
	if *rpm > 0 {
		requester = gotms.NewRateLimitedAgent(requester, gotms.RateLimitConfig{RequestsPerMinute: *rpm})
	}
	if !*noRetry {
		requester = gotms.NewRetryableAgent(requester, gotms.DefaultRetryConfig())
	}

	client := gotms.NewClient(requester,
		gotms.WithCache(store),
		gotms.WithLogger(logger),
	)

	start := time.Now()
	result, err := runOperation(context.Background(), client, op, *filters, *langFilters, *projFilters)
	if err != nil {
		return err
	}

	if *jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		for _, line := range result.Lines {
			fmt.Fprintln(stdout, line)
		}
	}

	if !*quiet {
		fmt.Fprintf(stderr, "\n%d result(s) in %v\n", len(result.Lines), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// operationResult is the JSON output shape of a CLI operation.
type operationResult struct {
	Operation string   `json:"operation"`
	Lines     []string `json:"results"`
}

func runOperation(ctx context.Context, client *gotms.Client, op, filterSpec, langSpec, projSpec string) (*operationResult, error) {
	res := &operationResult{Operation: op}

	switch op {
	case "languages":
		langs, err := client.Languages(ctx)
		if err != nil {
			return nil, err
		}
		for _, l := range langs {
			res.Lines = append(res.Lines, fmt.Sprintf("%s\t%s", l.Code(), l.Fullname()))
		}

	case "projects":
		projs, err := client.Projects(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range projs {
			res.Lines = append(res.Lines, fmt.Sprintf("%s\t%s", p.Code(), p.Fullname()))
		}

	case "translation-projects":
		tps, err := client.TranslationProjects(ctx)
		if err != nil {
			return nil, err
		}
		for _, tp := range tps {
			res.Lines = append(res.Lines, tp.ResourceURI())
		}

	case "find-languages":
		f, err := parseFilters(filterSpec)
		if err != nil {
			return nil, err
		}
		langs, err := client.FindLanguages(ctx, f)
		if err != nil {
			return nil, err
		}
		for _, l := range langs {
			res.Lines = append(res.Lines, fmt.Sprintf("%s\t%s", l.Code(), l.Fullname()))
		}

	case "find-projects":
		f, err := parseFilters(filterSpec)
		if err != nil {
			return nil, err
		}
		projs, err := client.FindProjects(ctx, f)
		if err != nil {
			return nil, err
		}
		for _, p := range projs {
			res.Lines = append(res.Lines, fmt.Sprintf("%s\t%s", p.Code(), p.Fullname()))
		}

	case "search":
		lf, err := parseFilters(langSpec)
		if err != nil {
			return nil, err
		}
		pf, err := parseFilters(projSpec)
		if err != nil {
			return nil, err
		}
		tps, err := client.SearchTranslationProjects(ctx,
			gotms.LanguageCriteria(lf), gotms.ProjectCriteria(pf))
		if err != nil {
			return nil, err
		}
		for _, tp := range tps {
			res.Lines = append(res.Lines, tp.ResourceURI())
		}

	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}

	return res, nil
}

// parseFilters parses "k=v,k2=v2" into a filter set.
func parseFilters(spec string) (gotms.Filters, error) {
	f := gotms.Filters{}
	if spec == "" {
		return f, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q (want key=value)", pair)
		}
		f[k] = v
	}
	return f, nil
}

func flushTier(store *cache.Store, tier string) error {
	switch tier {
	case "transient":
		store.TransientFlush()
		return nil
	case "persistent":
		return store.PersistentFlush()
	case "all":
		return store.FlushAll()
	default:
		return fmt.Errorf("unknown cache tier %q (want transient, persistent or all)", tier)
	}
}
