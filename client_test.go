package gotms_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ZaguanLabs/gotms"
	"github.com/ZaguanLabs/gotms/agent"
	"github.com/ZaguanLabs/gotms/cache"
)

const (
	tpB = "/api/v1/translation-projects/2/"
	tpC = "/api/v1/translation-projects/3/"
)

// testResponses builds a small server fixture: one language listing [A, B],
// one project listing [B, C]. The shared translation project is B.
func testResponses() map[string]agent.Body {
	return map[string]agent.Body{
		"languages": {
			"objects": []any{
				map[string]any{
					"code":                 "de_DE",
					"fullname":             "German",
					"resource_uri":         "/api/v1/languages/1/",
					"translation_projects": []any{"/api/v1/translation-projects/1/", tpB},
				},
			},
		},
		"projects": {
			"objects": []any{
				map[string]any{
					"code":                 "website",
					"fullname":             "Website",
					"resource_uri":         "/api/v1/projects/1/",
					"translation_projects": []any{tpB, tpC},
				},
			},
		},
		tpB: {
			"resource_uri": tpB,
			"language":     "/api/v1/languages/1/",
			"project":      "/api/v1/projects/1/",
		},
	}
}

func testClient(t *testing.T) (*gotms.Client, *agent.Mock, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.json")
	store, err := cache.Open(path)
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mock := agent.NewMock(testResponses())
	client := gotms.NewClient(mock, gotms.WithCache(store))
	return client, mock, path
}

func TestClient_Languages_CachedTransiently(t *testing.T) {
	client, mock, _ := testClient(t)
	ctx := context.Background()

	langs, err := client.Languages(ctx)
	if err != nil {
		t.Fatalf("Languages failed: %v", err)
	}
	if len(langs) != 1 || langs[0].Code() != "de_DE" {
		t.Fatalf("Languages = %v", langs)
	}

	if _, err := client.Languages(ctx); err != nil {
		t.Fatalf("second Languages failed: %v", err)
	}
	if mock.CallCount != 1 {
		t.Errorf("expected 1 upstream call, got %d", mock.CallCount)
	}
}

func TestClient_WithoutCacheAlwaysFetches(t *testing.T) {
	mock := agent.NewMock(testResponses())
	client := gotms.NewClient(mock)
	ctx := context.Background()

	if _, err := client.Languages(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Languages(ctx); err != nil {
		t.Fatal(err)
	}
	if mock.CallCount != 2 {
		t.Errorf("expected 2 upstream calls without a cache, got %d", mock.CallCount)
	}
}

func TestClient_FindLanguages_CachedPersistently(t *testing.T) {
	client, mock, _ := testClient(t)
	ctx := context.Background()

	langs, err := client.FindLanguages(ctx, gotms.Filters{"fullname": "German"})
	if err != nil {
		t.Fatalf("FindLanguages failed: %v", err)
	}
	if len(langs) != 1 {
		t.Fatalf("FindLanguages = %v", langs)
	}
	if mock.CallCount != 1 {
		t.Fatalf("expected 1 upstream call, got %d", mock.CallCount)
	}

	// An independently built, structurally equal filter set must hit the
	// same cache entry.
	f := gotms.Filters{}
	f["fullname"] = "German"
	if _, err := client.FindLanguages(ctx, f); err != nil {
		t.Fatalf("second FindLanguages failed: %v", err)
	}
	if mock.CallCount != 1 {
		t.Errorf("expected cache hit, got %d upstream calls", mock.CallCount)
	}
}

func TestClient_FindLanguages_EmptyResultIsCached(t *testing.T) {
	client, mock, _ := testClient(t)
	ctx := context.Background()

	langs, err := client.FindLanguages(ctx, gotms.Filters{"fullname": "Klingon"})
	if err != nil {
		t.Fatalf("FindLanguages failed: %v", err)
	}
	if len(langs) != 0 {
		t.Fatalf("expected no matches, got %v", langs)
	}
	calls := mock.CallCount

	// The cached empty result is a positive hit, not a miss.
	if _, err := client.FindLanguages(ctx, gotms.Filters{"fullname": "Klingon"}); err != nil {
		t.Fatal(err)
	}
	if mock.CallCount != calls {
		t.Errorf("cached empty result triggered %d extra upstream calls", mock.CallCount-calls)
	}
}

func TestClient_Search_Intersection(t *testing.T) {
	client, _, _ := testClient(t)
	ctx := context.Background()

	// Language side lists [A, B]; project side lists [B, C]. The search must
	// return exactly the resource fetched from B, not A or C.
	tps, err := client.SearchTranslationProjects(ctx,
		gotms.LanguageCriteria(gotms.Filters{"code": "de_DE"}),
		gotms.ProjectCriteria(gotms.Filters{"code": "website"}),
	)
	if err != nil {
		t.Fatalf("SearchTranslationProjects failed: %v", err)
	}

	if len(tps) != 1 {
		t.Fatalf("expected exactly one shared translation project, got %d", len(tps))
	}
	if tps[0].ResourceURI() != tpB {
		t.Errorf("ResourceURI = %q, want %q", tps[0].ResourceURI(), tpB)
	}
}

func TestClient_Search_Idempotent(t *testing.T) {
	client, mock, _ := testClient(t)
	ctx := context.Background()

	langIn := gotms.LanguageCriteria(gotms.Filters{"code": "de_DE"})
	projIn := gotms.ProjectCriteria(gotms.Filters{"code": "website"})

	if _, err := client.SearchTranslationProjects(ctx, langIn, projIn); err != nil {
		t.Fatalf("first search failed: %v", err)
	}
	first := mock.CallCount
	if first == 0 {
		t.Fatal("first search should have gone upstream")
	}

	// Second identical search must perform zero upstream calls.
	if _, err := client.SearchTranslationProjects(ctx, langIn, projIn); err != nil {
		t.Fatalf("second search failed: %v", err)
	}
	if mock.CallCount != first {
		t.Errorf("second search performed %d upstream calls, want 0", mock.CallCount-first)
	}
}

func TestClient_Search_ResolvedInputsSkipResolution(t *testing.T) {
	client, mock, _ := testClient(t)
	ctx := context.Background()

	lang := gotms.NewLanguage(gotms.Body{
		"resource_uri":         "/api/v1/languages/1/",
		"translation_projects": []any{tpB},
	})
	proj := gotms.NewProject(gotms.Body{
		"resource_uri":         "/api/v1/projects/1/",
		"translation_projects": []any{tpB},
	})

	tps, err := client.SearchTranslationProjects(ctx,
		gotms.LanguagesResolved(lang), gotms.ProjectsResolved(proj))
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(tps) != 1 {
		t.Fatalf("expected one result, got %d", len(tps))
	}

	// Only the shared translation project itself is fetched; no listing
	// endpoints are touched.
	for _, ep := range mock.Calls {
		if ep == "languages" || ep == "projects" {
			t.Errorf("resolved input triggered a %s listing fetch", ep)
		}
	}
}

func TestClient_Search_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	ctx := context.Background()

	store, err := cache.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	mock := agent.NewMock(testResponses())
	client := gotms.NewClient(mock, gotms.WithCache(store))

	langIn := gotms.LanguageCriteria(gotms.Filters{"code": "de_DE"})
	projIn := gotms.ProjectCriteria(gotms.Filters{"code": "website"})

	if _, err := client.SearchTranslationProjects(ctx, langIn, projIn); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	// New process: fresh store from the same file, an agent with no canned
	// responses. The search must be answered entirely from the persistent
	// tier.
	store2, err := cache.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()
	empty := agent.NewMock(nil)
	client2 := gotms.NewClient(empty, gotms.WithCache(store2))

	tps, err := client2.SearchTranslationProjects(ctx, langIn, projIn)
	if err != nil {
		t.Fatalf("search after restart failed: %v", err)
	}
	if len(tps) != 1 || tps[0].ResourceURI() != tpB {
		t.Fatalf("search after restart = %v", tps)
	}
	if empty.CallCount != 0 {
		t.Errorf("search after restart performed %d upstream calls, want 0", empty.CallCount)
	}
}

func TestClient_AgentErrorPropagates(t *testing.T) {
	client, mock, _ := testClient(t)
	mock.Err = &gotms.AgentError{Method: "GET", Endpoint: "languages", Status: 503, Retryable: true}
	ctx := context.Background()

	_, err := client.Languages(ctx)
	if err == nil {
		t.Fatal("expected error")
	}

	// The error arrives unmodified.
	var agentErr *gotms.AgentError
	if !errors.As(err, &agentErr) || agentErr.Status != 503 {
		t.Errorf("expected the original *AgentError, got %v", err)
	}
}

func TestClient_NoCacheWriteOnFetchError(t *testing.T) {
	client, mock, _ := testClient(t)
	ctx := context.Background()

	mock.Err = &gotms.AgentError{Method: "GET", Endpoint: "languages", Status: 500}
	if _, err := client.FindLanguages(ctx, gotms.Filters{"code": "de_DE"}); err == nil {
		t.Fatal("expected error")
	}

	// After the failure clears, the operation fetches upstream: the failed
	// attempt must not have cached anything.
	mock.Err = nil
	calls := mock.CallCount
	langs, err := client.FindLanguages(ctx, gotms.Filters{"code": "de_DE"})
	if err != nil {
		t.Fatalf("FindLanguages failed: %v", err)
	}
	if len(langs) != 1 {
		t.Fatalf("FindLanguages = %v", langs)
	}
	if mock.CallCount == calls {
		t.Error("expected an upstream fetch after the failed attempt")
	}
}

func TestClient_StoresAndUnits(t *testing.T) {
	responses := testResponses()
	responses["/api/v1/stores/9/"] = agent.Body{
		"name":         "messages.po",
		"resource_uri": "/api/v1/stores/9/",
		"units":        []any{"/api/v1/units/12/"},
	}
	responses["/api/v1/units/12/"] = agent.Body{
		"source_f":     "Hello",
		"target_f":     "Hallo",
		"resource_uri": "/api/v1/units/12/",
	}

	path := filepath.Join(t.TempDir(), "cache.json")
	store, err := cache.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	mock := agent.NewMock(responses)
	client := gotms.NewClient(mock, gotms.WithCache(store))
	ctx := context.Background()

	tp := gotms.NewTranslationProject(gotms.Body{"stores": []any{"/api/v1/stores/9/"}})
	stores, err := client.Stores(ctx, tp)
	if err != nil {
		t.Fatalf("Stores failed: %v", err)
	}
	if len(stores) != 1 || stores[0].Name() != "messages.po" {
		t.Fatalf("Stores = %v", stores)
	}

	units, err := client.Units(ctx, stores[0])
	if err != nil {
		t.Fatalf("Units failed: %v", err)
	}
	if len(units) != 1 || units[0].Target() != "Hallo" {
		t.Fatalf("Units = %v", units)
	}

	// Per-URI fetches are transiently cached.
	calls := mock.CallCount
	if _, err := client.Units(ctx, stores[0]); err != nil {
		t.Fatal(err)
	}
	if mock.CallCount != calls {
		t.Errorf("repeated Units performed %d upstream calls, want 0", mock.CallCount-calls)
	}
}
