package gotms

import "testing"

func TestOperationKey_Deterministic(t *testing.T) {
	// Structurally equal filters built independently must collide.
	f1 := Filters{"fullname": "German", "code": "de_DE"}
	f2 := Filters{}
	f2["code"] = "de_DE"
	f2["fullname"] = "German"

	k1 := OperationKey("languages", f1)
	k2 := OperationKey("languages", f2)
	if k1 != k2 {
		t.Errorf("equal filters produced different keys: %q vs %q", k1, k2)
	}
}

func TestOperationKey_SortedRendering(t *testing.T) {
	f := Filters{"zebra": "1", "alpha": "2"}
	got := OperationKey("projects", f)
	want := "projects?alpha=2&zebra=1"
	if got != want {
		t.Errorf("OperationKey = %q, want %q", got, want)
	}
}

func TestOperationKey_EmptyFilters(t *testing.T) {
	// An empty filter set still yields its own deterministic key, distinct
	// from the unfiltered list key.
	got := OperationKey("languages", Filters{})
	if got != "languages?" {
		t.Errorf("OperationKey = %q, want %q", got, "languages?")
	}
	if got == "languages" {
		t.Error("empty-filter key must not degrade to the list key")
	}

	if OperationKey("languages", nil) != got {
		t.Error("nil and empty filters should key identically")
	}
}

func TestOperationKey_Escaping(t *testing.T) {
	// Values containing the pair/join separators must not produce ambiguous
	// keys.
	k1 := OperationKey("projects", Filters{"a": "1&b=2"})
	k2 := OperationKey("projects", Filters{"a": "1", "b": "2"})
	if k1 == k2 {
		t.Error("escaped and structured filters must not collide")
	}
}

func TestSearchKey_TaggedInputs(t *testing.T) {
	byCriteria := searchKey("translation-projects",
		LanguageCriteria(Filters{"code": "de_DE"}),
		ProjectCriteria(Filters{"code": "web"}))

	same := searchKey("translation-projects",
		LanguageCriteria(Filters{"code": "de_DE"}),
		ProjectCriteria(Filters{"code": "web"}))

	if byCriteria != same {
		t.Errorf("identical inputs produced different keys: %q vs %q", byCriteria, same)
	}

	other := searchKey("translation-projects",
		LanguageCriteria(Filters{"code": "fr_FR"}),
		ProjectCriteria(Filters{"code": "web"}))
	if byCriteria == other {
		t.Error("different criteria must produce different keys")
	}
}

func TestSearchKey_ResolvedOrderIndependent(t *testing.T) {
	l1 := NewLanguage(Body{"resource_uri": "/api/v1/languages/1/"})
	l2 := NewLanguage(Body{"resource_uri": "/api/v1/languages/2/"})
	p := ProjectCriteria(Filters{})

	k1 := searchKey("translation-projects", LanguagesResolved(l1, l2), p)
	k2 := searchKey("translation-projects", LanguagesResolved(l2, l1), p)
	if k1 != k2 {
		t.Errorf("resolved input order leaked into key: %q vs %q", k1, k2)
	}
}
