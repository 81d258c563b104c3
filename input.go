package gotms

// Tagged inputs for search operations. The caller states up front whether a
// side of the search is an already-resolved resource list or raw filter
// criteria; the client never inspects value types at runtime to tell the two
// apart.

// LanguageInput selects the language side of a search: either a resolved
// list of languages or filter criteria still to be materialized.
type LanguageInput struct {
	resolved   []*Language
	criteria   Filters
	isResolved bool
}

// LanguagesResolved builds an input from languages the caller already holds.
func LanguagesResolved(langs ...*Language) LanguageInput {
	return LanguageInput{resolved: langs, isResolved: true}
}

// LanguageCriteria builds an input from filter criteria; the client resolves
// it through FindLanguages, which applies its own cache policy.
func LanguageCriteria(f Filters) LanguageInput {
	return LanguageInput{criteria: f}
}

// canonical renders the input for cache-key derivation: sorted resource URIs
// for resolved lists, the canonical filter rendering otherwise.
func (in LanguageInput) canonical() string {
	if in.isResolved {
		ids := make([]string, len(in.resolved))
		for i, l := range in.resolved {
			ids[i] = l.ResourceURI()
		}
		return canonicalList(ids)
	}
	return in.criteria.Canonical()
}

// ProjectInput selects the project side of a search.
type ProjectInput struct {
	resolved   []*Project
	criteria   Filters
	isResolved bool
}

// ProjectsResolved builds an input from projects the caller already holds.
func ProjectsResolved(projs ...*Project) ProjectInput {
	return ProjectInput{resolved: projs, isResolved: true}
}

// ProjectCriteria builds an input from filter criteria; the client resolves
// it through FindProjects.
func ProjectCriteria(f Filters) ProjectInput {
	return ProjectInput{criteria: f}
}

func (in ProjectInput) canonical() string {
	if in.isResolved {
		ids := make([]string, len(in.resolved))
		for i, p := range in.resolved {
			ids[i] = p.ResourceURI()
		}
		return canonicalList(ids)
	}
	return in.criteria.Canonical()
}
