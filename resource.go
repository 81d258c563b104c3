package gotms

// Resource wrappers: thin structural views over a decoded response body.
// Wrappers alias the body they are built from; they never copy or validate
// it. Attribute accessors return zero values for absent fields.

// Language is a language registered on the server.
type Language struct {
	Body Body
}

// NewLanguage wraps a decoded body as a Language.
func NewLanguage(b Body) *Language {
	return &Language{Body: b}
}

// Code returns the locale code (e.g. "de_DE").
func (l *Language) Code() string { return l.Body.String("code") }

// Fullname returns the human-readable language name.
func (l *Language) Fullname() string { return l.Body.String("fullname") }

// ResourceURI returns the endpoint identifier of this language.
func (l *Language) ResourceURI() string { return l.Body.String("resource_uri") }

// TranslationProjects returns the endpoint identifiers of the translation
// projects associated with this language.
func (l *Language) TranslationProjects() []string {
	return l.Body.Strings("translation_projects")
}

// Direction returns the text direction of the language, "ltr" or "rtl".
func (l *Language) Direction() string { return Direction(l.Code()) }

// Project is a translatable project registered on the server.
type Project struct {
	Body Body
}

// NewProject wraps a decoded body as a Project.
func NewProject(b Body) *Project {
	return &Project{Body: b}
}

// Code returns the project's short code.
func (p *Project) Code() string { return p.Body.String("code") }

// Fullname returns the human-readable project name.
func (p *Project) Fullname() string { return p.Body.String("fullname") }

// SourceLanguage returns the endpoint identifier of the project's source
// language.
func (p *Project) SourceLanguage() string { return p.Body.String("source_language") }

// ResourceURI returns the endpoint identifier of this project.
func (p *Project) ResourceURI() string { return p.Body.String("resource_uri") }

// TranslationProjects returns the endpoint identifiers of the translation
// projects under this project.
func (p *Project) TranslationProjects() []string {
	return p.Body.Strings("translation_projects")
}

// TranslationProject is the translation of one project into one language.
type TranslationProject struct {
	Body Body
}

// NewTranslationProject wraps a decoded body as a TranslationProject.
func NewTranslationProject(b Body) *TranslationProject {
	return &TranslationProject{Body: b}
}

// ResourceURI returns the endpoint identifier of this translation project.
func (tp *TranslationProject) ResourceURI() string { return tp.Body.String("resource_uri") }

// Language returns the endpoint identifier of the project's language.
func (tp *TranslationProject) Language() string { return tp.Body.String("language") }

// Project returns the endpoint identifier of the translated project.
func (tp *TranslationProject) Project() string { return tp.Body.String("project") }

// Path returns the server-side path of the translation project.
func (tp *TranslationProject) Path() string { return tp.Body.String("pootle_path") }

// Stores returns the endpoint identifiers of the stores (translation files)
// under this translation project.
func (tp *TranslationProject) Stores() []string { return tp.Body.Strings("stores") }

// Store is a single translation file within a translation project.
type Store struct {
	Body Body
}

// NewStore wraps a decoded body as a Store.
func NewStore(b Body) *Store {
	return &Store{Body: b}
}

// Name returns the file name of the store.
func (s *Store) Name() string { return s.Body.String("name") }

// ResourceURI returns the endpoint identifier of this store.
func (s *Store) ResourceURI() string { return s.Body.String("resource_uri") }

// TranslationProject returns the endpoint identifier of the owning
// translation project.
func (s *Store) TranslationProject() string { return s.Body.String("translation_project") }

// Units returns the endpoint identifiers of the units in this store.
func (s *Store) Units() []string { return s.Body.Strings("units") }

// Unit is a single translatable segment within a store.
type Unit struct {
	Body Body
}

// NewUnit wraps a decoded body as a Unit.
func NewUnit(b Body) *Unit {
	return &Unit{Body: b}
}

// Source returns the source text of the unit.
func (u *Unit) Source() string { return u.Body.String("source_f") }

// Target returns the translated text, or "" if untranslated.
func (u *Unit) Target() string { return u.Body.String("target_f") }

// ResourceURI returns the endpoint identifier of this unit.
func (u *Unit) ResourceURI() string { return u.Body.String("resource_uri") }

// State returns the unit's workflow state code.
func (u *Unit) State() int { return u.Body.Int("state") }

// Translated reports whether the unit has a non-empty target.
func (u *Unit) Translated() bool { return u.Target() != "" }

func wrapLanguages(bodies []Body) []*Language {
	out := make([]*Language, len(bodies))
	for i, b := range bodies {
		out[i] = NewLanguage(b)
	}
	return out
}

func wrapProjects(bodies []Body) []*Project {
	out := make([]*Project, len(bodies))
	for i, b := range bodies {
		out[i] = NewProject(b)
	}
	return out
}

func wrapTranslationProjects(bodies []Body) []*TranslationProject {
	out := make([]*TranslationProject, len(bodies))
	for i, b := range bodies {
		out[i] = NewTranslationProject(b)
	}
	return out
}

func wrapStores(bodies []Body) []*Store {
	out := make([]*Store, len(bodies))
	for i, b := range bodies {
		out[i] = NewStore(b)
	}
	return out
}

func wrapUnits(bodies []Body) []*Unit {
	out := make([]*Unit, len(bodies))
	for i, b := range bodies {
		out[i] = NewUnit(b)
	}
	return out
}
