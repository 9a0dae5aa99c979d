package snippet

import (
	"fmt"
	"strings"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultToken is the sentinel that selects the default target set.
const DefaultToken = "default"

// Target names a language and client library combination.
type Target struct {
	ID       string
	Language string
	Library  string
}

// Label returns a display name such as "Python (requests)".
func (t Target) Label() string {
	return fmt.Sprintf("%s (%s)", displayName(t.Language), t.Library)
}

var displayNames = map[string]string{
	"c":          "C",
	"csharp":     "C#",
	"go":         "Go",
	"javascript": "JavaScript",
	"node":       "Node.js",
	"objc":       "Objective-C",
	"ocaml":      "OCaml",
	"php":        "PHP",
}

func displayName(lang string) string {
	if name, ok := displayNames[lang]; ok {
		return name
	}
	return cases.Title(language.English).String(lang)
}

// vocabulary is the fixed set of supported targets, in listing order.
var vocabulary = []Target{
	{"c_libcurl", "c", "libcurl"},
	{"csharp_restsharp", "csharp", "restsharp"},
	{"go_native", "go", "native"},
	{"java_okhttp", "java", "okhttp"},
	{"java_unirest", "java", "unirest"},
	{"javascript_jquery", "javascript", "jquery"},
	{"javascript_xhr", "javascript", "xhr"},
	{"node_native", "node", "native"},
	{"node_request", "node", "request"},
	{"node_unirest", "node", "unirest"},
	{"objc_nsurlsession", "objc", "nsurlsession"},
	{"ocaml_cohttp", "ocaml", "cohttp"},
	{"php_curl", "php", "curl"},
	{"php_http1", "php", "http1"},
	{"php_http2", "php", "http2"},
	{"python_python3", "python", "python3"},
	{"python_requests", "python", "requests"},
	{"ruby_native", "ruby", "native"},
	{"shell_curl", "shell", "curl"},
	{"shell_httpie", "shell", "httpie"},
	{"shell_wget", "shell", "wget"},
	{"swift_nsurlsession", "swift", "nsurlsession"},
}

// defaultIDs is the built-in selection: C-family, scripting and shell.
var defaultIDs = []string{
	"c_libcurl",
	"csharp_restsharp",
	"go_native",
	"java_okhttp",
	"node_native",
	"python_requests",
	"shell_curl",
}

var byID = func() map[string]Target {
	m := make(map[string]Target, len(vocabulary))
	for _, t := range vocabulary {
		m[t.ID] = t
	}
	return m
}()

// Targets returns the supported vocabulary.
func Targets() []Target {
	out := make([]Target, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Lookup returns the target with the given identifier.
func Lookup(id string) (Target, bool) {
	t, ok := byID[id]
	return t, ok
}

// IsDefault reports whether id belongs to the default set.
func IsDefault(id string) bool {
	for _, d := range defaultIDs {
		if d == id {
			return true
		}
	}
	return false
}

// TargetSet is an ordered, immutable set of validated target identifiers.
type TargetSet struct {
	ids []string
}

// DefaultSet returns the built-in default target set.
func DefaultSet() TargetSet {
	return TargetSet{ids: append([]string(nil), defaultIDs...)}
}

// IDs returns a copy of the identifiers in order.
func (s TargetSet) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of targets.
func (s TargetSet) Len() int {
	return len(s.ids)
}

// String joins the identifiers with commas.
func (s TargetSet) String() string {
	return strings.Join(s.ids, ",")
}

// ParseTargets validates caller-supplied identifiers.
//
// The "default" token selects the default set without validating the other
// tokens. An empty list also selects the default set; the returned flag is
// then true so callers can warn about it. Any unknown identifier is a
// configuration error naming it. Duplicates keep their first position.
func ParseTargets(ids []string) (set TargetSet, implicit bool, err error) {
	if len(ids) == 0 {
		return DefaultSet(), true, nil
	}

	for _, id := range ids {
		if strings.TrimSpace(id) == DefaultToken {
			return DefaultSet(), false, nil
		}
	}

	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if _, ok := byID[id]; !ok {
			return TargetSet{}, false, errors.WithHint(
				errors.Config(errors.Newf("unknown target %q", id)),
				"run `oasamples targets` to list supported targets",
			)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return TargetSet{ids: out}, false, nil
}

// Resolve parses ids and warns through log when the default set is used
// because no targets were given.
func Resolve(ids []string, log *logger.Logger) (TargetSet, error) {
	set, implicit, err := ParseTargets(ids)
	if err != nil {
		return TargetSet{}, err
	}
	if implicit {
		log.Warn("no targets given, using the default set", "targets", set.String())
	}
	return set, nil
}
