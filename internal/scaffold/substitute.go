package scaffold

import (
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agentx-labs/expertkit/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder tokens recognised in the project template.
const (
	TokenProjectName          = "your_project_name"
	TokenPortNumeric          = "54322"
	TokenPortTemplated        = "${PORT}"
	TokenProjectNameTemplated = "${PROJECT_NAME}"
	TokenReadmeTitle          = "{PROJECT_NAME}"
)

// Substitution replaces every literal occurrence of Token with Value.
type Substitution struct {
	Token string
	Value string
}

// SubstitutionMap is an ordered list of substitutions. It is applied in a
// single pass: at each position the first token (in list order) that matches
// is replaced, and replaced text is never scanned again. Later tokens
// therefore cannot re-match values introduced by earlier ones.
type SubstitutionMap []Substitution

// Apply returns s with all substitutions applied.
func (m SubstitutionMap) Apply(s string) string {
	pairs := make([]string, 0, len(m)*2)
	for _, sub := range m {
		if sub.Token == "" {
			continue
		}
		pairs = append(pairs, sub.Token, sub.Value)
	}
	if len(pairs) == 0 {
		return s
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// SubstituteFile rewrites the file at path in place with m applied. The file
// keeps its permission bits; no backup is written. A symlink at path is first
// replaced by a regular copy of its target, so the target is never written.
func SubstituteFile(path string, m SubstitutionMap) error {
	if err := detachSymlink(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.FromFS(err, errors.EFileNotFound, "reading", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.FromFS(err, errors.EFileNotFound, "reading", path)
	}
	if !utf8.Valid(data) {
		return errors.NewWithDetails(errors.EEncoding,
			path+" is not valid UTF-8 text", map[string]string{errors.DetailPath: path})
	}

	out := m.Apply(string(data))
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return errors.FromFS(err, errors.EIO, "writing", path)
	}
	return nil
}

// detachSymlink replaces a symlink at path with a regular file holding the
// link target's content. Anything else, including a missing path, is left
// alone.
func detachSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	target, err := os.Stat(path)
	if err != nil {
		return errors.FromFS(err, errors.EFileNotFound, "reading symlink target of", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.FromFS(err, errors.EFileNotFound, "reading", path)
	}
	if err := os.Remove(path); err != nil {
		return errors.FromFS(err, errors.EIO, "removing symlink", path)
	}
	if err := os.WriteFile(path, data, target.Mode().Perm()); err != nil {
		return errors.FromFS(err, errors.EIO, "writing", path)
	}
	return nil
}

// EnvSubstitutions are applied to the project's .env.
func EnvSubstitutions(spec ProjectSpec) SubstitutionMap {
	port := strconv.Itoa(spec.Port())
	return SubstitutionMap{
		{TokenProjectName, spec.Domain()},
		{TokenPortNumeric, port},
		{TokenPortTemplated, port},
		{TokenProjectNameTemplated, spec.Domain()},
	}
}

// ReadmeSubstitutions are applied to README.md, the one human-facing
// document; it gets the title-cased project name.
func ReadmeSubstitutions(spec ProjectSpec) SubstitutionMap {
	return SubstitutionMap{
		{TokenReadmeTitle, TitleCase(spec.Domain())},
	}
}

// ConfigSubstitutions are applied to configs/project.yaml.
func ConfigSubstitutions(spec ProjectSpec) SubstitutionMap {
	return SubstitutionMap{
		{TokenProjectNameTemplated, spec.Domain()},
	}
}

// TitleCase title-cases every cased letter that follows an uncased rune and
// lower-cases the rest: "pinescript" becomes "Pinescript", "pine_script"
// becomes "Pine_Script" and "k8s" becomes "K8S".
func TitleCase(s string) string {
	titleRune := cases.Title(language.Und)
	lowerRune := cases.Lower(language.Und)
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		cased := unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
		switch {
		case cased && !prevCased:
			b.WriteString(titleRune.String(string(r)))
		case cased:
			b.WriteString(lowerRune.String(string(r)))
		default:
			b.WriteRune(r)
		}
		prevCased = cased
	}
	return b.String()
}
