package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// versionOperators is ordered so that longer operators match before their prefixes.
var versionOperators = []string{"===", "==", "~=", "!=", ">=", "<=", ">", "<"}

var requirementNameRegex = regexp.MustCompile(
	`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*(.*)$`,
)

// Specifier is a parsed requirement string.
//
// Supported forms are `name`, `name[extras]`, `name<op>version[,<op>version...]` and
// `name[extras] @ url`, each optionally followed by `; marker`. Bare URLs, VCS references,
// local paths and installer option lines are not supported.
type Specifier struct {
	// Raw is the trimmed input text.
	Raw string
	// Name is the package name as written.
	Name string
	// Extras lists the requested extras, if any.
	Extras []string
	// Constraint is the version constraint, e.g. "==2.31.0" or ">=1.0,<2".
	Constraint string
	// URL is set for direct references (`name @ url`).
	URL string
	// Marker is the environment marker following `;`, if any.
	Marker string
}

// ParseSpecifier parses a requirement string.
// It returns ErrUnsupportedSpecifier for syntax outside the supported grammar.
func ParseSpecifier(raw string) (Specifier, error) {
	text := strings.TrimSpace(raw)
	spec := Specifier{Raw: text}

	body, marker, _ := strings.Cut(text, ";")
	body = strings.TrimSpace(body)
	spec.Marker = strings.TrimSpace(marker)

	if body == "" || strings.HasPrefix(body, "-") {
		return Specifier{}, zerr.With(ErrUnsupportedSpecifier, "specifier", text)
	}

	if left, url, ok := strings.Cut(body, "@"); ok {
		if strings.TrimSpace(url) == "" {
			return Specifier{}, zerr.With(ErrUnsupportedSpecifier, "specifier", text)
		}
		m := requirementNameRegex.FindStringSubmatch(strings.TrimSpace(left))
		if m == nil || m[3] != "" {
			return Specifier{}, zerr.With(ErrUnsupportedSpecifier, "specifier", text)
		}
		spec.Name = m[1]
		spec.Extras = splitExtras(m[2])
		spec.URL = strings.TrimSpace(url)
		return spec, nil
	}

	m := requirementNameRegex.FindStringSubmatch(body)
	if m == nil {
		return Specifier{}, zerr.With(ErrUnsupportedSpecifier, "specifier", text)
	}
	spec.Name = m[1]
	spec.Extras = splitExtras(m[2])

	constraint := strings.TrimSpace(m[3])
	if constraint != "" {
		if !validConstraint(constraint) {
			return Specifier{}, zerr.With(ErrUnsupportedSpecifier, "specifier", text)
		}
		spec.Constraint = strings.ReplaceAll(constraint, " ", "")
	}

	return spec, nil
}

// Pinned reports whether the specifier pins exactly one version.
func (s Specifier) Pinned() bool {
	return (strings.HasPrefix(s.Constraint, "==") || strings.HasPrefix(s.Constraint, "===")) &&
		!strings.Contains(s.Constraint, ",")
}

// Describe renders how the requirement will be recorded, e.g.
// "requests pinned to 2.31.0" or "uvicorn[standard] unpinned".
func (s Specifier) Describe() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if len(s.Extras) > 0 {
		b.WriteString("[" + strings.Join(s.Extras, ",") + "]")
	}

	switch {
	case s.URL != "":
		b.WriteString(" from " + s.URL)
	case s.Pinned():
		b.WriteString(" pinned to " + strings.TrimLeft(s.Constraint, "="))
	case s.Constraint != "":
		b.WriteString(" constrained to " + s.Constraint)
	default:
		b.WriteString(" unpinned")
	}

	if s.Marker != "" {
		b.WriteString(" when " + s.Marker)
	}
	return b.String()
}

func validConstraint(constraint string) bool {
	for clause := range strings.SplitSeq(constraint, ",") {
		clause = strings.TrimSpace(clause)
		op := matchOperator(clause)
		if op == "" {
			return false
		}
		version := strings.TrimSpace(strings.TrimPrefix(clause, op))
		if version == "" || strings.ContainsAny(version, " \t<>=!~") {
			return false
		}
	}
	return true
}

func matchOperator(clause string) string {
	for _, op := range versionOperators {
		if strings.HasPrefix(clause, op) {
			return op
		}
	}
	return ""
}

func splitExtras(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var extras []string
	for extra := range strings.SplitSeq(raw, ",") {
		if extra = strings.TrimSpace(extra); extra != "" {
			extras = append(extras, extra)
		}
	}
	return extras
}
