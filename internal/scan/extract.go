package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

const (
	// MaxContentBytes is the ceiling above which command files are
	// rejected without reading them. The same ceiling guards the
	// preview pane.
	MaxContentBytes = 512 << 10

	maxDescriptionWidth = 100
	descriptionEllipsis = "…"
	frontmatterFence    = "---"
)

var errEmptyContent = errors.New("empty content")

// parser builds a Record for one classified file. Each classification
// family gets its own strategy; one generic loop in the scanner picks
// the strategy and handles the size ceiling before any content is read.
type parser interface {
	wantsContent() bool
	parse(path string, info fs.FileInfo, scope Scope, content []byte) (*Record, error)
}

func parserFor(class Classification) parser {
	if class == ClassCommand {
		return commandParser{}
	}
	return plainParser{class: class}
}

// plainParser covers every classification that needs no content: the
// record is the file's identity plus its stat data.
type plainParser struct {
	class Classification
}

func (plainParser) wantsContent() bool { return false }

func (p plainParser) parse(path string, info fs.FileInfo, scope Scope, _ []byte) (*Record, error) {
	return &Record{
		Path:           path,
		Classification: p.class,
		SizeBytes:      info.Size(),
		LastModified:   info.ModTime(),
		Tags:           []string{string(scope)},
	}, nil
}

// commandParser extracts slash-command metadata from markdown content.
type commandParser struct{}

func (commandParser) wantsContent() bool { return true }

func (commandParser) parse(path string, info fs.FileInfo, scope Scope, content []byte) (*Record, error) {
	text := string(content)
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyContent
	}
	fm, body := splitFrontmatter(text)
	name, namespace := commandIdentity(path)
	tags := []string{string(scope)}
	if namespace != "" {
		tags = append(tags, namespace)
	}
	return &Record{
		Path:           path,
		Classification: ClassCommand,
		SizeBytes:      info.Size(),
		LastModified:   info.ModTime(),
		Tags:           tags,
		Command: &CommandMeta{
			Name:         name,
			Namespace:    namespace,
			Scope:        scope,
			Description:  describe(fm, body),
			HasArguments: hasArguments(fm, text),
		},
	}, nil
}

// frontmatter is the subset of command frontmatter the browser reads.
type frontmatter struct {
	Description  string `yaml:"description"`
	ArgumentHint string `yaml:"argument-hint"`
}

// splitFrontmatter separates a leading YAML frontmatter block from the
// body. Malformed YAML between the fences is skipped, not fatal: the
// block still does not count as body text.
func splitFrontmatter(content string) (frontmatter, string) {
	var fm frontmatter
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterFence {
		return fm, content
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterFence {
			block := strings.Join(lines[1:i], "\n")
			_ = yaml.Unmarshal([]byte(block), &fm)
			return fm, strings.Join(lines[i+1:], "\n")
		}
	}
	return fm, content
}

// commandIdentity derives the slash-command name and namespace from the
// file's location below its commands directory: git/commit.md becomes
// name "git:commit" with namespace "git".
func commandIdentity(path string) (name, namespace string) {
	segs := strings.Split(filepath.ToSlash(path), "/")
	idx := -1
	for i, seg := range segs {
		if seg == commandsDirName {
			idx = i
		}
	}
	if idx < 0 || idx == len(segs)-1 {
		return strings.TrimSuffix(segs[len(segs)-1], commandExt), ""
	}
	rel := append([]string{}, segs[idx+1:]...)
	rel[len(rel)-1] = strings.TrimSuffix(rel[len(rel)-1], commandExt)
	if len(rel) > 1 {
		namespace = rel[0]
	}
	return strings.Join(rel, ":"), namespace
}

// descriptionRules resolve a command description. Evaluated in order;
// the first rule that yields text wins. This table is the single place
// the priority lives.
var descriptionRules = []struct {
	name    string
	resolve func(fm frontmatter, body string) string
}{
	{"h1-heading", func(_ frontmatter, body string) string {
		for _, line := range bodyLines(body) {
			if rest, ok := strings.CutPrefix(line, "# "); ok {
				return strings.TrimSpace(rest)
			}
		}
		return ""
	}},
	{"frontmatter-description", func(fm frontmatter, _ string) string {
		return strings.TrimSpace(fm.Description)
	}},
	{"first-body-line", func(_ frontmatter, body string) string {
		if lines := bodyLines(body); len(lines) > 0 {
			return lines[0]
		}
		return ""
	}},
}

func describe(fm frontmatter, body string) string {
	for _, rule := range descriptionRules {
		if text := rule.resolve(fm, body); text != "" {
			return truncateDescription(text)
		}
	}
	return ""
}

// bodyLines returns the trimmed, non-empty lines of body with HTML
// comment blocks removed.
func bodyLines(body string) []string {
	var out []string
	inComment := false
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if inComment {
			if strings.Contains(line, "-->") {
				inComment = false
			}
			continue
		}
		if strings.HasPrefix(line, "<!--") {
			inComment = !strings.Contains(line, "-->")
			continue
		}
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func truncateDescription(s string) string {
	if runewidth.StringWidth(s) <= maxDescriptionWidth {
		return s
	}
	return runewidth.Truncate(s, maxDescriptionWidth, descriptionEllipsis)
}

// argumentMarkers decide whether a command accepts arguments. The table
// is checked in order against the raw content; any hit settles the
// question. A frontmatter argument-hint key counts as a hit too.
var argumentMarkers = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"arguments-var", regexp.MustCompile(`\$ARGUMENTS\b`)},
	{"angle-placeholder", regexp.MustCompile(`<[a-zA-Z][\w-]*>`)},
	{"bracket-placeholder", regexp.MustCompile(`\[[^\[\]]+\]`)},
	{"shell-interpolation", regexp.MustCompile(`\$\{[^{}]+\}`)},
	{"template-slot", regexp.MustCompile(`\{\{[^{}]+\}\}`)},
	{"long-flag", regexp.MustCompile(`(^|\s)--[a-zA-Z][\w-]*`)},
	{"short-flag", regexp.MustCompile(`(^|\s)-[a-zA-Z]\b`)},
}

func hasArguments(fm frontmatter, content string) bool {
	if strings.TrimSpace(fm.ArgumentHint) != "" {
		return true
	}
	for _, marker := range argumentMarkers {
		if marker.pattern.MatchString(content) {
			return true
		}
	}
	return false
}

// oversized formats the rejection for files beyond the content ceiling.
func oversized(size int64) error {
	return fmt.Errorf("file is %d bytes, over the %d byte ceiling", size, MaxContentBytes)
}
