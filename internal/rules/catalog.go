// Package rules stores the convention documents devrules ships for AI
// coding assistants. Documents are plain Markdown with YAML frontmatter;
// the package only parses, lists and retrieves them.
package rules

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed assets/*.md
var assets embed.FS

// assetsDir is the directory of the embedded documents inside assets.
const assetsDir = "assets"

var (
	// ErrRuleNotFound indicates no rule has the requested name.
	ErrRuleNotFound = errors.New("rules: rule not found")

	// ErrInvalidFrontmatter indicates a document without a parseable
	// frontmatter block or without a name.
	ErrInvalidFrontmatter = errors.New("rules: invalid frontmatter")

	// ErrDuplicateRule indicates two documents declare the same name.
	ErrDuplicateRule = errors.New("rules: duplicate rule name")
)

// Rule is one convention document.
type Rule struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Globs       []string `yaml:"globs,omitempty"`

	// Body is the Markdown after the frontmatter block.
	Body string `yaml:"-"`
	// Path is the document's path inside its file system.
	Path string `yaml:"-"`
}

// Catalog is an immutable, name-indexed set of rules.
type Catalog struct {
	rules []Rule
	index map[string]int
}

// Default loads the documents embedded in the binary.
func Default() (*Catalog, error) {
	return Load(assets, assetsDir)
}

// Load parses every *.md file directly under dir in fsys.
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("list rule documents: %w", err)
	}

	c := &Catalog{index: make(map[string]int, len(paths))}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		r, err := Parse(p, data)
		if err != nil {
			return nil, err
		}
		c.rules = append(c.rules, r)
	}

	sort.SliceStable(c.rules, func(i, j int) bool {
		if c.rules[i].Category != c.rules[j].Category {
			return c.rules[i].Category < c.rules[j].Category
		}
		return c.rules[i].Name < c.rules[j].Name
	})

	for i, r := range c.rules {
		key := lookupKey(r.Name)
		if prev, ok := c.index[key]; ok {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateRule, r.Name, c.rules[prev].Path, r.Path)
		}
		c.index[key] = i
	}
	return c, nil
}

// Parse splits a document into frontmatter and body.
func Parse(name string, data []byte) (Rule, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	const fence = "---\n"
	if !bytes.HasPrefix(data, []byte(fence)) {
		return Rule{}, fmt.Errorf("%s: %w: missing opening fence", name, ErrInvalidFrontmatter)
	}
	rest := data[len(fence):]

	var head, body []byte
	if end := bytes.Index(rest, []byte("\n"+fence)); end >= 0 {
		head, body = rest[:end], rest[end+1+len(fence):]
	} else if bytes.HasSuffix(rest, []byte("\n---")) {
		head = rest[:len(rest)-len("\n---")]
	} else {
		return Rule{}, fmt.Errorf("%s: %w: missing closing fence", name, ErrInvalidFrontmatter)
	}

	var r Rule
	if err := yaml.Unmarshal(head, &r); err != nil {
		return Rule{}, fmt.Errorf("%s: %w: %v", name, ErrInvalidFrontmatter, err)
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return Rule{}, fmt.Errorf("%s: %w: name is required", name, ErrInvalidFrontmatter)
	}
	r.Body = strings.TrimLeft(string(body), "\n")
	r.Path = name
	return r, nil
}

// List returns all rules sorted by category, then name.
func (c *Catalog) List() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Names returns rule names in List order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// Get returns the rule with the given name. Lookup ignores case and
// Unicode normalization form.
func (c *Catalog) Get(name string) (Rule, error) {
	i, ok := c.index[lookupKey(name)]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	return c.rules[i], nil
}

// Categories returns the distinct categories in List order.
func (c *Catalog) Categories() []string {
	var out []string
	for _, r := range c.rules {
		if len(out) == 0 || out[len(out)-1] != r.Category {
			out = append(out, r.Category)
		}
	}
	return out
}

// DisplayCategory title-cases a category for display.
func DisplayCategory(category string) string {
	if category == "" {
		return "Uncategorized"
	}
	return cases.Title(language.English).String(category)
}

func lookupKey(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}
