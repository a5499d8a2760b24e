package source

import (
	"path"
	"regexp"
	"strings"
)

var (
	wikiLinkRe   = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)
	inlineLinkRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)
)

// extractLinks pulls all outbound reference targets from a note body, in
// document order. Wikilink targets are returned verbatim (minus any |alias
// part); inline link targets keep their path as written. External URLs are
// skipped.
func extractLinks(body []byte) []string {
	text := string(body)
	var targets []string

	for _, m := range wikiLinkRe.FindAllStringSubmatch(text, -1) {
		target := m[1]
		if i := strings.Index(target, "|"); i >= 0 {
			target = target[:i]
		}
		target = strings.TrimSpace(target)
		if target != "" {
			targets = append(targets, target)
		}
	}

	for _, m := range inlineLinkRe.FindAllStringSubmatch(text, -1) {
		target := m[1]
		if strings.Contains(target, "://") || strings.HasPrefix(target, "#") {
			continue
		}
		if i := strings.Index(target, "#"); i >= 0 {
			target = target[:i]
		}
		if strings.HasSuffix(target, ".md") {
			targets = append(targets, target)
		}
	}

	return targets
}

// resolver maps link targets to note keys. Wikilinks match either a full
// key or, when unambiguous, a bare note name; inline links resolve as
// relative paths.
type resolver struct {
	keys   map[string]bool
	byName map[string]string // note name -> key, "" when ambiguous
}

func newResolver(keys []string) *resolver {
	r := &resolver{keys: make(map[string]bool, len(keys)), byName: make(map[string]string)}
	for _, k := range keys {
		r.keys[k] = true
		name := path.Base(k)
		if prev, ok := r.byName[name]; ok && prev != k {
			r.byName[name] = ""
		} else {
			r.byName[name] = k
		}
	}
	return r
}

// resolve returns the key a target refers to, seen from the note at
// fromKey. The second result is false when the target is unknown or
// ambiguous.
func (r *resolver) resolve(fromKey, target string) (string, bool) {
	target = strings.TrimSuffix(target, ".md")

	if strings.Contains(target, "/") {
		// Path-style target: try relative to the linking note first, then
		// as a root-relative key.
		rel := path.Clean(path.Join(path.Dir(fromKey), target))
		if r.keys[rel] {
			return rel, true
		}
		if r.keys[target] {
			return target, true
		}
		return "", false
	}

	if r.keys[target] {
		return target, true
	}
	rel := path.Clean(path.Join(path.Dir(fromKey), target))
	if r.keys[rel] {
		return rel, true
	}
	if k, ok := r.byName[target]; ok && k != "" {
		return k, true
	}
	return "", false
}
