package drift

import (
	"fmt"
	"regexp"
	"strings"

	"docdrift/internal/fuzzy"
	"docdrift/internal/manifest"
	"docdrift/internal/tags"
)

// checkDeprecated flags exports where the deprecated flag and the
// @deprecated tag disagree, in either direction.
func checkDeprecated(exp *manifest.Export) []Drift {
	tagged := exp.HasTag("deprecated")
	if tagged == exp.Deprecated {
		return nil
	}

	if exp.Deprecated {
		return []Drift{{
			Type:       DeprecatedMismatch,
			Target:     exp.Name,
			Issue:      fmt.Sprintf("%q is deprecated in the declaration but the documentation has no @deprecated tag", exp.Name),
			Suggestion: "Add an @deprecated tag describing the replacement",
		}}
	}
	return []Drift{{
		Type:       DeprecatedMismatch,
		Target:     exp.Name,
		Issue:      fmt.Sprintf("Documentation marks %q as @deprecated but the declaration is not deprecated", exp.Name),
		Suggestion: "Remove the stale @deprecated tag",
	}}
}

// visibility tag name -> normalized documented visibility.
var docVisibilityTags = map[string]string{
	"internal":  "internal",
	"alpha":     "internal",
	"private":   "private",
	"protected": "protected",
	"public":    "public",
}

// documentedVisibility returns the visibility implied by the tags, or ""
// when no visibility tag is present.
func documentedVisibility(tagList []manifest.Tag) string {
	for _, t := range tagList {
		if vis, ok := docVisibilityTags[t.Name]; ok {
			return vis
		}
	}
	return ""
}

// visibilityMatches applies the asymmetric matching rule: documented
// "internal" accepts any actual visibility that is not public; "public"
// requires public; "protected"/"private" require exact equality.
func visibilityMatches(documented, actual string) bool {
	switch documented {
	case "internal":
		return actual != "public"
	case "public":
		return actual == "public"
	default:
		return documented == actual
	}
}

// checkVisibility compares visibility tags against actual visibility, once
// at export level (exports are always structurally public) and once per
// member (defaulting to public unless explicitly set).
func checkVisibility(exp *manifest.Export) []Drift {
	var out []Drift

	if doc := documentedVisibility(exp.Tags); doc != "" && !visibilityMatches(doc, "public") {
		out = append(out, Drift{
			Type:       VisibilityMismatch,
			Target:     exp.Name,
			Issue:      fmt.Sprintf("Documentation marks %q as %s, but it is a public export", exp.Name, doc),
			Suggestion: "Remove the visibility tag or stop exporting the symbol",
		})
	}

	for i := range exp.Members {
		member := &exp.Members[i]
		doc := documentedVisibility(member.Tags)
		if doc == "" {
			continue
		}
		actual := member.Visibility
		if actual == "" {
			actual = "public"
		}
		if visibilityMatches(doc, actual) {
			continue
		}
		out = append(out, Drift{
			Type:       VisibilityMismatch,
			Target:     member.Name,
			Issue:      fmt.Sprintf("Documentation marks %q as %s, but the declaration is %s", member.Name, doc, actual),
			Suggestion: fmt.Sprintf("Align the tag with the declared %s visibility", actual),
		})
	}

	return out
}

var (
	linkRe       = regexp.MustCompile(`\{@(?:link|see|inheritDoc)\s+([^}]+)\}`)
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`]*`")
)

// checkBrokenLinks resolves {@link X}, {@see X}, and {@inheritDoc X}
// targets in the description and all non-example tag texts against the
// registry. Code spans are stripped first; URL-shaped and
// module-specifier-shaped targets are skipped.
func checkBrokenLinks(exp *manifest.Export, reg *manifest.Registry) []Drift {
	texts := []string{exp.Description}
	for _, t := range exp.Tags {
		if t.Name == "example" {
			continue
		}
		texts = append(texts, t.Text)
	}

	var out []Drift
	seen := make(map[string]struct{})
	for _, text := range texts {
		text = fencedCodeRe.ReplaceAllString(text, "")
		text = inlineCodeRe.ReplaceAllString(text, "")

		for _, m := range linkRe.FindAllStringSubmatch(text, -1) {
			target := linkTarget(m[1])
			if target == "" {
				continue
			}
			if _, dup := seen[target]; dup {
				continue
			}
			seen[target] = struct{}{}

			if strings.Contains(target, "/") || strings.Contains(target, "@") {
				continue // module specifier or URL, not a manifest reference
			}

			root, _, _ := strings.Cut(target, ".")
			if reg.Has(root) || reg.Has(target) {
				continue
			}

			d := Drift{
				Type:   BrokenLink,
				Target: target,
				Issue:  fmt.Sprintf("Link target %q does not resolve to any export or type", target),
			}
			if match := fuzzy.FindClosestMatch(root, reg.AllNames()); match != nil {
				d.Suggestion = fmt.Sprintf("Did you mean %q?", match.Value)
			}
			out = append(out, d)
		}
	}
	return out
}

// linkTarget extracts the target token from link text, which may carry a
// trailing label: {@link Target label} or {@link Target|label}.
func linkTarget(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " |"); i >= 0 {
		s = s[:i]
	}
	return s
}

// checkAsync runs two independent checks on the Promise-ness of the
// declaration versus the documentation: a declared Promise return that the
// docs never mention, and documented async behavior on a non-Promise
// declaration.
func checkAsync(exp *manifest.Export) []Drift {
	declared := declaredReturnType(exp)
	declaredPromise := strings.HasPrefix(strings.ToLower(tags.NormalizeType(declared)), "promise<")

	docMentions := exp.HasTag("async")
	for _, name := range []string{"returns", "return"} {
		for _, t := range exp.TagsNamed(name) {
			if strings.Contains(strings.ToLower(t.Text), "promise") {
				docMentions = true
			}
		}
	}

	var out []Drift
	if declaredPromise && !docMentions {
		out = append(out, Drift{
			Type:       AsyncMismatch,
			Target:     "returns",
			Issue:      fmt.Sprintf("%q returns a Promise but the documentation never mentions it", exp.Name),
			Suggestion: "Document the Promise return or add an @async tag",
		})
	}
	if !declaredPromise && docMentions && declared != "" {
		out = append(out, Drift{
			Type:       AsyncMismatch,
			Target:     "returns",
			Issue:      fmt.Sprintf("Documentation describes %q as async but the declaration does not return a Promise", exp.Name),
			Suggestion: fmt.Sprintf("Update the docs to describe the %q return value", declared),
		})
	}
	return out
}
