// SPDX-License-Identifier: MPL-2.0

// Package pathtpl implements flat placeholder substitution for path
// templates. Templates contain zero or more tokens of the form {name};
// Expand replaces each token that has a mapping entry and leaves unmatched
// tokens untouched, so a partially-specialized template can be re-expanded
// by a later stage with a different mapping set.
//
// This is deliberately not a general-purpose templating engine: no
// recursion, no conditionals, no re-expansion of inserted text. Values are
// substituted in a single pass, which keeps externally supplied values
// (such as import paths) from being re-interpreted as tokens.
package pathtpl

import "strings"

// Expand substitutes every {name} token in template that has an entry in
// vars. Tokens without a mapping entry pass through verbatim. Substituted
// values are never re-scanned for tokens.
func Expand(template string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))

	i := 0
	for i < len(template) {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i

		end := strings.IndexByte(template[open:], '}')
		if end < 0 {
			// No closing brace anywhere ahead; the rest is literal.
			b.WriteString(template[i:])
			break
		}
		end += open

		name := template[open+1 : end]
		if inner := strings.LastIndexByte(name, '{'); inner >= 0 {
			// A '{' inside the candidate token means the token actually
			// starts at the rightmost brace; everything before it is literal.
			b.WriteString(template[i : open+1+inner])
			i = open + 1 + inner
			continue
		}

		b.WriteString(template[i:open])
		if v, ok := vars[name]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(template[open : end+1])
		}
		i = end + 1
	}

	return b.String()
}

// HasUnresolved reports whether s still contains a potential placeholder.
// Callers that require a fully-concrete path should check this after Expand
// and raise their own error; Expand itself never fails on unmatched tokens.
func HasUnresolved(s string) bool {
	return strings.ContainsRune(s, '{')
}
