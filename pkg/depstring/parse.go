package depstring

import (
	"strings"

	"github.com/warptools/buildorder/pkg/buildorderapi"
	"github.com/warptools/buildorder/pkg/depgraph"
)

// Parse reads the compact dependency notation into a Model.
//
// Entries are separated by ';'.  An entry is either a bare target name,
// or a target, a ':', and a comma-separated list of what it depends on:
//
//	A:B,C; B:C; C
//
// Whitespace around names is dropped, as are empty entries and empty list items.
// A target named in more than one entry keeps only its last declaration.
//
// Errors:
//
//   - buildorder-error-depstring-unparsable -- if an entry has more than one ':', or no target name.
func Parse(s string) (*depgraph.Model, error) {
	m := depgraph.New()
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		target, list, hasDeps := strings.Cut(entry, ":")
		if strings.Contains(list, ":") {
			return nil, buildorderapi.ErrorDepstringUnparsable(entry, "more than one ':' in entry")
		}
		target = strings.TrimSpace(target)
		if target == "" {
			return nil, buildorderapi.ErrorDepstringUnparsable(entry, "missing target name")
		}
		if !hasDeps {
			m.Declare(depgraph.Name(target))
			continue
		}
		var deps []depgraph.Name
		for _, d := range strings.Split(list, ",") {
			if d = strings.TrimSpace(d); d != "" {
				deps = append(deps, depgraph.Name(d))
			}
		}
		m.Declare(depgraph.Name(target), deps...)
	}
	return m, nil
}

// Render joins a build order with commas, no spaces.
func Render(order []depgraph.Name) string {
	var sb strings.Builder
	for i, n := range order {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(n))
	}
	return sb.String()
}
