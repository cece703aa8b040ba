package codec

import (
	"path"
	"strings"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

// RewriteURLs applies fn to every URL in the graph in place: content
// roots, source roots, excluded URLs and library roots.
func RewriteURLs(g *domain.Graph, fn func(string) string) {
	if g == nil {
		return
	}
	for _, m := range g.Modules {
		cr := &m.ContentRoot
		if cr.URL != "" {
			cr.URL = fn(cr.URL)
		}
		for i := range cr.SourceRoots {
			cr.SourceRoots[i].URL = fn(cr.SourceRoots[i].URL)
		}
		for i := range cr.ExcludedURLs {
			cr.ExcludedURLs[i] = fn(cr.ExcludedURLs[i])
		}
	}
	for _, l := range g.Libraries {
		for i := range l.Roots {
			l.Roots[i].URL = fn(l.Roots[i].URL)
		}
	}
}

// CropURL reduces a file URL to its last path element, keeping the scheme.
// It makes exported graphs independent of the host they were built on.
func CropURL(u string) string {
	const scheme = "file://"
	rest, ok := strings.CutPrefix(u, scheme)
	if !ok {
		return u
	}
	if rest == "" {
		return u
	}
	return scheme + path.Base(strings.TrimSuffix(rest, "/"))
}
