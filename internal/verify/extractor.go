// Package verify checks that a built page only references assets that exist
// in the output directory.
package verify

import (
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
)

// AssetRef is a stylesheet or script reference found in a page.
type AssetRef struct {
	URL       string // attribute value as written
	Tag       string // link or script
	Attribute string // href or src
	Line      int    // element ordinal, approximate position in the page
}

// ExtractAssetRefsFromReader extracts asset references from an HTML reader.
func ExtractAssetRefsFromReader(r io.Reader) ([]AssetRef, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Fatal().Build()
	}

	var refs []AssetRef
	var lineNum int

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			lineNum++
			switch n.Data {
			case "link":
				if href := getAttr(n, "href"); href != "" {
					refs = append(refs, AssetRef{URL: href, Tag: "link", Attribute: "href", Line: lineNum})
				}
			case "script":
				if src := getAttr(n, "src"); src != "" {
					refs = append(refs, AssetRef{URL: src, Tag: "script", Attribute: "src", Line: lineNum})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(doc)
	return refs, nil
}

// BuildMeta returns the content of the first <meta name="build"> element.
func BuildMeta(r io.Reader) (string, bool, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", false, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Fatal().Build()
	}

	var find func(*html.Node) (string, bool)
	find = func(n *html.Node) (string, bool) {
		if n.Type == html.ElementNode && n.Data == "meta" && getAttr(n, "name") == "build" {
			return getAttr(n, "content"), true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if v, ok := find(c); ok {
				return v, true
			}
		}
		return "", false
	}

	v, ok := find(doc)
	return v, ok, nil
}

// underPrefix returns the file name an URL points at when it is served from
// the static prefix. Query strings and fragments are ignored. The name may
// still escape the output directory; see localName.
func underPrefix(ref, prefix string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(u.Path, prefix)
	return name, name != ""
}

// localName converts a prefixed name to a path inside the output directory.
func localName(name string) (string, bool) {
	p := filepath.FromSlash(name)
	return p, filepath.IsLocal(p)
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
