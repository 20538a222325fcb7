package verify

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/assetbuild/internal/logfields"
)

// Result lists the references checked in one page.
type Result struct {
	Page       string
	BuildStamp string     // content of the page's build meta element, if any
	Checked    []AssetRef // references under the static prefix
	Missing    []AssetRef // checked references whose file is not in the output directory
	Skipped    []AssetRef // references outside the static prefix
}

// OK reports whether every checked reference resolved.
func (r *Result) OK() bool { return len(r.Missing) == 0 }

// Verify checks page (a file inside outputDir) against the files in outputDir.
// References outside staticPrefix are skipped. A page with missing assets
// yields a validation error alongside the result.
func Verify(outputDir, page, staticPrefix string) (*Result, error) {
	pagePath := filepath.Join(outputDir, page)
	data, err := os.ReadFile(filepath.Clean(pagePath))
	if err != nil {
		return nil, errors.ReadError(pagePath, err).Build()
	}
	refs, err := ExtractAssetRefsFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	stamp, _, err := BuildMeta(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	res := &Result{Page: pagePath, BuildStamp: stamp}
	for _, ref := range refs {
		name, ok := underPrefix(ref.URL, staticPrefix)
		if !ok {
			res.Skipped = append(res.Skipped, ref)
			continue
		}
		res.Checked = append(res.Checked, ref)

		local, ok := localName(name)
		if !ok {
			res.Missing = append(res.Missing, ref)
			slog.Debug("Asset reference leaves the output directory", logfields.Path(pagePath), slog.String("url", ref.URL))
			continue
		}
		info, statErr := os.Stat(filepath.Join(outputDir, local))
		if statErr != nil || !info.Mode().IsRegular() {
			res.Missing = append(res.Missing, ref)
			slog.Debug("Asset reference unresolved", logfields.Path(pagePath), slog.String("url", ref.URL))
		}
	}

	if !res.OK() {
		urls := make([]string, 0, len(res.Missing))
		for _, m := range res.Missing {
			urls = append(urls, m.URL)
		}
		return res, errors.ValidationError("page references missing assets").
			WithContext("page", pagePath).
			WithContext("missing", strings.Join(urls, ", ")).
			Build()
	}
	return res, nil
}
