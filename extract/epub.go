package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/tessera/model"
)

// EPUBExtractor extracts text from EPUB e-books. Chapters are read in
// spine order and each becomes one page, so chunk provenance points back
// to a chapter index rather than a print page.
type EPUBExtractor struct{}

// NewEPUBExtractor creates an EPUB extractor.
func NewEPUBExtractor() *EPUBExtractor {
	return &EPUBExtractor{}
}

// epubContainer mirrors META-INF/container.xml, reduced to the rootfile
// path that locates the package document.
type epubContainer struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath string `xml:"full-path,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

// epubPackage mirrors the OPF package document, reduced to the manifest
// and spine needed to walk chapters in reading order.
type epubPackage struct {
	Manifest struct {
		Item []struct {
			ID   string `xml:"id,attr"`
			Href string `xml:"href,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRef []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// Extract opens the archive, resolves the spine, and parses each chapter
// as HTML. The reader is drained fully; EPUB is a zip container and needs
// random access.
func (e *EPUBExtractor) Extract(r io.Reader) ([]model.PageText, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read epub: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open epub archive: %w", err)
	}

	opfPath, err := containerRootfile(zr)
	if err != nil {
		return nil, err
	}

	var pkg epubPackage
	if err := readZipXML(zr, opfPath, &pkg); err != nil {
		return nil, err
	}
	if len(pkg.Spine.ItemRef) == 0 {
		return nil, fmt.Errorf("epub package %s has an empty spine", opfPath)
	}

	hrefs := make(map[string]string, len(pkg.Manifest.Item))
	for _, item := range pkg.Manifest.Item {
		hrefs[item.ID] = item.Href
	}

	baseDir := path.Dir(opfPath)
	pages := make([]model.PageText, 0, len(pkg.Spine.ItemRef))
	for _, ref := range pkg.Spine.ItemRef {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}

		blocks, err := chapterBlocks(zr, resolveHref(baseDir, href))
		if err != nil {
			return nil, err
		}
		pages = append(pages, model.PageText{
			Page:  len(pages),
			Lines: blockLines(blocks),
		})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("epub spine references no readable chapters")
	}
	return pages, nil
}

// chapterBlocks parses one spine entry as HTML and collects its text
// blocks.
func chapterBlocks(zr *zip.Reader, name string) ([]string, error) {
	f, err := openZipEntry(zr, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse chapter %s: %w", name, err)
	}
	return htmlBlocks(doc), nil
}

// containerRootfile returns the package document path named by
// META-INF/container.xml.
func containerRootfile(zr *zip.Reader) (string, error) {
	var c epubContainer
	if err := readZipXML(zr, "META-INF/container.xml", &c); err != nil {
		return "", err
	}
	if len(c.Rootfiles.Rootfile) == 0 || c.Rootfiles.Rootfile[0].FullPath == "" {
		return "", fmt.Errorf("epub container names no rootfile")
	}
	return c.Rootfiles.Rootfile[0].FullPath, nil
}

// readZipXML decodes the named archive entry into v.
func readZipXML(zr *zip.Reader, name string, v any) error {
	f, err := openZipEntry(zr, name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := xml.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func openZipEntry(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("epub entry %s not found", name)
}

// resolveHref joins a manifest href to the package document's directory,
// dropping any fragment and percent-encoding.
func resolveHref(baseDir, href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	if baseDir == "." || baseDir == "" {
		return href
	}
	return path.Join(baseDir, href)
}
