// package pages extracts release entries from saved RateYourMusic list pages.
//
// Pages are static HTML captured to local disk beforehand; nothing here
// touches the network. A page is either parsed completely or rejected:
// partial rows would silently corrupt the playlist built downstream, so
// every structural irregularity aborts the whole page.
package pages

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/shared"
)

const (
	entrySelector  = "td.main_entry"
	artistSelector = "a.list_artist"
	albumSelector  = "a.list_album"

	// Release URLs containing this segment are singles; everything else is
	// treated as an album or EP.
	singleURLSegment = "/release/single/"
)

// Parser reads saved list pages from a directory.
type Parser struct {
	path string
}

// NewParser creates a Parser rooted at the given pages directory.
func NewParser(path string) *Parser {
	return &Parser{path: path}
}

// Path returns the pages directory this parser reads from.
func (p *Parser) Path() string {
	return p.path
}

// Parse extracts all release entries from one HTML document.
//
// Returns an error wrapping [shared.ErrMalformedPage] when the document has
// no entry rows, a row is missing its release link or artist label, or the
// number of release URLs disagrees with the number of (artist, title) pairs.
func (p *Parser) Parse(r io.Reader) ([]models.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	rows := doc.Find(entrySelector)
	if rows.Length() == 0 {
		return nil, fmt.Errorf("%w: no entries found", shared.ErrMalformedPage)
	}

	var urls []string
	type pair struct{ artist, title string }
	var pairs []pair
	var rowErr error

	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		album := row.Find(albumSelector).First()
		href, ok := album.Attr("href")
		if !ok || href == "" {
			rowErr = fmt.Errorf("%w: entry %d has no release URL", shared.ErrMalformedPage, i)
			return false
		}
		urls = append(urls, href)

		artist := strings.TrimSpace(row.Find(artistSelector).First().Text())
		title := strings.TrimSpace(album.Text())
		if artist == "" || title == "" {
			rowErr = fmt.Errorf("%w: entry %d missing artist or title label", shared.ErrMalformedPage, i)
			return false
		}
		pairs = append(pairs, pair{artist: artist, title: title})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no URLs found", shared.ErrMalformedPage)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no artist/title pairs found", shared.ErrMalformedPage)
	}
	if len(urls) != len(pairs) {
		return nil, fmt.Errorf("%w: %d URLs but %d artist/title pairs", shared.ErrMalformedPage, len(urls), len(pairs))
	}

	entries := make([]models.Entry, 0, len(urls))
	for i, url := range urls {
		kind := models.KindAlbum
		if strings.Contains(url, singleURLSegment) {
			kind = models.KindTrack
		}
		entries = append(entries, models.Entry{
			Artist: pairs[i].artist,
			Title:  pairs[i].title,
			Kind:   kind,
		})
	}

	return entries, nil
}

// ParseFile parses a single saved page from disk.
func (p *Parser) ParseFile(path string) ([]models.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page %s: %w", path, err)
	}
	defer f.Close()

	entries, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

// ParseDir parses every page in the parser's directory, in lexical order,
// and concatenates the results. An empty directory is an error.
func (p *Parser) ParseDir() ([]models.Entry, error) {
	dirEntries, err := os.ReadDir(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages directory %s: %w", p.path, err)
	}

	var files []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		files = append(files, filepath.Join(p.path, de.Name()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoPages, p.path)
	}

	var all []models.Entry
	for _, file := range files {
		entries, err := p.ParseFile(file)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}

	return all, nil
}

// ListPages returns the file names of all pages in the parser's directory.
func (p *Parser) ListPages() ([]string, error) {
	dirEntries, err := os.ReadDir(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages directory %s: %w", p.path, err)
	}

	var names []string
	for _, de := range dirEntries {
		if !de.IsDir() {
			names = append(names, de.Name())
		}
	}
	return names, nil
}
