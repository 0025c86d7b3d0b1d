// Package fetcher loads company lists for batch research from CSV, TSV and
// XLSX files, local or served over HTTP or FTP.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/painpoint-cli/internal/model"
)

// Downloader fetches remote company lists.
type Downloader interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// SchemeDownloader routes each URL to the Downloader registered for its
// lower-case scheme.
type SchemeDownloader map[string]Downloader

// NewSchemeDownloader serves http and https through web and ftp through file.
func NewSchemeDownloader(web, file Downloader) SchemeDownloader {
	return SchemeDownloader{"http": web, "https": web, "ftp": file}
}

func (s SchemeDownloader) pick(rawURL string) (Downloader, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: parse url")
	}
	dl, ok := s[strings.ToLower(u.Scheme)]
	if !ok || dl == nil {
		return nil, eris.Errorf("fetcher: no downloader for scheme %q", u.Scheme)
	}
	return dl, nil
}

// Download implements Downloader.
func (s SchemeDownloader) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	dl, err := s.pick(rawURL)
	if err != nil {
		return nil, err
	}
	return dl.Download(ctx, rawURL)
}

// DownloadToFile implements Downloader.
func (s SchemeDownloader) DownloadToFile(ctx context.Context, rawURL string, path string) (int64, error) {
	dl, err := s.pick(rawURL)
	if err != nil {
		return 0, err
	}
	return dl.DownloadToFile(ctx, rawURL, path)
}

// Header names recognised for each column, compared case-insensitively.
var (
	nameHeaders = []string{"company", "company_name", "company name", "name"}
	urlHeaders  = []string{"url", "company_url", "company url", "website", "domain"}
)

// LoadCompanies reads a company list from src, a file path or an http(s) or
// ftp URL.
// The format follows the extension: .xlsx, .tsv, otherwise CSV. The first
// row must be a header naming a company column; a URL column is optional.
// Rows without a name are skipped. Workbooks are read from the sheet named
// "Companies" when present, otherwise the first sheet.
func LoadCompanies(ctx context.Context, src string, dl Downloader) ([]model.Company, error) {
	if isRemote(src) {
		if dl == nil {
			return nil, eris.Errorf("fetcher: no downloader for %s", src)
		}
		return loadRemote(ctx, src, dl)
	}
	return loadFile(ctx, src)
}

func isRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "ftp://")
}

func loadFile(ctx context.Context, path string) ([]model.Company, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err := readWorkbook(path)
		if err != nil {
			return nil, err
		}
		return Companies(rows)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open company list")
	}
	defer f.Close() //nolint:errcheck

	return readDelimited(ctx, f, delimiterFor(path))
}

func loadRemote(ctx context.Context, rawURL string, dl Downloader) ([]model.Company, error) {
	ext := strings.ToLower(filepath.Ext(strings.SplitN(rawURL, "?", 2)[0]))
	if ext == ".xlsx" {
		tmp, err := os.CreateTemp("", "companies-*.xlsx")
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: create temp file")
		}
		_ = tmp.Close()
		defer os.Remove(tmp.Name()) //nolint:errcheck

		n, err := dl.DownloadToFile(ctx, rawURL, tmp.Name())
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: download company list")
		}
		zap.L().Debug("fetcher: downloaded company list", zap.String("url", rawURL), zap.Int64("bytes", n))
		return loadFile(ctx, tmp.Name())
	}

	body, err := dl.Download(ctx, rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: download company list")
	}
	defer body.Close() //nolint:errcheck

	return readDelimited(ctx, body, delimiterFor(ext))
}

func delimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

func readDelimited(ctx context.Context, r io.Reader, delim rune) ([]model.Company, error) {
	rows, err := readRows(ctx, r, delim)
	if err != nil {
		return nil, err
	}
	return Companies(rows)
}

// Companies converts a header row plus data rows into companies.
func Companies(rows [][]string) ([]model.Company, error) {
	if len(rows) == 0 {
		return nil, eris.New("fetcher: company list is empty")
	}

	nameCol, urlCol := -1, -1
	for i, h := range rows[0] {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch {
		case nameCol < 0 && contains(nameHeaders, h):
			nameCol = i
		case urlCol < 0 && contains(urlHeaders, h):
			urlCol = i
		}
	}
	if nameCol < 0 {
		return nil, eris.Errorf("fetcher: no company column in header %v", rows[0])
	}

	var out []model.Company
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		out = append(out, model.Company{Name: name, URL: cell(row, urlCol)})
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
