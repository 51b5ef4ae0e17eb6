package website_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"moviecat/internal/catalog"
	"moviecat/internal/services"
	"moviecat/internal/website"
)

func parse(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestSerializeMovieOmitsMissingFields(t *testing.T) {
	got := website.SerializeMovie(catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
	want := "<li><div class=\"movie\"><div class=\"movie-title\">Heat</div>\n<div class=\"movie-year\">1995</div>\n</div></li>\n"
	if got != want {
		t.Fatalf("SerializeMovie =\n%q\nwant\n%q", got, want)
	}

	withPoster := website.SerializeMovie(catalog.Movie{Title: "Up", PosterURL: "https://img.example/up.jpg"})
	if !strings.HasPrefix(withPoster, "<li><div class=\"movie\"><img class=\"movie-poster\" src=\"https://img.example/up.jpg\"/>\n") {
		t.Fatalf("expected poster first, got %q", withPoster)
	}
	if strings.Contains(withPoster, "movie-year") {
		t.Fatalf("unknown year should be omitted, got %q", withPoster)
	}
}

func TestRenderFillsPlaceholdersAndEscapes(t *testing.T) {
	movies := []catalog.Movie{
		{Title: "Tom & Jerry <Live>", Year: 2021, Rating: 5.2, PosterURL: `https://img.example/a.jpg?x="1"`},
		{Title: "Amélie", Year: 2001, Rating: 8.3},
	}
	page := website.Render(website.DefaultTemplate(), "Kim's <Movies>", movies)

	if strings.Contains(page, website.TitlePlaceholder) || strings.Contains(page, website.GridPlaceholder) {
		t.Fatal("placeholders left in output")
	}
	doc := parse(t, page)
	if got := doc.Find("title").Text(); got != "Kim's <Movies>" {
		t.Fatalf("unexpected title %q", got)
	}
	items := doc.Find("ol.movie-grid li div.movie")
	if items.Length() != 2 {
		t.Fatalf("expected 2 movies, got %d", items.Length())
	}
	first := items.First()
	if got := first.Find(".movie-title").Text(); got != "Tom & Jerry <Live>" {
		t.Fatalf("unexpected movie title %q", got)
	}
	if src, _ := first.Find("img.movie-poster").Attr("src"); src != `https://img.example/a.jpg?x="1"` {
		t.Fatalf("unexpected poster src %q", src)
	}
	second := items.Eq(1)
	if second.Find("img").Length() != 0 {
		t.Fatal("movie without poster should have no img")
	}
	if got := second.Find(".movie-year").Text(); got != "2001" {
		t.Fatalf("unexpected year %q", got)
	}
}

func TestGenerateWritesIndexAndStylesheet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	gen := website.Generator{Title: "MY MOVIE APP", OutputDir: dir}

	indexPath, err := gen.Generate([]catalog.Movie{{Title: "Heat", Year: 1995, Rating: 8.3}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if indexPath != filepath.Join(dir, "index.html") {
		t.Fatalf("unexpected index path %q", indexPath)
	}
	data, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	doc := parse(t, string(data))
	if got := doc.Find("h1").Text(); got != "MY MOVIE APP" {
		t.Fatalf("unexpected heading %q", got)
	}
	if doc.Find(".movie-title").Text() != "Heat" {
		t.Fatal("expected movie in grid")
	}
	if _, err := os.Stat(filepath.Join(dir, "style.css")); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	indexPath, err := website.Generator{Title: "Empty", OutputDir: dir}.Generate(nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if n := parse(t, string(data)).Find(".movie").Length(); n != 0 {
		t.Fatalf("expected empty grid, got %d movies", n)
	}
}

func TestGenerateCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "custom.html")
	custom := "<html><head><title>__TEMPLATE_TITLE__</title></head><body><ul id=\"grid\">__TEMPLATE_MOVIE_GRID__</ul></body></html>"
	if err := os.WriteFile(tmplPath, []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	out := filepath.Join(dir, "out")
	indexPath, err := website.Generator{Title: "Custom", OutputDir: out, TemplatePath: tmplPath}.Generate(
		[]catalog.Movie{{Title: "Up", Year: 2009}},
	)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if parse(t, string(data)).Find("#grid .movie-title").Text() != "Up" {
		t.Fatalf("custom template not used: %s", data)
	}
}

func TestGenerateRejectsTemplateWithoutGrid(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "bad.html")
	if err := os.WriteFile(tmplPath, []byte("<html>__TEMPLATE_TITLE__</html>"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	_, err := website.Generator{OutputDir: dir, TemplatePath: tmplPath}.Generate(nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGenerateMissingTemplate(t *testing.T) {
	_, err := website.Generator{OutputDir: t.TempDir(), TemplatePath: "/nonexistent/template.html"}.Generate(nil)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestGenerateCopiesTemplateStylesheet(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "index_template.html")
	if err := os.WriteFile(tmplPath, []byte("<ol>__TEMPLATE_MOVIE_GRID__</ol>"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte(".movie{color:red}"), 0o644); err != nil {
		t.Fatalf("write stylesheet: %v", err)
	}

	out := filepath.Join(dir, "out")
	if _, err := (website.Generator{OutputDir: out, TemplatePath: tmplPath}).Generate(nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, "style.css"))
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if string(data) != ".movie{color:red}" {
		t.Fatalf("expected template stylesheet, got %q", data)
	}
}
