package website

import (
	"embed"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"moviecat/internal/catalog"
	"moviecat/internal/fileutil"
	"moviecat/internal/services"
)

// Placeholders replaced in the template.
const (
	TitlePlaceholder = "__TEMPLATE_TITLE__"
	GridPlaceholder  = "__TEMPLATE_MOVIE_GRID__"
)

const (
	component      = "website"
	indexFileName  = "index.html"
	styleFileName  = "style.css"
	templateFile   = "templates/index_template.html"
	stylesheetFile = "templates/style.css"
)

//go:embed templates/index_template.html templates/style.css
var assets embed.FS

// DefaultTemplate returns the embedded index template.
func DefaultTemplate() string {
	data, err := assets.ReadFile(templateFile)
	if err != nil {
		panic(fmt.Sprintf("embedded template missing: %v", err))
	}
	return string(data)
}

// SerializeMovie renders one grid entry. The poster image is omitted when
// the movie has none and the year when it is unknown.
func SerializeMovie(movie catalog.Movie) string {
	var b strings.Builder
	b.WriteString(`<li><div class="movie">`)
	if movie.HasPoster() {
		b.WriteString(`<img class="movie-poster" src="`)
		b.WriteString(html.EscapeString(movie.PosterURL))
		b.WriteString("\"/>\n")
	}
	if movie.Title != "" {
		b.WriteString(`<div class="movie-title">`)
		b.WriteString(html.EscapeString(movie.Title))
		b.WriteString("</div>\n")
	}
	if movie.Year != 0 {
		b.WriteString(`<div class="movie-year">`)
		b.WriteString(strconv.Itoa(movie.Year))
		b.WriteString("</div>\n")
	}
	b.WriteString("</div></li>\n")
	return b.String()
}

// Render fills template with the page title and one grid entry per movie, in
// the order given.
func Render(template, title string, movies []catalog.Movie) string {
	var grid strings.Builder
	for _, movie := range movies {
		grid.WriteString(SerializeMovie(movie))
	}
	out := strings.ReplaceAll(template, TitlePlaceholder, html.EscapeString(title))
	return strings.ReplaceAll(out, GridPlaceholder, grid.String())
}

// Generator writes the rendered page and its stylesheet to a directory.
type Generator struct {
	Title        string
	OutputDir    string
	TemplatePath string
}

// Generate renders movies and writes index.html and style.css into
// OutputDir, returning the index path.
func (g Generator) Generate(movies []catalog.Movie) (string, error) {
	template, err := g.loadTemplate()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(g.OutputDir) == "" {
		return "", services.Wrap(services.ErrConfiguration, component, "generate", "website.output_dir is empty", nil)
	}
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create website directory: %w", err)
	}

	indexPath := filepath.Join(g.OutputDir, indexFileName)
	page := Render(template, g.Title, movies)
	if err := fileutil.WriteFileAtomic(indexPath, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", indexPath, err)
	}
	if err := g.writeStylesheet(); err != nil {
		return "", err
	}
	return indexPath, nil
}

// writeStylesheet copies the style.css next to a custom template when there
// is one, and the embedded stylesheet otherwise.
func (g Generator) writeStylesheet() error {
	stylePath := filepath.Join(g.OutputDir, styleFileName)
	if g.TemplatePath != "" {
		custom := filepath.Join(filepath.Dir(g.TemplatePath), styleFileName)
		if info, err := os.Stat(custom); err == nil && !info.IsDir() {
			if err := fileutil.CopyFile(custom, stylePath); err != nil {
				return fmt.Errorf("copy %s: %w", custom, err)
			}
			return nil
		}
	}
	style, err := assets.ReadFile(stylesheetFile)
	if err != nil {
		return fmt.Errorf("read embedded stylesheet: %w", err)
	}
	if err := fileutil.WriteFileAtomic(stylePath, style, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", stylePath, err)
	}
	return nil
}

func (g Generator) loadTemplate() (string, error) {
	if strings.TrimSpace(g.TemplatePath) == "" {
		return DefaultTemplate(), nil
	}
	data, err := os.ReadFile(g.TemplatePath)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, component, "load template", g.TemplatePath, err)
	}
	template := string(data)
	if !strings.Contains(template, GridPlaceholder) {
		return "", services.Wrap(services.ErrValidation, component, "load template",
			fmt.Sprintf("%s has no %s placeholder", g.TemplatePath, GridPlaceholder), nil)
	}
	return template, nil
}
