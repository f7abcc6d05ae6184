package builder

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Rendered pages live two directories below the site root, so the shared
// stylesheet is always reachable at the same relative path.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <link rel="stylesheet" href="../../stylesheets/styles.css" />
    <style>
      {{.Style}}
      .chroma { background: transparent; }
    </style>
    <title>Ayush Gundawar &mdash; Post</title>
  </head>
  <body>
    <div class="container">
      <div class="content">
        {{.Content}}
      </div>
    </div>
  </body>
</html>
`))

type pageData struct {
	Style   template.CSS
	Content template.HTML
}

// Renderer converts a post's markdown body into a complete HTML document.
type Renderer struct {
	style    *chroma.Style
	themeCSS string
}

// NewRenderer builds a Renderer for the named highlighting theme. The theme
// CSS is generated once here; an unknown theme name is a configuration error,
// caught before any post is rendered.
func NewRenderer(theme string) (*Renderer, error) {
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("unknown highlighting theme %q", theme)
	}

	css, err := themeCSS(style)
	if err != nil {
		return nil, err
	}

	return &Renderer{style: style, themeCSS: css}, nil
}

// Render converts the post body to HTML, highlights its fenced code blocks
// and wraps the result in the page template.
func (r *Renderer) Render(raw []byte) (string, error) {
	body, err := r.highlightCodeBlocks(mdToHTML(raw))
	if err != nil {
		return "", &RenderError{Stage: "highlight", Err: err}
	}

	var out bytes.Buffer
	err = pageTemplate.Execute(&out, pageData{
		Style:   template.CSS(r.themeCSS),
		Content: template.HTML(body),
	})
	if err != nil {
		return "", &RenderError{Stage: "template", Err: err}
	}

	return out.String(), nil
}

// Converts markdown elements to raw unstyled HTML.
func mdToHTML(md []byte) []byte {
	// create markdown parser with extensions
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(md)

	// create HTML renderer with extensions
	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return markdown.Render(doc, renderer)
}

// highlightCodeBlocks replaces every fenced code block carrying a language
// tag with its syntax-highlighted version. Blocks without a tag, or with a
// tag no lexer claims, stay as escaped plain text.
func (r *Renderer) highlightCodeBlocks(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var hlErr error
	doc.Find(`code[class*="language-"]`).Each(func(_ int, s *goquery.Selection) {
		if hlErr != nil {
			return
		}

		class, _ := s.Attr("class")
		lang := strings.TrimPrefix(class, "language-")
		lexer := lexers.Get(lang)
		if lexer == nil {
			return
		}
		lexer = chroma.Coalesce(lexer)

		iterator, err := lexer.Tokenise(nil, s.Text())
		if err != nil {
			hlErr = err
			return
		}

		var buf bytes.Buffer
		formatter := chromahtml.New(chromahtml.WithClasses(true))
		if err := formatter.Format(&buf, r.style, iterator); err != nil {
			hlErr = err
			return
		}

		// chroma emits its own <pre> wrapper; swap out the converter's
		// <pre><code> pair entirely instead of nesting inside it.
		if parent := s.Parent(); parent.Is("pre") {
			parent.ReplaceWithHtml(buf.String())
		} else {
			s.ReplaceWithHtml(buf.String())
		}
	})
	if hlErr != nil {
		return "", hlErr
	}

	out, err := doc.Html()
	if err != nil {
		return "", err
	}

	// goquery wraps fragments in a full document; unwrap the body again.
	out = strings.Replace(out, "<html><head></head><body>", "", 1)
	out = strings.Replace(out, "</body></html>", "", 1)
	return out, nil
}

// themeCSS emits the class-scoped highlighting rules for a style. Bold and
// italic token decorations are normalized away so code blocks stay visually
// uniform regardless of theme.
func themeCSS(style *chroma.Style) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", err
	}

	css := buf.String()
	css = strings.ReplaceAll(css, "bold", "normal")
	css = strings.ReplaceAll(css, "italic", "normal")
	return css, nil
}
