// Package markdown renders user-authored Markdown (task descriptions,
// comments) to HTML for display.
//
// Rendering never fails from the caller's point of view: if conversion
// errors, the original text is returned unchanged.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// DefaultLinkClass is the class attribute put on every rendered link.
const DefaultLinkClass = "text-blue-600 dark:text-blue-400 hover:underline"

// Renderer converts Markdown to HTML.
type Renderer struct {
	md goldmark.Markdown
}

type rendererConfig struct {
	linkClass string
}

// Option configures a Renderer.
type Option func(*rendererConfig)

// WithLinkClass sets the class attribute of rendered links.
// Default: DefaultLinkClass
func WithLinkClass(class string) Option {
	return func(c *rendererConfig) {
		c.linkClass = class
	}
}

// NewRenderer returns a GitHub-flavored Markdown renderer whose links open
// in a new tab without leaking the opener.
func NewRenderer(opts ...Option) *Renderer {
	cfg := rendererConfig{linkClass: DefaultLinkClass}
	for _, opt := range opts {
		opt(&cfg)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				// Lower values win over goldmark's default HTML renderer (1000).
				util.Prioritized(&linkRenderer{class: cfg.linkClass}, 100),
			),
		),
	)
	return &Renderer{md: md}
}

// Render converts content to HTML, returning content unchanged on failure.
func (r *Renderer) Render(content string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

var defaultRenderer = NewRenderer()

// Render converts content to HTML with the default renderer.
func Render(content string) string {
	return defaultRenderer.Render(content)
}

// linkRenderer renders links and autolinks as new-tab anchors.
type linkRenderer struct {
	class string
}

func (r *linkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
}

func (r *linkRenderer) openAnchor(w util.BufWriter, href []byte) {
	_, _ = w.WriteString(`<a href="`)
	if !html.IsDangerousURL(href) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(href, true)))
	}
	_, _ = w.WriteString(`" target="_blank" rel="noopener noreferrer" class="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.class)))
	_, _ = w.WriteString(`">`)
}

func (r *linkRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if entering {
		r.openAnchor(w, n.Destination)
	} else {
		_, _ = w.WriteString("</a>")
	}
	return ast.WalkContinue, nil
}

func (r *linkRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)

	url := n.URL(source)
	label := n.Label(source)
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
		url = append([]byte("mailto:"), url...)
	}

	r.openAnchor(w, url)
	_, _ = w.Write(util.EscapeHTML(label))
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}
