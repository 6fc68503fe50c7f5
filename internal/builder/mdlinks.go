// internal/builder/mdlinks.go
package builder

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// recipeLinkTransformer rewrites intra-site links in recipe bodies so
// that sources may link to sibling .cook or .md files while the built
// site links to the generated .html pages.
type recipeLinkTransformer struct {
}

func newRecipeLinkTransformer() parser.ASTTransformer {
	return &recipeLinkTransformer{}
}

func (t *recipeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		for _, ext := range [][]byte{[]byte(".cook"), []byte(".md")} {
			if bytes.HasSuffix(link.Destination, ext) {
				link.Destination = append(bytes.TrimSuffix(link.Destination, ext), []byte(".html")...)
				break
			}
		}
		return ast.WalkContinue, nil
	})
}
