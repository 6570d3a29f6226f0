package redact

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// treeEntry pairs the parsed tree with the exact text it was built from.
type treeEntry struct {
	text string
	tree *sitter.Tree
}

// TreeCache parses source text into syntax trees, memoized per path. It keeps
// exactly one live entry per path: a call with different text for a known path
// discards the stale tree and parses fresh. The cache is an explicit store
// owned by its caller, not process-global state, so independent sessions do
// not share trees.
type TreeCache struct {
	mu       sync.Mutex
	entries  map[string]*treeEntry
	tsParser *sitter.Parser
	jsParser *sitter.Parser
}

// NewTreeCache creates an empty cache with parsers for the TypeScript and
// JavaScript grammars.
func NewTreeCache() *TreeCache {
	tsParser := sitter.NewParser()
	tsParser.SetLanguage(typescript.GetLanguage())
	jsParser := sitter.NewParser()
	jsParser.SetLanguage(javascript.GetLanguage())
	return &TreeCache{
		entries:  make(map[string]*treeEntry),
		tsParser: tsParser,
		jsParser: jsParser,
	}
}

// SupportedExtensions returns the file extensions the cache can parse.
// The first extension is the primary one.
func SupportedExtensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}
}

// Get returns the syntax tree for (path, text). The returned tree is
// reference-stable: a second call with identical text yields the same tree.
// Returns nil when the path's extension has no grammar. Parsing is
// best-effort; malformed source yields a tree with error nodes, never a hard
// failure.
func (c *TreeCache) Get(path, text string) *sitter.Tree {
	parser := c.parserFor(path)
	if parser == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[path]; ok && entry.text == text {
		return entry.tree
	}

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(text))
	if err != nil || tree == nil {
		return nil
	}
	if stale, ok := c.entries[path]; ok {
		stale.tree.Close()
	}
	c.entries[path] = &treeEntry{text: text, tree: tree}
	return tree
}

// Close releases all cached trees and the underlying parsers.
func (c *TreeCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.entries {
		entry.tree.Close()
	}
	c.entries = make(map[string]*treeEntry)
	c.tsParser.Close()
	c.jsParser.Close()
}

// parserFor picks the grammar by file extension, mirroring how the host
// serves mixed TS/JS workspaces.
func (c *TreeCache) parserFor(path string) *sitter.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx":
		return c.tsParser
	case ".js", ".jsx", ".mjs", ".cjs":
		return c.jsParser
	}
	return nil
}
