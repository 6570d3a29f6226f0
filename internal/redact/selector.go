package redact

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// CandidateKind tags the span shape a candidate's edits are planned from.
// The set is closed: every eligibility rule routes through one of these four
// shapes, which keeps the planning dispatch in a single function.
type CandidateKind int

const (
	// CandidateBody is a brace-delimited function/method body.
	CandidateBody CandidateKind = iota
	// CandidateInitializer is the expression after an assignment operator.
	CandidateInitializer
	// CandidateExpression is a bare expression span with no operator,
	// such as a default-exported value or a braceless arrow body.
	CandidateExpression
	// CandidateWhole is an entire declaration, collapsed to hide its
	// existence as well as its implementation.
	CandidateWhole
)

// Edit priorities. Structural collapses must win over narrower edits proposed
// for sub-expressions they contain; ties go to the earlier start line.
const (
	priorityClosure    = 1 // arrow/function-expression bodies under exported variables
	priorityInitial    = 2 // exported-variable and class-property initializers
	priorityBody       = 2 // exported function/method bodies
	priorityStructural = 3 // whole-declaration collapses and default exports
)

// Candidate is one declaration or expression selected for redaction.
// Start/End bound the span to hide (End.Col is exclusive); Cut marks where
// replacement text begins on the first affected line — just after the
// assignment operator for initializers, the span start otherwise.
type Candidate struct {
	Kind     CandidateKind
	Start    Pos
	End      Pos
	Cut      Pos
	Priority int
}

// selectCandidates walks the tree and classifies every top-level declaration
// by export status, plus the members of exported classes by visibility.
// Declarations nested inside bodies are never visited: the edit covering the
// enclosing body already hides them.
func selectCandidates(root *sitter.Node, src []byte) []Candidate {
	var out []Candidate
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Type() {
		case "export_statement":
			collectExported(stmt, src, &out)
		case "function_declaration", "generator_function_declaration",
			"class_declaration", "abstract_class_declaration",
			"lexical_declaration", "variable_declaration":
			// Non-exported top level: the whole declaration disappears.
			out = append(out, wholeCandidate(stmt))
		}
	}
	return out
}

// collectExported handles one export statement: named exports of functions,
// classes and variables, and default exports of declarations or expressions.
// Bare re-export clauses (`export { a }`, `export * from`) carry no
// declaration and are left alone.
func collectExported(stmt *sitter.Node, src []byte, out *[]Candidate) {
	if hasDefaultKeyword(stmt) {
		collectDefaultExport(stmt, src, out)
		return
	}

	decl := stmt.ChildByFieldName("declaration")
	if decl == nil {
		return
	}
	switch decl.Type() {
	case "function_declaration", "generator_function_declaration":
		if body := decl.ChildByFieldName("body"); body != nil {
			*out = append(*out, spanCandidate(CandidateBody, body, priorityBody))
		}
	case "class_declaration", "abstract_class_declaration":
		collectClassMembers(decl, src, out)
	case "lexical_declaration", "variable_declaration":
		collectDeclarators(decl, out)
	}
}

// collectDefaultExport targets the wrapped function/arrow body when the
// default export is one, or the whole expression otherwise. A default class
// is part of the public surface and is handled member-wise like any exported
// class.
func collectDefaultExport(stmt *sitter.Node, src []byte, out *[]Candidate) {
	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		switch decl.Type() {
		case "function_declaration", "generator_function_declaration":
			if body := decl.ChildByFieldName("body"); body != nil {
				*out = append(*out, spanCandidate(CandidateBody, body, priorityStructural))
				return
			}
			*out = append(*out, spanCandidate(CandidateExpression, decl, priorityStructural))
		case "class_declaration", "abstract_class_declaration":
			collectClassMembers(decl, src, out)
		default:
			*out = append(*out, spanCandidate(CandidateExpression, decl, priorityStructural))
		}
		return
	}

	value := stmt.ChildByFieldName("value")
	if value == nil {
		return
	}
	switch value.Type() {
	case "arrow_function", "function", "function_expression":
		if body := value.ChildByFieldName("body"); body != nil {
			kind := CandidateExpression
			if body.Type() == "statement_block" {
				kind = CandidateBody
			}
			*out = append(*out, spanCandidate(kind, body, priorityStructural))
			return
		}
		*out = append(*out, spanCandidate(CandidateExpression, value, priorityStructural))
	default:
		*out = append(*out, spanCandidate(CandidateExpression, value, priorityStructural))
	}
}

// collectClassMembers classifies members of an exported class. Public members
// keep their signatures and lose bodies/initializers; private and protected
// members are collapsed whole, hiding their existence.
func collectClassMembers(class *sitter.Node, src []byte, out *[]Candidate) {
	body := class.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "method_definition":
			if isPrivateMember(member, src) {
				*out = append(*out, wholeCandidate(member))
				continue
			}
			// Abstract signatures and overload declarations have no body.
			if mb := member.ChildByFieldName("body"); mb != nil {
				*out = append(*out, spanCandidate(CandidateBody, mb, priorityBody))
			}
		case "public_field_definition":
			if isPrivateMember(member, src) {
				*out = append(*out, wholeCandidate(member))
				continue
			}
			value := member.ChildByFieldName("value")
			if value == nil {
				continue
			}
			if c, ok := initializerCandidate(member, value); ok {
				*out = append(*out, c)
			}
		}
	}
}

// collectDeclarators emits candidates for each declarator of an exported
// variable statement: the initializer at priority 2, and additionally the
// closure body at priority 1 when the initializer is an arrow function or
// function expression. The applier's overlap resolution picks between them.
func collectDeclarators(decl *sitter.Node, out *[]Candidate) {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		d := decl.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		value := d.ChildByFieldName("value")
		if value == nil {
			continue
		}
		if c, ok := initializerCandidate(d, value); ok {
			*out = append(*out, c)
		}
		switch value.Type() {
		case "arrow_function", "function", "function_expression":
			if body := value.ChildByFieldName("body"); body != nil {
				kind := CandidateExpression
				if body.Type() == "statement_block" {
					kind = CandidateBody
				}
				*out = append(*out, spanCandidate(kind, body, priorityClosure))
			}
		}
	}
}

// initializerCandidate builds a priority-2 candidate for the value assigned
// in a declarator or class field. The cut position sits just after the "="
// so the declared name and type annotation are never touched.
func initializerCandidate(owner, value *sitter.Node) (Candidate, bool) {
	op, ok := assignmentEnd(owner)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Kind:     CandidateInitializer,
		Start:    posFrom(value.StartPoint()),
		End:      posFrom(value.EndPoint()),
		Cut:      op,
		Priority: priorityInitial,
	}, true
}

// assignmentEnd finds the position immediately after the "=" token.
func assignmentEnd(n *sitter.Node) (Pos, bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == "=" {
			return posFrom(c.EndPoint()), true
		}
	}
	return Pos{}, false
}

// isPrivateMember reports whether a class member carries a private or
// protected accessibility modifier.
func isPrivateMember(member *sitter.Node, src []byte) bool {
	for i := 0; i < int(member.ChildCount()); i++ {
		c := member.Child(i)
		if c.Type() == "accessibility_modifier" {
			text := c.Content(src)
			return text == "private" || text == "protected"
		}
	}
	return false
}

// hasDefaultKeyword reports whether an export statement is a default export.
func hasDefaultKeyword(stmt *sitter.Node) bool {
	for i := 0; i < int(stmt.ChildCount()); i++ {
		if stmt.Child(i).Type() == "default" {
			return true
		}
	}
	return false
}

func spanCandidate(kind CandidateKind, n *sitter.Node, priority int) Candidate {
	start := posFrom(n.StartPoint())
	return Candidate{
		Kind:     kind,
		Start:    start,
		End:      posFrom(n.EndPoint()),
		Cut:      start,
		Priority: priority,
	}
}

func wholeCandidate(n *sitter.Node) Candidate {
	return Candidate{
		Kind:     CandidateWhole,
		Start:    posFrom(n.StartPoint()),
		End:      posFrom(n.EndPoint()),
		Cut:      posFrom(n.StartPoint()),
		Priority: priorityStructural,
	}
}
