// Package parser implements a recursive-descent parser over the rulex token
// stream, grounded on the same hand-rolled-Pratt shape as the teacher's
// compiler/parser package, but built around the precedence chain and
// recursion/repetition limits the language actually needs (or := sequence
// := fix := atom repetition*).
package parser

import (
	"strconv"
	"strings"

	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
	"rulex/compiler/lexer"
	"rulex/compiler/span"
)

const (
	recursionBudget       = 256
	repetitionChainBudget = 64
)

// Result is everything a parse produces: the AST (nil if a fatal error
// occurred), accumulated warnings, and accumulated errors.
type Result struct {
	Root     ast.Rule
	Warnings []diagnose.Warning
	Errors   []*diagnose.ParseError
}

// Parser consumes a lexer.Token slice and builds an AST.
type Parser struct {
	tokens []lexer.Token
	pos    int

	recursion int
	errors    []*diagnose.ParseError
	warnings  []diagnose.Warning

	letSpans map[string]span.Span // name -> span of first declaration, for LetBindingExists
}

// New returns a Parser over tokens (as produced by lexer.Scanner.ScanTokens).
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:    tokens,
		recursion: recursionBudget,
		letSpans:  make(map[string]span.Span),
	}
}

// Parse runs Parser over a full program: stmt* expr, with no leftover
// tokens. On a fatal error the returned Root is nil.
func Parse(tokens []lexer.Token) Result {
	p := New(tokens)

	var root ast.Rule
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(abortParse); !ok {
					panic(r)
				}
			}
		}()
		root = p.parseBlock()
		if !p.atEnd() {
			p.errorAt(diagnose.ParseLeftoverTokens, "unexpected trailing input", p.peek().Span)
			root = nil
		}
	}()

	if len(p.errors) > 0 {
		root = nil
	}
	return Result{Root: root, Warnings: p.warnings, Errors: p.errors}
}

// abortParse is panicked to unwind to Parse on a fatal error (recursion
// limit, or a production that cannot recover locally).
type abortParse struct{}

func (p *Parser) fatal() {
	panic(abortParse{})
}

// ── token stream primitives ──────────────────────────────────────────────

func (p *Parser) peek() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) atEnd() bool { return p.peek().Type == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) check(tt lexer.TokenType) bool { return p.peek().Type == tt }

func (p *Parser) match(tt lexer.TokenType) (lexer.Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) expect(tt lexer.TokenType, what string) lexer.Token {
	if tok, ok := p.match(tt); ok {
		return tok
	}
	tok := p.peek()
	p.errorAt(diagnose.ParseExpected, "expected "+what, tok.Span)
	p.fatal()
	return lexer.Token{}
}

func (p *Parser) errorAt(kind diagnose.ParseErrorKind, msg string, sp span.Span) {
	p.errors = append(p.errors, diagnose.NewParseError(kind, msg, sp))
}

func (p *Parser) warnAt(kind diagnose.WarningKind, sp span.Span) {
	p.warnings = append(p.warnings, diagnose.NewWarning(kind, sp))
}

func joinSpan(a, b span.Span) span.Span { return a.Join(b) }

// ── recursion accounting ─────────────────────────────────────────────────

func (p *Parser) enter() {
	p.recursion--
	if p.recursion < 0 {
		p.errorAt(diagnose.ParseRecursionLimit, "expression nested too deeply", p.peek().Span)
		p.fatal()
	}
}

func (p *Parser) leave() { p.recursion++ }

// ── program / statements ─────────────────────────────────────────────────

// parseBlock parses `stmt* expr`, used both for the whole program and for
// the body of a lookaround, which allows its own nested modifiers.
func (p *Parser) parseBlock() ast.Rule {
	var stmts []ast.Stmt
	for {
		st, ok := p.tryParseStmt()
		if !ok {
			break
		}
		stmts = append(stmts, st)
	}

	body := p.parseExpr()

	result := body
	for i := len(stmts) - 1; i >= 0; i-- {
		result = &ast.StmtExpr{
			Statement: stmts[i],
			Body:      result,
			Sp:        joinSpan(spanOfStmt(stmts[i]), result.Span()),
		}
	}
	return result
}

func spanOfStmt(s ast.Stmt) span.Span { return s.NameSpan }

// tryParseStmt parses one `enable flag;` / `disable flag;` / `let ident =
// expr;` statement. ok is false and no tokens are consumed if the next
// token does not start a statement.
func (p *Parser) tryParseStmt() (ast.Stmt, bool) {
	switch p.peek().Type {
	case lexer.KwEnable, lexer.KwDisable:
		kindTok := p.advance()
		kind := ast.StmtEnable
		if kindTok.Type == lexer.KwDisable {
			kind = ast.StmtDisable
		}
		flag := p.expect(lexer.KwLazy, "a flag name (`lazy`)")
		p.expect(lexer.Semicolon, "`;` after statement")
		return ast.Stmt{Kind: kind, Setting: ast.SettingLazy, NameSpan: flag.Span}, true

	case lexer.KwLet:
		p.advance()
		nameTok := p.expect(lexer.Identifier, "a binding name")
		if lexer.IsKeyword(nameTok.Lexeme) {
			p.errorAt(diagnose.ParseKeywordAfterLet, "keyword cannot be used as a binding name", nameTok.Span)
		}
		if _, seen := p.letSpans[nameTok.Lexeme]; seen {
			p.errorAt(diagnose.ParseLetBindingExists, "`"+nameTok.Lexeme+"` is already bound", nameTok.Span)
		} else {
			p.letSpans[nameTok.Lexeme] = nameTok.Span
		}
		p.expect(lexer.Equals, "`=`")
		body := p.parseExpr()
		p.expect(lexer.Semicolon, "`;` after `let` binding")
		return ast.Stmt{Kind: ast.StmtLet, Name: nameTok.Lexeme, Body: body, NameSpan: nameTok.Span}, true

	default:
		return ast.Stmt{}, false
	}
}

// ── expression grammar ───────────────────────────────────────────────────

func (p *Parser) parseExpr() ast.Rule {
	p.enter()
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Rule {
	start := p.peek().Span
	leadingPipe := false
	if _, ok := p.match(lexer.Pipe); ok {
		leadingPipe = true
	}

	var branches []ast.Rule
	branches = append(branches, p.parseSequence())

	for {
		if _, ok := p.match(lexer.Pipe); ok {
			branches = append(branches, p.parseSequence())
			continue
		}
		break
	}

	if leadingPipe && len(branches) == 1 && isEmptySequence(branches[0]) {
		p.errorAt(diagnose.ParseLonePipe, "a lone `|` must be followed by at least one alternative", start)
	}

	if len(branches) == 1 {
		return branches[0]
	}
	return &ast.Alternation{Branches: branches, Sp: joinSpan(branches[0].Span(), branches[len(branches)-1].Span())}
}

func isEmptySequence(r ast.Rule) bool {
	g, ok := r.(*ast.Group)
	return ok && !g.Capture.Capturing && len(g.Children) == 0
}

func (p *Parser) parseSequence() ast.Rule {
	start := p.peek().Span
	var fixes []ast.Rule
	for p.startsFix() {
		fixes = append(fixes, p.parseFix())
	}
	if len(fixes) == 0 {
		return &ast.Group{Sp: start}
	}
	if len(fixes) == 1 {
		return fixes[0]
	}
	return &ast.Group{
		Children: fixes,
		Sp:       joinSpan(fixes[0].Span(), fixes[len(fixes)-1].Span()),
	}
}

func (p *Parser) startsFix() bool {
	switch p.peek().Type {
	case lexer.Bang, lexer.LookAhead, lexer.LookBehind:
		return true
	default:
		return p.startsAtom()
	}
}

func (p *Parser) startsAtom() bool {
	switch p.peek().Type {
	case lexer.String, lexer.RawString, lexer.CodePoint, lexer.Identifier,
		lexer.KwRange, lexer.LeftBracket, lexer.LeftParen, lexer.Colon, lexer.KwAtomic,
		lexer.Caret, lexer.Dollar, lexer.BWord, lexer.BStart, lexer.BEnd,
		lexer.Backref, lexer.Dot:
		return true
	default:
		return false
	}
}

func (p *Parser) parseFix() ast.Rule {
	p.enter()
	defer p.leave()

	if bang, ok := p.match(lexer.Bang); ok {
		inner := p.parseFix()
		return &ast.Negation{Inner: inner, Sp: joinSpan(bang.Span, inner.Span())}
	}

	if p.check(lexer.LookAhead) || p.check(lexer.LookBehind) {
		tok := p.advance()
		dir := ast.LookaroundAhead
		if tok.Type == lexer.LookBehind {
			dir = ast.LookaroundBehind
		}
		body := p.parseBlock()
		return &ast.Lookaround{Inner: body, Direction: dir, Sp: joinSpan(tok.Span, body.Span())}
	}

	atom := p.parseAtom()
	return p.parseRepetitions(atom)
}

// ── repetitions ───────────────────────────────────────────────────────────

type repState int

const (
	repFirst repState = iota
	repAfterGreedyLazy
	repAfterPlus
	repAfterQuestion
	repAfterBraced
)

func (p *Parser) parseRepetitions(atom ast.Rule) ast.Rule {
	state := repFirst
	chainLen := 0
	result := atom

	for {
		kind, quant, sp, ok := p.tryParseOneRepetition(&state)
		if !ok {
			return result
		}
		chainLen++
		if chainLen > repetitionChainBudget {
			p.errorAt(diagnose.ParseRecursionLimit, "repetition chain too long", sp)
			p.fatal()
		}
		result = &ast.Repetition{
			Inner:      result,
			Kind:       kind,
			Quantifier: quant,
			Sp:         joinSpan(result.Span(), sp),
		}
	}
}

// tryParseOneRepetition consumes one `?`/`+`/`*`/`{..}` suffix plus an
// optional trailing `greedy`/`lazy` keyword, enforcing the sequencing state
// machine from spec §4.2. ok is false (no tokens consumed) when the next
// token does not start a repetition suffix.
func (p *Parser) tryParseOneRepetition(state *repState) (ast.RepetitionKind, ast.Quantifier, span.Span, bool) {
	var kind ast.RepetitionKind
	var sp span.Span
	var next repState

	switch p.peek().Type {
	case lexer.Question:
		tok := p.advance()
		if *state == repAfterQuestion || *state == repAfterPlus || *state == repAfterBraced {
			p.errorAt(diagnose.ParseQuestionMarkAfterRepetition, "`?` cannot follow another repetition", tok.Span)
		}
		kind, sp, next = ast.RepetitionKind{Min: 0, Max: intPtr(1)}, tok.Span, repAfterQuestion
	case lexer.Plus:
		tok := p.advance()
		if *state == repAfterQuestion || *state == repAfterPlus || *state == repAfterBraced {
			p.errorAt(diagnose.ParsePlusAfterRepetition, "`+` cannot follow another repetition", tok.Span)
		}
		kind, sp, next = ast.RepetitionKind{Min: 1, Max: nil}, tok.Span, repAfterPlus
	case lexer.Star:
		tok := p.advance()
		kind, sp, next = ast.RepetitionKind{Min: 0, Max: nil}, tok.Span, repAfterBraced
	case lexer.LeftBrace:
		kind, sp = p.parseBracedRepetition()
		next = repAfterBraced
	default:
		return ast.RepetitionKind{}, 0, span.Span{}, false
	}

	quant := ast.QuantifierDefault
	switch p.peek().Type {
	case lexer.KwGreedy:
		t := p.advance()
		quant, sp, next = ast.QuantifierGreedy, joinSpan(sp, t.Span), repAfterGreedyLazy
	case lexer.KwLazy:
		t := p.advance()
		quant, sp, next = ast.QuantifierLazy, joinSpan(sp, t.Span), repAfterGreedyLazy
	}

	*state = next
	return kind, quant, sp, true
}

func intPtr(n int) *int { return &n }

// parseBracedRepetition parses `{ lo? , hi? }` or `{ n }`.
func (p *Parser) parseBracedRepetition() (ast.RepetitionKind, span.Span) {
	open := p.expect(lexer.LeftBrace, "`{`")

	var lo int
	haveLo := false
	if p.check(lexer.Number) {
		lo = p.parseUintLiteral()
		haveLo = true
	}

	if _, ok := p.match(lexer.Comma); ok {
		var hi *int
		if p.check(lexer.Number) {
			h := p.parseUintLiteral()
			hi = &h
		}
		close := p.expect(lexer.RightBrace, "`}`")
		return ast.RepetitionKind{Min: lo, Max: hi}, joinSpan(open.Span, close.Span)
	}

	if !haveLo {
		p.errorAt(diagnose.ParseExpectedToken, "expected a number inside `{}`", p.peek().Span)
		p.fatal()
	}
	close := p.expect(lexer.RightBrace, "`}`")
	return ast.RepetitionKind{Min: lo, Max: &lo}, joinSpan(open.Span, close.Span)
}

func (p *Parser) parseUintLiteral() int {
	tok := p.expect(lexer.Number, "a number")
	n, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		p.errorAt(diagnose.ParseNumberTooLarge, "number is too large", tok.Span)
		return 0
	}
	return n
}

// ── atoms ─────────────────────────────────────────────────────────────────

func (p *Parser) parseAtom() ast.Rule {
	switch p.peek().Type {
	case lexer.Colon, lexer.KwAtomic, lexer.LeftParen:
		return p.parseGroup()
	case lexer.String, lexer.RawString:
		tok := p.advance()
		text := unescape(tok)
		return &ast.Literal{Text: text, Sp: tok.Span}
	case lexer.CodePoint:
		tok := p.advance()
		r := decodeCodePoint(tok.Lexeme)
		return &ast.Literal{Text: string(r), Sp: tok.Span}
	case lexer.LeftBracket:
		return p.parseCharClass()
	case lexer.Caret:
		tok := p.advance()
		return &ast.Boundary{Kind: ast.BoundaryStart, Sp: tok.Span}
	case lexer.Dollar:
		tok := p.advance()
		return &ast.Boundary{Kind: ast.BoundaryEnd, Sp: tok.Span}
	case lexer.BWord:
		tok := p.advance()
		return &ast.Boundary{Kind: ast.BoundaryWord, Sp: tok.Span}
	case lexer.BStart:
		tok := p.advance()
		p.warnAt(diagnose.WarningDeprecationOldStartLiteral, tok.Span)
		return &ast.Boundary{Kind: ast.BoundaryStart, Sp: tok.Span}
	case lexer.BEnd:
		tok := p.advance()
		p.warnAt(diagnose.WarningDeprecationOldEndLiteral, tok.Span)
		return &ast.Boundary{Kind: ast.BoundaryEnd, Sp: tok.Span}
	case lexer.Backref:
		return p.parseReference()
	case lexer.KwRange:
		return p.parseRange()
	case lexer.Identifier:
		tok := p.advance()
		return &ast.Variable{Name: tok.Lexeme, Sp: tok.Span}
	case lexer.Dot:
		tok := p.advance()
		p.errorAt(diagnose.ParseDot, "bare `.` is not supported; use `[.]` (deprecated) or an explicit char class", tok.Span)
		return &ast.CharClass{GroupKind: ast.CharGroupDot, Sp: tok.Span}
	default:
		tok := p.peek()
		p.errorAt(diagnose.ParseExpected, "expected an expression", tok.Span)
		p.fatal()
		return nil
	}
}

func (p *Parser) parseGroup() ast.Rule {
	start := p.peek().Span

	if atomicTok, ok := p.match(lexer.KwAtomic); ok {
		p.expect(lexer.LeftParen, "`(` after `atomic`")
		body := p.parseExpr()
		closeTok := p.expect(lexer.RightParen, "`)`")
		return &ast.Group{
			Children: []ast.Rule{body},
			Atomic:   true,
			Sp:       joinSpan(atomicTok.Span, closeTok.Span),
		}
	}

	capture := ast.Capture{}
	if _, ok := p.match(lexer.Colon); ok {
		capture.Capturing = true
		if nameTok, ok := p.match(lexer.Identifier); ok {
			capture.Name = nameTok.Lexeme
		}
	}

	p.expect(lexer.LeftParen, "`(`")
	body := p.parseExpr()
	closeTok := p.expect(lexer.RightParen, "`)`")

	return &ast.Group{
		Children: []ast.Rule{body},
		Capture:  capture,
		Sp:       joinSpan(start, closeTok.Span),
	}
}

func (p *Parser) parseReference() ast.Rule {
	sigil := p.expect(lexer.Backref, "`::`")

	switch p.peek().Type {
	case lexer.Number:
		tok := p.advance()
		n, err := strconv.ParseUint(tok.Lexeme, 10, 32)
		if err != nil {
			p.errorAt(diagnose.ParseNumberTooLarge, "group number is too large", tok.Span)
			n = 0
		}
		return &ast.Reference{Kind: ast.ReferenceNumber, Number: uint32(n), Sp: joinSpan(sigil.Span, tok.Span)}
	case lexer.Identifier:
		tok := p.advance()
		return &ast.Reference{Kind: ast.ReferenceNamed, Name: tok.Lexeme, Sp: joinSpan(sigil.Span, tok.Span)}
	case lexer.Plus, lexer.Dash:
		signTok := p.advance()
		numTok := p.expect(lexer.Number, "a number after the sign")
		n, err := strconv.ParseInt(numTok.Lexeme, 10, 32)
		if err != nil {
			p.errorAt(diagnose.ParseNumberTooLarge, "relative reference is too large", numTok.Span)
			n = 0
		}
		if signTok.Type == lexer.Dash {
			n = -n
		}
		return &ast.Reference{Kind: ast.ReferenceRelative, Relative: int32(n), Sp: joinSpan(sigil.Span, numTok.Span)}
	default:
		tok := p.peek()
		p.errorAt(diagnose.ParseExpected, "expected a group number, name, or +/- offset after `::`", tok.Span)
		p.fatal()
		return nil
	}
}

func (p *Parser) parseRange() ast.Rule {
	kw := p.advance() // KwRange

	loTok := p.expectStringLike("a string bound")
	p.expect(lexer.Dash, "`-`")
	hiTok := p.expectStringLike("a string bound")

	radix := uint8(10)
	endSpan := hiTok.Span
	if _, ok := p.match(lexer.KwBase); ok {
		baseTok := p.expect(lexer.Number, "a base between 2 and 36")
		n, err := strconv.Atoi(baseTok.Lexeme)
		if err != nil || n < 2 || n > 36 {
			p.errorAt(diagnose.ParseNumberInvalidDigit, "base must be between 2 and 36", baseTok.Span)
			n = 10
		}
		radix = uint8(n)
		endSpan = baseTok.Span
	}

	loText := unescape(loTok)
	hiText := unescape(hiTok)
	digitsLo, ok1 := p.parseDigits(loText, radix, loTok.Span)
	digitsHi, ok2 := p.parseDigits(hiText, radix, hiTok.Span)
	digitsLo = stripLeadingZeros(digitsLo)
	digitsHi = stripLeadingZeros(digitsHi)
	if ok1 && ok2 && compareDigits(digitsLo, digitsHi) > 0 {
		p.errorAt(diagnose.ParseRangeIsNotIncreasing, "range lower bound must not exceed the upper bound", joinSpan(kw.Span, endSpan))
	}

	return &ast.Range{
		DigitsLo: digitsLo,
		DigitsHi: digitsHi,
		Radix:    radix,
		Sp:       joinSpan(kw.Span, endSpan),
	}
}

func (p *Parser) expectStringLike(what string) lexer.Token {
	if p.check(lexer.String) || p.check(lexer.RawString) {
		return p.advance()
	}
	tok := p.peek()
	p.errorAt(diagnose.ParseExpected, "expected "+what, tok.Span)
	p.fatal()
	return lexer.Token{}
}

// parseDigits converts the textual digits of a `range` bound into its
// radix-r digit sequence, most-significant digit first.
func (p *Parser) parseDigits(text string, radix uint8, sp span.Span) ([]uint8, bool) {
	if text == "" {
		p.errorAt(diagnose.ParseCharStringEmpty, "range bound must not be empty", sp)
		return nil, false
	}
	digits := make([]uint8, 0, len(text))
	for _, r := range text {
		v, ok := digitValue(r)
		if !ok || v >= radix {
			p.errorAt(diagnose.ParseNumberInvalidDigit, "invalid digit for the given base", sp)
			return nil, false
		}
		digits = append(digits, v)
	}
	return digits, true
}

// stripLeadingZeros removes a range bound's leading zero digits (spec §4.4
// step 1), so e.g. "00" and "10" compare and expand as the 1- and 2-digit
// values 0 and 10 rather than as two fixed 2-digit forms. A bound of all
// zeros strips down to a single zero digit, never to nothing.
func stripLeadingZeros(digits []uint8) []uint8 {
	i := 0
	for i < len(digits)-1 && digits[i] == 0 {
		i++
	}
	return digits[i:]
}

func digitValue(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'z':
		return uint8(r-'a') + 10, true
	case r >= 'A' && r <= 'Z':
		return uint8(r-'A') + 10, true
	default:
		return 0, false
	}
}

// compareDigits compares two big-endian digit sequences numerically. Both
// are expected to carry no leading zeros (see stripLeadingZeros), so a
// shorter sequence is always the smaller value.
func compareDigits(a, b []uint8) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ── char classes ──────────────────────────────────────────────────────────

func (p *Parser) parseCharClass() ast.Rule {
	open := p.expect(lexer.LeftBracket, "`[`")

	if p.check(lexer.Dot) {
		p.advance()
		close := p.expect(lexer.RightBracket, "`]`")
		p.warnAt(diagnose.WarningDeprecationDot, joinSpan(open.Span, close.Span))
		return &ast.CharClass{GroupKind: ast.CharGroupDot, Sp: joinSpan(open.Span, close.Span)}
	}

	if caret, ok := p.match(lexer.Caret); ok {
		p.errorAt(diagnose.ParseCharClassCaretInGroup, "`^` negation belongs outside the brackets, as `!`", caret.Span)
	}

	var items []ast.Item
	for p.startsClassItem() {
		items = append(items, p.parseClassItem())
	}

	close := p.expect(lexer.RightBracket, "`]`")
	sp := joinSpan(open.Span, close.Span)

	if len(items) == 0 {
		p.errorAt(diagnose.ParseCharClassEmpty, "character class must not be empty", sp)
	}

	return &ast.CharClass{GroupKind: ast.CharGroupItems, Items: items, Sp: sp}
}

func (p *Parser) startsClassItem() bool {
	switch p.peek().Type {
	case lexer.String, lexer.RawString, lexer.CodePoint, lexer.Bang, lexer.Identifier:
		return true
	default:
		return false
	}
}

// parseClassItem parses one `(string|char|codepoint) ("-" ...)?` or `"!"?
// ident` item inside `[ ... ]`.
func (p *Parser) parseClassItem() ast.Item {
	if _, ok := p.match(lexer.Bang); ok {
		nameTok := p.expect(lexer.Identifier, "a named class after `!`")
		return ast.Item{Kind: ast.ItemNamed, Name: ast.GroupUnicodeProperty, PropertyName: nameTok.Lexeme, Negative: true}
	}

	if p.check(lexer.Identifier) {
		nameTok := p.advance()
		return ast.Item{Kind: ast.ItemNamed, Name: classifyGroupName(nameTok.Lexeme), PropertyName: nameTok.Lexeme}
	}

	lo, loSp := p.parseSingleCodePoint()

	if _, ok := p.match(lexer.Dash); ok {
		hi, hiSp := p.parseSingleCodePoint()
		if hi < lo {
			p.errorAt(diagnose.ParseCharClassDescendingRange, "range is not ascending", joinSpan(loSp, hiSp))
		}
		return ast.Item{Kind: ast.ItemRange, Lo: lo, Hi: hi}
	}

	return ast.Item{Kind: ast.ItemChar, Lo: lo, Hi: lo}
}

func classifyGroupName(name string) ast.GroupName {
	switch name {
	case "word":
		return ast.GroupWord
	case "space":
		return ast.GroupSpace
	case "digit":
		return ast.GroupDigit
	case "horiz_space":
		return ast.GroupHorizSpace
	case "vert_space":
		return ast.GroupVertSpace
	case "ascii_alpha":
		return ast.GroupAsciiAlpha
	case "ascii_alnum":
		return ast.GroupAsciiAlnum
	case "ascii_digit":
		return ast.GroupAsciiDigit
	case "ascii_space":
		return ast.GroupAsciiSpace
	case "ascii_punct":
		return ast.GroupAsciiPunct
	case "codepoint":
		return ast.GroupCodepoint
	default:
		return ast.GroupUnicodeProperty
	}
}

// parseSingleCodePoint parses a String/RawString/CodePoint item operand
// that must decode to exactly one rune (a range bound or bare char item).
func (p *Parser) parseSingleCodePoint() (rune, span.Span) {
	switch p.peek().Type {
	case lexer.CodePoint:
		tok := p.advance()
		return decodeCodePoint(tok.Lexeme), tok.Span
	case lexer.String, lexer.RawString:
		tok := p.advance()
		text := unescape(tok)
		runes := []rune(text)
		switch len(runes) {
		case 0:
			p.errorAt(diagnose.ParseCharStringEmpty, "char class item must not be empty", tok.Span)
			return 0, tok.Span
		case 1:
			return runes[0], tok.Span
		default:
			p.errorAt(diagnose.ParseCharStringTooManyCodePoints, "char class item must be a single code point", tok.Span)
			return runes[0], tok.Span
		}
	default:
		tok := p.peek()
		p.errorAt(diagnose.ParseExpectedCodePointOrChar, "expected a character, string, or code point", tok.Span)
		p.fatal()
		return 0, span.Span{}
	}
}

// ── string/codepoint decoding ─────────────────────────────────────────────

// unescape decodes a String token's `\\`/`\"` escapes, or passes a
// RawString token through verbatim.
func unescape(tok lexer.Token) string {
	if tok.Type == lexer.RawString {
		return strings.Trim(tok.Lexeme, "'")
	}
	inner := tok.Lexeme
	if len(inner) >= 2 && inner[0] == '"' {
		inner = inner[1 : len(inner)-1]
	}
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && (inner[i+1] == '\\' || inner[i+1] == '"') {
			b.WriteByte(inner[i+1])
			i++
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}

// decodeCodePoint parses a `U+HHHHHH` lexeme into its rune.
func decodeCodePoint(lexeme string) rune {
	hex := strings.TrimPrefix(lexeme, "U+")
	n, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0xFFFD
	}
	return rune(n)
}
