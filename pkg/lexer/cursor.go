package lexer

// Cursor is a positioned view over a token stream. Peek(0) is the current
// token; Next consumes it. Once the stream is exhausted every call returns
// the EOF token.
type Cursor interface {
	Peek(k int) Token
	Next() Token
}

// SliceCursor is a Cursor over a pre-scanned token slice.
type SliceCursor struct {
	toks []Token
	pos  int
}

// NewSliceCursor returns a cursor over toks. An EOF token is appended when
// toks does not already end with one.
func NewSliceCursor(toks []Token) *SliceCursor {
	if n := len(toks); n == 0 || toks[n-1].Type != TokenEOF {
		eof := Token{Type: TokenEOF, Line: 1, Column: 1}
		if n > 0 {
			last := toks[n-1]
			eof.Line = last.Line
			eof.Column = last.Column + len(last.Literal)
			eof.Offset = last.Offset + len(last.Literal)
		}
		toks = append(toks[:n:n], eof)
	}
	return &SliceCursor{toks: toks}
}

func (c *SliceCursor) Peek(k int) Token {
	if i := c.pos + k; i < len(c.toks) {
		return c.toks[i]
	}
	return c.toks[len(c.toks)-1]
}

func (c *SliceCursor) Next() Token {
	tok := c.Peek(0)
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return tok
}

// StreamCursor is a Cursor that pulls tokens from a Lexer on demand and
// buffers only as much lookahead as the parser asks for.
type StreamCursor struct {
	l   *Lexer
	buf []Token
	eof bool
}

// NewCursor returns a lazily scanning cursor over l.
func NewCursor(l *Lexer) *StreamCursor {
	return &StreamCursor{l: l}
}

func (c *StreamCursor) fill(n int) {
	for len(c.buf) < n {
		if c.eof {
			c.buf = append(c.buf, c.buf[len(c.buf)-1])
			continue
		}
		tok := c.l.NextToken()
		if tok.Type == TokenEOF {
			c.eof = true
		}
		c.buf = append(c.buf, tok)
	}
}

func (c *StreamCursor) Peek(k int) Token {
	c.fill(k + 1)
	return c.buf[k]
}

func (c *StreamCursor) Next() Token {
	tok := c.Peek(0)
	if tok.Type != TokenEOF || len(c.buf) > 1 {
		c.buf = c.buf[1:]
	}
	return tok
}
