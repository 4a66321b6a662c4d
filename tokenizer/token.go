package tokenizer

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

type TokenType string

const (
	KEYWORD      = TokenType("keyword")
	SYMBOL       = TokenType("symbol")
	IDENTIFIER   = TokenType("identifier")
	INT_CONST    = TokenType("integerConstant")
	STRING_CONST = TokenType("stringConstant")
	INVALID      = TokenType("invalid")
)

// Token is one of Keyword, Symbol, IntConstant, StringConstant, Identifier
// or Invalid. The set is closed; switch on the concrete type.
type Token interface {
	Type() TokenType
	// Raw is the token text as it appears in diagnostics. String constants
	// are returned without their quotes.
	Raw() string
	Line() int

	token()
}

type Keyword struct {
	Value  string
	LineNr int
}

type Symbol struct {
	Value  rune
	LineNr int
}

type IntConstant struct {
	Value  int
	LineNr int
}

type StringConstant struct {
	Value  string
	LineNr int
}

type Identifier struct {
	Value  string
	LineNr int
}

// Invalid is the sentinel for a lexeme matching no token shape.
type Invalid struct {
	Lexeme string
	LineNr int
}

func (Keyword) Type() TokenType        { return KEYWORD }
func (Symbol) Type() TokenType         { return SYMBOL }
func (IntConstant) Type() TokenType    { return INT_CONST }
func (StringConstant) Type() TokenType { return STRING_CONST }
func (Identifier) Type() TokenType     { return IDENTIFIER }
func (Invalid) Type() TokenType        { return INVALID }

func (t Keyword) Raw() string        { return t.Value }
func (t Symbol) Raw() string         { return string(t.Value) }
func (t IntConstant) Raw() string    { return strconv.Itoa(t.Value) }
func (t StringConstant) Raw() string { return t.Value }
func (t Identifier) Raw() string     { return t.Value }
func (t Invalid) Raw() string        { return t.Lexeme }

func (t Keyword) Line() int        { return t.LineNr }
func (t Symbol) Line() int         { return t.LineNr }
func (t IntConstant) Line() int    { return t.LineNr }
func (t StringConstant) Line() int { return t.LineNr }
func (t Identifier) Line() int     { return t.LineNr }
func (t Invalid) Line() int        { return t.LineNr }

func (Keyword) token()        {}
func (Symbol) token()         {}
func (IntConstant) token()    {}
func (StringConstant) token() {}
func (Identifier) token()     {}
func (Invalid) token()        {}

// Stream marshals a token sequence as the <tokens> markup of the analyzer
// stage.
type Stream []Token

func (s Stream) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = "tokens"
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, t := range s {
		el := xml.StartElement{Name: xml.Name{Local: string(t.Type())}}
		err := e.EncodeElement(fmt.Sprintf(" %s ", t.Raw()), el)
		if err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
