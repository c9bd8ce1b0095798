package spylang

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Literals & identifiers
	IDENT
	INT
	FLOAT
	STRING
	BOOLEAN
	NULL

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	MOD
	EQUALS // "="
	EQEQ   // "=="
	NOTEQ  // "!="
	LESS
	LESSEQ
	GREATER
	GREATEREQ
	RANGE // ".."

	// Punctuation
	LROUND // "("
	RROUND // ")"
	LCURLY // "{"
	RCURLY // "}"
	LSQUARE
	RSQUARE
	COMMA
	SEMI

	// Keywords
	ASSIGN
	CHECK
	FOLLOWUP
	OTHERWISE
	EACH
	CHASE
	MISSION
	EXTRACT
	ABORT
	PROCEED
	IN
	AND
	OR
	NOT
)

// Token is a lexical token with optional literal value. Line is 1-based,
// Col is 0-based within the line (errors render it 1-based).
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals
	Line    int
	Col     int
}

// keywords map
var keywords = map[string]TokenType{
	"assign":    ASSIGN,
	"check":     CHECK,
	"followup":  FOLLOWUP,
	"otherwise": OTHERWISE,
	"each":      EACH,
	"chase":     CHASE,
	"mission":   MISSION,
	"extract":   EXTRACT,
	"abort":     ABORT,
	"proceed":   PROCEED,
	"in":        IN,
	"and":       AND,
	"or":        OR,
	"not":       NOT,
	"true":      BOOLEAN,
	"false":     BOOLEAN,
	"ghost":     NULL,
}

// String renders the token type for diagnostics.
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case IDENT:
		return "identifier"
	case INT:
		return "integer literal"
	case FLOAT:
		return "float literal"
	case STRING:
		return "string literal"
	case BOOLEAN:
		return "boolean literal"
	case NULL:
		return "'ghost'"
	case PLUS:
		return "'+'"
	case MINUS:
		return "'-'"
	case MULT:
		return "'*'"
	case DIV:
		return "'/'"
	case MOD:
		return "'%'"
	case EQUALS:
		return "'='"
	case EQEQ:
		return "'=='"
	case NOTEQ:
		return "'!='"
	case LESS:
		return "'<'"
	case LESSEQ:
		return "'<='"
	case GREATER:
		return "'>'"
	case GREATEREQ:
		return "'>='"
	case RANGE:
		return "'..'"
	case LROUND:
		return "'('"
	case RROUND:
		return "')'"
	case LCURLY:
		return "'{'"
	case RCURLY:
		return "'}'"
	case LSQUARE:
		return "'['"
	case RSQUARE:
		return "']'"
	case COMMA:
		return "','"
	case SEMI:
		return "';'"
	case ASSIGN:
		return "'assign'"
	case CHECK:
		return "'check'"
	case FOLLOWUP:
		return "'followup'"
	case OTHERWISE:
		return "'otherwise'"
	case EACH:
		return "'each'"
	case CHASE:
		return "'chase'"
	case MISSION:
		return "'mission'"
	case EXTRACT:
		return "'extract'"
	case ABORT:
		return "'abort'"
	case PROCEED:
		return "'proceed'"
	case IN:
		return "'in'"
	case AND:
		return "'and'"
	case OR:
		return "'or'"
	case NOT:
		return "'not'"
	default:
		return "token"
	}
}

// opLexeme returns the operator spelling used in runtime error messages.
func opLexeme(t TokenType) string {
	switch t {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case MULT:
		return "*"
	case DIV:
		return "/"
	case MOD:
		return "%"
	case EQEQ:
		return "=="
	case NOTEQ:
		return "!="
	case LESS:
		return "<"
	case LESSEQ:
		return "<="
	case GREATER:
		return ">"
	case GREATEREQ:
		return ">="
	case AND:
		return "and"
	case OR:
		return "or"
	case NOT:
		return "not"
	default:
		return t.String()
	}
}
