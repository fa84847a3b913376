package token

// Type is the type of a token.
type Type string

// Token represents a lexical token of a directive line such as
// [ext_resource type="Script" path="res://a.gd" id="1_script"].
type Token struct {
	Type    Type
	Literal string
	Column  int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of line

	// Literals
	IDENT  Type = "IDENT"  // type, load_steps, Resource
	INT    Type = "INT"    // 3
	FLOAT  Type = "FLOAT"  // 1.5
	STRING Type = "STRING" // "res://scripts/data/unit_data.gd"

	// Delimiters
	LBRACK Type = "["
	RBRACK Type = "]"
	ASSIGN Type = "="

	// Directive keywords
	HEADER       Type = "HEADER"       // gd_resource
	EXT_RESOURCE Type = "EXT_RESOURCE" // ext_resource
	SUB_RESOURCE Type = "SUB_RESOURCE" // sub_resource
	RESOURCE     Type = "RESOURCE"     // resource
)

// Directive keywords as they appear in documents.
const (
	HeaderKeyword      = "gd_resource"
	ExtResourceKeyword = "ext_resource"
	SubResourceKeyword = "sub_resource"
	ResourceKeyword    = "resource"
)

var keywords = map[string]Type{
	HeaderKeyword:      HEADER,
	ExtResourceKeyword: EXT_RESOURCE,
	SubResourceKeyword: SUB_RESOURCE,
	ResourceKeyword:    RESOURCE,
}

// LookupIdent checks the keywords table for an identifier.
// If the identifier is a directive keyword, it returns the keyword's token
// type. Otherwise, it returns IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
