package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"let":    KwLet,
	"mut":    KwMut,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"for":    KwFor,
	"in":     KwIn,
	"match":  KwMatch,
	"return": KwReturn,
	"struct": KwStruct,
	"enum":   KwEnum,
	"trait":  KwTrait,
	"impl":   KwImpl,
	"type":   KwType,
	"pub":    KwPub,
	"self":   KwSelf,
	"Self":   KwSelfType,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// The second result is false for plain identifiers.
func LookupKeyword(text string) (Kind, bool) {
	kind, ok := keywords[text]
	return kind, ok
}
