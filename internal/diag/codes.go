package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004
	LexBadNumber                Code = 1005

	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectIdentifier     Code = 2002
	SynExpectEquals         Code = 2003
	SynExpectTypeOrLifetime Code = 2004
	SynExpectComma          Code = 2005
	SynUnclosedDelimiter    Code = 2006
	SynUnclosedAngleBracket Code = 2007
	SynExpectFnItem         Code = 2008
	SynExpectPath           Code = 2009
	SynExpectType           Code = 2010
	SynTrailingTokens       Code = 2011

	MonoInfo                    Code = 3000
	MonoIncompleteInstantiation Code = 3001
	MonoDuplicateSubst          Code = 3002
	MonoUnusedSubst             Code = 3003
	MonoAssociatedFn            Code = 3004
	MonoKindMismatch            Code = 3005

	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	CfgInfo         Code = 5000
	CfgInvalidValue Code = 5001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectEquals:             "Expect '='",
	SynExpectTypeOrLifetime:     "Expect type identifier or lifetime",
	SynExpectComma:              "Expect ','",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnclosedAngleBracket:     "Unclosed angle bracket",
	SynExpectFnItem:             "Expect function item",
	SynExpectPath:               "Expect path",
	SynExpectType:               "Expect type",
	SynTrailingTokens:           "Unexpected trailing tokens",
	MonoInfo:                    "Instantiation information",
	MonoIncompleteInstantiation: "Incomplete instantiation",
	MonoDuplicateSubst:          "Duplicate substitution",
	MonoUnusedSubst:             "Unused substitution",
	MonoAssociatedFn:            "Attribute on associated function",
	MonoKindMismatch:            "Substitution kind mismatch",
	IOLoadFileError:             "I/O load file error",
	IOWriteFileError:            "I/O write file error",
	CfgInfo:                     "Configuration information",
	CfgInvalidValue:             "Invalid configuration value",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MON%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
