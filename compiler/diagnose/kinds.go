package diagnose

// LexErrorKind enumerates the categories a Scanner can report.
type LexErrorKind int

const (
	LexUnknownToken LexErrorKind = iota
	LexUnterminatedString
	LexInvalidEscape
)

var lexErrorCategory = map[LexErrorKind]string{
	LexUnknownToken:       "UnknownToken",
	LexUnterminatedString: "UnterminatedString",
	LexInvalidEscape:      "InvalidEscape",
}

var lexErrorCode = map[LexErrorKind]string{
	LexUnknownToken:       "P001",
	LexUnterminatedString: "P002",
	LexInvalidEscape:      "P003",
}

func (k LexErrorKind) String() string { return lexErrorCategory[k] }

// ParseErrorKind enumerates the categories the parser can report. A handful
// carry a nested sub-kind (RepetitionKind, CharClassKind, ...) for the
// finer-grained distinctions spec §7 lists under a single parent category.
type ParseErrorKind int

const (
	ParseExpected ParseErrorKind = iota
	ParseUnexpectedKeyword
	ParseKeywordAfterLet
	ParseLeftoverTokens
	ParseLonePipe
	ParseRecursionLimit
	ParseQuestionMarkAfterRepetition
	ParsePlusAfterRepetition
	ParseCharClassEmpty
	ParseCharClassCaretInGroup
	ParseCharClassDescendingRange
	ParseCharClassInvalid
	ParseCharStringTooManyCodePoints
	ParseCharStringEmpty
	ParseCodePointInvalid
	ParseNumberTooLarge
	ParseNumberTooSmall
	ParseNumberInvalidDigit
	ParseRangeIsNotIncreasing
	ParseLetBindingExists
	ParseDot
	ParseExpectedCodePointOrChar
	ParseExpectedToken
	ParseInvalidEscapeInString
)

var parseErrorCategory = map[ParseErrorKind]string{
	ParseExpected:                    "Expected",
	ParseUnexpectedKeyword:           "UnexpectedKeyword",
	ParseKeywordAfterLet:             "KeywordAfterLet",
	ParseLeftoverTokens:              "LeftoverTokens",
	ParseLonePipe:                    "LonePipe",
	ParseRecursionLimit:              "RecursionLimit",
	ParseQuestionMarkAfterRepetition: "Repetition(QuestionMarkAfterRepetition)",
	ParsePlusAfterRepetition:         "Repetition(PlusAfterRepetition)",
	ParseCharClassEmpty:              "CharClass(Empty)",
	ParseCharClassCaretInGroup:       "CharClass(CaretInGroup)",
	ParseCharClassDescendingRange:    "CharClass(DescendingRange)",
	ParseCharClassInvalid:            "CharClass(Invalid)",
	ParseCharStringTooManyCodePoints: "CharString(TooManyCodePoints)",
	ParseCharStringEmpty:             "CharString(Empty)",
	ParseCodePointInvalid:            "CodePoint(Invalid)",
	ParseNumberTooLarge:              "Number(TooLarge)",
	ParseNumberTooSmall:              "Number(TooSmall)",
	ParseNumberInvalidDigit:          "Number(InvalidDigit)",
	ParseRangeIsNotIncreasing:        "RangeIsNotIncreasing",
	ParseLetBindingExists:            "LetBindingExists",
	ParseDot:                         "Dot",
	ParseExpectedCodePointOrChar:     "ExpectedCodePointOrChar",
	ParseExpectedToken:               "ExpectedToken",
	ParseInvalidEscapeInString:       "InvalidEscapeInString",
}

var parseErrorCode = map[ParseErrorKind]string{
	ParseExpected:                    "P010",
	ParseUnexpectedKeyword:           "P011",
	ParseKeywordAfterLet:             "P012",
	ParseLeftoverTokens:              "P013",
	ParseLonePipe:                    "P014",
	ParseRecursionLimit:              "P015",
	ParseQuestionMarkAfterRepetition: "P016",
	ParsePlusAfterRepetition:         "P017",
	ParseCharClassEmpty:              "P018",
	ParseCharClassCaretInGroup:       "P019",
	ParseCharClassDescendingRange:    "P020",
	ParseCharClassInvalid:            "P021",
	ParseCharStringTooManyCodePoints: "P022",
	ParseCharStringEmpty:             "P023",
	ParseCodePointInvalid:            "P024",
	ParseNumberTooLarge:              "P025",
	ParseNumberTooSmall:              "P026",
	ParseNumberInvalidDigit:          "P027",
	ParseRangeIsNotIncreasing:        "P028",
	ParseLetBindingExists:            "P029",
	ParseDot:                         "P030",
	ParseExpectedCodePointOrChar:     "P031",
	ParseExpectedToken:               "P032",
	ParseInvalidEscapeInString:       "P033",
}

func (k ParseErrorKind) String() string { return parseErrorCategory[k] }

// SemanticErrorKind enumerates the categories the resolver can report.
type SemanticErrorKind int

const (
	SemanticUnsupported SemanticErrorKind = iota
	SemanticNameUsedMultipleTimes
	SemanticUnknownReference
	SemanticReferenceInLet
	SemanticRecursiveVariable
	SemanticNotSupported
)

var semanticErrorCategory = map[SemanticErrorKind]string{
	SemanticUnsupported:           "Unsupported",
	SemanticNameUsedMultipleTimes: "NameUsedMultipleTimes",
	SemanticUnknownReference:      "UnknownReference",
	SemanticReferenceInLet:        "ReferenceInLet",
	SemanticRecursiveVariable:     "RecursiveVariable",
	SemanticNotSupported:          "NotSupported",
}

var semanticErrorCode = map[SemanticErrorKind]string{
	SemanticUnsupported:           "P040",
	SemanticNameUsedMultipleTimes: "P041",
	SemanticUnknownReference:      "P042",
	SemanticReferenceInLet:        "P043",
	SemanticRecursiveVariable:     "P044",
	SemanticNotSupported:          "P045",
}

func (k SemanticErrorKind) String() string { return semanticErrorCategory[k] }

// WarningKind enumerates the non-fatal diagnostics the parser can emit.
type WarningKind int

const (
	WarningDeprecationDot WarningKind = iota
	WarningDeprecationOldStartLiteral
	WarningDeprecationOldEndLiteral
	WarningUnusedVariable
)

var warningCategory = map[WarningKind]string{
	WarningDeprecationDot:             "Deprecation(Dot)",
	WarningDeprecationOldStartLiteral: "Deprecation(OldStartLiteral)",
	WarningDeprecationOldEndLiteral:   "Deprecation(OldEndLiteral)",
	WarningUnusedVariable:             "UnusedVariable",
}

var warningCode = map[WarningKind]string{
	WarningDeprecationDot:             "P100",
	WarningDeprecationOldStartLiteral: "P101",
	WarningDeprecationOldEndLiteral:   "P102",
	WarningUnusedVariable:             "P103",
}

func (k WarningKind) String() string { return warningCategory[k] }

var warningMessage = map[WarningKind]string{
	WarningDeprecationDot:             "bracketed `[.]` is deprecated; use `.` without the brackets",
	WarningDeprecationOldStartLiteral: "`<%` is deprecated; use `^` to match the start of the string",
	WarningDeprecationOldEndLiteral:   "`%>` is deprecated; use `$` to match the end of the string",
	WarningUnusedVariable:             "variable is declared but never used",
}
