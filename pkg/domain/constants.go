package domain

// Attribute keys.
const (
	AttrName     = "name"
	AttrValue    = "value"
	AttrText     = "text"
	AttrType     = "type"
	AttrConflict = "conflict"
	AttrWeight   = "weight"
	AttrMin      = "min"
	AttrMax      = "max"
	AttrNumber   = "number"
	AttrSave     = "save"
	AttrLoad     = "load"
)

// Question types.
const (
	QuestionSelect = "select"
	QuestionYesNo  = "yesno"
	QuestionInput  = "input"
)

// Random types.
const (
	RandomList  = "list"
	RandomRange = "range"
)

// Defaults applied when an attribute is absent.
const (
	DefaultQuestionType = QuestionSelect
	DefaultRandomType   = RandomList
	DefaultWeight       = 1
	DefaultRangeMin     = 1
	DefaultRangeMax     = 100
	DefaultRepeat       = 2
)

// Sentinels substituted for missing attributes.
const (
	MissingText  = "No question text"
	MissingValue = "No Data"
)

// YesNoOptions is the fixed option set of a yesno question.
var YesNoOptions = []string{"Yes", "No"}
