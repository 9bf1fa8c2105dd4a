package types

// Question kinds as used by the rendering layer. This is a closed, wire-level
// contract shared with the UI and must match it exactly.
const (
	QUESTION_KIND_SHORT_TEXT      = "short-text"
	QUESTION_KIND_LONG_TEXT       = "long-text"
	QUESTION_KIND_EMAIL           = "email"
	QUESTION_KIND_PHONE           = "phone"
	QUESTION_KIND_DATE            = "date"
	QUESTION_KIND_RATING          = "rating"
	QUESTION_KIND_SCALE           = "scale"
	QUESTION_KIND_YES_NO          = "yes-no"
	QUESTION_KIND_SINGLE_CHOICE   = "single-choice"
	QUESTION_KIND_MULTIPLE_CHOICE = "multiple-choice"
	QUESTION_KIND_DROPDOWN        = "dropdown"
	QUESTION_KIND_FILE_UPLOAD     = "file-upload"
	QUESTION_KIND_MATRIX          = "matrix"
	QUESTION_KIND_RANGE           = "range"
)

// Stored question types as written by the seeding tool into the catalog.
const (
	QUESTION_TYPE_SHORT_TEXT      = "SHORT_TEXT"
	QUESTION_TYPE_LONG_TEXT       = "LONG_TEXT"
	QUESTION_TYPE_EMAIL           = "EMAIL"
	QUESTION_TYPE_PHONE           = "PHONE"
	QUESTION_TYPE_DATE            = "DATE"
	QUESTION_TYPE_RATING          = "RATING"
	QUESTION_TYPE_SCALE           = "SCALE"
	QUESTION_TYPE_YES_NO          = "YES_NO"
	QUESTION_TYPE_SINGLE_CHOICE   = "SINGLE_CHOICE"
	QUESTION_TYPE_MULTIPLE_CHOICE = "MULTIPLE_CHOICE"
	QUESTION_TYPE_DROPDOWN        = "DROPDOWN"
	QUESTION_TYPE_FILE_UPLOAD     = "FILE_UPLOAD"
	QUESTION_TYPE_MATRIX          = "MATRIX"
	QUESTION_TYPE_RANGE           = "RANGE"
	QUESTION_TYPE_NUMBER          = "NUMBER"
	QUESTION_TYPE_TIME            = "TIME"
)
