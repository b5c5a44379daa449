package common

// Problem identifies a single validation failure. Values double as message
// IDs in the translation catalogue.
type Problem string

const (
	ProblemFieldsRequired    Problem = "fieldsRequired"
	ProblemPasswordsMismatch Problem = "passwordsMismatch"
	ProblemPasswordTooShort  Problem = "passwordTooShort"
	ProblemPasswordTooLong   Problem = "passwordTooLong"
	ProblemEmailInvalid      Problem = "emailInvalid"
)

// Unique fields reported by DuplicateKeyError.
const (
	FieldUserName = "username"
	FieldEmail    = "email"
)
