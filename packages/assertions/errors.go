package assertions

// ErrorKind classifies a misuse of the ApiAssertion builder.
type ErrorKind string

const (
	KindMissingPredicate       ErrorKind = "missing_predicate"
	KindMissingAction          ErrorKind = "missing_action"
	KindConflictingFailure     ErrorKind = "conflicting_failure_configuration"
	KindDuplicateConfiguration ErrorKind = "duplicate_configuration"
)

// Messages reported for each misconfiguration.
const (
	msgMissingPredicate   = "Define at least API predicate"
	msgMissingAction      = "Define at least API onSuccess or onFailure assertions"
	msgConflictingFailure = "Define only simple or conditional failure assertions"
	msgDuplicatePredicate = "Define only one isSuccessful predicate"
	msgDuplicateOnSuccess = "Define only one onSuccess assertion"
	msgDuplicateOnFailure = "Define only one onFailure assertion"
)

// ConfigError is returned when an ApiAssertion is configured incorrectly.
// It never wraps errors coming from caller supplied predicates or actions.
type ConfigError struct {
	Kind    ErrorKind
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Is matches any ConfigError of the same kind, so callers can write
// errors.Is(err, assertions.ErrMissingAction).
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrMissingPredicate       = &ConfigError{Kind: KindMissingPredicate, Message: msgMissingPredicate}
	ErrMissingAction          = &ConfigError{Kind: KindMissingAction, Message: msgMissingAction}
	ErrConflictingFailure     = &ConfigError{Kind: KindConflictingFailure, Message: msgConflictingFailure}
	ErrDuplicateConfiguration = &ConfigError{Kind: KindDuplicateConfiguration, Message: "duplicate configuration"}
)

func newConfigError(kind ErrorKind, msg string) *ConfigError {
	return &ConfigError{Kind: kind, Message: msg}
}
