package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthTokenRevoked           ErrorCode = "AUTH_006"
	AuthAccountLocked          ErrorCode = "AUTH_007"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
	ValidationInvalidAmount ErrorCode = "VALIDATION_007"
)

// User error codes (USER_*)
const (
	UserNotFound      ErrorCode = "USER_001"
	UserAlreadyExists ErrorCode = "USER_002"
	UserInvalidID     ErrorCode = "USER_003"
)

// Item error codes (ITEM_*)
const (
	ItemNotFound      ErrorCode = "ITEM_001"
	ItemAlreadyExists ErrorCode = "ITEM_002"
	ItemInvalidType   ErrorCode = "ITEM_003"
	ItemInUse         ErrorCode = "ITEM_004"
	ItemInvalidID     ErrorCode = "ITEM_005"
)

// Entry error codes (ENTRY_*) cover incomes and expenses
const (
	EntryNotFound       ErrorCode = "ENTRY_001"
	EntryInvalidAmount  ErrorCode = "ENTRY_002"
	EntryInvalidDate    ErrorCode = "ENTRY_003"
	EntryInvalidKind    ErrorCode = "ENTRY_004"
	EntryItemMismatch   ErrorCode = "ENTRY_005"
	EntryInvalidID      ErrorCode = "ENTRY_006"
	EntryInvalidQuery   ErrorCode = "ENTRY_007"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthTokenRevoked:           "Authorization token has been revoked",
	AuthAccountLocked:          "Account is locked due to too many failed login attempts",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidDate:   "Invalid date format or range",
	ValidationInvalidAmount: "Amount must be a positive number",

	// User errors
	UserNotFound:      "User not found",
	UserAlreadyExists: "An account with this username already exists",
	UserInvalidID:     "Invalid user ID format",

	// Item errors
	ItemNotFound:      "Item not found",
	ItemAlreadyExists: "An item with this name already exists",
	ItemInvalidType:   "Item type must be income or expense",
	ItemInUse:         "Item is referenced by existing entries",
	ItemInvalidID:     "Invalid item ID format",

	// Entry errors
	EntryNotFound:      "Entry not found",
	EntryInvalidAmount: "Invalid entry amount",
	EntryInvalidDate:   "Invalid entry date",
	EntryInvalidKind:   "Invalid entry kind",
	EntryItemMismatch:  "Item type does not match the entry kind",
	EntryInvalidID:     "Invalid entry ID format",
	EntryInvalidQuery:  "Invalid table query",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
