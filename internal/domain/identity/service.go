package identity

import "context"

const (
	// Prefix opens every employee identifier.
	Prefix = "OI"

	// IdentifierLength is len("OI") + 2 + 2 + 4-digit year + 4-digit serial.
	IdentifierLength = 14

	// MaxSerial is the last serial a year can issue.
	MaxSerial = 9999
)

// JoinCounter reports how many accounts joined in a calendar year, and the
// highest serial already issued under that year.
type JoinCounter interface {
	CountJoinedInYear(ctx context.Context, year int) (int, error)
	MaxSerialInYear(ctx context.Context, year int) (int, error)
}

// Issuer mints employee identifiers and one-time passwords. An identifier is
// unique only when the count it is based on and the insert that uses it run
// under the same lock.
type Issuer interface {
	// IssueIdentifier returns OI<FIRST2><LAST2><YEAR><SERIAL>. joiningYear 0
	// means the current year.
	IssueIdentifier(ctx context.Context, firstName, lastName string, joiningYear int) (string, error)

	// IssueTemporaryPassword returns "Temp" + 4 unambiguous characters + "!".
	IssueTemporaryPassword() (string, error)
}
