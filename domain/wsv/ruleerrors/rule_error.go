package ruleerrors

import (
	"fmt"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
)

// Integrity errors: an insert references an entity that does not exist,
// or creates an entity that already exists.
var (
	// ErrMissingRole indicates a referenced role does not exist.
	ErrMissingRole = newRuleError("ErrMissingRole")

	// ErrMissingDomain indicates a referenced domain does not exist.
	ErrMissingDomain = newRuleError("ErrMissingDomain")

	// ErrMissingAccount indicates a referenced account does not exist.
	ErrMissingAccount = newRuleError("ErrMissingAccount")

	// ErrDuplicateRole indicates a role with the same name already exists.
	ErrDuplicateRole = newRuleError("ErrDuplicateRole")

	// ErrDuplicateDomain indicates a domain with the same id already exists.
	ErrDuplicateDomain = newRuleError("ErrDuplicateDomain")

	// ErrDuplicateAccount indicates an account with the same id already exists.
	ErrDuplicateAccount = newRuleError("ErrDuplicateAccount")

	// ErrDuplicatePeer indicates a peer with the same public key already exists.
	ErrDuplicatePeer = newRuleError("ErrDuplicatePeer")

	// ErrDuplicateAsset indicates an asset with the same id already exists.
	ErrDuplicateAsset = newRuleError("ErrDuplicateAsset")
)

// Capacity errors: a value exceeds its bounded size.
var (
	// ErrRoleNameTooLong indicates a role name is longer than
	// model.MaxRoleNameLength.
	ErrRoleNameTooLong = newRuleError("ErrRoleNameTooLong")
)

// Unavailable errors: the store cannot be written.
var (
	// ErrStoreUninitialized indicates the store has no schema.
	ErrStoreUninitialized = newRuleError("ErrStoreUninitialized")

	// ErrStoreUnavailable indicates the underlying data accessor failed.
	ErrStoreUnavailable = newRuleError("ErrStoreUnavailable")
)

// Validation errors: a command executed but was not allowed.
var (
	// ErrNoPermission indicates the transaction creator lacks a
	// permission the command requires.
	ErrNoPermission = newRuleError("ErrNoPermission")

	// ErrQuorumNotMet indicates the transaction has fewer distinct
	// signers than its creator's quorum.
	ErrQuorumNotMet = newRuleError("ErrQuorumNotMet")

	// ErrBadQuorum indicates a quorum outside of [1, model.MaxQuorum].
	ErrBadQuorum = newRuleError("ErrBadQuorum")

	// ErrUnauthorizedDetailWriter indicates the creator may not write
	// into the detail store of the target account.
	ErrUnauthorizedDetailWriter = newRuleError("ErrUnauthorizedDetailWriter")

	// ErrInvalidPeerKey indicates a peer public key that does not parse.
	ErrInvalidPeerKey = newRuleError("ErrInvalidPeerKey")

	// ErrMissingCreatorAccount indicates the transaction creator has
	// no account.
	ErrMissingCreatorAccount = newRuleError("ErrMissingCreatorAccount")

	// ErrUnknownCommand indicates a command of an unknown kind.
	ErrUnknownCommand = newRuleError("ErrUnknownCommand")

	// ErrGrantNotStaged indicates a granted permission is not visible
	// after the grant executed.
	ErrGrantNotStaged = newRuleError("ErrGrantNotStaged")

	// ErrNotGrantable indicates a permission that may not be granted.
	ErrNotGrantable = newRuleError("ErrNotGrantable")
)

// RuleError identifies a rule violation. It is used to indicate that
// a command or a transaction failed due to one of the integrity or
// business rules of the world state. The caller can use errors.Is and
// errors.As to determine the specific rule.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// ErrUnexecutableCommand indicates the store refused a command
type ErrUnexecutableCommand struct {
	Command model.Command
	Err     error
}

func (e ErrUnexecutableCommand) Error() string {
	return fmt.Sprintf("%s: %s", e.Command.Name(), e.Err)
}

// Unwrap satisfies the errors.Unwrap interface
func (e ErrUnexecutableCommand) Unwrap() error {
	return e.Err
}

// NewErrUnexecutableCommand creates a new ErrUnexecutableCommand error wrapped in a RuleError
func NewErrUnexecutableCommand(command model.Command, err error) error {
	return errors.WithStack(RuleError{
		message: "ErrUnexecutableCommand",
		inner:   ErrUnexecutableCommand{Command: command, Err: err},
	})
}

// ErrInvalidCommand indicates a command executed but failed validation
type ErrInvalidCommand struct {
	Command model.Command
	Err     error
}

func (e ErrInvalidCommand) Error() string {
	return fmt.Sprintf("%s: %s", e.Command.Name(), e.Err)
}

// Unwrap satisfies the errors.Unwrap interface
func (e ErrInvalidCommand) Unwrap() error {
	return e.Err
}

// NewErrInvalidCommand creates a new ErrInvalidCommand error wrapped in a RuleError
func NewErrInvalidCommand(command model.Command, err error) error {
	return errors.WithStack(RuleError{
		message: "ErrInvalidCommand",
		inner:   ErrInvalidCommand{Command: command, Err: err},
	})
}

// ErrCommandFailed indicates the command at Index of a transaction
// failed, discarding the whole transaction
type ErrCommandFailed struct {
	Index int
	Err   error
}

func (e ErrCommandFailed) Error() string {
	return fmt.Sprintf("command #%d: %s", e.Index, e.Err)
}

// Unwrap satisfies the errors.Unwrap interface
func (e ErrCommandFailed) Unwrap() error {
	return e.Err
}

// NewErrCommandFailed creates a new ErrCommandFailed error wrapped in a RuleError
func NewErrCommandFailed(index int, err error) error {
	return errors.WithStack(RuleError{
		message: "ErrCommandFailed",
		inner:   ErrCommandFailed{Index: index, Err: err},
	})
}

var integrityErrors = []error{
	ErrMissingRole,
	ErrMissingDomain,
	ErrMissingAccount,
	ErrDuplicateRole,
	ErrDuplicateDomain,
	ErrDuplicateAccount,
	ErrDuplicatePeer,
	ErrDuplicateAsset,
}

// IsIntegrityError returns whether err is caused by a missing
// referenced entity or by an entity that already exists
func IsIntegrityError(err error) bool {
	for _, integrityError := range integrityErrors {
		if errors.Is(err, integrityError) {
			return true
		}
	}
	return false
}

// IsCapacityError returns whether err is caused by a value exceeding
// its bounded size
func IsCapacityError(err error) bool {
	return errors.Is(err, ErrRoleNameTooLong)
}

// IsUnavailableError returns whether err is caused by a store that
// cannot be written
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrStoreUninitialized) ||
		errors.Is(err, ErrStoreUnavailable)
}
