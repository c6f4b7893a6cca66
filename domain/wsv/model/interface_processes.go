package model

// CommandExecutor applies a single command to the world state
type CommandExecutor interface {
	Execute(creatorAccountID string, command Command, wsvCommand WSVCommand, wsvQuery WSVQuery) error
}

// CommandValidator checks that a command, already applied to the
// world state, was allowed. creatorPermissions are the permissions the
// creator held before the command executed.
type CommandValidator interface {
	Validate(transaction *Transaction, command Command, creatorPermissions map[string]struct{},
		wsvQuery WSVQuery) error
}

// CommandFunc is run by a TemporaryWSV once for every command of a
// transaction
type CommandFunc func(transaction *Transaction, command Command,
	wsvCommand WSVCommand, wsvQuery WSVQuery) error

// TemporaryWSV is a transactional overlay over the world state. A
// transaction applied with Apply becomes visible to following
// transactions only if every one of its commands succeeded.
type TemporaryWSV interface {
	Apply(transaction *Transaction, commandFunc CommandFunc) error
	Query() WSVQuery
}

// StatefulValidator filters a proposal down to the transactions that
// are valid against the world state
type StatefulValidator interface {
	Validate(proposal *Proposal, temporaryWSV TemporaryWSV) (*Proposal, []*RejectedTransaction)
}
