package main

import (
	"fmt"

	"github.com/kaspanet/wsvd/app/ledger"
	"github.com/kaspanet/wsvd/domain/wsv/blockjson"
	"github.com/kaspanet/wsvd/domain/wsv/hashing"
)

func validate(conf *validateConfig, l *ledger.Ledger) error {
	proposal, err := blockjson.ReadProposalFile(conf.Proposal)
	if err != nil {
		return err
	}
	result, err := l.ValidateProposal(proposal)
	if err != nil {
		return err
	}

	fmt.Printf("Proposal %s of height %d\n", hashing.ProposalHash(proposal), proposal.Height)
	fmt.Printf("Accepted %d transactions:\n", len(result.Proposal.Transactions))
	for _, transaction := range result.Proposal.Transactions {
		fmt.Printf("  %s\n", hashing.TransactionID(transaction))
	}
	fmt.Printf("Rejected %d transactions:\n", len(result.Rejected))
	for _, rejected := range result.Rejected {
		fmt.Printf("  %s: %s\n", rejected.TransactionID, rejected.Error)
	}
	fmt.Printf("State commitment %s\n", result.Commitment)

	if !conf.Commit {
		l.DiscardResult(result)
		return nil
	}
	err = l.CommitResult(result)
	if err != nil {
		return err
	}
	fmt.Printf("Committed height %d\n", result.Proposal.Height)
	return nil
}
