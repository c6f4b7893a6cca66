/*
Package database defines the key/value data access layer of wsvd.

Keys are built from buckets (see MakeBucket) so that related records share a
prefix and can be iterated with a Cursor. The only production implementation
lives in the ldb sub-package and is backed by goleveldb.

Transactions

A Transaction batches writes until Commit. It does not provide
read-your-writes; callers that need it stage their writes in an overlay and
flush the overlay into a transaction once they are done.
*/
package database
