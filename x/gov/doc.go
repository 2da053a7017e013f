/*
Package gov implements share weighted governance proposals.

Any holder with enough shares can create a text proposal. Every holder votes
at most once per proposal, for or against, with a weight equal to its share
balance at the moment of voting. Once the voting window is over the outcome
is decided by a quorum, relative to the current total supply, and by a
supermajority of the cast votes. A passed proposal can be marked as executed
exactly once. Execution itself happens outside of the application.

All thresholds are whole percentages and every comparison is done on
integers.
*/
package gov
