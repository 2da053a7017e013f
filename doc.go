/*

Package estate defines interfaces used throughout the engine, such as: storage, transactions, handlers etc.
It also contains helpers to work with addresses, conditions, context and block time.
Share ledger, income distribution and governance modules live under x/ and build on these interfaces.

*/

package estate
