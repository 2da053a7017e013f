/*
Package shares implements the share registry: the balance of every holder
and the total supply of the fractional ownership token.

The registry is queried live by the income and governance extensions. It
does not restrict transfers in any way.
*/
package shares
