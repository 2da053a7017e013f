/*
Package cash defines the income currency: plain balances that can be sent
between addresses.

There is no logic in the currency, except that the balance of an account
may not go below zero. Thus, this implementation is referred to as cash.
Simple and safe.

An address may register a Receiver that is called every time funds arrive
on its account. This is how a contract like recipient reacts to a payout,
including calling back into the application.
*/
package cash
