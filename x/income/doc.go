/*
Package income implements the income distribution and claim engine.

Income deposited by the configured depositor is moved into the reserve
account and only increases the all time deposited total. Nothing is written
per holder at deposit time. A holder is entitled to

	floor(balance * totalDeposited / totalSupply)

computed against the current share balance, and may claim the difference
between that entitlement and what was already claimed. Rounding always goes
down, the remainder (dust) stays in the reserve and can only be moved by the
owner through an explicit sweep that never touches pending entitlements.

Because the entitlement uses the current balance against all time deposits,
a holder that acquires shares after a deposit becomes entitled to a share of
that past deposit.
*/
package income
