// Package treasuryservice implements the croesus treasury: the cumulative
// received counter, the withdrawable balance, and the operator-owned fee
// configuration whose minimum subscription tier floors enrollment payments.
package treasuryservice
