// Package subscriberledger implements the paid membership registry for croesus.
//
// The module owns subscriber records and exposes HTTP handlers for enrollment,
// operator maintenance (custom enroll, removal, expiry sweep) and subscriber
// queries, plus worker entrypoints for the periodic sweep and outbox relay.
package subscriberledger
