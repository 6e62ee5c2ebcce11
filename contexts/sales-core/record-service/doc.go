// Package recordservice owns CRM record creation for LeadRail.
//
// The module's core is the creation transaction: the organization's
// integrated-code sequence increment, the round-robin distribution slot
// assignment under a partition row lock, and the record insert commit or
// roll back as one unit. Post-commit automation triggers and live broadcasts
// run detached and never affect the creation result.
package recordservice
