// Package planservice resolves an organization's subscription plan and
// answers resource limit checks for record creation and member invites.
package planservice
