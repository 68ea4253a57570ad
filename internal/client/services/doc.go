// Package services contains application services for the ParishPortal
// client: the authentication service (session state, login/logout, one-shot
// session restore) and the typed resource facades (events, ministries,
// posts, resources, gallery) built on the generic API client.
package services
