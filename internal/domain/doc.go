// Package domain holds the failure kinds shared by every layer of the
// browse service. Listing types live in domain/job and the controller's
// state and actions in domain/browse.
package domain
