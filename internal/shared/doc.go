// Package shared declares the collaborator interfaces consumed by the formatting and build services.
package shared
