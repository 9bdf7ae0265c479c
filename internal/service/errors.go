// Package service implements the business logic between handlers and
// repositories. Services return sentinel errors; handlers translate them
// to HTTP status codes and response bodies.
package service

import "errors"

var (
	// ErrClaimTokenRequired indicates a claim request without a token.
	ErrClaimTokenRequired = errors.New("claim token is required")

	// ErrAgentNotClaimable indicates the claim token does not resolve to a
	// pending, unexpired agent. Unknown, expired and already claimed tokens
	// all map here so callers cannot probe which one it was.
	ErrAgentNotClaimable = errors.New("invalid or expired claim token")

	// ErrTeamIDRequired indicates a team request without a team ID.
	ErrTeamIDRequired = errors.New("team id is required")

	// ErrNoProfileFields indicates a profile update with nothing to update.
	ErrNoProfileFields = errors.New("no fields to update")

	// ErrTeamNotFound indicates the team does not exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrNotTeamMember indicates the caller is not on the team roster.
	ErrNotTeamMember = errors.New("not a member of this team")

	// ErrProfileLocked indicates the team has not earned profile
	// customization yet.
	ErrProfileLocked = errors.New("team profile is locked until the first win")

	// ErrInvalidSort indicates an unrecognized directory sort option.
	ErrInvalidSort = errors.New("invalid sort option")
)
