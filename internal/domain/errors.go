package domain

import "errors"

var (
	// ErrDiscoveryFailed signals a search-oracle level failure; no partial
	// identifier list is returned alongside it.
	ErrDiscoveryFailed = errors.New("profile discovery failed")
	// ErrProfileUnavailable signals a per-identifier fetch failure.
	// Non-fatal: the sourcing loop logs and skips.
	ErrProfileUnavailable = errors.New("profile unavailable")
	// ErrIndexBuildFailed signals an aborted index build; no partial
	// namespace is published.
	ErrIndexBuildFailed = errors.New("index build failed")
	// ErrNamespaceExists signals a build-id collision on namespace creation.
	ErrNamespaceExists = errors.New("index namespace already exists")
	// ErrMissingCredential signals an absent credential, checked before
	// any network call is attempted.
	ErrMissingCredential = errors.New("missing credential")
	// ErrSearchFailed signals a similarity search failure.
	ErrSearchFailed = errors.New("similarity search failed")
	// ErrVectorDimMismatch signals a vector that does not match the
	// namespace dimensionality.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
