// Package sdk holds the domain types of the SDK table: the Sdk entity, the
// Type capability that validates a home directory and builds an Sdk from it,
// the ordered Types set, and the Record used to persist an Sdk.
//
// The package has no knowledge of storage, configuration or the filesystem;
// concrete types live in sdk/sdktypes.
package sdk
