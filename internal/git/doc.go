// Package git provides the read-only git operations dlcmd needs, via the git CLI.
//
// All operations shell out to git through the cmd package rather than using a
// Go git library. That keeps repository reads identical to what the review
// server's own git sees (packed refs, alternates, object formats).
//
// # Metadata Ref
//
// Project configuration lives in [ProjectConfigFile] at the root of the commit
// that [RefConfig] points to:
//
//   - [ResolveRef]: current object id of a ref, empty if the ref does not exist
//   - [ObjectExists], [BlobExists]: existence checks for a revision or a path in it
//   - [ReadConfigBlob]: parse a git-config formatted blob into entries
//
// # Repositories
//
// Projects are bare repositories. [IsBareRepo] recognizes one from its layout
// without spawning git.
package git
