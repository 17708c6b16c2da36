// Package download defines download schemes and download commands.
//
// A [Scheme] turns a project name into a protocol specific URL. A [Command]
// renders the instructions for fetching a ref of a project over a scheme.
// Commands configured per project are templates with three placeholders:
//
//   - ${ref}: the ref being downloaded, e.g. refs/changes/45/12345/2
//   - ${url}: the scheme's URL for the project
//   - ${project}: the project name
//
// Substitution is a single literal pass; substituted values are never
// scanned for placeholders again.
package download
