// Package updater keeps download command registrations in sync with each
// project's configuration.
//
// Every name in a project's [plugin "<plugin>"] section becomes a download
// command registered under the group "<plugin>_<project>" and shown under the
// name with dashes replaced by spaces. At startup every project is
// registered from its current configuration, one project at a time on a
// dedicated queue. Afterwards every update of refs/meta/config unregisters
// the names of the old snapshot and registers the names of the new one.
//
// Failures to read a configuration during an update are logged and end the
// update for that event. Nothing is rolled back and nothing is retried; the
// next update of the ref brings the registrations up to date again.
package updater
