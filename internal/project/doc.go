// Package project enumerates the projects of a review site and reads their
// versioned configuration.
//
// A site is a directory of bare repositories; project "team/app" lives in
// <site>/team/app.git. Each project's configuration is the project.config
// file on refs/meta/config, in git-config syntax. Plugins own a subsection
// of the plugin section:
//
//	[plugin "download-commands"]
//		checkout = git fetch ${url} ${ref} && git checkout FETCH_HEAD
//
// [Cache] resolves projects to a [State] (current configuration) and reads
// the configuration at arbitrary revisions for diffing old and new snapshots.
package project
