// Package git provides Git operations via exec for the treepack CLI.
//
// Two layers live here. The query layer (Run and friends) captures
// command output for plumbing questions like "what is HEAD". The
// Repository type exposes the backend operations the archive assembler
// and tree exporter build on: archive streaming, submodule enumeration,
// tree listing and side-index tree writing. State-changing porcelain
// (checkout, commit, tag, pull) goes through the command invoker with
// inherited standard streams instead, so git's own progress output and
// prompts reach the user.
//
// Every operation takes its working directory as an explicit parameter
// or from the Repository it is called on; the process working directory
// is never changed.
package git
