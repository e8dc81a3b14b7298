// Package gitrepo provides the version-control backends used by git-epoch.
//
// GoGitRepository reads commits and manages tags in-process through go-git,
// while ShellRepository drives the git executable via execshell. Both report
// tag creation as an explicit TagCreationOutcome so callers can tell a newly
// created tag from one that already existed without inspecting errors.
package gitrepo
