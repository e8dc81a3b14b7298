// Package epoch partitions commit history into development epochs and manages
// the dated git-epoch tags that mark where each epoch begins.
//
// It exposes CommandBuilder for wiring the git-epoch Cobra command, Service for
// driving tag creation and removal programmatically, and the Backend and
// ConfirmationPrompter abstractions the service depends on.
package epoch
