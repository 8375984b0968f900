// Package core contains the shared domain types of StudyMesh: messages,
// the session state machine, the expert catalog contracts, and the
// turn-taking engine contract consumed by the dispatch layer. Higher level
// packages (expert, router, groupchat, dispatch) depend on core; core
// depends only on logging and small utilities.
package core
