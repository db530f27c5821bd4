// Package save converts game state to and from versioned JSON documents.
//
// A document names every entity by its registry key and carries a type tag
// on each nested state. Older documents are upgraded on read: version 1
// files are overlaid onto a fresh world, version 2 files gain the scenario
// name and map size of the fresh world.
package save
