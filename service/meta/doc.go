// Package meta loads YAML configuration documents from local files, embedded
// file systems or cloud storage through github.com/viant/afs.
package meta
