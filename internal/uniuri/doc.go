// Package uniuri generates random identifiers for request ids and temporary file names.
package uniuri
