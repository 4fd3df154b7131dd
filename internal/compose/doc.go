// Package compose locates a Docker Compose file at the repository root
// and extracts the container-side volume mount path of a named service.
//
// The traversal is deliberately narrow: descend into services.<name>,
// read its volumes list, and return the first entry carrying an absolute
// container-side path. Volumes belonging to other services are never
// consulted. Parsing uses gopkg.in/yaml.v3 rather than line matching, so
// quoting and indentation variants are the parser's concern.
package compose
