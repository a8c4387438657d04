// Package yamlfile persists the archive's record list as a single YAML
// resource at the storage root, alongside the raw, edit and cache
// directories. The whole file is rewritten on every save; an atomic
// rename keeps the index intact if the process dies mid-write.
package yamlfile
