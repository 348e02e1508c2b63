// Package profile defines the profile document that every mandev renderer
// consumes.
//
// A [Document] has two origins: the upstream profile service returns it as
// JSON (config plus pre-fetched stats), and developers author the config
// half locally as `.mandev.toml` or `.mandev.yaml`. [Decode] handles the
// former, [LoadFile] and [LoadDir] the latter.
//
// Documents are treated as immutable once decoded. Renderers read them
// concurrently and never write to them.
//
// [Check] and [Validate] enforce the schema. [Doctor] goes further and
// reports quality findings (short bio, undated experience) that are not
// errors.
package profile
