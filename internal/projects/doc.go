// Package projects implements the projtrack Project Store: an ordered list of
// projects, each owning its modules, each owning its documents.
//
// The whole tree is persisted as one record under common.ProjectRecordKey in
// an injected blobs.Store. Mutators build the next tree, write it, then swap
// it into memory, so a failed write leaves the store unchanged. Addressing a
// project, module or document that does not exist returns common.ErrNotFound
// and changes nothing.
//
// Progress is never stored on a project. ProjectProgress derives it from the
// module percentages on every call. Module status and progress are stored
// exactly as given; the coupling between them is a caller rule expressed by
// ApplyProgress and ApplyStatus.
//
// The store performs no authorization.
package projects
