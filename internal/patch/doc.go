// Package patch applies JSON Patch style documents to flat DTOs.
//
// A Document is an ordered list of operations. Each DTO type declares a Table
// that maps its JSON member names onto typed fields, so every path a patch may
// touch is known up front:
//
//	var bookFields = patch.NewTable(map[string]patch.Field[BookDTO]{
//		"name":   patch.Value(func(b *BookDTO) *string { return &b.Name }, patch.Required),
//		"rating": patch.Value(func(b *BookDTO) *int { return &b.Rating }, patch.Range(1, 5)),
//		"id":     patch.Immutable(patch.Value(func(b *BookDTO) *uint { return &b.ID })),
//	})
//
//	err := bookFields.Apply(doc, &book)
//
// Apply works on a copy of the target and only writes it back once every
// operation succeeded. The first failing operation is reported as an *OpError
// wrapping one of the Err* sentinels.
//
// Supported operations: add and replace (set the member), remove (reset it to
// its zero value), test, copy and move. Paths are single-level JSON pointers
// matched case-insensitively ("/Rating" and "/rating" are the same member).
package patch
