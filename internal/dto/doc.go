// Package dto holds the transport-facing shapes of the catalog entities and
// the explicit conversions between them and internal/entities.
//
// Each entity has a read DTO plus create and update variants. Create and
// update DTOs carry gin binding tags, so the transport rejects malformed
// bodies before a service sees them. Mapping never goes through reflection:
//
//	book := dto.BookFromCreate(in)       // create DTO -> entity
//	out := dto.ToBookDTO(book)           // entity -> read DTO
//	dto.ApplyBookUpdate(&book, update)   // copy mutable fields only
//
// Read DTOs also declare the patch table used by partial updates (see
// BookPatchTable and friends).
package dto
