// Package interfaces documents the core abstractions of the catalog and
// pins their implementations with compile-time checks.
//
// # Layers
//
// Requests flow through three layers, each depending only on interfaces
// declared by its consumer:
//
//   - Repositories (internal/database/...) embed database.Repository[T] and
//     add entity lookups. Services see them as services.UserRepository,
//     services.BookRepository and so on, plus services.Getter[E] for checks
//     against entities a service does not own.
//   - Services (internal/services) return DTOs for reads and a
//     result.Result envelope for mutations. Controllers see them as
//     http.UserService, http.BookService and so on.
//   - Controllers (internal/http) map envelopes onto HTTP status codes.
//
// Background work is decoupled the same way: the audit service satisfies
// tasks.AuditEventCleaner and the task client satisfies scheduler.Enqueuer.
//
// # Adding a New Resource
//
//  1. Add the entity to internal/entities and to the migrated models in
//     internal/database/database.go.
//
//  2. Create a repository sub-package:
//
//     type Repository struct {
//         *database.Repository[entities.Shelf]
//     }
//
//  3. Add DTOs, mapping functions and a patch.Table in internal/dto.
//
//  4. Write the service on top of the generic crud helper and register a
//     controller built with newResource in internal/http.
//
//  5. Add compile-time checks to checks.go:
//
//     var _ services.ShelfRepository = (*shelves.Repository)(nil)
//     var _ http.ShelfService = (*services.ShelfService)(nil)
package interfaces
